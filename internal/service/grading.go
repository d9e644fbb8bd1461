package service

import (
	"sort"
	"strings"

	"video-quiz/internal/domain"
)

// GradingService defines the interface for scoring a submitted quiz.
type GradingService interface {
	Grade(submissions []domain.Submission) domain.GradeReport
}

type gradingService struct{}

// NewGradingService creates a new GradingService
func NewGradingService() GradingService {
	return &gradingService{}
}

// Grade compares each answer with its correct answer after trimming
// surrounding whitespace. The comparison is case-sensitive.
func (s *gradingService) Grade(submissions []domain.Submission) domain.GradeReport {
	ordered := make([]domain.Submission, len(submissions))
	copy(ordered, submissions)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Index < ordered[j].Index })

	report := domain.GradeReport{
		Results:        make([]domain.GradedAnswer, 0, len(ordered)),
		TotalQuestions: len(ordered),
	}
	for _, sub := range ordered {
		correct := IsCorrectAnswer(sub.UserAnswer, sub.CorrectAnswer)
		if correct {
			report.CorrectCount++
		}
		report.Results = append(report.Results, domain.GradedAnswer{
			Index:         sub.Index,
			Question:      sub.Question,
			UserAnswer:    sub.UserAnswer,
			CorrectAnswer: sub.CorrectAnswer,
			IsCorrect:     correct,
		})
	}
	return report
}

// IsCorrectAnswer is the whitespace-trimmed, case-sensitive equality used for grading.
func IsCorrectAnswer(userAnswer, correctAnswer string) bool {
	return strings.TrimSpace(userAnswer) == strings.TrimSpace(correctAnswer)
}
