package domain

import "context"

const (
	// KeyDetailQuestion is asked of the extractor for every sentence.
	KeyDetailQuestion = "What is a key detail from this sentence?"
	// QuestionPrefix is prepended to the sentence to form the quiz question.
	QuestionPrefix = "Identify the key detail: "
	// FallbackAnswer replaces an empty or all-whitespace extracted answer.
	FallbackAnswer = "Not specified"
)

// QuestionRecord is one multiple-choice question built from a summary sentence.
// CorrectAnswer is always one of Choices.
type QuestionRecord struct {
	Question      string   `json:"question"`
	Choices       []string `json:"choices"`
	CorrectAnswer string   `json:"correct_answer"`
}

// KeyDetailExtractor returns the most salient span of context for the question.
type KeyDetailExtractor interface {
	ExtractKeyDetail(ctx context.Context, question, context string) (string, error)
}

// TextExtractor splits text into sentence-like units.
type TextExtractor interface {
	Sentences(text string) []string
}

// RandomSource supplies uniform random integers in [0, n).
// Implementations must be safe for concurrent use when shared across requests.
type RandomSource interface {
	IntN(n int) int
}

// Submission is a single answered question echoed back by the client.
type Submission struct {
	Index         int
	Question      string
	UserAnswer    string
	CorrectAnswer string
}

// GradedAnswer is the verdict for one Submission.
type GradedAnswer struct {
	Index         int    `json:"index"`
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
}

// GradeReport aggregates the verdicts of a quiz submission.
type GradeReport struct {
	Results        []GradedAnswer `json:"results"`
	CorrectCount   int            `json:"correct_count"`
	TotalQuestions int            `json:"total_questions"`
}
