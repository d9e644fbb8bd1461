package handler

import (
	"fmt"
	"strconv"
	"strings"

	"video-quiz/internal/domain"
	"video-quiz/internal/dto"
	"video-quiz/internal/logger"
	"video-quiz/internal/middleware"
	"video-quiz/internal/service"
	"video-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Defaults for form fields left out of a quiz submission.
const (
	missingAnswer   = "None"
	missingQuestion = "Unknown Question"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	generator    service.QuizGenerator
	grader       service.GradingService
	validator    *validation.Validator
	defaultCount int
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(generator service.QuizGenerator, grader service.GradingService, validator *validation.Validator, defaultCount int) *QuizHandler {
	return &QuizHandler{
		generator:    generator,
		grader:       grader,
		validator:    validator,
		defaultCount: defaultCount,
	}
}

// GenerateQuiz godoc
// @Summary Generate a quiz from a summary
// @Description Builds up to count multiple-choice questions, one per sentence of the summary
// @Tags quiz
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Summary"
// @Param count query int false "Number of questions (default 5)"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quiz [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	if strings.TrimSpace(req.Summary) == "" {
		return domain.NewInvalidInputError("No valid summary found.")
	}
	if errs := h.validator.ValidateSummary(req.Summary); len(errs) > 0 {
		return errs
	}

	count := middleware.GetValidatedCount(c, h.defaultCount)
	questions := h.generator.Generate(c.UserContext(), req.Summary, count)
	if len(questions) == 0 {
		logger.Get().Warn("No quiz questions generated",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Int("count", count))
		return domain.NewNoQuestionsGeneratedError()
	}

	resp := dto.QuizResponse{
		Questions:      make([]dto.QuestionResponse, 0, len(questions)),
		TotalQuestions: len(questions),
	}
	for _, q := range questions {
		resp.Questions = append(resp.Questions, dto.QuestionResponse{
			Question:      q.Question,
			Choices:       q.Choices,
			CorrectAnswer: q.CorrectAnswer,
		})
	}
	return c.JSON(resp)
}

// SubmitQuiz godoc
// @Summary Grade a submitted quiz
// @Description Compares each answer with its correct answer after trimming whitespace. Accepts JSON or the form fields total_questions, q{i}, question_{i} and correct_answer_{i}.
// @Tags quiz
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body dto.SubmitQuizRequest true "Answers"
// @Success 200 {object} dto.SubmitQuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /quiz/submit [post]
func (h *QuizHandler) SubmitQuiz(c *fiber.Ctx) error {
	var (
		submissions []domain.Submission
		err         error
	)
	if c.Is("json") {
		submissions, err = h.parseJSONSubmission(c)
	} else {
		submissions, err = h.parseFormSubmission(c)
	}
	if err != nil {
		return err
	}

	report := h.grader.Grade(submissions)

	resp := dto.SubmitQuizResponse{
		Results:        make([]dto.AnswerResult, 0, len(report.Results)),
		CorrectCount:   report.CorrectCount,
		TotalQuestions: report.TotalQuestions,
	}
	for _, r := range report.Results {
		resp.Results = append(resp.Results, dto.AnswerResult{
			Index:         r.Index,
			Question:      r.Question,
			UserAnswer:    r.UserAnswer,
			CorrectAnswer: r.CorrectAnswer,
			IsCorrect:     r.IsCorrect,
		})
	}
	return c.JSON(resp)
}

func (h *QuizHandler) parseJSONSubmission(c *fiber.Ctx) ([]domain.Submission, error) {
	var req dto.SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, domain.NewInvalidInputError("Invalid request body")
	}
	if errs := h.validator.ValidateSubmission(len(req.Answers)); len(errs) > 0 {
		return nil, errs
	}

	submissions := make([]domain.Submission, 0, len(req.Answers))
	for _, a := range req.Answers {
		submissions = append(submissions, domain.Submission{
			Index:         a.Index,
			Question:      a.Question,
			UserAnswer:    a.UserAnswer,
			CorrectAnswer: a.CorrectAnswer,
		})
	}
	return submissions, nil
}

// parseFormSubmission reads the field layout rendered by the quiz page.
func (h *QuizHandler) parseFormSubmission(c *fiber.Ctx) ([]domain.Submission, error) {
	total := 0
	if raw := c.FormValue("total_questions"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil, domain.ValidationErrors{domain.NewInvalidFormatError("total_questions", raw)}
		}
		total = n
	}
	if errs := h.validator.ValidateSubmission(total); len(errs) > 0 {
		return nil, errs
	}

	submissions := make([]domain.Submission, 0, total)
	for i := range total {
		submissions = append(submissions, domain.Submission{
			Index:         i,
			Question:      formValueOr(c, fmt.Sprintf("question_%d", i), missingQuestion),
			UserAnswer:    formValueOr(c, fmt.Sprintf("q%d", i), missingAnswer),
			CorrectAnswer: formValueOr(c, fmt.Sprintf("correct_answer_%d", i), missingAnswer),
		})
	}
	return submissions, nil
}

func formValueOr(c *fiber.Ctx, key, fallback string) string {
	if v := c.FormValue(key); v != "" {
		return v
	}
	return fallback
}
