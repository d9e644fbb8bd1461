package summarizer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"video-quiz/internal/adapter/llmclient"
	"video-quiz/internal/domain"
	"video-quiz/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

// llmSummarizer implements domain.Summarizer
type llmSummarizer struct {
	llm         llms.Model
	timeout     time.Duration
	temperature float64
}

// NewLLMSummarizer creates a new instance of llmSummarizer
func NewLLMSummarizer(llm llms.Model, timeout time.Duration, temperature float64) domain.Summarizer {
	return &llmSummarizer{
		llm:         llm,
		timeout:     timeout,
		temperature: temperature,
	}
}

// Summarize implements domain.Summarizer
func (s *llmSummarizer) Summarize(ctx context.Context, text string, opts domain.SummaryOptions) (string, error) {
	prompt := fmt.Sprintf(`Summarize the following transcript excerpt in plain prose.
Use between %d and %d words. Do not add facts that are not in the text.
Respond with the summary only, as complete sentences separated by ". ".

Text: %s`, opts.MinLength, opts.MaxLength, text)

	raw, err := s.callLLM(ctx, prompt)
	if err != nil {
		return "", err
	}

	summary := llmclient.CleanResponse(raw)
	if summary == "" {
		logger.Get().Error("LLM returned an empty summary", zap.String("raw_response", raw))
		return "", errors.New("empty summary returned by LLM")
	}
	return summary, nil
}

func (s *llmSummarizer) callLLM(ctx context.Context, prompt string) (string, error) {
	l := logger.Get()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	response, err := llms.GenerateFromSinglePrompt(ctx, s.llm, prompt, llms.WithTemperature(s.temperature))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			l.Error("LLM request timed out", zap.Error(err))
			return "", fmt.Errorf("LLM request timed out: %w", err)
		}
		l.Error("Failed to get response from LLM", zap.Error(err))
		return "", fmt.Errorf("LLM call failed: %w", err)
	}
	return response, nil
}
