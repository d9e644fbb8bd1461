package extractor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"video-quiz/internal/adapter/llmclient"
	"video-quiz/internal/domain"
	"video-quiz/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

const promptTemplate = `You are an extractive question answering model.
Answer the question with a short span copied word for word from the context.
Respond with the span only. Do not explain. If no span answers the question, respond with nothing.

Question: %s
Context: %s
Answer:`

// LLMKeyDetailExtractor implements domain.KeyDetailExtractor with a language model
// prompted to behave like an extractive QA model.
type LLMKeyDetailExtractor struct {
	llm         llms.Model
	timeout     time.Duration
	temperature float64
}

// NewLLMKeyDetailExtractor creates a new LLMKeyDetailExtractor
func NewLLMKeyDetailExtractor(llm llms.Model, timeout time.Duration, temperature float64) *LLMKeyDetailExtractor {
	return &LLMKeyDetailExtractor{
		llm:         llm,
		timeout:     timeout,
		temperature: temperature,
	}
}

// ExtractKeyDetail implements domain.KeyDetailExtractor. When the model's span
// appears in the passage under different casing, the passage's casing is returned.
func (e *LLMKeyDetailExtractor) ExtractKeyDetail(ctx context.Context, question, passage string) (string, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	raw, err := llms.GenerateFromSinglePrompt(ctx, e.llm, fmt.Sprintf(promptTemplate, question, passage),
		llms.WithTemperature(e.temperature))
	if err != nil {
		return "", fmt.Errorf("key detail extraction failed: %w", err)
	}

	answer := firstLine(llmclient.CleanResponse(raw))
	answer = strings.TrimSpace(strings.TrimPrefix(answer, "Answer:"))
	answer = alignToPassage(answer, passage)

	logger.Get().Debug("Extracted key detail",
		zap.String("passage", passage),
		zap.String("answer", answer))
	return answer, nil
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// alignToPassage returns the matching span of passage when answer occurs in it
// ignoring case, and answer unchanged otherwise.
func alignToPassage(answer, passage string) string {
	if answer == "" || strings.Contains(passage, answer) {
		return answer
	}
	lower := strings.ToLower(passage)
	lowerAnswer := strings.ToLower(answer)
	if len(lower) != len(passage) || len(lowerAnswer) != len(answer) {
		return answer
	}
	idx := strings.Index(lower, lowerAnswer)
	if idx == -1 || idx+len(answer) > len(passage) {
		return answer
	}
	return passage[idx : idx+len(answer)]
}

var _ domain.KeyDetailExtractor = (*LLMKeyDetailExtractor)(nil)
