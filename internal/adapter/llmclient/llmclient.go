package llmclient

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"video-quiz/internal/config"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// New builds the model client shared by the summarizer and the key detail
// extractor. It is created once at startup and only read afterwards.
func New(cfg config.LLMConfig) (llms.Model, error) {
	switch cfg.Provider {
	case "ollama":
		httpClient := &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     30 * time.Second,
			},
		}
		llm, err := ollama.New(
			ollama.WithServerURL(cfg.Server),
			ollama.WithModel(cfg.Model),
			ollama.WithHTTPClient(httpClient),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama client: %w", err)
		}
		return llm, nil
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai API key cannot be empty")
		}
		opts := []openai.Option{
			openai.WithToken(cfg.APIKey),
			openai.WithModel(cfg.Model),
		}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		llm, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai client: %w", err)
		}
		return llm, nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}

// CleanResponse strips reasoning blocks, surrounding whitespace and quotes
// from a raw completion.
func CleanResponse(raw string) string {
	cleaned := strings.TrimSpace(raw)

	for {
		start := strings.Index(cleaned, "<think>")
		if start == -1 {
			break
		}
		end := strings.Index(cleaned, "</think>")
		if end == -1 || end < start {
			cleaned = cleaned[:start]
			break
		}
		cleaned = cleaned[:start] + cleaned[end+len("</think>"):]
	}

	cleaned = strings.TrimSpace(cleaned)
	for _, q := range []string{`"`, "'", "`"} {
		if len(cleaned) >= 2 && strings.HasPrefix(cleaned, q) && strings.HasSuffix(cleaned, q) {
			cleaned = strings.TrimSpace(cleaned[1 : len(cleaned)-1])
		}
	}
	return cleaned
}
