package llmclient

import (
	"testing"

	"video-quiz/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanResponse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain", raw: "  mammals \n", want: "mammals"},
		{name: "think block", raw: "<think>the sentence is about cats</think>\nmammals", want: "mammals"},
		{name: "two think blocks", raw: "<think>a</think>x<think>b</think>y", want: "xy"},
		{name: "unterminated think", raw: "answer <think>still thinking", want: "answer"},
		{name: "double quotes", raw: `"Dogs are loyal"`, want: "Dogs are loyal"},
		{name: "backticks", raw: "`loyal`", want: "loyal"},
		{name: "lone quote kept", raw: `"`, want: `"`},
		{name: "empty", raw: "   ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanResponse(tt.raw))
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("ollama", func(t *testing.T) {
		llm, err := New(config.LLMConfig{Provider: "ollama", Server: "http://localhost:11434", Model: "qwen3:0.6b"})
		require.NoError(t, err)
		assert.NotNil(t, llm)
	})

	t.Run("openai requires key", func(t *testing.T) {
		_, err := New(config.LLMConfig{Provider: "openai", Model: "gpt-4o-mini"})
		assert.ErrorContains(t, err, "API key")
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := New(config.LLMConfig{Provider: "bart"})
		assert.ErrorContains(t, err, "unsupported llm provider")
	})
}
