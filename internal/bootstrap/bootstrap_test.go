package bootstrap

import (
	"context"
	"testing"
	"time"

	"video-quiz/internal/adapter"
	"video-quiz/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		LLM:        config.LLMConfig{Provider: "ollama", Server: "http://localhost:11434", Model: "qwen3:0.6b", Timeout: time.Second},
		Download:   config.DownloadConfig{Enabled: true, Tool: "ytdlp", Binary: "yt-dlp", AudioFormat: "mp3", AudioQuality: "192"},
		Transcript: config.TranscriptConfig{Language: "en"},
		Summarizer: config.SummarizerConfig{ChunkSize: 500, MaxLength: 300, MinLength: 50},
		Quiz:       config.QuizConfig{QuestionCount: 5, MaxCount: 20},
		Artifacts:  config.ArtifactsConfig{Dir: t.TempDir(), TranscriptionFile: "transcription.txt", SummaryFile: "summary.txt"},
	}
}

func TestNew_WithoutRedis(t *testing.T) {
	s, err := New(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer s.Close()

	assert.IsType(t, adapter.NoopCache{}, s.Cache)
	assert.NotNil(t, s.Video)
	assert.NotNil(t, s.Generator)
	assert.NotNil(t, s.Grader)
	assert.NotNil(t, s.Artifacts)
}

func TestNew_UnreachableRedisFallsBack(t *testing.T) {
	cfg := testConfig(t)
	cfg.Redis.Address = "127.0.0.1:1"

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	s, err := New(ctx, cfg)
	require.NoError(t, err)
	assert.IsType(t, adapter.NoopCache{}, s.Cache)
}

func TestNew_BadProvider(t *testing.T) {
	cfg := testConfig(t)
	cfg.LLM.Provider = "bart"

	_, err := New(context.Background(), cfg)
	assert.ErrorContains(t, err, "failed to create LLM client")
}
