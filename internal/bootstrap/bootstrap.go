package bootstrap

import (
	"context"
	"fmt"

	"video-quiz/internal/adapter"
	"video-quiz/internal/adapter/artifact"
	"video-quiz/internal/adapter/downloader"
	"video-quiz/internal/adapter/extractor"
	"video-quiz/internal/adapter/llmclient"
	"video-quiz/internal/adapter/summarizer"
	"video-quiz/internal/adapter/transcript"
	"video-quiz/internal/cache"
	"video-quiz/internal/config"
	"video-quiz/internal/domain"
	"video-quiz/internal/executor"
	"video-quiz/internal/logger"
	"video-quiz/internal/service"
	"video-quiz/internal/util"

	"github.com/kkdai/youtube/v2"
	"go.uber.org/zap"
)

// Services is the wiring shared by the HTTP server and the CLI.
type Services struct {
	Cache     domain.Cache
	Video     domain.VideoService
	Generator service.QuizGenerator
	Grader    service.GradingService
	Artifacts *artifact.FileStore

	closers []func() error
}

// Close releases connections opened by New.
func (s *Services) Close() {
	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil {
			logger.Get().Warn("Failed to close resource", zap.Error(err))
		}
	}
}

// New builds every adapter and service from cfg. Redis is optional: when no
// address is configured, or it cannot be reached, results are not cached.
func New(ctx context.Context, cfg *config.Config) (*Services, error) {
	l := logger.Get()
	s := &Services{}

	llm, err := llmclient.New(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	l.Info("LLM client initialized",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model))

	s.Cache = adapter.NewNoopCache()
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			l.Warn("Redis unavailable, continuing without cache", zap.Error(err))
		} else {
			l.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))
			s.Cache = adapter.NewRedisCacheAdapter(redisClient)
			s.closers = append(s.closers, redisClient.Close)
		}
	}

	ytClient := &youtube.Client{}

	var audio domain.AudioDownloader
	if cfg.Download.Enabled {
		switch cfg.Download.Tool {
		case "native":
			audio = downloader.NewNativeDownloader(ytClient)
		default:
			audio = downloader.NewYtDlpDownloader(executor.New(), cfg.Download)
		}
		l.Info("Audio downloader initialized", zap.String("tool", cfg.Download.Tool))
	}

	s.Artifacts = artifact.NewFileStore(cfg.Artifacts.Dir)
	s.Video = service.NewVideoService(
		audio,
		transcript.NewYouTubeTranscriptFetcher(ytClient, cfg.Transcript.Language),
		summarizer.NewLLMSummarizer(llm, cfg.LLM.Timeout, cfg.LLM.Temperature),
		s.Artifacts,
		s.Cache,
		cfg,
	)

	s.Generator = service.NewQuizGenerator(
		extractor.NewLLMKeyDetailExtractor(llm, cfg.LLM.Timeout, cfg.LLM.Temperature),
		service.SentenceSplitter{},
		util.NewRandomSource(),
	)
	s.Grader = service.NewGradingService()

	return s, nil
}
