package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"

	"video-quiz/internal/cache"
	"video-quiz/internal/config"
	"video-quiz/internal/domain"
	"video-quiz/internal/logger"
	"video-quiz/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Pipeline stage names reported in VIDEO_PROCESSING_FAILED errors.
const (
	StageDownload   = "download"
	StageTranscript = "transcript"
	StageSummarize  = "summarize"
	StageSave       = "save"
)

type cachedResult struct {
	Transcription string `json:"transcription"`
	Summary       string `json:"summary"`
}

type videoService struct {
	downloader  domain.AudioDownloader
	transcripts domain.TranscriptFetcher
	summarizer  domain.Summarizer
	store       domain.ArtifactStore
	cache       domain.Cache
	cfg         *config.Config
	sfGroup     singleflight.Group
	now         func() time.Time
}

// NewVideoService creates a new VideoService. A nil downloader skips the audio download stage.
func NewVideoService(
	downloader domain.AudioDownloader,
	transcripts domain.TranscriptFetcher,
	summarizer domain.Summarizer,
	store domain.ArtifactStore,
	cacheStore domain.Cache,
	cfg *config.Config,
) domain.VideoService {
	return &videoService{
		downloader:  downloader,
		transcripts: transcripts,
		summarizer:  summarizer,
		store:       store,
		cache:       cacheStore,
		cfg:         cfg,
		now:         time.Now,
	}
}

// Process downloads, transcribes and summarizes a video. Concurrent calls for
// the same video id share one run.
func (s *videoService) Process(ctx context.Context, req domain.VideoRequest) (*domain.ProcessResult, error) {
	start := s.now()

	// The request may reference a reused transport buffer; the result outlives it
	// and is shared with concurrent callers.
	req = domain.VideoRequest{URL: strings.Clone(req.URL), VideoID: strings.Clone(req.VideoID)}

	v, err, shared := s.sfGroup.Do(req.VideoID, func() (interface{}, error) {
		return s.process(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.Get().Debug("Shared in-flight processing result", zap.String("video_id", req.VideoID))
	}

	res := *v.(*domain.ProcessResult)
	res.ProcessTime = roundSeconds(s.now().Sub(start))
	return &res, nil
}

func (s *videoService) process(ctx context.Context, req domain.VideoRequest) (*domain.ProcessResult, error) {
	l := logger.Get().With(zap.String("video_id", req.VideoID))
	key := s.cacheKey(req.VideoID)

	if cached, ok := s.lookup(ctx, key); ok {
		l.Info("Serving processed video from cache")
		return &domain.ProcessResult{
			VideoID:       req.VideoID,
			Transcription: cached.Transcription,
			Summary:       cached.Summary,
			Cached:        true,
		}, nil
	}

	if s.downloader != nil && s.cfg.Download.Enabled {
		l.Info("Downloading audio", zap.String("output_path", s.cfg.Download.OutputPath))
		if err := s.downloader.DownloadAudio(ctx, req.URL, s.cfg.Download.OutputPath); err != nil {
			l.Error("Audio download failed", zap.Error(err))
			return nil, domain.NewVideoProcessingError(StageDownload, err)
		}
	}

	raw, err := s.transcripts.FetchTranscript(ctx, req.URL)
	if err != nil {
		l.Error("Transcript fetch failed", zap.Error(err))
		return nil, domain.NewVideoProcessingError(StageTranscript, err)
	}
	transcription := util.CleanText(raw)
	if err := s.store.SaveText(s.cfg.Artifacts.TranscriptionFile, transcription); err != nil {
		return nil, domain.NewVideoProcessingError(StageSave, err)
	}

	summary, err := s.summarize(ctx, transcription)
	if err != nil {
		l.Error("Summarization failed", zap.Error(err))
		return nil, domain.NewVideoProcessingError(StageSummarize, err)
	}
	if err := s.store.SaveText(s.cfg.Artifacts.SummaryFile, summary); err != nil {
		return nil, domain.NewVideoProcessingError(StageSave, err)
	}

	s.remember(ctx, key, cachedResult{Transcription: transcription, Summary: summary})
	l.Info("Video processed",
		zap.Int("transcription_chars", len(transcription)),
		zap.Int("summary_chars", len(summary)))

	return &domain.ProcessResult{
		VideoID:       req.VideoID,
		Transcription: transcription,
		Summary:       summary,
	}, nil
}

// summarize condenses fixed-size chunks one after another and joins the pieces.
func (s *videoService) summarize(ctx context.Context, transcription string) (string, error) {
	chunks := util.ChunkRunes(transcription, s.cfg.Summarizer.ChunkSize)
	opts := domain.SummaryOptions{
		MaxLength: s.cfg.Summarizer.MaxLength,
		MinLength: s.cfg.Summarizer.MinLength,
	}

	summaries := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		logger.Get().Debug("Summarizing chunk", zap.Int("chunk", i+1), zap.Int("total", len(chunks)))
		summary, err := s.summarizer.Summarize(ctx, chunk, opts)
		if err != nil {
			return "", err
		}
		summaries = append(summaries, summary)
	}
	return util.CleanText(strings.Join(summaries, " ")), nil
}

func (s *videoService) cacheKey(videoID string) string {
	return cache.GenerateCacheKey("video", "result", videoID)
}

func (s *videoService) lookup(ctx context.Context, key string) (*cachedResult, bool) {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Cache read failed, processing without cache", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var cached cachedResult
	if err := json.Unmarshal([]byte(data), &cached); err != nil {
		logger.Get().Warn("Discarding malformed cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &cached, true
}

// remember writes the result to the cache. Failures are logged only.
func (s *videoService) remember(ctx context.Context, key string, result cachedResult) {
	data, err := json.Marshal(result)
	if err != nil {
		logger.Get().Error("Failed to marshal processed video for caching", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, string(data), s.cfg.Redis.TTL); err != nil {
		logger.Get().Warn("Failed to cache processed video", zap.String("key", key), zap.Error(err))
	}
}

func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*100) / 100
}
