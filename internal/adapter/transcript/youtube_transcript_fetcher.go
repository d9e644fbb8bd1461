package transcript

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"video-quiz/internal/domain"
	"video-quiz/internal/logger"

	"github.com/kkdai/youtube/v2"
	"go.uber.org/zap"
)

// YouTubeTranscriptFetcher implements domain.TranscriptFetcher using the
// caption tracks YouTube publishes for a video.
type YouTubeTranscriptFetcher struct {
	client   *youtube.Client
	language string
}

// NewYouTubeTranscriptFetcher creates a new YouTubeTranscriptFetcher. A nil
// client falls back to a zero-value youtube.Client.
func NewYouTubeTranscriptFetcher(client *youtube.Client, language string) *YouTubeTranscriptFetcher {
	if client == nil {
		client = &youtube.Client{}
	}
	if language == "" {
		language = "en"
	}
	return &YouTubeTranscriptFetcher{client: client, language: language}
}

// FetchTranscript implements domain.TranscriptFetcher
func (f *YouTubeTranscriptFetcher) FetchTranscript(ctx context.Context, videoURL string) (string, error) {
	video, err := f.client.GetVideoContext(ctx, videoURL)
	if err != nil {
		return "", fmt.Errorf("failed to load video metadata: %w", err)
	}

	segments, err := f.client.GetTranscriptCtx(ctx, video, f.language)
	if err != nil {
		if errors.Is(err, youtube.ErrTranscriptDisabled) {
			return "", fmt.Errorf("video %s has no %q transcript: %w", video.ID, f.language, err)
		}
		return "", fmt.Errorf("failed to fetch transcript: %w", err)
	}

	logger.Get().Debug("Fetched transcript",
		zap.String("video_id", video.ID),
		zap.String("language", f.language),
		zap.Int("segments", len(segments)))

	text := JoinSegments(segments)
	if text == "" {
		return "", fmt.Errorf("video %s returned an empty transcript", video.ID)
	}
	return text, nil
}

// JoinSegments concatenates segment texts with single spaces, dropping empty segments.
func JoinSegments(segments youtube.VideoTranscript) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if text := strings.TrimSpace(seg.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

var _ domain.TranscriptFetcher = (*YouTubeTranscriptFetcher)(nil)
