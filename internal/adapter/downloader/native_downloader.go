package downloader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"video-quiz/internal/domain"
	"video-quiz/internal/logger"

	"github.com/kkdai/youtube/v2"
	"go.uber.org/zap"
)

// NativeDownloader implements domain.AudioDownloader without external tools.
// It saves the best audio-only stream as served by YouTube, without transcoding.
type NativeDownloader struct {
	client *youtube.Client
}

// NewNativeDownloader creates a new NativeDownloader
func NewNativeDownloader(client *youtube.Client) *NativeDownloader {
	if client == nil {
		client = &youtube.Client{}
	}
	return &NativeDownloader{client: client}
}

// DownloadAudio implements domain.AudioDownloader
func (d *NativeDownloader) DownloadAudio(ctx context.Context, videoURL, outputPath string) error {
	video, err := d.client.GetVideoContext(ctx, videoURL)
	if err != nil {
		return fmt.Errorf("failed to load video metadata: %w", err)
	}

	format, err := pickAudioFormat(video.Formats)
	if err != nil {
		return err
	}

	stream, size, err := d.client.GetStreamContext(ctx, video, format)
	if err != nil {
		return fmt.Errorf("failed to open audio stream: %w", err)
	}
	defer stream.Close()

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	written, err := io.Copy(file, stream)
	if err != nil {
		return fmt.Errorf("failed to write audio: %w", err)
	}

	logger.Get().Info("Audio downloaded",
		zap.String("video_id", video.ID),
		zap.String("mime_type", format.MimeType),
		zap.Int64("expected_bytes", size),
		zap.Int64("written_bytes", written),
		zap.String("output_path", outputPath))
	return nil
}

// pickAudioFormat chooses the highest-bitrate audio-only format.
func pickAudioFormat(formats youtube.FormatList) (*youtube.Format, error) {
	audio := formats.Type("audio")
	if len(audio) == 0 {
		return nil, errors.New("no audio formats available")
	}
	best := &audio[0]
	for i := range audio {
		if audio[i].Bitrate > best.Bitrate {
			best = &audio[i]
		}
	}
	return best, nil
}

var _ domain.AudioDownloader = (*NativeDownloader)(nil)
