package downloader

import (
	"context"
	"fmt"

	"video-quiz/internal/config"
	"video-quiz/internal/domain"
	"video-quiz/internal/executor"
	"video-quiz/internal/logger"

	"go.uber.org/zap"
)

// YtDlpDownloader implements domain.AudioDownloader by shelling out to yt-dlp,
// which also runs ffmpeg to extract the audio track.
type YtDlpDownloader struct {
	exec executor.Executor
	cfg  config.DownloadConfig
}

// NewYtDlpDownloader creates a new YtDlpDownloader
func NewYtDlpDownloader(exec executor.Executor, cfg config.DownloadConfig) *YtDlpDownloader {
	return &YtDlpDownloader{exec: exec, cfg: cfg}
}

// DownloadAudio implements domain.AudioDownloader
func (d *YtDlpDownloader) DownloadAudio(ctx context.Context, videoURL, outputPath string) error {
	args := d.args(videoURL, outputPath)
	logger.Get().Debug("Running yt-dlp", zap.String("binary", d.cfg.Binary), zap.Strings("args", args))

	if _, err := d.exec.Execute(ctx, d.cfg.Binary, args...); err != nil {
		return fmt.Errorf("yt-dlp download failed: %w", err)
	}
	logger.Get().Info("Audio downloaded", zap.String("output_path", outputPath))
	return nil
}

func (d *YtDlpDownloader) args(videoURL, outputPath string) []string {
	return []string{
		"--no-playlist",
		"-f", "bestaudio/best",
		"-x",
		"--audio-format", d.cfg.AudioFormat,
		"--audio-quality", d.cfg.AudioQuality,
		"-o", outputPath,
		"--",
		videoURL,
	}
}

var _ domain.AudioDownloader = (*YtDlpDownloader)(nil)
