package downloader

import (
	"context"
	"errors"
	"testing"

	"video-quiz/internal/config"

	"github.com/kkdai/youtube/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockExecutor struct {
	mock.Mock
}

func (m *MockExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	called := m.Called(ctx, name, args)
	return called.String(0), called.Error(1)
}

func testDownloadConfig() config.DownloadConfig {
	return config.DownloadConfig{
		Enabled:      true,
		Tool:         "ytdlp",
		Binary:       "yt-dlp",
		OutputPath:   "downloaded_audio.mp3",
		AudioFormat:  "mp3",
		AudioQuality: "192",
	}
}

func TestYtDlpDownloader_DownloadAudio(t *testing.T) {
	exec := new(MockExecutor)
	exec.On("Execute", mock.Anything, "yt-dlp", []string{
		"--no-playlist",
		"-f", "bestaudio/best",
		"-x",
		"--audio-format", "mp3",
		"--audio-quality", "192",
		"-o", "out/audio.mp3",
		"--",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	}).Return("", nil).Once()

	d := NewYtDlpDownloader(exec, testDownloadConfig())
	err := d.DownloadAudio(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "out/audio.mp3")

	require.NoError(t, err)
	exec.AssertExpectations(t)
}

func TestYtDlpDownloader_URLIsNeverAnOption(t *testing.T) {
	exec := new(MockExecutor)
	exec.On("Execute", mock.Anything, "yt-dlp", mock.MatchedBy(func(args []string) bool {
		n := len(args)
		return n >= 2 && args[n-2] == "--" && args[n-1] == "--ignore-config"
	})).Return("", nil).Once()

	d := NewYtDlpDownloader(exec, testDownloadConfig())
	require.NoError(t, d.DownloadAudio(context.Background(), "--ignore-config", "audio.mp3"))
	exec.AssertExpectations(t)
}

func TestYtDlpDownloader_DownloadAudio_Failure(t *testing.T) {
	exec := new(MockExecutor)
	exec.On("Execute", mock.Anything, "yt-dlp", mock.Anything).Return("", errors.New("ERROR: Video unavailable")).Once()

	d := NewYtDlpDownloader(exec, testDownloadConfig())
	err := d.DownloadAudio(context.Background(), "https://youtu.be/xxxxxxxxxxx", "audio.mp3")

	require.Error(t, err)
	assert.ErrorContains(t, err, "yt-dlp download failed")
	assert.ErrorContains(t, err, "Video unavailable")
}

func TestPickAudioFormat(t *testing.T) {
	t.Run("highest bitrate audio", func(t *testing.T) {
		formats := youtube.FormatList{
			{ItagNo: 18, MimeType: `video/mp4; codecs="avc1.42001E, mp4a.40.2"`, Bitrate: 500000},
			{ItagNo: 140, MimeType: `audio/mp4; codecs="mp4a.40.2"`, Bitrate: 130000},
			{ItagNo: 251, MimeType: `audio/webm; codecs="opus"`, Bitrate: 160000},
		}
		got, err := pickAudioFormat(formats)
		require.NoError(t, err)
		assert.Equal(t, 251, got.ItagNo)
	})

	t.Run("no audio", func(t *testing.T) {
		_, err := pickAudioFormat(youtube.FormatList{{ItagNo: 137, MimeType: `video/mp4; codecs="avc1.640028"`}})
		assert.ErrorContains(t, err, "no audio formats")
	})
}
