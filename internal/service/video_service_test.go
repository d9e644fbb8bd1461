package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
	"unsafe"

	"video-quiz/internal/config"
	"video-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testVideoURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	testVideoID  = "dQw4w9WgXcQ"
	testCacheKey = "videoquiz:video:result:dQw4w9WgXcQ"
)

func testVideoConfig() *config.Config {
	return &config.Config{
		Download: config.DownloadConfig{Enabled: true, OutputPath: "downloaded_audio.mp3"},
		Summarizer: config.SummarizerConfig{
			ChunkSize: 10,
			MaxLength: 300,
			MinLength: 50,
		},
		Artifacts: config.ArtifactsConfig{
			TranscriptionFile: "transcription.txt",
			SummaryFile:       "summary.txt",
		},
		Redis: config.RedisConfig{TTL: time.Hour},
	}
}

type videoMocks struct {
	downloader  *MockAudioDownloader
	transcripts *MockTranscriptFetcher
	summarizer  *MockSummarizer
	store       *MockArtifactStore
	cache       *MockCache
}

func newVideoMocks() *videoMocks {
	return &videoMocks{
		downloader:  new(MockAudioDownloader),
		transcripts: new(MockTranscriptFetcher),
		summarizer:  new(MockSummarizer),
		store:       new(MockArtifactStore),
		cache:       new(MockCache),
	}
}

func (m *videoMocks) service(cfg *config.Config) domain.VideoService {
	return NewVideoService(m.downloader, m.transcripts, m.summarizer, m.store, m.cache, cfg)
}

func (m *videoMocks) assertAll(t *testing.T) {
	m.downloader.AssertExpectations(t)
	m.transcripts.AssertExpectations(t)
	m.summarizer.AssertExpectations(t)
	m.store.AssertExpectations(t)
	m.cache.AssertExpectations(t)
}

func TestVideoService_Process_Success(t *testing.T) {
	m := newVideoMocks()
	cfg := testVideoConfig()
	opts := domain.SummaryOptions{MaxLength: 300, MinLength: 50}

	m.cache.On("Get", mock.Anything, testCacheKey).Return("", domain.ErrCacheMiss)
	m.downloader.On("DownloadAudio", mock.Anything, testVideoURL, "downloaded_audio.mp3").Return(nil)
	m.transcripts.On("FetchTranscript", mock.Anything, testVideoURL).Return("  hello world\n\nthis is   \nthe talk ", nil)
	// cleaned: "hello world this is the talk" (28 runes) -> chunks of 10
	m.store.On("SaveText", "transcription.txt", "hello world this is the talk").Return(nil)
	m.summarizer.On("Summarize", mock.Anything, "hello worl", opts).Return("Part one.", nil).Once()
	m.summarizer.On("Summarize", mock.Anything, "d this is ", opts).Return("Part two.\n", nil).Once()
	m.summarizer.On("Summarize", mock.Anything, "the talk", opts).Return(" Part three.", nil).Once()
	m.store.On("SaveText", "summary.txt", "Part one. Part two. Part three.").Return(nil)
	m.cache.On("Set", mock.Anything, testCacheKey, mock.MatchedBy(func(v string) bool {
		var cached cachedResult
		return json.Unmarshal([]byte(v), &cached) == nil && cached.Summary == "Part one. Part two. Part three."
	}), time.Hour).Return(nil)

	res, err := m.service(cfg).Process(context.Background(), domain.VideoRequest{URL: testVideoURL, VideoID: testVideoID})

	require.NoError(t, err)
	assert.Equal(t, testVideoID, res.VideoID)
	assert.Equal(t, "hello world this is the talk", res.Transcription)
	assert.Equal(t, "Part one. Part two. Part three.", res.Summary)
	assert.False(t, res.Cached)
	assert.GreaterOrEqual(t, res.ProcessTime, 0.0)
	m.assertAll(t)
}

func TestVideoService_Process_CacheHit(t *testing.T) {
	m := newVideoMocks()
	payload, _ := json.Marshal(cachedResult{Transcription: "t", Summary: "s"})
	m.cache.On("Get", mock.Anything, testCacheKey).Return(string(payload), nil)

	res, err := m.service(testVideoConfig()).Process(context.Background(), domain.VideoRequest{URL: testVideoURL, VideoID: testVideoID})

	require.NoError(t, err)
	assert.True(t, res.Cached)
	assert.Equal(t, "t", res.Transcription)
	assert.Equal(t, "s", res.Summary)
	m.downloader.AssertNotCalled(t, "DownloadAudio", mock.Anything, mock.Anything, mock.Anything)
	m.transcripts.AssertNotCalled(t, "FetchTranscript", mock.Anything, mock.Anything)
	m.assertAll(t)
}

func TestVideoService_Process_ResultDoesNotAliasRequest(t *testing.T) {
	m := newVideoMocks()
	payload, _ := json.Marshal(cachedResult{Transcription: "t", Summary: "s"})
	m.cache.On("Get", mock.Anything, testCacheKey).Return(string(payload), nil)

	buf := []byte(testVideoID)
	id := unsafe.String(&buf[0], len(buf))

	res, err := m.service(testVideoConfig()).Process(context.Background(), domain.VideoRequest{URL: testVideoURL, VideoID: id})
	require.NoError(t, err)
	assert.NotSame(t, unsafe.StringData(id), unsafe.StringData(res.VideoID))

	copy(buf, "XXXXXXXXXXX")
	assert.Equal(t, testVideoID, res.VideoID)
	m.assertAll(t)
}

func TestVideoService_Process_DownloadDisabled(t *testing.T) {
	m := newVideoMocks()
	cfg := testVideoConfig()
	cfg.Download.Enabled = false
	cfg.Summarizer.ChunkSize = 500

	m.cache.On("Get", mock.Anything, testCacheKey).Return("", errors.New("redis down"))
	m.transcripts.On("FetchTranscript", mock.Anything, testVideoURL).Return("short talk", nil)
	m.store.On("SaveText", "transcription.txt", "short talk").Return(nil)
	m.summarizer.On("Summarize", mock.Anything, "short talk", mock.Anything).Return("Short.", nil)
	m.store.On("SaveText", "summary.txt", "Short.").Return(nil)
	m.cache.On("Set", mock.Anything, testCacheKey, mock.Anything, time.Hour).Return(errors.New("redis down"))

	res, err := m.service(cfg).Process(context.Background(), domain.VideoRequest{URL: testVideoURL, VideoID: testVideoID})

	require.NoError(t, err)
	assert.Equal(t, "Short.", res.Summary)
	m.downloader.AssertNotCalled(t, "DownloadAudio", mock.Anything, mock.Anything, mock.Anything)
	m.assertAll(t)
}

func TestVideoService_Process_StageFailures(t *testing.T) {
	stageErr := errors.New("upstream failure")

	tests := []struct {
		name      string
		setup     func(m *videoMocks)
		wantStage string
	}{
		{
			name: "download",
			setup: func(m *videoMocks) {
				m.downloader.On("DownloadAudio", mock.Anything, mock.Anything, mock.Anything).Return(stageErr)
			},
			wantStage: StageDownload,
		},
		{
			name: "transcript",
			setup: func(m *videoMocks) {
				m.downloader.On("DownloadAudio", mock.Anything, mock.Anything, mock.Anything).Return(nil)
				m.transcripts.On("FetchTranscript", mock.Anything, mock.Anything).Return("", stageErr)
			},
			wantStage: StageTranscript,
		},
		{
			name: "save transcription",
			setup: func(m *videoMocks) {
				m.downloader.On("DownloadAudio", mock.Anything, mock.Anything, mock.Anything).Return(nil)
				m.transcripts.On("FetchTranscript", mock.Anything, mock.Anything).Return("words", nil)
				m.store.On("SaveText", "transcription.txt", "words").Return(stageErr)
			},
			wantStage: StageSave,
		},
		{
			name: "summarize",
			setup: func(m *videoMocks) {
				m.downloader.On("DownloadAudio", mock.Anything, mock.Anything, mock.Anything).Return(nil)
				m.transcripts.On("FetchTranscript", mock.Anything, mock.Anything).Return(strings.Repeat("w", 25), nil)
				m.store.On("SaveText", "transcription.txt", mock.Anything).Return(nil)
				m.summarizer.On("Summarize", mock.Anything, mock.Anything, mock.Anything).Return("ok", nil).Once()
				m.summarizer.On("Summarize", mock.Anything, mock.Anything, mock.Anything).Return("", stageErr).Once()
			},
			wantStage: StageSummarize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newVideoMocks()
			m.cache.On("Get", mock.Anything, testCacheKey).Return("", domain.ErrCacheMiss)
			tt.setup(m)

			res, err := m.service(testVideoConfig()).Process(context.Background(), domain.VideoRequest{URL: testVideoURL, VideoID: testVideoID})

			assert.Nil(t, res)
			var domainErr *domain.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, domain.CodeVideoProcessingFailed, domainErr.Code)
			assert.Equal(t, tt.wantStage, domainErr.Context["stage"])
			assert.ErrorIs(t, err, stageErr)
			m.cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
