package domain

import "context"

// VideoRequest identifies the video to process. VideoID is the normalized id
// parsed from URL.
type VideoRequest struct {
	URL     string
	VideoID string
}

// ProcessResult is the output of the download/transcribe/summarize pipeline.
type ProcessResult struct {
	VideoID       string  `json:"video_id"`
	Transcription string  `json:"transcription"`
	Summary       string  `json:"summary"`
	ProcessTime   float64 `json:"process_time"`
	Cached        bool    `json:"cached"`
}

// AudioDownloader fetches the audio track of a video to outputPath.
type AudioDownloader interface {
	DownloadAudio(ctx context.Context, videoURL, outputPath string) error
}

// TranscriptFetcher retrieves the spoken content of a video as plain text.
type TranscriptFetcher interface {
	FetchTranscript(ctx context.Context, videoURL string) (string, error)
}

// SummaryOptions bounds the length of a chunk summary, in words.
type SummaryOptions struct {
	MaxLength int
	MinLength int
}

// Summarizer condenses a chunk of text.
type Summarizer interface {
	Summarize(ctx context.Context, text string, opts SummaryOptions) (string, error)
}

// ArtifactStore writes pipeline outputs as flat text files.
type ArtifactStore interface {
	SaveText(name, content string) error
	LoadText(name string) (string, error)
}

// VideoService runs the full video-to-summary pipeline.
type VideoService interface {
	Process(ctx context.Context, req VideoRequest) (*ProcessResult, error)
}
