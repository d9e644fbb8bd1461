package validation

import (
	"net/url"
	"regexp"
	"strings"

	"video-quiz/internal/domain"

	"github.com/kkdai/youtube/v2"
)

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

var youtubeHosts = map[string]bool{
	"youtube.com":       true,
	"www.youtube.com":   true,
	"m.youtube.com":     true,
	"music.youtube.com": true,
	"youtu.be":          true,
	"www.youtu.be":      true,
}

const (
	maxSummaryLength    = 100000
	maxSubmittedAnswers = 100
)

// Validator provides request validation functionality
type Validator struct {
	maxQuestionCount int
}

// NewValidator creates a new validator instance. maxQuestionCount bounds the
// count query parameter.
func NewValidator(maxQuestionCount int) *Validator {
	return &Validator{maxQuestionCount: maxQuestionCount}
}

// MaxQuestionCount is the largest accepted count value.
func (v *Validator) MaxQuestionCount() int {
	return v.maxQuestionCount
}

// ValidateVideoURL checks that rawURL is a bare video id or a YouTube URL and
// returns the id. The id never shares memory with rawURL.
func (v *Validator) ValidateVideoURL(rawURL string) (string, domain.ValidationErrors) {
	var errors domain.ValidationErrors

	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", append(errors, domain.NewMissingFieldError("youtube_url"))
	}

	if videoIDPattern.MatchString(rawURL) {
		return strings.Clone(rawURL), nil
	}
	if !isYouTubeURL(rawURL) {
		return "", append(errors, domain.NewInvalidFormatError("youtube_url", rawURL))
	}

	videoID, err := youtube.ExtractVideoID(rawURL)
	if err != nil || !videoIDPattern.MatchString(videoID) {
		return "", append(errors, domain.NewInvalidFormatError("youtube_url", rawURL))
	}
	return strings.Clone(videoID), nil
}

// CanonicalVideoURL is the watch URL handed to downloaders and transcript fetchers.
func CanonicalVideoURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// isYouTubeURL reports whether raw parses as an http(s) URL on a YouTube host.
// A missing scheme is treated as https.
func isYouTubeURL(raw string) bool {
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	return youtubeHosts[strings.ToLower(u.Hostname())]
}

// ValidateSummary checks the summary submitted for quiz generation.
func (v *Validator) ValidateSummary(summary string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(summary) == "" {
		errors = append(errors, domain.NewMissingFieldError("summary"))
	} else if len(summary) > maxSummaryLength {
		errors = append(errors, domain.NewOutOfRangeError("summary", len(summary), 1, maxSummaryLength))
	}

	return errors
}

// ValidateCount checks the requested number of questions.
func (v *Validator) ValidateCount(count int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if count <= 0 || count > v.maxQuestionCount {
		errors = append(errors, domain.NewOutOfRangeError("count", count, 1, v.maxQuestionCount))
	}

	return errors
}

// ValidateSubmission checks the shape of a graded submission. Empty answers are
// allowed and simply grade as incorrect.
func (v *Validator) ValidateSubmission(count int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if count > maxSubmittedAnswers {
		errors = append(errors, domain.NewOutOfRangeError("answers", count, 0, maxSubmittedAnswers))
	}

	return errors
}
