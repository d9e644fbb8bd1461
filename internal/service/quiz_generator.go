package service

import (
	"context"
	"slices"
	"strings"

	"video-quiz/internal/domain"
	"video-quiz/internal/logger"
	"video-quiz/internal/util"

	"go.uber.org/zap"
)

const (
	sentenceSeparator  = ". "
	distractorAttempts = 3
	distractorWords    = 4
)

// QuizGenerator defines the interface for building a quiz from a summary.
type QuizGenerator interface {
	Generate(ctx context.Context, summary string, requestedCount int) []domain.QuestionRecord
}

// SentenceSplitter is the default TextExtractor: it splits on ". ", trims each
// piece and drops the empty ones.
type SentenceSplitter struct{}

func (SentenceSplitter) Sentences(text string) []string {
	var sentences []string
	for _, piece := range strings.Split(text, sentenceSeparator) {
		if s := strings.TrimSpace(piece); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// questionResult is the outcome of building one question from one sentence.
type questionResult struct {
	record domain.QuestionRecord
	err    error
}

type quizGenerator struct {
	extractor domain.KeyDetailExtractor
	splitter  domain.TextExtractor
	rng       domain.RandomSource
}

// NewQuizGenerator creates a QuizGenerator. A nil splitter falls back to
// SentenceSplitter and a nil rng to util.NewRandomSource.
func NewQuizGenerator(extractor domain.KeyDetailExtractor, splitter domain.TextExtractor, rng domain.RandomSource) QuizGenerator {
	if splitter == nil {
		splitter = SentenceSplitter{}
	}
	if rng == nil {
		rng = util.NewRandomSource()
	}
	return &quizGenerator{
		extractor: extractor,
		splitter:  splitter,
		rng:       rng,
	}
}

// Generate returns at most min(requestedCount, len(sentences)) questions in
// sentence order. Sentences whose extraction fails are left out.
func (g *quizGenerator) Generate(ctx context.Context, summary string, requestedCount int) []domain.QuestionRecord {
	sentences := g.splitter.Sentences(summary)
	n := max(min(requestedCount, len(sentences)), 0)

	results := make([]questionResult, 0, n)
	for i := range n {
		results = append(results, g.buildQuestion(ctx, sentences[i]))
	}

	questions := make([]domain.QuestionRecord, 0, len(results))
	for i, res := range results {
		if res.err != nil {
			logger.Get().Warn("Skipping sentence, key detail extraction failed",
				zap.Int("sentence_index", i),
				zap.String("sentence", sentences[i]),
				zap.Error(res.err))
			continue
		}
		questions = append(questions, res.record)
	}

	logger.Get().Debug("Quiz generated",
		zap.Int("requested", requestedCount),
		zap.Int("sentences", len(sentences)),
		zap.Int("generated", len(questions)))
	return questions
}

func (g *quizGenerator) buildQuestion(ctx context.Context, sentence string) questionResult {
	answer, err := g.extractor.ExtractKeyDetail(ctx, domain.KeyDetailQuestion, sentence)
	if err != nil {
		return questionResult{err: err}
	}
	if strings.TrimSpace(answer) == "" {
		answer = domain.FallbackAnswer
	}

	choices := append(g.generateDistractors(answer, sentence), answer)
	g.shuffle(choices)

	return questionResult{record: domain.QuestionRecord{
		Question:      domain.QuestionPrefix + sentence,
		Choices:       choices,
		CorrectAnswer: answer,
	}}
}

// generateDistractors makes exactly three draws of up to four words from the
// sentence. Duplicate draws and draws equal to the answer are dropped, so the
// result may hold fewer than three entries.
func (g *quizGenerator) generateDistractors(correctAnswer, sentence string) []string {
	words := strings.Fields(sentence)
	distractors := make([]string, 0, distractorAttempts)
	for range distractorAttempts {
		candidate := strings.Join(g.sample(words, min(len(words), distractorWords)), " ")
		if candidate == correctAnswer || slices.Contains(distractors, candidate) {
			continue
		}
		distractors = append(distractors, candidate)
	}
	return distractors
}

// sample picks k elements of items without replacement, in draw order.
func (g *quizGenerator) sample(items []string, k int) []string {
	pool := slices.Clone(items)
	for i := range k {
		j := i + g.rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

// shuffle is a Fisher-Yates shuffle driven by the injected source.
func (g *quizGenerator) shuffle(items []string) {
	for i := len(items) - 1; i > 0; i-- {
		j := g.rng.IntN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
