package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"ai-presentation-coach-be/internal/model"
	"ai-presentation-coach-be/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

type fakeTranscriber struct {
	text string
	lang string
	err  error
}

func (f *fakeTranscriber) Transcribe(context.Context, []byte) (string, string, error) {
	return f.text, f.lang, f.err
}

type fakeDelivery struct {
	metrics model.DeliveryMetrics
	err     error
}

func (f *fakeDelivery) Measure(context.Context, []byte, string) (model.DeliveryMetrics, error) {
	return f.metrics, f.err
}

type fakeContent struct {
	metrics model.ContentMetrics
	err     error
}

func (f *fakeContent) Assess(context.Context, string, model.SessionConfig) (model.ContentMetrics, error) {
	return f.metrics, f.err
}

type fakeQuestions struct {
	questions []model.Question
	err       error
}

func (f *fakeQuestions) Generate(context.Context, string, model.SessionConfig) ([]model.Question, error) {
	return f.questions, f.err
}

type fakeSuggestions struct {
	calls       atomic.Int64
	suggestions []model.Suggestion
	err         error
}

func (f *fakeSuggestions) Generate(_ context.Context, sentence string, kind model.SuggestionKind, _ model.SessionConfig) ([]model.Suggestion, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	out := make([]model.Suggestion, len(f.suggestions))
	copy(out, f.suggestions)
	for i := range out {
		out[i].Kind = kind
		out[i].Context = sentence
	}
	return out, nil
}

type analyzerFixture struct {
	store       *store.SessionStore
	transcriber *fakeTranscriber
	delivery    *fakeDelivery
	content     *fakeContent
	questions   *fakeQuestions
	suggestions *fakeSuggestions
	svc         IAnalyzerService
}

func newAnalyzerFixture(t *testing.T, mode model.Mode) (*analyzerFixture, uuid.UUID) {
	t.Helper()

	f := &analyzerFixture{
		store:       store.NewSessionStore(),
		transcriber: &fakeTranscriber{text: "our cache is basically a big map.", lang: "en"},
		delivery: &fakeDelivery{metrics: model.DeliveryMetrics{
			Pace: 150, Tone: 200, IntonationVariance: 1.0, ClarityScore: 1.0, FillerWords: []string{},
		}},
		content: &fakeContent{metrics: model.ContentMetrics{
			ClarityScore: 1.0, FlowScore: 1.0, TechnicalAccuracy: 1.0, ExplanationQuality: 1.0,
		}},
		questions:   &fakeQuestions{questions: []model.Question{{Question: "why a map?"}}},
		suggestions: &fakeSuggestions{suggestions: []model.Suggestion{{Suggestion: "try an analogy", Confidence: 0.7}}},
	}
	f.svc = NewAnalyzerService(
		f.store, f.transcriber, f.delivery, f.content, f.questions, f.suggestions,
		nil, noopLogger{}, 5*time.Second,
	)

	id := uuid.New()
	_, err := f.store.Create(id, mode, "caching", "", nil)
	assert.NoError(t, err)
	return f, id
}

func TestAnalyzeChunkHappyPath(t *testing.T) {
	f, id := newAnalyzerFixture(t, model.ModeProfessional)

	fb, err := f.svc.AnalyzeChunk(context.Background(), id, []byte{0, 0}, "")
	assert.NoError(t, err)

	assert.Equal(t, "our cache is basically a big map.", fb.Transcript)
	assert.Equal(t, "en", fb.Language)
	assert.InDelta(t, 1.0, fb.Score.OverallScore, 1e-9)
	assert.Equal(t, "our cache is basically a big map.", fb.Score.Delivery.Transcription)
	assert.Len(t, fb.Questions, 1)

	// One unclear sentence ("basically") times three suggestion kinds.
	assert.Equal(t, int64(3), f.suggestions.calls.Load())
	assert.Len(t, fb.Suggestions, 3)

	sum, err := f.store.Summarize(id)
	assert.NoError(t, err)
	assert.Equal(t, 1, sum.TotalChunks)
}

func TestAnalyzeChunkTranscriptionFailureIsFatal(t *testing.T) {
	f, id := newAnalyzerFixture(t, model.ModeProfessional)
	f.transcriber.err = errors.New("whisper down")

	_, err := f.svc.AnalyzeChunk(context.Background(), id, []byte{0, 0}, "")
	assert.Error(t, err)

	// Nothing recorded for the failed chunk.
	_, err = f.store.Summarize(id)
	assert.ErrorIs(t, err, store.ErrNoScores)
}

func TestAnalyzeChunkSuppliedTranscriptSkipsTranscription(t *testing.T) {
	f, id := newAnalyzerFixture(t, model.ModeProfessional)
	f.transcriber.err = errors.New("should not be called")

	fb, err := f.svc.AnalyzeChunk(context.Background(), id, nil, "a clear provided transcript.")
	assert.NoError(t, err)
	assert.Equal(t, "a clear provided transcript.", fb.Transcript)
}

func TestAnalyzeChunkContentFallback(t *testing.T) {
	f, id := newAnalyzerFixture(t, model.ModeProfessional)
	f.content.err = errors.New("model overloaded")

	fb, err := f.svc.AnalyzeChunk(context.Background(), id, []byte{0, 0}, "")
	assert.NoError(t, err)

	assert.Equal(t, 0.5, fb.Score.Content.ClarityScore)
	assert.Equal(t, []string{"Analysis unavailable"}, fb.Score.Content.SuggestedImprovements)
	// Delivery still perfect: 0.3*1.0 + 0.7*0.5
	assert.InDelta(t, 0.65, fb.Score.OverallScore, 1e-9)
}

func TestAnalyzeChunkDeliveryFallback(t *testing.T) {
	f, id := newAnalyzerFixture(t, model.ModeProfessional)
	f.delivery.err = errors.New("dsp blew up")

	fb, err := f.svc.AnalyzeChunk(context.Background(), id, []byte{0, 0}, "")
	assert.NoError(t, err)

	// Zeroed delivery metrics still carry the transcript.
	assert.Equal(t, "our cache is basically a big map.", fb.Score.Delivery.Transcription)
	assert.Equal(t, 0.0, fb.Score.Delivery.Pace)
	assert.NotZero(t, fb.Score.OverallScore)
}

func TestAnalyzeChunkQuestionFailureDegradesToEmpty(t *testing.T) {
	f, id := newAnalyzerFixture(t, model.ModeProfessional)
	f.questions.err = errors.New("no questions")

	fb, err := f.svc.AnalyzeChunk(context.Background(), id, []byte{0, 0}, "")
	assert.NoError(t, err)
	assert.Empty(t, fb.Questions)
}

func TestAnalyzeChunkNoSuggestionsForClearSpeech(t *testing.T) {
	f, id := newAnalyzerFixture(t, model.ModeProfessional)
	f.transcriber.text = "our cache is a sharded map with consistent hashing."

	fb, err := f.svc.AnalyzeChunk(context.Background(), id, []byte{0, 0}, "")
	assert.NoError(t, err)
	assert.Zero(t, f.suggestions.calls.Load())
	assert.Empty(t, fb.Suggestions)
}

func TestAnalyzeChunkUnknownSession(t *testing.T) {
	f, _ := newAnalyzerFixture(t, model.ModeProfessional)

	_, err := f.svc.AnalyzeChunk(context.Background(), uuid.New(), []byte{0, 0}, "")
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestAnalyzeChunkRecentWindowAcrossChunks(t *testing.T) {
	f, id := newAnalyzerFixture(t, model.ModeProfessional)
	f.transcriber.text = "a clear chunk."

	for i := 0; i < 5; i++ {
		_, err := f.svc.AnalyzeChunk(context.Background(), id, []byte{0, 0}, "")
		assert.NoError(t, err)
	}

	fb, err := f.svc.AnalyzeChunk(context.Background(), id, []byte{0, 0}, "")
	assert.NoError(t, err)
	// One question per chunk, capped at the 3 most recent.
	assert.Len(t, fb.Questions, 3)

	sum, err := f.store.Summarize(id)
	assert.NoError(t, err)
	assert.Equal(t, 6, sum.TotalChunks)
	assert.Equal(t, 6, sum.TotalQuestions)
}

func TestAnalyzeTranscriptUsesNeutralDelivery(t *testing.T) {
	f, id := newAnalyzerFixture(t, model.ModeCasual)

	score, err := f.svc.AnalyzeTranscript(context.Background(), id, "typed transcript.")
	assert.NoError(t, err)

	assert.Equal(t, "typed transcript.", score.Delivery.Transcription)
	assert.Equal(t, 0.0, score.Delivery.Pace)
	// Content perfect, delivery zeroed except filler credit, casual adjustment 0.9:
	// delivery = 0.4*0.2 + 0.4*0.1 + 1.0*0.3 + 0.4*0.2 + 0 = 0.5
	// overall = (0.3*0.5 + 0.7*1.0) * 0.9
	assert.InDelta(t, (0.3*0.5+0.7*1.0)*0.9, score.OverallScore, 1e-9)

	sum, err := f.store.Summarize(id)
	assert.NoError(t, err)
	assert.Equal(t, 1, sum.TotalChunks)
}
