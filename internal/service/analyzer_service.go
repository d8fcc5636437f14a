package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"ai-presentation-coach-be/internal/analysis"
	"ai-presentation-coach-be/internal/constant"
	"ai-presentation-coach-be/internal/dto"
	"ai-presentation-coach-be/internal/model"
	"ai-presentation-coach-be/internal/pkg/logger"
	"ai-presentation-coach-be/internal/store"
	"ai-presentation-coach-be/pkg/scoring"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// IAnalyzerService drives the multi-stage analysis of one audio chunk.
type IAnalyzerService interface {
	// AnalyzeChunk runs the full pipeline for one chunk. When transcript is
	// empty the transcription collaborator supplies it first; transcription
	// failure aborts the chunk (the caller skips emission). Every downstream
	// stage degrades to its documented fallback instead of failing the chunk.
	AnalyzeChunk(ctx context.Context, sessionId uuid.UUID, pcm []byte, transcript string) (*dto.ChunkFeedback, error)

	// AnalyzeTranscript is the audio-less path: content analysis and scoring
	// over a provided transcript, with zeroed delivery metrics.
	AnalyzeTranscript(ctx context.Context, sessionId uuid.UUID, transcript string) (*model.Score, error)
}

type analyzerService struct {
	sessionStore *store.SessionStore
	transcriber  analysis.Transcriber
	delivery     analysis.DeliveryAnalyzer
	content      analysis.ContentAnalyzer
	questions    analysis.QuestionGenerator
	suggestions  analysis.SuggestionGenerator
	pubSub       *gochannel.GoChannel
	logger       logger.ILogger
	stageTimeout time.Duration
}

func NewAnalyzerService(
	sessionStore *store.SessionStore,
	transcriber analysis.Transcriber,
	delivery analysis.DeliveryAnalyzer,
	content analysis.ContentAnalyzer,
	questions analysis.QuestionGenerator,
	suggestions analysis.SuggestionGenerator,
	pubSub *gochannel.GoChannel,
	log logger.ILogger,
	stageTimeout time.Duration,
) IAnalyzerService {
	return &analyzerService{
		sessionStore: sessionStore,
		transcriber:  transcriber,
		delivery:     delivery,
		content:      content,
		questions:    questions,
		suggestions:  suggestions,
		pubSub:       pubSub,
		logger:       log,
		stageTimeout: stageTimeout,
	}
}

func (s *analyzerService) AnalyzeChunk(ctx context.Context, sessionId uuid.UUID, pcm []byte, transcript string) (*dto.ChunkFeedback, error) {
	cfg, err := s.sessionStore.Config(sessionId)
	if err != nil {
		return nil, err
	}

	language := ""
	if transcript == "" {
		if s.transcriber == nil {
			return nil, fmt.Errorf("no transcriber configured and no transcript supplied")
		}
		stageCtx, cancel := context.WithTimeout(ctx, s.stageTimeout)
		transcript, language, err = s.transcriber.Transcribe(stageCtx, pcm)
		cancel()
		if err != nil {
			// The one stage failure that is fatal to the chunk: every
			// downstream analysis needs the transcript.
			s.logStageFailure(sessionId, "transcription", err)
			return nil, fmt.Errorf("transcription failed: %w", err)
		}
	}

	var (
		wg              sync.WaitGroup
		deliveryMetrics model.DeliveryMetrics
		contentMetrics  model.ContentMetrics
		newQuestions    []model.Question
		newSuggestions  []model.Suggestion
	)

	// Fixed fan-out/fan-in barrier: the four downstream stages run
	// concurrently and the chunk result is assembled only after every stage
	// has completed or fallen back.
	wg.Add(4)

	go func() {
		defer wg.Done()
		stageCtx, cancel := context.WithTimeout(ctx, s.stageTimeout)
		defer cancel()
		m, err := s.delivery.Measure(stageCtx, pcm, transcript)
		if err != nil {
			s.logStageFailure(sessionId, "delivery_metrics", err)
			m = analysis.FallbackDeliveryMetrics()
		}
		m.Transcription = transcript
		if m.Language == "" {
			m.Language = language
		}
		deliveryMetrics = m
	}()

	go func() {
		defer wg.Done()
		stageCtx, cancel := context.WithTimeout(ctx, s.stageTimeout)
		defer cancel()
		m, err := s.content.Assess(stageCtx, transcript, cfg)
		if err != nil {
			s.logStageFailure(sessionId, "content_metrics", err)
			m = analysis.FallbackContentMetrics()
		}
		contentMetrics = m
	}()

	go func() {
		defer wg.Done()
		stageCtx, cancel := context.WithTimeout(ctx, s.stageTimeout)
		defer cancel()
		qs, err := s.questions.Generate(stageCtx, transcript, cfg)
		if err != nil {
			s.logStageFailure(sessionId, "question_generation", err)
			qs = nil
		}
		newQuestions = qs
	}()

	go func() {
		defer wg.Done()
		newSuggestions = s.generateSuggestions(ctx, sessionId, transcript, cfg)
	}()

	wg.Wait()

	score := scoring.Calculate(deliveryMetrics, contentMetrics, cfg.Mode, cfg.Topic)

	// Appends serialize per session inside the store. A session deleted while
	// the analysis was in flight surfaces here; the result is simply dropped.
	if err := s.sessionStore.AppendScore(sessionId, score); err != nil {
		return nil, err
	}
	if len(newQuestions) > 0 {
		if err := s.sessionStore.AppendQuestions(sessionId, newQuestions); err != nil {
			return nil, err
		}
	}
	if len(newSuggestions) > 0 {
		if err := s.sessionStore.AppendSuggestions(sessionId, newSuggestions); err != nil {
			return nil, err
		}
	}

	recentQuestions, err := s.sessionStore.RecentQuestions(sessionId, 3)
	if err != nil {
		return nil, err
	}
	recentSuggestions, err := s.sessionStore.RecentSuggestions(sessionId, 3)
	if err != nil {
		return nil, err
	}

	s.publishChunkAnalyzed(sessionId, score)

	return &dto.ChunkFeedback{
		Transcript:  transcript,
		Language:    language,
		Score:       score,
		Questions:   recentQuestions,
		Suggestions: recentSuggestions,
	}, nil
}

func (s *analyzerService) AnalyzeTranscript(ctx context.Context, sessionId uuid.UUID, transcript string) (*model.Score, error) {
	cfg, err := s.sessionStore.Config(sessionId)
	if err != nil {
		return nil, err
	}

	stageCtx, cancel := context.WithTimeout(ctx, s.stageTimeout)
	defer cancel()

	contentMetrics, err := s.content.Assess(stageCtx, transcript, cfg)
	if err != nil {
		s.logStageFailure(sessionId, "content_metrics", err)
		contentMetrics = analysis.FallbackContentMetrics()
	}

	deliveryMetrics := analysis.FallbackDeliveryMetrics()
	deliveryMetrics.Transcription = transcript

	score := scoring.Calculate(deliveryMetrics, contentMetrics, cfg.Mode, cfg.Topic)
	if err := s.sessionStore.AppendScore(sessionId, score); err != nil {
		return nil, err
	}

	s.publishChunkAnalyzed(sessionId, score)
	return &score, nil
}

// generateSuggestions gates on the local unclear-passage check and then runs
// one collaborator call per suggestion kind per unclear sentence. Skipped
// entirely when the transcript carries no hedging phrases.
func (s *analyzerService) generateSuggestions(ctx context.Context, sessionId uuid.UUID, transcript string, cfg model.SessionConfig) []model.Suggestion {
	unclear := analysis.DetectUnclearPassages(transcript)
	if len(unclear) == 0 {
		return nil
	}

	kinds := []model.SuggestionKind{
		model.SuggestionMetaphor,
		model.SuggestionAnalogy,
		model.SuggestionVisualAid,
	}

	var out []model.Suggestion
	for _, sentence := range unclear {
		for _, kind := range kinds {
			stageCtx, cancel := context.WithTimeout(ctx, s.stageTimeout)
			sg, err := s.suggestions.Generate(stageCtx, sentence, kind, cfg)
			cancel()
			if err != nil {
				s.logStageFailure(sessionId, "suggestion_generation", err)
				continue
			}
			out = append(out, sg...)
		}
	}
	return out
}

func (s *analyzerService) logStageFailure(sessionId uuid.UUID, stage string, err error) {
	s.logger.Warn("Analyzer", "Analysis stage degraded", map[string]interface{}{
		"session_id": sessionId.String(),
		"stage":      stage,
		"error":      err.Error(),
	})
}

func (s *analyzerService) publishChunkAnalyzed(sessionId uuid.UUID, score model.Score) {
	if s.pubSub == nil {
		return
	}
	payload, err := json.Marshal(dto.ChunkAnalyzedMessage{
		SessionId:    sessionId,
		OverallScore: score.OverallScore,
		Mode:         string(score.Mode),
	})
	if err != nil {
		return
	}
	msg := message.NewMessage(uuid.NewString(), payload)
	if err := s.pubSub.Publish(constant.TopicChunkAnalyzed, msg); err != nil {
		s.logger.Warn("Analyzer", "Failed to publish chunk event", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
	}
}
