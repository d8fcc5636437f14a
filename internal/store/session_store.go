package store

import (
	"errors"
	"sync"
	"time"

	"ai-presentation-coach-be/internal/model"
	"ai-presentation-coach-be/pkg/scoring"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

var (
	ErrSessionExists   = errors.New("session already exists")
	ErrSessionNotFound = errors.New("session not found")
	// ErrNoScores means the session exists but no chunk has been analyzed
	// yet. Surfaced distinctly from ErrSessionNotFound.
	ErrNoScores = errors.New("no scores available for this session")
)

// SessionStore owns every Session entity. Sessions are process-local and
// in-memory only; go-cache provides the concurrent id-keyed map and each
// entry carries its own lock so history appends for one session serialize
// without blocking other sessions.
type SessionStore struct {
	sessions *cache.Cache
}

type entry struct {
	mu   sync.Mutex
	sess *model.Session
}

func (e *entry) lock()   { e.mu.Lock() }
func (e *entry) unlock() { e.mu.Unlock() }

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: cache.New(cache.NoExpiration, 0),
	}
}

// Create registers a new session under the given id. Fails with
// ErrSessionExists when the id is already taken.
func (s *SessionStore) Create(id uuid.UUID, mode model.Mode, topic, customContext string, documents []string) (*model.Session, error) {
	sess := &model.Session{
		Id:              id,
		Mode:            mode,
		Topic:           topic,
		CustomContext:   customContext,
		ExpertDocuments: documents,
		CreatedAt:       time.Now(),
	}
	e := &entry{sess: sess}

	if err := s.sessions.Add(id.String(), e, cache.NoExpiration); err != nil {
		return nil, ErrSessionExists
	}
	return sess, nil
}

// Config returns an immutable snapshot of the session's configuration.
func (s *SessionStore) Config(id uuid.UUID) (model.SessionConfig, error) {
	e, err := s.get(id)
	if err != nil {
		return model.SessionConfig{}, err
	}

	e.lock()
	defer e.unlock()
	docs := append([]string(nil), e.sess.ExpertDocuments...)
	return model.SessionConfig{
		Id:              e.sess.Id,
		Mode:            e.sess.Mode,
		Topic:           e.sess.Topic,
		CustomContext:   e.sess.CustomContext,
		ExpertDocuments: docs,
	}, nil
}

// Exists reports whether the session id is known.
func (s *SessionStore) Exists(id uuid.UUID) bool {
	_, found := s.sessions.Get(id.String())
	return found
}

// SetExpertDocuments replaces the session's reference-document texts.
func (s *SessionStore) SetExpertDocuments(id uuid.UUID, documents []string) error {
	e, err := s.get(id)
	if err != nil {
		return err
	}

	e.lock()
	defer e.unlock()
	e.sess.ExpertDocuments = documents
	return nil
}

// AppendScore appends one chunk's score to the session history.
func (s *SessionStore) AppendScore(id uuid.UUID, score model.Score) error {
	e, err := s.get(id)
	if err != nil {
		return err
	}

	e.lock()
	defer e.unlock()
	e.sess.Scores = append(e.sess.Scores, score)
	return nil
}

// AppendQuestions appends generated questions to the session history.
func (s *SessionStore) AppendQuestions(id uuid.UUID, questions []model.Question) error {
	e, err := s.get(id)
	if err != nil {
		return err
	}

	e.lock()
	defer e.unlock()
	e.sess.Questions = append(e.sess.Questions, questions...)
	return nil
}

// AppendSuggestions appends generated suggestions to the session history.
func (s *SessionStore) AppendSuggestions(id uuid.UUID, suggestions []model.Suggestion) error {
	e, err := s.get(id)
	if err != nil {
		return err
	}

	e.lock()
	defer e.unlock()
	e.sess.Suggestions = append(e.sess.Suggestions, suggestions...)
	return nil
}

// RecentQuestions returns up to n of the most recent questions, oldest first.
func (s *SessionStore) RecentQuestions(id uuid.UUID, n int) ([]model.Question, error) {
	e, err := s.get(id)
	if err != nil {
		return nil, err
	}

	e.lock()
	defer e.unlock()
	qs := e.sess.Questions
	if len(qs) > n {
		qs = qs[len(qs)-n:]
	}
	return append([]model.Question(nil), qs...), nil
}

// RecentSuggestions returns up to n of the most recent suggestions, oldest first.
func (s *SessionStore) RecentSuggestions(id uuid.UUID, n int) ([]model.Suggestion, error) {
	e, err := s.get(id)
	if err != nil {
		return nil, err
	}

	e.lock()
	defer e.unlock()
	sg := e.sess.Suggestions
	if len(sg) > n {
		sg = sg[len(sg)-n:]
	}
	return append([]model.Suggestion(nil), sg...), nil
}

// Delete removes the session. Returns false when the id is unknown; deleting
// twice is not idempotent-successful.
func (s *SessionStore) Delete(id uuid.UUID) bool {
	if _, found := s.sessions.Get(id.String()); !found {
		return false
	}
	s.sessions.Delete(id.String())
	return true
}

// Summary is the end-of-session aggregate view.
type Summary struct {
	SessionId        uuid.UUID          `json:"session_id"`
	Topic            string             `json:"topic"`
	Mode             model.Mode         `json:"mode"`
	TotalChunks      int                `json:"total_chunks"`
	AverageScores    AverageScores      `json:"average_scores"`
	LatestBreakdown  scoring.Breakdown  `json:"latest_score_breakdown"`
	TotalQuestions   int                `json:"total_questions"`
	TotalSuggestions int                `json:"total_suggestions"`
	Questions        []model.Question   `json:"questions"`
	Suggestions      []model.Suggestion `json:"suggestions"`
}

type AverageScores struct {
	Overall  float64 `json:"overall"`
	Delivery float64 `json:"audio"`
	Content  float64 `json:"content"`
}

// Summarize computes the aggregate over all recorded scores plus the latest
// score's breakdown and the last 5 questions/suggestions. Fails with
// ErrNoScores when no chunk has been analyzed yet.
func (s *SessionStore) Summarize(id uuid.UUID) (*Summary, error) {
	e, err := s.get(id)
	if err != nil {
		return nil, err
	}

	e.lock()
	defer e.unlock()
	sess := e.sess

	if len(sess.Scores) == 0 {
		return nil, ErrNoScores
	}

	var sumOverall, sumDelivery, sumContent float64
	for _, sc := range sess.Scores {
		sumOverall += sc.OverallScore
		sumDelivery += sc.Delivery.ClarityScore
		sumContent += sc.Content.ClarityScore
	}
	n := float64(len(sess.Scores))

	questions := sess.Questions
	if len(questions) > 5 {
		questions = questions[len(questions)-5:]
	}
	suggestions := sess.Suggestions
	if len(suggestions) > 5 {
		suggestions = suggestions[len(suggestions)-5:]
	}

	return &Summary{
		SessionId:   sess.Id,
		Topic:       sess.Topic,
		Mode:        sess.Mode,
		TotalChunks: len(sess.Scores),
		AverageScores: AverageScores{
			Overall:  sumOverall / n,
			Delivery: sumDelivery / n,
			Content:  sumContent / n,
		},
		LatestBreakdown:  scoring.Explain(sess.Scores[len(sess.Scores)-1]),
		TotalQuestions:   len(sess.Questions),
		TotalSuggestions: len(sess.Suggestions),
		Questions:        append([]model.Question(nil), questions...),
		Suggestions:      append([]model.Suggestion(nil), suggestions...),
	}, nil
}

func (s *SessionStore) get(id uuid.UUID) (*entry, error) {
	v, found := s.sessions.Get(id.String())
	if !found {
		return nil, ErrSessionNotFound
	}
	return v.(*entry), nil
}
