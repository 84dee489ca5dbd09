package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"surveyflow/internal/cache"
	"surveyflow/internal/engine"
	"surveyflow/internal/model"
	"surveyflow/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrSurveyNotFound    = errors.New("survey not found")
	ErrSessionNotFound   = errors.New("session not found")
	ErrSubmitInProgress  = errors.New("submit already in progress for this session")
	ErrSessionStageBlock = errors.New("stage is not reachable under the survey's navigation policy")
)

// SessionService drives engine sessions: it binds a respondent's state to a
// survey config, persists progress through the session cache and hands
// final snapshots to the submission repository. Engine events are fanned
// out through the broadcaster.
type SessionService struct {
	surveyRepo     repository.SurveyRepo
	submissionRepo repository.SubmissionRepo
	sessions       cache.SessionCache
	broadcaster    Broadcaster

	mu         sync.Mutex
	submitting map[string]bool
}

// NewSessionService creates a new session service
func NewSessionService(surveyRepo repository.SurveyRepo, submissionRepo repository.SubmissionRepo, sessions cache.SessionCache) *SessionService {
	return &SessionService{
		surveyRepo:     surveyRepo,
		submissionRepo: submissionRepo,
		sessions:       sessions,
		submitting:     make(map[string]bool),
	}
}

// SetBroadcaster injects the WebSocket broadcaster
func (s *SessionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// StartSession creates a fresh session for a survey and returns its initial
// read model
func (s *SessionService) StartSession(ctx context.Context, surveyID string) (*model.Session, *engine.Snapshot, error) {
	cfg, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, nil, err
	}
	if cfg == nil {
		return nil, nil, ErrSurveyNotFound
	}

	eng, err := engine.NewEngine(cfg)
	if err != nil {
		return nil, nil, err
	}

	session := &model.Session{
		ID:        uuid.New().String(),
		SurveyID:  surveyID,
		State:     eng.State(),
		CreatedAt: time.Now(),
	}
	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, nil, err
	}

	snap := eng.Snapshot()
	return session, &snap, nil
}

// Snapshot returns the current read model for a session
func (s *SessionService) Snapshot(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
	eng, _, err := s.loadEngine(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	snap := eng.Snapshot()
	return &snap, nil
}

// SetAnswer records an answer and returns the updated read model
func (s *SessionService) SetAnswer(ctx context.Context, sessionID, questionID string, value any) (*engine.Snapshot, error) {
	eng, _, err := s.loadEngine(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	eng.SetAnswer(questionID, value)
	snap := eng.Snapshot()
	return &snap, nil
}

// Next attempts forward navigation
func (s *SessionService) Next(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
	eng, _, err := s.loadEngine(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	eng.NextPage()
	snap := eng.Snapshot()
	return &snap, nil
}

// Prev moves back one page
func (s *SessionService) Prev(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
	eng, _, err := s.loadEngine(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	eng.PrevPage()
	snap := eng.Snapshot()
	return &snap, nil
}

// GoToStage jumps to a stage after consulting the accessibility gate; the
// engine mutator itself is advisory, the policy is enforced here
func (s *SessionService) GoToStage(ctx context.Context, sessionID, stageID string) (*engine.Snapshot, error) {
	eng, _, err := s.loadEngine(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cfg := eng.Config()
	if !engine.CanNavigateToStage(cfg, cfg.NavigationPolicy(), stageID, eng.State().Answers) {
		return nil, ErrSessionStageBlock
	}
	if err := eng.GoToStage(stageID); err != nil {
		return nil, err
	}
	snap := eng.Snapshot()
	return &snap, nil
}

// Submit validates the whole survey and, when valid, persists the final
// snapshot. Re-entrant submits for the same session are rejected while one
// is outstanding.
func (s *SessionService) Submit(ctx context.Context, sessionID string, meta model.SubmissionMetadata) (*engine.Snapshot, error) {
	s.mu.Lock()
	if s.submitting[sessionID] {
		s.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	s.submitting[sessionID] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.submitting, sessionID)
		s.mu.Unlock()
	}()

	eng, session, err := s.loadEngine(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// UserAgent and CompletionTimeMS are personal data and may only be
	// stored when the respondent consented
	if meta.GDPRConsent {
		if meta.CompletionTimeMS == 0 {
			meta.CompletionTimeMS = time.Since(session.CreatedAt).Milliseconds()
		}
	} else {
		meta.UserAgent = ""
		meta.CompletionTimeMS = 0
	}
	eng.SetSink(&submissionSink{repo: s.submissionRepo, meta: meta})

	if err := eng.Submit(ctx); err != nil {
		return nil, err
	}
	snap := eng.Snapshot()
	return &snap, nil
}

// loadEngine rebuilds an engine for a session: config from the repository,
// state from the session cache, collaborators wired in
func (s *SessionService) loadEngine(ctx context.Context, sessionID string) (*engine.Engine, *model.Session, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session == nil {
		return nil, nil, ErrSessionNotFound
	}

	cfg, err := s.surveyRepo.GetByID(ctx, session.SurveyID)
	if err != nil {
		return nil, nil, err
	}
	if cfg == nil {
		return nil, nil, ErrSurveyNotFound
	}

	eng, err := engine.NewEngine(cfg)
	if err != nil {
		return nil, nil, err
	}
	eng.Restore(session.State)
	session.State = eng.State()
	eng.SetStore(&sessionStore{cache: s.sessions, session: session}, sessionID)
	if s.broadcaster != nil {
		eng.SetObserver(&sessionObserver{broadcaster: s.broadcaster, sessionID: sessionID})
	}
	return eng, session, nil
}

// sessionStore adapts the session cache to the engine's Store contract
type sessionStore struct {
	cache   cache.SessionCache
	session *model.Session
}

func (st *sessionStore) Load(ctx context.Context, key string) (*model.SurveyState, error) {
	session, err := st.cache.Get(ctx, key)
	if err != nil || session == nil {
		return nil, err
	}
	return session.State, nil
}

func (st *sessionStore) Save(ctx context.Context, key string, state *model.SurveyState) error {
	st.session.State = state
	st.session.UpdatedAt = time.Now()
	return st.cache.Set(ctx, st.session)
}

// submissionSink adapts the submission repository to the engine's sink
// contract
type submissionSink struct {
	repo repository.SubmissionRepo
	meta model.SubmissionMetadata
}

func (sk *submissionSink) Submit(ctx context.Context, surveyID, sessionKey string, answers model.Answers) error {
	return sk.repo.Create(ctx, &model.Submission{
		ID:        uuid.New().String(),
		SurveyID:  surveyID,
		SessionID: sessionKey,
		Answers:   answers,
		Metadata:  sk.meta,
	})
}

// sessionObserver forwards engine events to WebSocket watchers
type sessionObserver struct {
	broadcaster Broadcaster
	sessionID   string
}

func (o *sessionObserver) Notify(ev engine.Event) {
	o.broadcaster.BroadcastToSession(o.sessionID, string(ev.Type), ev)
}
