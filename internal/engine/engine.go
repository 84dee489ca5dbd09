package engine

import (
	"context"
	"errors"
	"log"

	"surveyflow/internal/model"
)

var (
	// ErrAlreadySubmitted is returned when Submit is called on a
	// submitted engine
	ErrAlreadySubmitted = errors.New("survey already submitted")
	// ErrStageNotFound is returned by GoToStage for an unknown or
	// currently hidden stage
	ErrStageNotFound = errors.New("stage not found or not visible")
)

// Store persists engine state between operations. Save is invoked after
// every mutation as a best-effort side effect; a failed save never blocks
// the state transition.
type Store interface {
	Load(ctx context.Context, key string) (*model.SurveyState, error)
	Save(ctx context.Context, key string, state *model.SurveyState) error
}

// SubmissionSink receives the final answer snapshot after a fully valid
// submit
type SubmissionSink interface {
	Submit(ctx context.Context, surveyID, sessionKey string, answers model.Answers) error
}

// EventType tags engine change notifications
type EventType string

const (
	EventAnswerChanged EventType = "answer_changed"
	EventPageChanged   EventType = "page_changed"
	EventSubmitBlocked EventType = "submit_blocked"
	EventSubmitted     EventType = "submitted"
)

// Event describes one state transition. QuestionID is set for answer
// changes, PageID/PageIndex for page changes.
type Event struct {
	Type       EventType `json:"type"`
	SessionKey string    `json:"sessionKey,omitempty"`
	QuestionID string    `json:"questionId,omitempty"`
	PageID     string    `json:"pageId,omitempty"`
	PageIndex  int       `json:"pageIndex"`
}

// Observer receives engine events. Registration is explicit; there is no
// ambient broadcast.
type Observer interface {
	Notify(Event)
}

// Engine drives one respondent through a survey config: it owns the session
// state and composes condition evaluation, validation, visibility,
// completion, accessibility and navigation resolution. All operations are
// synchronous state transitions intended for a single logical thread of
// control; only Submit crosses an asynchronous boundary.
type Engine struct {
	cfg      *model.SurveyConfig
	nav      model.NavigationConfig
	state    *model.SurveyState
	store    Store
	sink     SubmissionSink
	observer Observer
	key      string
}

// NewEngine validates the config and returns an engine positioned on the
// first page with no answers
func NewEngine(cfg *model.SurveyConfig) (*Engine, error) {
	if err := CheckConfig(cfg); err != nil {
		return nil, err
	}
	return &Engine{
		cfg:   cfg,
		nav:   cfg.NavigationPolicy(),
		state: model.NewSurveyState(),
	}, nil
}

// SetStore attaches a persistence collaborator keyed by sessionKey
func (e *Engine) SetStore(store Store, sessionKey string) {
	e.store = store
	e.key = sessionKey
}

// SetSink attaches the submission sink
func (e *Engine) SetSink(sink SubmissionSink) {
	e.sink = sink
}

// SetObserver attaches an event observer
func (e *Engine) SetObserver(o Observer) {
	e.observer = o
}

// Restore replaces the engine state with a previously persisted snapshot.
// A nil or structurally empty snapshot starts fresh.
func (e *Engine) Restore(state *model.SurveyState) {
	if state == nil {
		e.state = model.NewSurveyState()
		return
	}
	if state.Answers == nil {
		state.Answers = make(model.Answers)
	}
	if state.Errors == nil {
		state.Errors = make(map[string][]string)
	}
	all := Flatten(e.cfg)
	if state.CurrentPageIndex < 0 || state.CurrentPageIndex >= len(all) {
		state.CurrentPageIndex = 0
	}
	e.state = state
}

// State exposes the raw session state
func (e *Engine) State() *model.SurveyState {
	return e.state
}

// Config exposes the immutable survey config
func (e *Engine) Config() *model.SurveyConfig {
	return e.cfg
}

// SetAnswer overwrites a single answer and clears that question's errors.
// Errors of other questions are left untouched even when cross-question
// rules referencing this answer might now differ; dependent questions are
// re-validated on the next navigation attempt.
func (e *Engine) SetAnswer(questionID string, value any) {
	e.state.Answers[questionID] = value
	delete(e.state.Errors, questionID)
	e.persist()
	e.emit(Event{Type: EventAnswerChanged, QuestionID: questionID, PageIndex: e.state.CurrentPageIndex})
}

// Submit validates every visible question across every visible page. On any
// failure the full error map is merged and the engine stays unsubmitted. On
// success the snapshot is handed to the submission sink; only after the sink
// accepts it is IsSubmitted set, so a sink failure leaves the session
// retryable.
func (e *Engine) Submit(ctx context.Context) error {
	if e.state.IsSubmitted {
		return ErrAlreadySubmitted
	}

	answers := e.state.Answers
	invalid := false
	for _, page := range VisibleFlattened(e.cfg, answers) {
		for _, q := range VisibleQuestions(page, answers) {
			errs := Validate(q, answers[q.ID], answers)
			if len(errs) > 0 {
				e.state.Errors[q.ID] = errs
				invalid = true
			} else {
				delete(e.state.Errors, q.ID)
			}
		}
	}
	if invalid {
		e.persist()
		e.emit(Event{Type: EventSubmitBlocked, PageIndex: e.state.CurrentPageIndex})
		return nil
	}

	if e.sink != nil {
		if err := e.sink.Submit(ctx, e.cfg.ID, e.key, answers.Clone()); err != nil {
			return err
		}
	}

	e.state.IsSubmitted = true
	e.state.Errors = make(map[string][]string)
	e.persist()
	e.emit(Event{Type: EventSubmitted, PageIndex: e.state.CurrentPageIndex})
	return nil
}

// persist saves the current state through the store, best-effort
func (e *Engine) persist() {
	if e.store == nil {
		return
	}
	if err := e.store.Save(context.Background(), e.key, e.state); err != nil {
		log.Printf("engine: save state for %s: %v", e.key, err)
	}
}

func (e *Engine) emit(ev Event) {
	if e.observer == nil {
		return
	}
	ev.SessionKey = e.key
	e.observer.Notify(ev)
}
