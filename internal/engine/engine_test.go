package engine

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"surveyflow/internal/model"
)

type fakeStore struct {
	saves  int
	last   *model.SurveyState
	failed error
}

func (s *fakeStore) Load(ctx context.Context, key string) (*model.SurveyState, error) {
	return s.last, nil
}

func (s *fakeStore) Save(ctx context.Context, key string, st *model.SurveyState) error {
	s.saves++
	s.last = st
	return s.failed
}

type fakeSink struct {
	calls   int
	answers model.Answers
	err     error
}

func (s *fakeSink) Submit(ctx context.Context, surveyID, sessionKey string, answers model.Answers) error {
	s.calls++
	s.answers = answers
	return s.err
}

type eventRecorder struct {
	events []Event
}

func (r *eventRecorder) Notify(ev Event) {
	r.events = append(r.events, ev)
}

func TestNextPageBlockedByGate(t *testing.T) {
	e := mustEngine(t, linearConfig())
	e.SetAnswer("q1", "")

	if e.NextPage() {
		t.Fatal("NextPage must not advance past a failing gate")
	}
	if got := e.State().CurrentPageIndex; got != 0 {
		t.Fatalf("CurrentPageIndex = %d, want 0", got)
	}
	want := map[string][]string{"q1": {"Your name is required"}}
	if !reflect.DeepEqual(e.State().Errors, want) {
		t.Fatalf("Errors = %v, want %v", e.State().Errors, want)
	}
}

func TestNextPageAdvancesAfterAnswer(t *testing.T) {
	e := mustEngine(t, linearConfig())

	e.SetAnswer("q1", "")
	e.NextPage() // populates the error

	e.SetAnswer("q1", "x")
	if _, stale := e.State().Errors["q1"]; stale {
		t.Fatal("SetAnswer must clear the question's own error")
	}
	if !e.NextPage() {
		t.Fatal("NextPage must advance once the gate passes")
	}
	if got := e.State().CurrentPageIndex; got != 1 {
		t.Fatalf("CurrentPageIndex = %d, want 1", got)
	}
	if got := LatestAccessiblePageIndex(e.Config(), model.NavigationConfig{}, e.State().Answers); got < 1 {
		t.Fatalf("latest accessible index = %d, want >= 1", got)
	}
}

func TestNextPageSkipLogicOverride(t *testing.T) {
	e := mustEngine(t, branchingConfig())
	e.SetAnswer("q1", "skip")

	if !e.NextPage() {
		t.Fatal("NextPage must advance")
	}
	if p := e.CurrentPage(); p == nil || p.ID != "p3" {
		t.Fatalf("landed on %v, want p3 (skip logic bypasses p2)", p)
	}
}

func TestNextPageExplicitNextPageID(t *testing.T) {
	e := mustEngine(t, branchingConfig())
	e.SetAnswer("q1", "normal")
	e.NextPage() // p1 -> p3 (p2 hidden under "normal")
	e.NextPage() // p3 -> p4
	if p := e.CurrentPage(); p == nil || p.ID != "p4" {
		t.Fatalf("precondition: on %v, want p4", p)
	}

	e.SetAnswer("q4", "because")
	e.NextPage() // p4 declares nextPageId p6, bypassing p5
	if p := e.CurrentPage(); p == nil || p.ID != "p6" {
		t.Fatalf("landed on %v, want p6 (explicit nextPageId)", p)
	}
}

func TestNextPageFallsBackOnUnresolvableTarget(t *testing.T) {
	cfg := branchingConfig()
	e := mustEngine(t, cfg)
	// Corrupt the skip target after construction; CheckConfig would have
	// rejected this at load time, the runtime fallback is currentIndex+1.
	cfg.Stages[0].Groups[0].Pages[0].Questions[0].SkipLogic.NextPageID = "ghost"

	e.SetAnswer("q1", "skip")
	if !e.NextPage() {
		t.Fatal("NextPage must still advance via the fallback")
	}
	if got := e.State().CurrentPageIndex; got != 1 {
		t.Fatalf("CurrentPageIndex = %d, want 1 (currentIndex+1 fallback)", got)
	}
}

func TestNextPageSkipsHiddenPages(t *testing.T) {
	e := mustEngine(t, branchingConfig())
	e.SetAnswer("q1", "normal")

	e.NextPage()
	if p := e.CurrentPage(); p == nil || p.ID != "p3" {
		t.Fatalf("landed on %v, want p3 (p2 hidden)", p)
	}
}

func TestNextPageOnLastPageStays(t *testing.T) {
	e := mustEngine(t, linearConfig())
	e.SetAnswer("q1", "x")
	e.NextPage()
	e.NextPage()
	if p := e.CurrentPage(); p.ID != "p3" {
		t.Fatalf("precondition: on %s, want p3", p.ID)
	}
	if e.NextPage() {
		t.Fatal("NextPage on the last page must not advance")
	}
}

func TestNextPagePreservesOtherPagesErrors(t *testing.T) {
	e := mustEngine(t, linearConfig())
	e.State().Errors["q3"] = []string{"stale error from p3"}

	e.SetAnswer("q1", "x")
	e.NextPage()

	if _, ok := e.State().Errors["q3"]; !ok {
		t.Fatal("errors of other pages must be preserved across NextPage")
	}
}

func TestPrevPage(t *testing.T) {
	e := mustEngine(t, linearConfig())

	if e.PrevPage() {
		t.Fatal("PrevPage on the first page must stay put")
	}

	e.SetAnswer("q1", "x")
	e.NextPage()
	e.State().Errors["q2"] = []string{"kept"}

	if !e.PrevPage() {
		t.Fatal("PrevPage must move back")
	}
	if got := e.State().CurrentPageIndex; got != 0 {
		t.Fatalf("CurrentPageIndex = %d, want 0", got)
	}
	if _, ok := e.State().Errors["q2"]; !ok {
		t.Fatal("PrevPage must not clear errors")
	}
}

func TestGoToStage(t *testing.T) {
	e := mustEngine(t, branchingConfig())
	e.SetAnswer("q1", "normal")

	if err := e.GoToStage("s2"); err != nil {
		t.Fatalf("GoToStage(s2): %v", err)
	}
	if p := e.CurrentPage(); p == nil || p.ID != "p4" {
		t.Fatalf("landed on %v, want p4", p)
	}

	if err := e.GoToStage("ghost"); !errors.Is(err, ErrStageNotFound) {
		t.Fatalf("GoToStage(ghost) = %v, want ErrStageNotFound", err)
	}

	// A stage hidden by current answers is not a jump target.
	e.SetAnswer("q1", "skip")
	if err := e.GoToStage("s2"); !errors.Is(err, ErrStageNotFound) {
		t.Fatalf("GoToStage(hidden s2) = %v, want ErrStageNotFound", err)
	}
}

func TestSubmitBlockedPopulatesFullErrorMap(t *testing.T) {
	cfg := branchingConfig()
	e := mustEngine(t, cfg)
	sink := &fakeSink{}
	e.SetSink(sink)

	// q1 answered but q4 (on a later page) is not: submit must collect
	// errors across all visible pages, not just the current one.
	e.SetAnswer("q1", "normal")
	if err := e.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if e.State().IsSubmitted {
		t.Fatal("invalid survey must not be submitted")
	}
	if sink.calls != 0 {
		t.Fatal("sink must not be called for an invalid survey")
	}
	if _, ok := e.State().Errors["q4"]; !ok {
		t.Fatalf("expected q4 error in full map, got %v", e.State().Errors)
	}
}

func TestSubmitSuccess(t *testing.T) {
	e := mustEngine(t, linearConfig())
	sink := &fakeSink{}
	e.SetSink(sink)

	e.SetAnswer("q1", "Ada")
	if err := e.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !e.State().IsSubmitted {
		t.Fatal("IsSubmitted must be set after a valid submit")
	}
	if len(e.State().Errors) != 0 {
		t.Fatalf("errors must be cleared, got %v", e.State().Errors)
	}
	if sink.calls != 1 {
		t.Fatalf("sink calls = %d, want 1", sink.calls)
	}
	if sink.answers["q1"] != "Ada" {
		t.Fatalf("sink received %v", sink.answers)
	}
}

func TestSubmitSinkFailureLeavesUnsubmitted(t *testing.T) {
	e := mustEngine(t, linearConfig())
	sinkErr := errors.New("backend is down")
	e.SetSink(&fakeSink{err: sinkErr})

	e.SetAnswer("q1", "Ada")
	if err := e.Submit(context.Background()); !errors.Is(err, sinkErr) {
		t.Fatalf("Submit = %v, want sink error", err)
	}
	if e.State().IsSubmitted {
		t.Fatal("sink failure must leave the session retryable")
	}

	// Retry succeeds once the sink recovers.
	e.SetSink(&fakeSink{})
	if err := e.Submit(context.Background()); err != nil {
		t.Fatalf("retry Submit: %v", err)
	}
	if !e.State().IsSubmitted {
		t.Fatal("retry must submit")
	}
}

func TestSubmitTwice(t *testing.T) {
	e := mustEngine(t, linearConfig())
	e.SetAnswer("q1", "Ada")
	if err := e.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := e.Submit(context.Background()); !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("second Submit = %v, want ErrAlreadySubmitted", err)
	}
}

func TestStoreSaveAfterEveryMutation(t *testing.T) {
	e := mustEngine(t, linearConfig())
	store := &fakeStore{}
	e.SetStore(store, "sess-1")

	e.SetAnswer("q1", "x")
	e.NextPage()
	e.PrevPage()

	if store.saves != 3 {
		t.Fatalf("saves = %d, want 3", store.saves)
	}

	// A failing store never blocks the transition.
	store.failed = errors.New("redis down")
	e.SetAnswer("q1", "y")
	if e.State().Answers["q1"] != "y" {
		t.Fatal("mutation must apply despite save failure")
	}
}

func TestRestore(t *testing.T) {
	e := mustEngine(t, linearConfig())

	e.Restore(&model.SurveyState{CurrentPageIndex: 1, Answers: model.Answers{"q1": "x"}})
	if p := e.CurrentPage(); p.ID != "p2" {
		t.Fatalf("restored to %s, want p2", p.ID)
	}
	if e.State().Errors == nil {
		t.Fatal("Restore must materialize a usable error map")
	}

	// Out-of-range snapshots start over at the first page.
	e.Restore(&model.SurveyState{CurrentPageIndex: 99})
	if got := e.State().CurrentPageIndex; got != 0 {
		t.Fatalf("out-of-range restore index = %d, want 0", got)
	}

	// Nil means start fresh.
	e.Restore(nil)
	if len(e.State().Answers) != 0 || e.State().CurrentPageIndex != 0 {
		t.Fatal("nil restore must reset state")
	}
}

func TestEventsEmitted(t *testing.T) {
	e := mustEngine(t, linearConfig())
	rec := &eventRecorder{}
	e.SetObserver(rec)
	e.SetStore(&fakeStore{}, "sess-9")

	e.SetAnswer("q1", "x")
	e.NextPage()
	if err := e.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	types := make([]EventType, len(rec.events))
	for i, ev := range rec.events {
		types[i] = ev.Type
		if ev.SessionKey != "sess-9" {
			t.Errorf("event %d session key = %q", i, ev.SessionKey)
		}
	}
	want := []EventType{EventAnswerChanged, EventPageChanged, EventSubmitted}
	if !reflect.DeepEqual(types, want) {
		t.Fatalf("event types = %v, want %v", types, want)
	}
}

func TestSnapshot(t *testing.T) {
	e := mustEngine(t, branchingConfig())
	e.SetAnswer("q1", "detail")

	snap := e.Snapshot()
	if snap.CurrentPage == nil || snap.CurrentPage.ID != "p1" {
		t.Fatalf("current page = %v, want p1", snap.CurrentPage)
	}
	if snap.CurrentStage == nil || snap.CurrentStage.ID != "s1" {
		t.Fatalf("current stage = %v, want s1", snap.CurrentStage)
	}
	if snap.CurrentGroup == nil || snap.CurrentGroup.ID != "g1" {
		t.Fatalf("current group = %v, want g1", snap.CurrentGroup)
	}
	wantVisible := []string{"p1", "p2", "p3", "p4", "p5", "p6"}
	if !reflect.DeepEqual(snap.VisiblePageIDs, wantVisible) {
		t.Fatalf("visible pages = %v, want %v", snap.VisiblePageIDs, wantVisible)
	}
	if !snap.IsFirstPage || snap.IsLastPage {
		t.Fatalf("IsFirstPage=%v IsLastPage=%v on p1", snap.IsFirstPage, snap.IsLastPage)
	}
	if snap.PageStatus["p1"] != StatusComplete {
		t.Fatalf("p1 status = %s, want complete", snap.PageStatus["p1"])
	}

	// Snapshot answers are a copy, not an alias.
	snap.Answers["q1"] = "tampered"
	if e.State().Answers["q1"] != "detail" {
		t.Fatal("snapshot must not alias engine state")
	}
}
