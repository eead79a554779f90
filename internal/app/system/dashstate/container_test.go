package dashstate_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dalemusser/templepulse/internal/app/system/analytics"
	"github.com/dalemusser/templepulse/internal/app/system/analytics/remote"
	"github.com/dalemusser/templepulse/internal/app/system/dashstate"
	"github.com/dalemusser/templepulse/internal/domain/models"
	"go.uber.org/zap"
)

type result struct {
	snap models.AnalyticsSnapshot
	err  error
}

type call struct {
	ctx   context.Context
	scope dashstate.Scope
	reply chan result
}

// gatedSource hands every Fetch to the test, which decides when and how it
// completes.
type gatedSource struct {
	calls chan call
}

func newGatedSource() *gatedSource {
	return &gatedSource{calls: make(chan call, 8)}
}

func (g *gatedSource) Fetch(ctx context.Context, templeID string, period models.Period) (models.AnalyticsSnapshot, error) {
	c := call{ctx: ctx, scope: dashstate.Scope{TempleID: templeID, Period: period}, reply: make(chan result, 1)}
	g.calls <- c
	select {
	case r := <-c.reply:
		return r.snap, r.err
	case <-ctx.Done():
		return models.AnalyticsSnapshot{}, ctx.Err()
	}
}

func (g *gatedSource) next(t *testing.T) call {
	t.Helper()
	select {
	case c := <-g.calls:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a fetch")
		return call{}
	}
}

type loadResult struct {
	state dashstate.State
	err   error
}

func loadAsync(c *dashstate.Container, scope dashstate.Scope) <-chan loadResult {
	out := make(chan loadResult, 1)
	go func() {
		st, err := c.Load(context.Background(), scope)
		out <- loadResult{st, err}
	}()
	return out
}

func wait(t *testing.T, ch <-chan loadResult) loadResult {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Load")
		return loadResult{}
	}
}

func snapshot(templeID string, p models.Period, members int) models.AnalyticsSnapshot {
	return models.AnalyticsSnapshot{TempleID: templeID, Period: p, Overview: models.Overview{TotalMembers: members}}
}

var scope30 = dashstate.Scope{TempleID: "wat-pho", Period: models.Period30d}
var scope90 = dashstate.Scope{TempleID: "wat-pho", Period: models.Period90d}

func TestLoad_FailureAfterSuccessKeepsSnapshot(t *testing.T) {
	src := newGatedSource()
	c := dashstate.New(src, 0, zap.NewNop())

	done := loadAsync(c, scope30)
	src.next(t).reply <- result{snap: snapshot("wat-pho", models.Period30d, 100)}
	first := wait(t, done)
	if first.err != nil || !first.state.ShowWidgets() || first.state.ShowError() {
		t.Fatalf("first load state = %+v, err = %v", first.state, first.err)
	}

	done = loadAsync(c, scope90)
	src.next(t).reply <- result{err: &remote.APIError{Status: 503, Message: "warehouse offline"}}
	second := wait(t, done)

	st := second.state
	if st.Err != "warehouse offline" {
		t.Errorf("Err = %q, want server message", st.Err)
	}
	if !st.ShowWidgets() || st.Snapshot.Overview.TotalMembers != 100 {
		t.Errorf("previous snapshot not retained: %+v", st.Snapshot)
	}
	if !st.Stale() {
		t.Error("snapshot from 30d should be stale for a 90d scope")
	}
	if st.Scope != scope90 {
		t.Errorf("Scope = %+v, want %+v", st.Scope, scope90)
	}
}

func TestLoad_FirstFailureWithholdsWidgets(t *testing.T) {
	src := newGatedSource()
	c := dashstate.New(src, 0, zap.NewNop())

	done := loadAsync(c, scope30)
	src.next(t).reply <- result{err: errors.New("dial tcp: connection refused")}
	st := wait(t, done).state

	if st.ShowWidgets() {
		t.Error("no widgets expected without any snapshot")
	}
	if st.Err != dashstate.DefaultErrorMessage {
		t.Errorf("Err = %q, want default message", st.Err)
	}
}

func TestLoad_SuccessClearsError(t *testing.T) {
	src := newGatedSource()
	c := dashstate.New(src, 0, zap.NewNop())

	done := loadAsync(c, scope30)
	src.next(t).reply <- result{err: errors.New("boom")}
	wait(t, done)

	done = loadAsync(c, scope30)
	src.next(t).reply <- result{snap: snapshot("wat-pho", models.Period30d, 5)}
	st := wait(t, done).state
	if st.ShowError() || !st.ShowWidgets() || st.FetchedAt.IsZero() {
		t.Errorf("state after recovery = %+v", st)
	}
}

func TestLoad_LoadingIndicatorOnlyWithoutSnapshot(t *testing.T) {
	src := newGatedSource()
	c := dashstate.New(src, 0, zap.NewNop())

	done := loadAsync(c, scope30)
	pending := src.next(t)
	if st := c.State(); !st.Loading || !st.ShowLoading() {
		t.Errorf("first fetch in flight: state = %+v, want loading indicator", st)
	}
	pending.reply <- result{snap: snapshot("wat-pho", models.Period30d, 1)}
	wait(t, done)

	done = loadAsync(c, scope30)
	pending = src.next(t)
	if st := c.State(); !st.Loading || st.ShowLoading() {
		t.Errorf("refresh in flight: state = %+v, want held snapshot and no indicator", st)
	}
	pending.reply <- result{snap: snapshot("wat-pho", models.Period30d, 2)}
	if st := wait(t, done).state; st.Loading {
		t.Error("Loading should clear when the fetch completes")
	}
}

func TestLoad_SupersededResponseIsDiscarded(t *testing.T) {
	src := newGatedSource()
	c := dashstate.New(src, 0, zap.NewNop())

	slow := loadAsync(c, scope30)
	slowCall := src.next(t)
	fast := loadAsync(c, scope90)
	fastCall := src.next(t)

	fastCall.reply <- result{snap: snapshot("wat-pho", models.Period90d, 90)}
	if st := wait(t, fast).state; st.Snapshot.Period != models.Period90d {
		t.Fatalf("latest fetch not applied: %+v", st.Snapshot)
	}

	slowCall.reply <- result{snap: snapshot("wat-pho", models.Period30d, 30)}
	wait(t, slow)

	st := c.State()
	if st.Snapshot.Period != models.Period90d || st.Snapshot.Overview.TotalMembers != 90 {
		t.Errorf("stale response overwrote newer snapshot: %+v", st.Snapshot)
	}
	if st.Scope != scope90 || st.Loading {
		t.Errorf("state = %+v", st)
	}
}

func TestLoad_SupersededFailureIsDiscarded(t *testing.T) {
	src := newGatedSource()
	c := dashstate.New(src, 0, zap.NewNop())

	slow := loadAsync(c, scope30)
	slowCall := src.next(t)
	fast := loadAsync(c, scope90)
	src.next(t).reply <- result{snap: snapshot("wat-pho", models.Period90d, 90)}
	wait(t, fast)

	slowCall.reply <- result{err: errors.New("late failure")}
	wait(t, slow)

	if st := c.State(); st.ShowError() {
		t.Errorf("superseded failure surfaced: %q", st.Err)
	}
}

func TestClose_CancelsInFlightAndDropsResult(t *testing.T) {
	src := newGatedSource()
	c := dashstate.New(src, 0, zap.NewNop())

	done := loadAsync(c, scope30)
	pending := src.next(t)
	c.Close()

	select {
	case <-pending.ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("fetch context not cancelled by Close")
	}

	r := wait(t, done)
	if !errors.Is(r.err, dashstate.ErrClosed) {
		t.Errorf("err = %v, want ErrClosed", r.err)
	}
	if c.State().Snapshot != nil {
		t.Error("closed container must not receive a snapshot")
	}
	if _, err := c.Load(context.Background(), scope30); !errors.Is(err, dashstate.ErrClosed) {
		t.Errorf("Load after Close err = %v, want ErrClosed", err)
	}
}

func TestLoad_Timeout(t *testing.T) {
	src := newGatedSource()
	c := dashstate.New(src, 20*time.Millisecond, zap.NewNop())

	done := loadAsync(c, scope30)
	src.next(t) // never answered
	st := wait(t, done).state
	if st.Err != "The analytics service took too long to respond." {
		t.Errorf("Err = %q", st.Err)
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"server message", fmt.Errorf("wrap: %w", &remote.APIError{Status: 500, Message: "try later"}), "try later"},
		{"server without message", &remote.APIError{Status: 500}, dashstate.DefaultErrorMessage},
		{"not found", analytics.ErrTempleNotFound, "This temple has no analytics yet."},
		{"remote 404", &remote.APIError{Status: 404}, "This temple has no analytics yet."},
		{"bad period", models.ErrInvalidPeriod, "Please choose one of the listed periods."},
		{"other", errors.New("x"), dashstate.DefaultErrorMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dashstate.Message(tt.err); got != tt.want {
				t.Errorf("Message = %q, want %q", got, tt.want)
			}
		})
	}
}
