// Package dashstate owns the fetch lifecycle of a dashboard: which scope is
// being viewed, the snapshot currently held, whether a fetch is in flight,
// and the message of the last failure.
//
// Every Load is stamped with a generation number. Only the most recently
// issued Load may change the held snapshot, so a slow early response can
// never overwrite a faster later one. After Close, in-flight fetches are
// cancelled and their results dropped.
package dashstate

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dalemusser/templepulse/internal/app/system/analytics"
	"github.com/dalemusser/templepulse/internal/app/system/analytics/remote"
	"github.com/dalemusser/templepulse/internal/domain/models"
	"go.uber.org/zap"
)

// DefaultErrorMessage is shown when a failure carries no displayable message.
const DefaultErrorMessage = "Unable to load analytics data. Please try again."

// ErrClosed is returned by Load once the container has been closed.
var ErrClosed = errors.New("dashboard container closed")

// Scope identifies what a dashboard is showing.
type Scope struct {
	TempleID string
	Period   models.Period
}

// State is a point-in-time copy of a container. Snapshot is shared and must
// be treated as read-only.
type State struct {
	Scope     Scope
	Snapshot  *models.AnalyticsSnapshot
	Err       string
	Loading   bool
	FetchedAt time.Time
}

// ShowLoading reports whether a loading indicator should replace the widgets.
// A held snapshot stays on screen while a newer one loads.
func (s State) ShowLoading() bool {
	return s.Loading && s.Snapshot == nil
}

// ShowWidgets reports whether there is a snapshot to render.
func (s State) ShowWidgets() bool {
	return s.Snapshot != nil
}

// ShowError reports whether an error message should be displayed.
func (s State) ShowError() bool {
	return s.Err != ""
}

// Stale reports whether the held snapshot belongs to a different scope than
// the one last requested, which happens when a scope change failed.
func (s State) Stale() bool {
	if s.Snapshot == nil {
		return false
	}
	return s.Snapshot.TempleID != s.Scope.TempleID || s.Snapshot.Period != s.Scope.Period
}

// Container holds one viewer's dashboard state for one temple.
type Container struct {
	src     analytics.Source
	log     *zap.Logger
	timeout time.Duration
	now     func() time.Time

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	state    State
	gen      uint64
	closed   bool
	lastUsed time.Time
}

// New returns an empty container fetching from src. Each fetch is bounded by
// timeout when it is positive.
func New(src analytics.Source, timeout time.Duration, logger *zap.Logger) *Container {
	ctx, cancel := context.WithCancel(context.Background())
	return &Container{
		src:      src,
		log:      logger,
		timeout:  timeout,
		now:      time.Now,
		ctx:      ctx,
		cancel:   cancel,
		lastUsed: time.Now(),
	}
}

// State returns the current state without fetching.
func (c *Container) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastUsed returns when the container last served a Load or Touch.
func (c *Container) LastUsed() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastUsed
}

// Touch marks the container as in use without fetching.
func (c *Container) Touch() {
	c.mu.Lock()
	c.lastUsed = c.now()
	c.mu.Unlock()
}

// Load fetches a snapshot for scope and returns the resulting state. A fetch
// failure is reported in State.Err and keeps any previously held snapshot;
// the returned error is only ever ErrClosed.
func (c *Container) Load(ctx context.Context, scope Scope) (State, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return State{}, ErrClosed
	}
	c.gen++
	gen := c.gen
	c.state.Scope = scope
	c.state.Loading = true
	c.lastUsed = c.now()
	c.mu.Unlock()

	fetchCtx, cancel := c.fetchContext(ctx)
	snap, err := c.src.Fetch(fetchCtx, scope.TempleID, scope.Period)
	cancel()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return State{}, ErrClosed
	}
	if gen != c.gen {
		c.log.Debug("discarding superseded snapshot fetch",
			zap.String("temple_id", scope.TempleID),
			zap.String("period", string(scope.Period)),
			zap.Uint64("generation", gen),
			zap.Uint64("latest", c.gen))
		return c.state, nil
	}

	c.state.Loading = false
	if err != nil {
		c.state.Err = Message(err)
		c.log.Warn("snapshot fetch failed",
			zap.String("temple_id", scope.TempleID),
			zap.String("period", string(scope.Period)),
			zap.Uint64("generation", gen),
			zap.Bool("holding_previous", c.state.Snapshot != nil),
			zap.Error(err))
		return c.state, nil
	}

	c.state.Snapshot = &snap
	c.state.Err = ""
	c.state.FetchedAt = c.now()
	c.log.Debug("snapshot fetched",
		zap.String("temple_id", scope.TempleID),
		zap.String("period", string(scope.Period)),
		zap.Uint64("generation", gen))
	return c.state, nil
}

// fetchContext derives a context that ends when the request ends, the
// timeout passes, or the container is closed.
func (c *Container) fetchContext(parent context.Context) (context.Context, context.CancelFunc) {
	var ctx context.Context
	var cancel context.CancelFunc
	if c.timeout > 0 {
		ctx, cancel = context.WithTimeout(parent, c.timeout)
	} else {
		ctx, cancel = context.WithCancel(parent)
	}
	stop := context.AfterFunc(c.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// Close cancels in-flight fetches. Later Loads return ErrClosed and pending
// results are dropped.
func (c *Container) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.cancel()
}

// Closed reports whether Close has been called.
func (c *Container) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Message turns a fetch error into text for the inline error view.
func Message(err error) string {
	var apiErr *remote.APIError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	case errors.Is(err, analytics.ErrTempleNotFound):
		return "This temple has no analytics yet."
	case errors.Is(err, models.ErrInvalidPeriod):
		return "Please choose one of the listed periods."
	case errors.Is(err, context.DeadlineExceeded):
		return "The analytics service took too long to respond."
	default:
		return DefaultErrorMessage
	}
}
