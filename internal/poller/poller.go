package poller

import (
	"context"
	"time"

	"go.uber.org/zap"

	"chargectl/internal/api"
)

// CompletionNotice is the user-facing text for a finished session.
const CompletionNotice = "充电结束 请查询详单"

// EventType discriminates poller events.
type EventType int

const (
	// EventStatus carries a fresh status snapshot for display.
	EventStatus EventType = iota
	// EventCompleted fires exactly once per charging-to-idle edge.
	EventCompleted
	// EventError reports a failed tick; the next tick retries naturally.
	EventError
)

// Event is one poller output.
type Event struct {
	Type       EventType
	Status     api.QueueStatus
	StatusText string
	ServerTime api.ServerTime
	Message    string
	Err        error
}

// StatusAPI is the slice of the service the poller consumes.
type StatusAPI interface {
	PreviewQueue(ctx context.Context) (api.QueueStatus, error)
	ServerTime(ctx context.Context) (api.ServerTime, error)
}

// Session gates polling on login state.
type Session interface {
	IsAuthenticated() bool
}

// Transition derives the display text for cur and whether the
// completion notification fires. The notification is edge-triggered:
// only Charging to NotCharging fires it, repeated NotCharging never
// does.
func Transition(prev, cur api.ChargeState) (string, bool) {
	return cur.DisplayText(), prev == api.StateCharging && cur == api.StateNotCharging
}

// Poller periodically reconciles the server-side charging state with
// the last observed one and emits display and notification events.
type Poller struct {
	status   StatusAPI
	session  Session
	logger   *zap.Logger
	interval time.Duration
	events   chan Event

	// prev is only touched from the Run goroutine.
	prev api.ChargeState
}

// New builds a poller observing through status, gated by session.
func New(status StatusAPI, session Session, interval time.Duration, logger *zap.Logger) *Poller {
	return &Poller{
		status:   status,
		session:  session,
		logger:   logger,
		interval: interval,
		events:   make(chan Event, 16),
		prev:     api.StateNotCharging,
	}
}

// Events returns the output stream. It is closed when Run returns.
func (p *Poller) Events() <-chan Event {
	return p.events
}

// Run drives ticks until ctx is cancelled. Ticks execute synchronously
// on this goroutine so they never overlap; ticker fires that land while
// a tick is still in flight are dropped.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	defer close(p.events)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

// tick performs one poll cycle. Unauthenticated ticks make no calls and
// mutate nothing.
func (p *Poller) tick(ctx context.Context) {
	if !p.session.IsAuthenticated() {
		return
	}

	status, err := p.status.PreviewQueue(ctx)
	if err != nil {
		p.fail(ctx, err)
		return
	}
	now, err := p.status.ServerTime(ctx)
	if err != nil {
		p.fail(ctx, err)
		return
	}

	// Logged out while the calls were in flight: discard the result.
	if !p.session.IsAuthenticated() {
		return
	}

	text, completed := Transition(p.prev, status.State)
	p.emit(ctx, Event{
		Type:       EventStatus,
		Status:     status,
		StatusText: text,
		ServerTime: now,
	})
	if completed {
		p.emit(ctx, Event{Type: EventCompleted, Message: CompletionNotice})
	}
	p.prev = status.State
}

// fail leaves prev untouched so the next successful tick compares
// against the last successful observation.
func (p *Poller) fail(ctx context.Context, err error) {
	p.logger.Warn("poll tick failed", zap.Error(err))
	p.emit(ctx, Event{Type: EventError, Err: err})
}

func (p *Poller) emit(ctx context.Context, ev Event) {
	select {
	case p.events <- ev:
	case <-ctx.Done():
	}
}
