package auth

import (
	"context"
	"errors"
	"time"
)

// ActivityEventType enumerates supported activity categories.
type ActivityEventType string

const (
	ActivityEventUserCreated  ActivityEventType = "user.created"
	ActivityEventLoginSuccess ActivityEventType = "auth.login.success"
	ActivityEventLoginFailure ActivityEventType = "auth.login.failure"
	ActivityEventCalculation  ActivityEventType = "calculator.operation"
	ActivityEventResource     ActivityEventType = "resource.created"
)

// ActivityEvent captures audit-friendly information about an action.
type ActivityEvent struct {
	EventType  ActivityEventType
	Message    string
	UserID     string
	Metadata   map[string]any
	OccurredAt time.Time
}

// ActivitySink consumes activity events for auditing/telemetry purposes.
type ActivitySink interface {
	Record(ctx context.Context, event ActivityEvent) error
}

// ActivitySinkFunc adapts a function to the ActivitySink interface.
type ActivitySinkFunc func(ctx context.Context, event ActivityEvent) error

// Record implements ActivitySink.
func (f ActivitySinkFunc) Record(ctx context.Context, event ActivityEvent) error {
	if f == nil {
		return nil
	}
	return f(ctx, event)
}

type noopActivitySink struct{}

func (noopActivitySink) Record(context.Context, ActivityEvent) error {
	return nil
}

func normalizeActivitySink(s ActivitySink) ActivitySink {
	if s == nil {
		return noopActivitySink{}
	}
	return s
}

// MultiActivitySink fans an event out to every sink, joining their errors
type MultiActivitySink []ActivitySink

// Record implements ActivitySink.
func (m MultiActivitySink) Record(ctx context.Context, event ActivityEvent) error {
	var errs []error
	for _, sink := range m {
		if sink == nil {
			continue
		}
		if err := sink.Record(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ActivityEmitter records events without blocking the caller. Sink
// failures are logged and dropped.
type ActivityEmitter struct {
	sink    ActivitySink
	logger  Logger
	timeout time.Duration
	done    func()
}

// NewActivityEmitter returns an emitter for sink. A nil sink discards events.
func NewActivityEmitter(sink ActivitySink, logger Logger) *ActivityEmitter {
	if logger == nil {
		logger = defLogger{}
	}
	return &ActivityEmitter{
		sink:    normalizeActivitySink(sink),
		logger:  logger,
		timeout: 5 * time.Second,
	}
}

// WithDone registers a callback run after each emission completes,
// tests use it to wait for the background goroutine.
func (e *ActivityEmitter) WithDone(fn func()) *ActivityEmitter {
	e.done = fn
	return e
}

// Emit dispatches event in its own goroutine. The request context is
// detached so cancellation of the caller does not abort the write.
func (e *ActivityEmitter) Emit(ctx context.Context, event ActivityEvent) {
	if e == nil {
		return
	}

	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	base := context.WithoutCancel(ctx)

	go func() {
		if e.done != nil {
			defer e.done()
		}

		defer func() {
			if r := recover(); r != nil {
				e.logger.Error("activity sink panic", "event", event.EventType, "panic", r)
			}
		}()

		ctx, cancel := context.WithTimeout(base, e.timeout)
		defer cancel()

		if err := e.sink.Record(ctx, event); err != nil {
			e.logger.Warn("activity sink record failed", "event", event.EventType, "error", err)
		}
	}()
}
