package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventPass     EventType = "pass"
	EventApply    EventType = "apply"
	EventReject   EventType = "reject"
	EventComplete EventType = "complete"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
	Schema    string    `json:"schema"`
}

// PassEvent is emitted after every traversal pass.
type PassEvent struct {
	EventBase
	Pending string `json:"pending,omitempty"`
	Ops     int    `json:"ops"`
}

// InputEvent is emitted when a submitted value is applied or rejected.
type InputEvent struct {
	EventBase
	Field string `json:"field"`
	Err   error  `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnPass     func(context.Context, *PassEvent)
	OnApply    func(context.Context, *InputEvent)
	OnReject   func(context.Context, *InputEvent)
	OnComplete func(context.Context, *EventBase)

	// OnChange receives the delta between the stored snapshot before and after a request.
	OnChange func(context.Context, *StateDiff)
}
