package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventSessionStart EventType = "session_start"
	EventQuestion     EventType = "question"
	EventAnswer       EventType = "answer"
	EventFlowSelected EventType = "flow_selected"
	EventComplete     EventType = "complete"
	EventRejected     EventType = "rejected"
)

// SessionEvent describes one observable engine transition.
type SessionEvent struct {
	Timestamp  time.Time `json:"timestamp"`
	Type       EventType `json:"type"`
	SessionID  string    `json:"session_id"`
	QuestionID string    `json:"question_id,omitempty"`
	OptionIDs  []string  `json:"option_ids,omitempty"`
	Flow       Flow      `json:"flow,omitempty"`
	Reason     string    `json:"reason,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability. Nil hooks are skipped.
type LifecycleHooks struct {
	OnSessionStart func(context.Context, *SessionEvent)
	OnQuestion     func(context.Context, *SessionEvent)
	OnAnswer       func(context.Context, *SessionEvent)
	OnFlowSelected func(context.Context, *SessionEvent)
	OnComplete     func(context.Context, *SessionEvent)
	OnReject       func(context.Context, *SessionEvent)
}

// Merge returns hooks that call h first and then other for every event.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnSessionStart: chain(h.OnSessionStart, other.OnSessionStart),
		OnQuestion:     chain(h.OnQuestion, other.OnQuestion),
		OnAnswer:       chain(h.OnAnswer, other.OnAnswer),
		OnFlowSelected: chain(h.OnFlowSelected, other.OnFlowSelected),
		OnComplete:     chain(h.OnComplete, other.OnComplete),
		OnReject:       chain(h.OnReject, other.OnReject),
	}
}

func chain(a, b func(context.Context, *SessionEvent)) func(context.Context, *SessionEvent) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e *SessionEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
