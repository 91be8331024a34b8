package notify

import (
	"context"
	"time"

	"github.com/gparth254/meet-ai/internal/repository"
)

type Kind string

const (
	KindMeetingCreated       Kind = "meeting.created"
	KindMeetingUpdated       Kind = "meeting.updated"
	KindMeetingStatusChanged Kind = "meeting.status_changed"
	KindMeetingRemoved       Kind = "meeting.removed"
)

type Event struct {
	Kind           Kind                     `json:"kind"`
	MeetingID      string                   `json:"meeting_id"`
	UserID         string                   `json:"user_id"`
	Name           string                   `json:"name"`
	AgentID        string                   `json:"agent_id"`
	Status         repository.MeetingStatus `json:"status"`
	PreviousStatus repository.MeetingStatus `json:"previous_status,omitempty"`
	OccurredAt     time.Time                `json:"occurred_at"`
}

// Publisher delivers lifecycle events. Callers treat delivery as best effort.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
