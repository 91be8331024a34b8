package repository

import "time"

type MeetingStatus string

const (
	MeetingStatusUpcoming   MeetingStatus = "upcoming"
	MeetingStatusActive     MeetingStatus = "active"
	MeetingStatusProcessing MeetingStatus = "processing"
	MeetingStatusCompleted  MeetingStatus = "completed"
	MeetingStatusCancelled  MeetingStatus = "cancelled"
)

type User struct {
	ID        string
	Name      string
	Email     string
	Image     *string
	CreatedAt time.Time
}

type Agent struct {
	ID           string
	UserID       string
	Name         string
	Instructions string
	MeetingCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Meeting struct {
	ID            string
	UserID        string
	AgentID       string
	Name          string
	Status        MeetingStatus
	StartedAt     *time.Time
	EndedAt       *time.Time
	TranscriptURL *string
	RecordingURL  *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// MeetingWithAgent is a meeting row joined with the agent it references.
type MeetingWithAgent struct {
	Meeting
	Agent Agent
}
