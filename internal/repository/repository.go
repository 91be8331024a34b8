package repository

import (
	"context"
	"time"
)

type CreateAgentInput struct {
	ID           string
	UserID       string
	Name         string
	Instructions string
}

type UpdateAgentInput struct {
	Name         *string
	Instructions *string
}

func (in UpdateAgentInput) IsEmpty() bool {
	return in.Name == nil && in.Instructions == nil
}

// AgentFilter is the predicate shared by the page and count queries.
// An empty Search means no name filter.
type AgentFilter struct {
	UserID string
	Search string
}

type CreateMeetingInput struct {
	ID      string
	UserID  string
	AgentID string
	Name    string
}

type UpdateMeetingInput struct {
	Name          *string
	AgentID       *string
	Status        *MeetingStatus
	StartedAt     *time.Time
	EndedAt       *time.Time
	TranscriptURL *string
	RecordingURL  *string
}

func (in UpdateMeetingInput) IsEmpty() bool {
	return in.Name == nil && in.AgentID == nil && in.Status == nil &&
		in.StartedAt == nil && in.EndedAt == nil &&
		in.TranscriptURL == nil && in.RecordingURL == nil
}

// MeetingFilter is the predicate shared by the page and count queries.
// Zero values mean "no filter" for Search, AgentID and Status.
type MeetingFilter struct {
	UserID  string
	Search  string
	AgentID string
	Status  MeetingStatus
}

// Lookups that find nothing return (nil, nil). Owner-scoped methods treat a
// row owned by someone else the same as a missing row.

type UserRepository interface {
	ListUsersByIDs(ctx context.Context, ids []string) ([]User, error)
}

type SessionRepository interface {
	GetUserBySessionToken(ctx context.Context, token string, now time.Time) (*User, error)
}

type AgentRepository interface {
	CreateAgent(ctx context.Context, input CreateAgentInput) (*Agent, error)
	GetAgent(ctx context.Context, userID, id string) (*Agent, error)
	ListAgents(ctx context.Context, filter AgentFilter, limit, offset int) ([]Agent, error)
	CountAgents(ctx context.Context, filter AgentFilter) (int, error)
	UpdateAgent(ctx context.Context, userID, id string, input UpdateAgentInput) (*Agent, error)
	DeleteAgent(ctx context.Context, userID, id string) (*Agent, error)
	CountOpenMeetingsByAgent(ctx context.Context, agentID string) (int, error)
	ListAgentsByIDs(ctx context.Context, ids []string) ([]Agent, error)
}

type MeetingRepository interface {
	CreateMeeting(ctx context.Context, input CreateMeetingInput) (*Meeting, error)
	GetMeeting(ctx context.Context, userID, id string) (*MeetingWithAgent, error)
	ListMeetings(ctx context.Context, filter MeetingFilter, limit, offset int) ([]MeetingWithAgent, error)
	CountMeetings(ctx context.Context, filter MeetingFilter) (int, error)
	UpdateMeeting(ctx context.Context, userID, id string, input UpdateMeetingInput) (*Meeting, error)
	DeleteMeeting(ctx context.Context, userID, id string) (*Meeting, error)
}

type Repository interface {
	UserRepository
	SessionRepository
	AgentRepository
	MeetingRepository
	Ping(ctx context.Context) error
}
