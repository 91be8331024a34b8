package meeting

import (
	"time"

	"github.com/gparth254/meet-ai/internal/repository"
)

type AgentSummary struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Name         string    `json:"name"`
	Instructions string    `json:"instructions"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type View struct {
	ID            string                   `json:"id"`
	UserID        string                   `json:"userId"`
	AgentID       string                   `json:"agentId"`
	Name          string                   `json:"name"`
	Status        repository.MeetingStatus `json:"status"`
	StartedAt     *time.Time               `json:"startedAt"`
	EndedAt       *time.Time               `json:"endedAt"`
	TranscriptURL *string                  `json:"transcriptUrl"`
	RecordingURL  *string                  `json:"recordingUrl"`
	CreatedAt     time.Time                `json:"createdAt"`
	UpdatedAt     time.Time                `json:"updatedAt"`
	Duration      *int64                   `json:"duration"`
	Agent         *AgentSummary            `json:"agent,omitempty"`
}

// Duration returns the whole seconds between the two bounds, or nil while
// either is unset. A negative span is reported as zero.
func Duration(startedAt, endedAt *time.Time) *int64 {
	if startedAt == nil || endedAt == nil {
		return nil
	}
	seconds := int64(endedAt.Sub(*startedAt) / time.Second)
	if seconds < 0 {
		seconds = 0
	}
	return &seconds
}

func newView(m repository.Meeting, agent *repository.Agent) View {
	v := View{
		ID:            m.ID,
		UserID:        m.UserID,
		AgentID:       m.AgentID,
		Name:          m.Name,
		Status:        m.Status,
		StartedAt:     m.StartedAt,
		EndedAt:       m.EndedAt,
		TranscriptURL: m.TranscriptURL,
		RecordingURL:  m.RecordingURL,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		Duration:      Duration(m.StartedAt, m.EndedAt),
	}
	if agent != nil {
		v.Agent = &AgentSummary{
			ID:           agent.ID,
			UserID:       agent.UserID,
			Name:         agent.Name,
			Instructions: agent.Instructions,
			CreatedAt:    agent.CreatedAt,
			UpdatedAt:    agent.UpdatedAt,
		}
	}
	return v
}
