package meeting

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gparth254/meet-ai/internal/apperr"
	"github.com/gparth254/meet-ai/internal/avatar"
	"github.com/gparth254/meet-ai/internal/notify"
	"github.com/gparth254/meet-ai/internal/pagination"
	"github.com/gparth254/meet-ai/internal/repository"
	"github.com/gparth254/meet-ai/internal/requestctx"
	"github.com/gparth254/meet-ai/internal/transcript"
	"github.com/gparth254/meet-ai/internal/video"
)

const (
	tokenValidity = time.Hour

	transcriptionLanguage = "en"
	recordingQuality      = "1080p"
)

type ListInput struct {
	Page     int
	PageSize int
	Search   *string
	AgentID  *string
	Status   *string
}

type CreateInput struct {
	Name    string `json:"name"`
	AgentID string `json:"agentId"`
}

type UpdateInput struct {
	Name          *string    `json:"name"`
	AgentID       *string    `json:"agentId"`
	Status        *string    `json:"status"`
	StartedAt     *time.Time `json:"startedAt"`
	EndedAt       *time.Time `json:"endedAt"`
	TranscriptURL *string    `json:"transcriptUrl"`
	RecordingURL  *string    `json:"recordingUrl"`
}

type Service struct {
	repo        repository.Repository
	video       video.Gateway
	transcripts transcript.Fetcher
	notifier    notify.Publisher
	callType    string

	// enforceTransitions rejects status changes outside the lifecycle graph.
	// When false any valid status is stored as given.
	enforceTransitions bool

	now   func() time.Time
	newID func() string
}

func NewService(repo repository.Repository, gw video.Gateway, fetcher transcript.Fetcher, notifier notify.Publisher, callType string) *Service {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Service{
		repo:        repo,
		video:       gw,
		transcripts: fetcher,
		notifier:    notifier,
		callType:    callType,

		enforceTransitions: true,

		now:   time.Now,
		newID: uuid.NewString,
	}
}

func caller(ctx context.Context) (*requestctx.Identity, error) {
	id, ok := requestctx.Caller(ctx)
	if !ok {
		return nil, apperr.Unauthorized("Unauthorized")
	}
	return id, nil
}

func (s *Service) GetOne(ctx context.Context, id string) (*View, error) {
	who, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	mw, err := s.repo.GetMeeting(ctx, who.UserID, id)
	if err != nil {
		return nil, apperr.Internal("Failed to load meeting", err)
	}
	if mw == nil {
		return nil, apperr.NotFound("Meeting not found")
	}
	v := newView(mw.Meeting, &mw.Agent)
	return &v, nil
}

func (s *Service) GetMany(ctx context.Context, in ListInput) (*pagination.Page[View], error) {
	who, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	filter := repository.MeetingFilter{
		UserID: who.UserID,
		Search: pagination.NormalizeSearch(in.Search),
	}
	if in.AgentID != nil {
		filter.AgentID = strings.TrimSpace(*in.AgentID)
	}
	if in.Status != nil && strings.TrimSpace(*in.Status) != "" {
		status, err := ParseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = status
	}

	p := pagination.Normalize(in.Page, in.PageSize)
	rows, err := s.repo.ListMeetings(ctx, filter, p.Limit(), p.Offset())
	if err != nil {
		return nil, apperr.Internal("Failed to list meetings", err)
	}
	total, err := s.repo.CountMeetings(ctx, filter)
	if err != nil {
		return nil, apperr.Internal("Failed to count meetings", err)
	}

	items := make([]View, 0, len(rows))
	for i := range rows {
		items = append(items, newView(rows[i].Meeting, &rows[i].Agent))
	}
	page := pagination.NewPage(items, total, p)
	return &page, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*View, error) {
	who, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.BadRequest("Name is required")
	}
	agentID := strings.TrimSpace(in.AgentID)
	if agentID == "" {
		return nil, apperr.BadRequest("Agent is required")
	}

	agent, err := s.repo.GetAgent(ctx, who.UserID, agentID)
	if err != nil {
		return nil, apperr.Internal("Failed to load agent", err)
	}
	if agent == nil {
		return nil, apperr.NotFound("Agent not found")
	}

	created, err := s.repo.CreateMeeting(ctx, repository.CreateMeetingInput{
		ID:      s.newID(),
		UserID:  who.UserID,
		AgentID: agent.ID,
		Name:    name,
	})
	if err != nil {
		return nil, apperr.Internal("Failed to create meeting", err)
	}

	if err := s.provisionCall(ctx, who, created, agent); err != nil {
		s.discard(ctx, created)
		return nil, apperr.ExternalServiceFailure("Failed to set up the meeting call", err)
	}

	slog.Info("meeting created", "meeting_id", created.ID, "agent_id", agent.ID, "user_id", who.UserID)
	s.publish(ctx, notify.KindMeetingCreated, *created, "")
	v := newView(*created, agent)
	return &v, nil
}

// provisionCall registers the owner, creates the call and registers the agent
// as a call participant, in that order.
func (s *Service) provisionCall(ctx context.Context, who *requestctx.Identity, m *repository.Meeting, agent *repository.Agent) error {
	if err := s.video.UpsertUsers(ctx, []video.User{callerUser(who)}); err != nil {
		return fmt.Errorf("upsert owner: %w", err)
	}
	err := s.video.CreateCall(ctx, video.CreateCallInput{
		Type:        s.callType,
		ID:          m.ID,
		CreatedByID: who.UserID,
		Custom: map[string]any{
			"meetingId":   m.ID,
			"meetingName": m.Name,
		},
		Transcription: video.TranscriptionSettings{
			Mode:              video.ModeAutoOn,
			Language:          transcriptionLanguage,
			ClosedCaptionMode: video.ModeAutoOn,
		},
		Recording: video.RecordingSettings{
			Mode:    video.ModeAutoOn,
			Quality: recordingQuality,
		},
	})
	if err != nil {
		return fmt.Errorf("create call: %w", err)
	}
	err = s.video.UpsertUsers(ctx, []video.User{{
		ID:    agent.ID,
		Name:  agent.Name,
		Role:  video.RoleUser,
		Image: avatar.Bot(agent.Name),
	}})
	if err != nil {
		return fmt.Errorf("upsert agent: %w", err)
	}
	return nil
}

// discard removes a meeting row whose call could not be provisioned.
func (s *Service) discard(ctx context.Context, m *repository.Meeting) {
	ctx = context.WithoutCancel(ctx)
	deleted, err := s.repo.DeleteMeeting(ctx, m.UserID, m.ID)
	if err != nil || deleted == nil {
		slog.Error("failed to discard meeting without a call, needs reconciliation", "meeting_id", m.ID, "user_id", m.UserID, "error", err)
		return
	}
	slog.Warn("discarded meeting after call provisioning failed", "meeting_id", m.ID, "user_id", m.UserID)
}

func callerUser(who *requestctx.Identity) video.User {
	image := who.Image
	if image == "" {
		image = avatar.Initials(who.Name)
	}
	return video.User{
		ID:    who.UserID,
		Name:  who.Name,
		Role:  video.RoleAdmin,
		Image: image,
	}
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*View, error) {
	who, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	current, err := s.repo.GetMeeting(ctx, who.UserID, id)
	if err != nil {
		return nil, apperr.Internal("Failed to load meeting", err)
	}
	if current == nil {
		return nil, apperr.NotFound("Meeting not found")
	}

	input := repository.UpdateMeetingInput{
		StartedAt:     in.StartedAt,
		EndedAt:       in.EndedAt,
		TranscriptURL: in.TranscriptURL,
		RecordingURL:  in.RecordingURL,
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperr.BadRequest("Name cannot be empty")
		}
		input.Name = &name
	}

	agent := &current.Agent
	if in.AgentID != nil {
		agentID := strings.TrimSpace(*in.AgentID)
		if agentID == "" {
			return nil, apperr.BadRequest("Agent cannot be empty")
		}
		if agentID != current.AgentID {
			agent, err = s.repo.GetAgent(ctx, who.UserID, agentID)
			if err != nil {
				return nil, apperr.Internal("Failed to load agent", err)
			}
			if agent == nil {
				return nil, apperr.NotFound("Agent not found")
			}
		}
		input.AgentID = &agentID
	}

	previous := current.Status
	if in.Status != nil {
		next, err := ParseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		if s.enforceTransitions {
			if err := ValidateTransition(previous, next); err != nil {
				return nil, err
			}
		}
		input.Status = &next
		s.stamp(&input, current.Meeting, next)
	}
	if err := checkBounds(current.Meeting, input); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateMeeting(ctx, who.UserID, id, input)
	if err != nil {
		return nil, apperr.Internal("Failed to update meeting", err)
	}
	if updated == nil {
		return nil, apperr.NotFound("Meeting not found")
	}

	if updated.Status != previous {
		slog.Info("meeting status changed", "meeting_id", updated.ID, "from", previous, "to", updated.Status)
		s.publish(ctx, notify.KindMeetingStatusChanged, *updated, previous)
	} else {
		s.publish(ctx, notify.KindMeetingUpdated, *updated, "")
	}
	v := newView(*updated, agent)
	return &v, nil
}

// stamp fills the lifecycle timestamps implied by entering next, unless the
// row or the request already carries them.
func (s *Service) stamp(input *repository.UpdateMeetingInput, current repository.Meeting, next repository.MeetingStatus) {
	if next == current.Status {
		return
	}
	now := s.now().UTC()
	switch next {
	case repository.MeetingStatusActive:
		if current.StartedAt == nil && input.StartedAt == nil {
			input.StartedAt = &now
		}
	case repository.MeetingStatusProcessing, repository.MeetingStatusCompleted:
		if current.EndedAt == nil && input.EndedAt == nil {
			input.EndedAt = &now
		}
	}
}

// checkBounds rejects an update that would leave endedAt before startedAt.
func checkBounds(current repository.Meeting, input repository.UpdateMeetingInput) error {
	if input.StartedAt == nil && input.EndedAt == nil {
		return nil
	}
	start, end := current.StartedAt, current.EndedAt
	if input.StartedAt != nil {
		start = input.StartedAt
	}
	if input.EndedAt != nil {
		end = input.EndedAt
	}
	if start != nil && end != nil && end.Before(*start) {
		return apperr.BadRequest("End time cannot be before start time")
	}
	return nil
}

func (s *Service) Remove(ctx context.Context, id string) (*View, error) {
	who, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	removed, err := s.repo.DeleteMeeting(ctx, who.UserID, id)
	if err != nil {
		return nil, apperr.Internal("Failed to remove meeting", err)
	}
	if removed == nil {
		return nil, apperr.NotFound("Meeting not found")
	}
	slog.Info("meeting removed", "meeting_id", removed.ID, "user_id", who.UserID)
	s.publish(ctx, notify.KindMeetingRemoved, *removed, "")
	v := newView(*removed, nil)
	return &v, nil
}

// GenerateToken registers the caller with the call provider and mints a
// fresh join token for them.
func (s *Service) GenerateToken(ctx context.Context) (string, error) {
	who, err := caller(ctx)
	if err != nil {
		return "", err
	}
	if err := s.video.UpsertUsers(ctx, []video.User{callerUser(who)}); err != nil {
		return "", apperr.ExternalServiceFailure("Failed to register user with the call provider", err)
	}
	token, err := s.video.GenerateUserToken(who.UserID, tokenValidity)
	if err != nil {
		return "", apperr.Internal("Failed to generate token", err)
	}
	return token, nil
}

func (s *Service) publish(ctx context.Context, kind notify.Kind, m repository.Meeting, previous repository.MeetingStatus) {
	err := s.notifier.Publish(ctx, notify.Event{
		Kind:           kind,
		MeetingID:      m.ID,
		UserID:         m.UserID,
		Name:           m.Name,
		AgentID:        m.AgentID,
		Status:         m.Status,
		PreviousStatus: previous,
		OccurredAt:     s.now().UTC(),
	})
	if err != nil {
		slog.Warn("failed to publish meeting event", "kind", kind, "meeting_id", m.ID, "error", err)
	}
}
