package agent

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gparth254/meet-ai/internal/apperr"
	"github.com/gparth254/meet-ai/internal/pagination"
	"github.com/gparth254/meet-ai/internal/repository"
	"github.com/gparth254/meet-ai/internal/requestctx"
)

type View struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Name         string    `json:"name"`
	Instructions string    `json:"instructions"`
	MeetingCount int       `json:"meetingCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func newView(a repository.Agent) View {
	return View{
		ID:           a.ID,
		UserID:       a.UserID,
		Name:         a.Name,
		Instructions: a.Instructions,
		MeetingCount: a.MeetingCount,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

type ListInput struct {
	Page     int
	PageSize int
	Search   *string
}

type CreateInput struct {
	Name         string `json:"name"`
	Instructions string `json:"instructions"`
}

type UpdateInput struct {
	Name         *string `json:"name"`
	Instructions *string `json:"instructions"`
}

type Service struct {
	repo  repository.Repository
	newID func() string
}

func NewService(repo repository.Repository) *Service {
	return &Service{repo: repo, newID: uuid.NewString}
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
	a, err := s.repo.GetAgent(ctx, who.UserID, id)
	if err != nil {
		return nil, apperr.Internal("Failed to load agent", err)
	}
	if a == nil {
		return nil, apperr.NotFound("Agent not found")
	}
	v := newView(*a)
	return &v, nil
}

func (s *Service) GetMany(ctx context.Context, in ListInput) (*pagination.Page[View], error) {
	who, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	filter := repository.AgentFilter{
		UserID: who.UserID,
		Search: pagination.NormalizeSearch(in.Search),
	}
	p := pagination.Normalize(in.Page, in.PageSize)
	rows, err := s.repo.ListAgents(ctx, filter, p.Limit(), p.Offset())
	if err != nil {
		return nil, apperr.Internal("Failed to list agents", err)
	}
	total, err := s.repo.CountAgents(ctx, filter)
	if err != nil {
		return nil, apperr.Internal("Failed to count agents", err)
	}
	items := make([]View, 0, len(rows))
	for _, a := range rows {
		items = append(items, newView(a))
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
	instructions := strings.TrimSpace(in.Instructions)
	if instructions == "" {
		return nil, apperr.BadRequest("Instructions are required")
	}
	a, err := s.repo.CreateAgent(ctx, repository.CreateAgentInput{
		ID:           s.newID(),
		UserID:       who.UserID,
		Name:         name,
		Instructions: instructions,
	})
	if err != nil {
		return nil, apperr.Internal("Failed to create agent", err)
	}
	slog.Info("agent created", "agent_id", a.ID, "user_id", who.UserID)
	v := newView(*a)
	return &v, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*View, error) {
	who, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	var input repository.UpdateAgentInput
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperr.BadRequest("Name cannot be empty")
		}
		input.Name = &name
	}
	if in.Instructions != nil {
		instructions := strings.TrimSpace(*in.Instructions)
		if instructions == "" {
			return nil, apperr.BadRequest("Instructions cannot be empty")
		}
		input.Instructions = &instructions
	}
	if input.IsEmpty() {
		return s.GetOne(ctx, id)
	}
	a, err := s.repo.UpdateAgent(ctx, who.UserID, id, input)
	if err != nil {
		return nil, apperr.Internal("Failed to update agent", err)
	}
	if a == nil {
		return nil, apperr.NotFound("Agent not found")
	}
	v := newView(*a)
	return &v, nil
}

// Remove deletes an agent that no open meeting depends on.
func (s *Service) Remove(ctx context.Context, id string) (*View, error) {
	who, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	a, err := s.repo.GetAgent(ctx, who.UserID, id)
	if err != nil {
		return nil, apperr.Internal("Failed to load agent", err)
	}
	if a == nil {
		return nil, apperr.NotFound("Agent not found")
	}
	open, err := s.repo.CountOpenMeetingsByAgent(ctx, a.ID)
	if err != nil {
		return nil, apperr.Internal("Failed to check agent meetings", err)
	}
	if open > 0 {
		return nil, apperr.Conflict("Agent is used by meetings that have not finished")
	}
	removed, err := s.repo.DeleteAgent(ctx, who.UserID, id)
	if err != nil {
		return nil, apperr.Internal("Failed to remove agent", err)
	}
	if removed == nil {
		return nil, apperr.NotFound("Agent not found")
	}
	slog.Info("agent removed", "agent_id", removed.ID, "user_id", who.UserID)
	v := newView(*removed)
	return &v, nil
}
