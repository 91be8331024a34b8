// Package repositorytest provides an in-memory repository.Repository for tests.
// It follows the ordering, scoping and filter semantics of the Postgres
// implementation.
package repositorytest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gparth254/meet-ai/internal/repository"
)

type Memory struct {
	mu       sync.Mutex
	users    map[string]repository.User
	sessions map[string]session
	agents   map[string]repository.Agent
	meetings map[string]repository.Meeting
	clock    time.Time

	// Err, when set, is returned by every method.
	Err error
}

type session struct {
	userID    string
	expiresAt time.Time
}

var _ repository.Repository = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		users:    make(map[string]repository.User),
		sessions: make(map[string]session),
		agents:   make(map[string]repository.Agent),
		meetings: make(map[string]repository.Meeting),
		clock:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick returns a strictly increasing timestamp so creation order is stable.
func (m *Memory) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *Memory) AddUser(u repository.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = m.tick()
	}
	m.users[u.ID] = u
}

func (m *Memory) AddSession(token, userID string, expiresAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = session{userID: userID, expiresAt: expiresAt}
}

// MeetingRows returns the stored meetings regardless of owner.
func (m *Memory) MeetingRows() []repository.Meeting {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]repository.Meeting, 0, len(m.meetings))
	for _, mt := range m.meetings {
		list = append(list, mt)
	}
	return list
}

func (m *Memory) Ping(context.Context) error {
	return m.Err
}

func (m *Memory) GetUserBySessionToken(_ context.Context, token string, now time.Time) (*repository.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	s, ok := m.sessions[token]
	if !ok || !s.expiresAt.After(now) {
		return nil, nil
	}
	u, ok := m.users[s.userID]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *Memory) ListUsersByIDs(_ context.Context, ids []string) ([]repository.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var list []repository.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			list = append(list, u)
		}
	}
	return list, nil
}

func (m *Memory) withMeetingCount(a repository.Agent) repository.Agent {
	a.MeetingCount = 0
	for _, mt := range m.meetings {
		if mt.AgentID == a.ID {
			a.MeetingCount++
		}
	}
	return a
}

func (m *Memory) CreateAgent(_ context.Context, input repository.CreateAgentInput) (*repository.Agent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	now := m.tick()
	a := repository.Agent{
		ID:           input.ID,
		UserID:       input.UserID,
		Name:         input.Name,
		Instructions: input.Instructions,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.agents[a.ID] = a
	return &a, nil
}

func (m *Memory) GetAgent(_ context.Context, userID, id string) (*repository.Agent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	a, ok := m.agents[id]
	if !ok || a.UserID != userID {
		return nil, nil
	}
	a = m.withMeetingCount(a)
	return &a, nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func (m *Memory) filterAgents(f repository.AgentFilter) []repository.Agent {
	var list []repository.Agent
	for _, a := range m.agents {
		if a.UserID != f.UserID {
			continue
		}
		if f.Search != "" && !containsFold(a.Name, f.Search) {
			continue
		}
		list = append(list, m.withMeetingCount(a))
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	return list
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	end := offset + limit
	if end > len(list) {
		end = len(list)
	}
	return list[offset:end]
}

func (m *Memory) ListAgents(_ context.Context, filter repository.AgentFilter, limit, offset int) ([]repository.Agent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return page(m.filterAgents(filter), limit, offset), nil
}

func (m *Memory) CountAgents(_ context.Context, filter repository.AgentFilter) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.filterAgents(filter)), nil
}

func (m *Memory) UpdateAgent(_ context.Context, userID, id string, input repository.UpdateAgentInput) (*repository.Agent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	a, ok := m.agents[id]
	if !ok || a.UserID != userID {
		return nil, nil
	}
	if input.Name != nil {
		a.Name = *input.Name
	}
	if input.Instructions != nil {
		a.Instructions = *input.Instructions
	}
	a.UpdatedAt = m.tick()
	m.agents[id] = a
	a = m.withMeetingCount(a)
	return &a, nil
}

func (m *Memory) DeleteAgent(_ context.Context, userID, id string) (*repository.Agent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	a, ok := m.agents[id]
	if !ok || a.UserID != userID {
		return nil, nil
	}
	delete(m.agents, id)
	for mid, mt := range m.meetings {
		if mt.AgentID == id {
			delete(m.meetings, mid)
		}
	}
	return &a, nil
}

func (m *Memory) CountOpenMeetingsByAgent(_ context.Context, agentID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	n := 0
	for _, mt := range m.meetings {
		if mt.AgentID != agentID {
			continue
		}
		switch mt.Status {
		case repository.MeetingStatusUpcoming, repository.MeetingStatusActive, repository.MeetingStatusProcessing:
			n++
		}
	}
	return n, nil
}

func (m *Memory) ListAgentsByIDs(_ context.Context, ids []string) ([]repository.Agent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var list []repository.Agent
	for _, id := range ids {
		if a, ok := m.agents[id]; ok {
			list = append(list, m.withMeetingCount(a))
		}
	}
	return list, nil
}

func (m *Memory) CreateMeeting(_ context.Context, input repository.CreateMeetingInput) (*repository.Meeting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	now := m.tick()
	mt := repository.Meeting{
		ID:        input.ID,
		UserID:    input.UserID,
		AgentID:   input.AgentID,
		Name:      input.Name,
		Status:    repository.MeetingStatusUpcoming,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.meetings[mt.ID] = mt
	return &mt, nil
}

func (m *Memory) join(mt repository.Meeting) repository.MeetingWithAgent {
	mw := repository.MeetingWithAgent{Meeting: mt}
	if a, ok := m.agents[mt.AgentID]; ok {
		mw.Agent = a
	}
	return mw
}

func (m *Memory) GetMeeting(_ context.Context, userID, id string) (*repository.MeetingWithAgent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	mt, ok := m.meetings[id]
	if !ok || mt.UserID != userID {
		return nil, nil
	}
	mw := m.join(mt)
	return &mw, nil
}

func (m *Memory) filterMeetings(f repository.MeetingFilter) []repository.MeetingWithAgent {
	var list []repository.MeetingWithAgent
	for _, mt := range m.meetings {
		if mt.UserID != f.UserID {
			continue
		}
		if f.Search != "" && !containsFold(mt.Name, f.Search) {
			continue
		}
		if f.AgentID != "" && mt.AgentID != f.AgentID {
			continue
		}
		if f.Status != "" && mt.Status != f.Status {
			continue
		}
		list = append(list, m.join(mt))
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	return list
}

func (m *Memory) ListMeetings(_ context.Context, filter repository.MeetingFilter, limit, offset int) ([]repository.MeetingWithAgent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return page(m.filterMeetings(filter), limit, offset), nil
}

func (m *Memory) CountMeetings(_ context.Context, filter repository.MeetingFilter) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.filterMeetings(filter)), nil
}

func (m *Memory) UpdateMeeting(_ context.Context, userID, id string, input repository.UpdateMeetingInput) (*repository.Meeting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	mt, ok := m.meetings[id]
	if !ok || mt.UserID != userID {
		return nil, nil
	}
	if input.Name != nil {
		mt.Name = *input.Name
	}
	if input.AgentID != nil {
		mt.AgentID = *input.AgentID
	}
	if input.Status != nil {
		mt.Status = *input.Status
	}
	if input.StartedAt != nil {
		mt.StartedAt = input.StartedAt
	}
	if input.EndedAt != nil {
		mt.EndedAt = input.EndedAt
	}
	if input.TranscriptURL != nil {
		mt.TranscriptURL = input.TranscriptURL
	}
	if input.RecordingURL != nil {
		mt.RecordingURL = input.RecordingURL
	}
	mt.UpdatedAt = m.tick()
	m.meetings[id] = mt
	return &mt, nil
}

func (m *Memory) DeleteMeeting(_ context.Context, userID, id string) (*repository.Meeting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	mt, ok := m.meetings[id]
	if !ok || mt.UserID != userID {
		return nil, nil
	}
	delete(m.meetings, id)
	return &mt, nil
}
