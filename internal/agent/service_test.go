package agent

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/gparth254/meet-ai/internal/apperr"
	"github.com/gparth254/meet-ai/internal/repository"
	"github.com/gparth254/meet-ai/internal/repository/repositorytest"
	"github.com/gparth254/meet-ai/internal/requestctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() (*Service, *repositorytest.Memory) {
	repo := repositorytest.NewMemory()
	svc := NewService(repo)
	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("agent-%02d", n)
	}
	return svc, repo
}

func asUser(userID string) context.Context {
	return requestctx.WithCaller(context.Background(), &requestctx.Identity{UserID: userID, Name: "User " + userID})
}

func TestCreateThenGetOne(t *testing.T) {
	svc, _ := newTestService()
	ctx := asUser("u1")

	created, err := svc.Create(ctx, CreateInput{Name: "Scheduler", Instructions: "Book rooms"})
	require.NoError(t, err)

	got, err := svc.GetOne(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Scheduler", got.Name)
	assert.Equal(t, "Book rooms", got.Instructions)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, 0, got.MeetingCount)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := asUser("u1")

	_, err := svc.Create(ctx, CreateInput{Name: " ", Instructions: "Book rooms"})
	assert.True(t, apperr.IsBadRequest(err))
	_, err = svc.Create(ctx, CreateInput{Name: "Scheduler"})
	assert.True(t, apperr.IsBadRequest(err))
}

func TestUnauthorized(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Create(context.Background(), CreateInput{Name: "Scheduler", Instructions: "Book rooms"})
	assert.True(t, apperr.IsUnauthorized(err))
	_, err = svc.GetMany(context.Background(), ListInput{})
	assert.True(t, apperr.IsUnauthorized(err))
}

func TestForeignAgentIsNotFound(t *testing.T) {
	svc, _ := newTestService()
	created, err := svc.Create(asUser("u1"), CreateInput{Name: "Scheduler", Instructions: "Book rooms"})
	require.NoError(t, err)

	other := asUser("u2")
	name := "Mine now"
	_, err = svc.GetOne(other, created.ID)
	assert.True(t, apperr.IsNotFound(err))
	_, err = svc.Update(other, created.ID, UpdateInput{Name: &name})
	assert.True(t, apperr.IsNotFound(err))
	_, err = svc.Remove(other, created.ID)
	assert.True(t, apperr.IsNotFound(err))

	got, err := svc.GetOne(asUser("u1"), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Scheduler", got.Name)
}

func TestGetManyPaginationAndSearch(t *testing.T) {
	svc, _ := newTestService()
	ctx := asUser("u1")
	for i := 0; i < 15; i++ {
		_, err := svc.Create(ctx, CreateInput{Name: fmt.Sprintf("Agent %02d", i), Instructions: "Help"})
		require.NoError(t, err)
	}
	_, err := svc.Create(asUser("u2"), CreateInput{Name: "Agent foreign", Instructions: "Help"})
	require.NoError(t, err)

	page, err := svc.GetMany(ctx, ListInput{Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, 15, page.Total)
	assert.Equal(t, 2, page.TotalPages)

	for _, search := range []string{"", "*", "  "} {
		s := search
		page, err := svc.GetMany(ctx, ListInput{Search: &s})
		require.NoError(t, err)
		assert.Equal(t, 15, page.Total, "search %q", search)
		assert.Len(t, page.Items, 10)
	}

	s := "agent 1"
	page, err = svc.GetMany(ctx, ListInput{Search: &s})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	for _, item := range page.Items {
		assert.Contains(t, item.Name, "Agent 1")
	}
}

func TestUpdate(t *testing.T) {
	svc, _ := newTestService()
	ctx := asUser("u1")
	created, err := svc.Create(ctx, CreateInput{Name: "Scheduler", Instructions: "Book rooms"})
	require.NoError(t, err)

	instructions := "Book rooms and send invites"
	got, err := svc.Update(ctx, created.ID, UpdateInput{Instructions: &instructions})
	require.NoError(t, err)
	assert.Equal(t, "Scheduler", got.Name)
	assert.Equal(t, instructions, got.Instructions)

	blank := ""
	_, err = svc.Update(ctx, created.ID, UpdateInput{Name: &blank})
	assert.True(t, apperr.IsBadRequest(err))

	unchanged, err := svc.Update(ctx, created.ID, UpdateInput{})
	require.NoError(t, err)
	assert.Equal(t, instructions, unchanged.Instructions)
}

func TestRemove(t *testing.T) {
	svc, repo := newTestService()
	ctx := asUser("u1")
	created, err := svc.Create(ctx, CreateInput{Name: "Scheduler", Instructions: "Book rooms"})
	require.NoError(t, err)

	_, err = repo.CreateMeeting(context.Background(), repository.CreateMeetingInput{
		ID: "m1", UserID: "u1", AgentID: created.ID, Name: "Standup",
	})
	require.NoError(t, err)

	got, err := svc.GetOne(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.MeetingCount)

	_, err = svc.Remove(ctx, created.ID)
	assert.True(t, apperr.IsConflict(err))

	cancelled := repository.MeetingStatusCancelled
	_, err = repo.UpdateMeeting(context.Background(), "u1", "m1", repository.UpdateMeetingInput{Status: &cancelled})
	require.NoError(t, err)

	removed, err := svc.Remove(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, removed.ID)

	_, err = svc.GetOne(ctx, created.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestStoreFailureIsInternal(t *testing.T) {
	svc, repo := newTestService()
	repo.Err = errors.New("connection refused")
	_, err := svc.GetOne(asUser("u1"), "agent-01")
	require.Error(t, err)
	assert.Equal(t, apperr.CodeInternal, apperr.CodeOf(err))
}
