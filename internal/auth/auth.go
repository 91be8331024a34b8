package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gparth254/meet-ai/internal/repository"
	"github.com/gparth254/meet-ai/internal/requestctx"
)

// Authenticator resolves the caller of an HTTP request. It returns (nil, nil)
// when the request carries no valid session.
type Authenticator interface {
	Authenticate(ctx context.Context, r *http.Request) (*requestctx.Identity, error)
}

type SessionAuthenticator struct {
	sessions   repository.SessionRepository
	cookieName string
	now        func() time.Time
}

func NewSessionAuthenticator(sessions repository.SessionRepository, cookieName string) *SessionAuthenticator {
	return &SessionAuthenticator{
		sessions:   sessions,
		cookieName: cookieName,
		now:        time.Now,
	}
}

func (a *SessionAuthenticator) Authenticate(ctx context.Context, r *http.Request) (*requestctx.Identity, error) {
	token := a.sessionToken(r)
	if token == "" {
		return nil, nil
	}
	u, err := a.sessions.GetUserBySessionToken(ctx, token, a.now())
	if err != nil {
		return nil, fmt.Errorf("lookup session: %w", err)
	}
	if u == nil {
		return nil, nil
	}
	id := &requestctx.Identity{
		UserID: u.ID,
		Name:   u.Name,
		Email:  u.Email,
	}
	if u.Image != nil {
		id.Image = *u.Image
	}
	return id, nil
}

// sessionToken prefers a bearer token over the session cookie. Signed cookie
// values have the form "<token>.<signature>".
func (a *SessionAuthenticator) sessionToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	c, err := r.Cookie(a.cookieName)
	if err != nil || c.Value == "" {
		return ""
	}
	token, _, _ := strings.Cut(c.Value, ".")
	return token
}
