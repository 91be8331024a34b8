// Package requestctx carries the per-request facts that procedures depend on.
package requestctx

import "context"

// Version is bumped whenever a field changes meaning.
const Version = 1

// Identity is the authenticated caller resolved from the session.
type Identity struct {
	UserID string
	Name   string
	Email  string
	Image  string
}

// BillingCustomer identifies the caller at the billing provider.
type BillingCustomer struct {
	CustomerID string
}

// PremiumFlags reports plan-gated capabilities.
type PremiumFlags struct {
	Active      bool
	MaxAgents   int
	MaxMeetings int
}

// RequestContext is attached to every request context by the HTTP layer.
// Auth is nil for anonymous requests. Billing and Premium are nil until a
// billing integration populates them.
type RequestContext struct {
	Version int
	Auth    *Identity
	Billing *BillingCustomer
	Premium *PremiumFlags
}

type contextKey struct{}

func New(auth *Identity) *RequestContext {
	return &RequestContext{Version: Version, Auth: auth}
}

func WithRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, rc)
}

func FromContext(ctx context.Context) (*RequestContext, bool) {
	rc, ok := ctx.Value(contextKey{}).(*RequestContext)
	return rc, ok && rc != nil
}

// Caller returns the authenticated identity, if any.
func Caller(ctx context.Context) (*Identity, bool) {
	rc, ok := FromContext(ctx)
	if !ok || rc.Auth == nil || rc.Auth.UserID == "" {
		return nil, false
	}
	return rc.Auth, true
}

// WithCaller is a shorthand used by tests and background jobs.
func WithCaller(ctx context.Context, id *Identity) context.Context {
	return WithRequestContext(ctx, New(id))
}
