package httpapi

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gparth254/meet-ai/internal/apperr"
	"github.com/gparth254/meet-ai/internal/auth"
	"github.com/gparth254/meet-ai/internal/requestctx"
)

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if id, ok := requestctx.Caller(c.Request.Context()); ok {
			attrs = append(attrs, "user_id", id.UserID)
		}
		slog.Debug("http request", attrs...)
	}
}

// withRequestContext resolves the caller, if any, and attaches a
// RequestContext to every request.
func withRequestContext(a auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := a.Authenticate(c.Request.Context(), c.Request)
		if err != nil {
			writeError(c, apperr.Internal("Failed to resolve session", err))
			return
		}
		ctx := requestctx.WithRequestContext(c.Request.Context(), requestctx.New(id))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func requireCaller() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requestctx.Caller(c.Request.Context()); !ok {
			writeError(c, apperr.Unauthorized("Unauthorized"))
			return
		}
		c.Next()
	}
}
