package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gparth254/meet-ai/internal/apperr"
)

type errorBody struct {
	Code    apperr.Code `json:"code"`
	Message string      `json:"message"`
}

func statusFor(code apperr.Code) int {
	switch code {
	case apperr.CodeUnauthorized:
		return http.StatusUnauthorized
	case apperr.CodeForbidden:
		return http.StatusForbidden
	case apperr.CodeNotFound:
		return http.StatusNotFound
	case apperr.CodeBadRequest, apperr.CodeInvalidTransition:
		return http.StatusBadRequest
	case apperr.CodeConflict:
		return http.StatusConflict
	case apperr.CodeExternalServiceFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as the JSON error envelope. Causes of internal and
// upstream failures are logged but never returned to the caller.
func writeError(c *gin.Context, err error) {
	code := apperr.CodeOf(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "code", code, "error", err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": errorBody{Code: code, Message: apperr.MessageOf(err)}})
}
