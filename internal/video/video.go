package video

import (
	"context"
	"time"
)

const (
	ModeAutoOn = "auto-on"

	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID    string
	Name  string
	Role  string
	Image string
}

type TranscriptionSettings struct {
	Mode              string
	Language          string
	ClosedCaptionMode string
}

type RecordingSettings struct {
	Mode    string
	Quality string
}

type CreateCallInput struct {
	Type          string
	ID            string
	CreatedByID   string
	Custom        map[string]any
	Transcription TranscriptionSettings
	Recording     RecordingSettings
}

// Gateway is the call provider. Each method is a single request/response;
// nothing is retried.
type Gateway interface {
	UpsertUsers(ctx context.Context, users []User) error
	CreateCall(ctx context.Context, input CreateCallInput) error
	GenerateUserToken(userID string, validity time.Duration) (string, error)
}
