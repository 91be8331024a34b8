// Package voice answers a meeting participant on behalf of the meeting's agent.
package voice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gparth254/meet-ai/internal/apperr"
	"github.com/gparth254/meet-ai/internal/repository"
	"github.com/gparth254/meet-ai/internal/requestctx"
)

const fallbackReply = "Sorry, I didn't understand."

// Completer produces the agent's reply to one user turn.
type Completer interface {
	Complete(ctx context.Context, instructions, userText string) (string, error)
}

// Recognizer turns a short encoded audio clip into text.
type Recognizer interface {
	Recognize(ctx context.Context, audio []byte) (string, error)
}

// ProviderError is returned by completers when the model provider rejects a
// request with an HTTP status.
type ProviderError struct {
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider returned status %d: %v", e.StatusCode, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

type ReplyInput struct {
	MeetingID string `json:"meetingId"`
	Text      string `json:"text"`
	Audio     []byte `json:"audio"`
}

type Reply struct {
	UserText   string `json:"userText"`
	AgentReply string `json:"agentReply"`
}

type Service struct {
	repo       repository.Repository
	completer  Completer
	recognizer Recognizer
}

// NewService returns a voice service. recognizer may be nil, in which case
// only text turns are accepted.
func NewService(repo repository.Repository, completer Completer, recognizer Recognizer) *Service {
	return &Service{repo: repo, completer: completer, recognizer: recognizer}
}

func (s *Service) Reply(ctx context.Context, in ReplyInput) (*Reply, error) {
	who, ok := requestctx.Caller(ctx)
	if !ok {
		return nil, apperr.Unauthorized("Unauthorized")
	}
	if strings.TrimSpace(in.MeetingID) == "" {
		return nil, apperr.BadRequest("Meeting is required")
	}
	mw, err := s.repo.GetMeeting(ctx, who.UserID, in.MeetingID)
	if err != nil {
		return nil, apperr.Internal("Failed to load meeting", err)
	}
	if mw == nil {
		return nil, apperr.NotFound("Meeting not found")
	}

	userText, err := s.userText(ctx, in)
	if err != nil {
		return nil, err
	}

	answer, err := s.completer.Complete(ctx, mw.Agent.Instructions, userText)
	if err != nil {
		slog.Error("agent completion failed", "meeting_id", mw.ID, "agent_id", mw.Agent.ID, "error", err)
		return nil, apperr.ExternalServiceFailure(providerMessage(err), err)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		answer = fallbackReply
	}
	return &Reply{UserText: userText, AgentReply: answer}, nil
}

func (s *Service) userText(ctx context.Context, in ReplyInput) (string, error) {
	if len(in.Audio) == 0 {
		text := strings.TrimSpace(in.Text)
		if text == "" {
			return "", apperr.BadRequest("Text or audio is required")
		}
		return text, nil
	}
	if s.recognizer == nil {
		return "", apperr.BadRequest("Audio input is not enabled")
	}
	text, err := s.recognizer.Recognize(ctx, in.Audio)
	if err != nil {
		return "", apperr.ExternalServiceFailure("Speech recognition failed", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", apperr.BadRequest("No speech was recognized")
	}
	return text, nil
}

func providerMessage(err error) string {
	var pe *ProviderError
	if !errors.As(err, &pe) {
		return "Sorry, I couldn't respond right now. Please try again."
	}
	switch {
	case pe.StatusCode == http.StatusUnauthorized:
		return "The model provider rejected the API key. Please check the configuration."
	case pe.StatusCode == http.StatusTooManyRequests:
		return "The model provider rate limit was exceeded. Please try again later."
	case pe.StatusCode >= http.StatusInternalServerError:
		return "The model provider is temporarily unavailable. Please try again."
	}
	return "Sorry, I couldn't connect to the model provider. Please try again."
}
