package video

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gparth254/meet-ai/internal/video"
)

const (
	tokenBackdate  = 60 * time.Second
	maxErrorBody   = 4 << 10
	requestTimeout = 15 * time.Second
)

// StreamGateway talks to the Stream Video server-side REST API.
type StreamGateway struct {
	apiKey  string
	secret  []byte
	baseURL string
	client  *http.Client
	now     func() time.Time
}

func NewStreamGateway(apiKey, secret, baseURL string) *StreamGateway {
	return &StreamGateway{
		apiKey:  apiKey,
		secret:  []byte(secret),
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: requestTimeout},
		now:     time.Now,
	}
}

type userPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
	Image string `json:"image,omitempty"`
}

func (g *StreamGateway) UpsertUsers(ctx context.Context, users []video.User) error {
	if len(users) == 0 {
		return nil
	}
	payload := make(map[string]userPayload, len(users))
	for _, u := range users {
		payload[u.ID] = userPayload{ID: u.ID, Name: u.Name, Role: u.Role, Image: u.Image}
	}
	return g.post(ctx, "/api/v2/users", map[string]any{"users": payload})
}

type transcriptionPayload struct {
	Mode              string `json:"mode"`
	Language          string `json:"language,omitempty"`
	ClosedCaptionMode string `json:"closed_caption_mode,omitempty"`
}

type recordingPayload struct {
	Mode    string `json:"mode"`
	Quality string `json:"quality,omitempty"`
}

type settingsPayload struct {
	Transcription transcriptionPayload `json:"transcription"`
	Recording     recordingPayload     `json:"recording"`
}

type callDataPayload struct {
	CreatedByID      string          `json:"created_by_id"`
	Custom           map[string]any  `json:"custom,omitempty"`
	SettingsOverride settingsPayload `json:"settings_override"`
}

// CreateCall creates the call or returns the existing one with the same id.
func (g *StreamGateway) CreateCall(ctx context.Context, input video.CreateCallInput) error {
	path := fmt.Sprintf("/api/v2/video/call/%s/%s", url.PathEscape(input.Type), url.PathEscape(input.ID))
	body := map[string]any{
		"data": callDataPayload{
			CreatedByID: input.CreatedByID,
			Custom:      input.Custom,
			SettingsOverride: settingsPayload{
				Transcription: transcriptionPayload{
					Mode:              input.Transcription.Mode,
					Language:          input.Transcription.Language,
					ClosedCaptionMode: input.Transcription.ClosedCaptionMode,
				},
				Recording: recordingPayload{
					Mode:    input.Recording.Mode,
					Quality: input.Recording.Quality,
				},
			},
		},
	}
	return g.post(ctx, path, body)
}

// GenerateUserToken signs a client token. iat is backdated to absorb clock skew.
func (g *StreamGateway) GenerateUserToken(userID string, validity time.Duration) (string, error) {
	now := g.now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Add(-tokenBackdate).Unix(),
		"exp":     now.Add(validity).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
}

func (g *StreamGateway) serverToken() (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"server": true}).SignedString(g.secret)
}

func (g *StreamGateway) post(ctx context.Context, path string, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	token, err := g.serverToken()
	if err != nil {
		return fmt.Errorf("sign server token: %w", err)
	}
	endpoint := g.baseURL + path + "?api_key=" + url.QueryEscape(g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", token)
	req.Header.Set("stream-auth-type", "jwt")

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("stream %s returned status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}
