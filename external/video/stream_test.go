package video

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gparth254/meet-ai/internal/video"
)

const testSecret = "stream-secret"

type capturedRequest struct {
	path       string
	apiKey     string
	authHeader string
	authType   string
	body       map[string]any
}

func newCaptureServer(t *testing.T, status int, got *capturedRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		got.path = r.URL.Path
		got.apiKey = r.URL.Query().Get("api_key")
		got.authHeader = r.Header.Get("Authorization")
		got.authType = r.Header.Get("stream-auth-type")
		b, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(b, &got.body); err != nil {
			t.Errorf("invalid json body: %v", err)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"duration":"1ms"}`))
	}))
}

func parseToken(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(testSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}
	return claims
}

func TestUpsertUsers(t *testing.T) {
	var got capturedRequest
	server := newCaptureServer(t, http.StatusCreated, &got)
	defer server.Close()

	g := NewStreamGateway("key-1", testSecret, server.URL+"/")
	err := g.UpsertUsers(context.Background(), []video.User{{ID: "agent-1", Name: "Scheduler", Role: video.RoleUser, Image: "https://img"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.path != "/api/v2/users" || got.apiKey != "key-1" || got.authType != "jwt" {
		t.Fatalf("unexpected request: %+v", got)
	}
	if claims := parseToken(t, got.authHeader); claims["server"] != true {
		t.Fatalf("expected server claim, got %v", claims)
	}
	users := got.body["users"].(map[string]any)
	user := users["agent-1"].(map[string]any)
	if user["name"] != "Scheduler" || user["role"] != "user" || user["image"] != "https://img" {
		t.Fatalf("unexpected user payload: %v", user)
	}
}

func TestCreateCall(t *testing.T) {
	var got capturedRequest
	server := newCaptureServer(t, http.StatusOK, &got)
	defer server.Close()

	g := NewStreamGateway("key-1", testSecret, server.URL)
	err := g.CreateCall(context.Background(), video.CreateCallInput{
		Type:          "default",
		ID:            "meeting-1",
		CreatedByID:   "u1",
		Custom:        map[string]any{"meetingId": "meeting-1", "meetingName": "Standup"},
		Transcription: video.TranscriptionSettings{Mode: video.ModeAutoOn, Language: "en", ClosedCaptionMode: video.ModeAutoOn},
		Recording:     video.RecordingSettings{Mode: video.ModeAutoOn, Quality: "1080p"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.path != "/api/v2/video/call/default/meeting-1" {
		t.Fatalf("unexpected path: %s", got.path)
	}
	data := got.body["data"].(map[string]any)
	if data["created_by_id"] != "u1" {
		t.Fatalf("unexpected created_by_id: %v", data["created_by_id"])
	}
	custom := data["custom"].(map[string]any)
	if custom["meetingName"] != "Standup" {
		t.Fatalf("unexpected custom: %v", custom)
	}
	settings := data["settings_override"].(map[string]any)
	transcription := settings["transcription"].(map[string]any)
	recording := settings["recording"].(map[string]any)
	if transcription["mode"] != "auto-on" || transcription["closed_caption_mode"] != "auto-on" || recording["mode"] != "auto-on" {
		t.Fatalf("unexpected settings: %v", settings)
	}
}

func TestPostNon2xx(t *testing.T) {
	var got capturedRequest
	server := newCaptureServer(t, http.StatusForbidden, &got)
	defer server.Close()

	g := NewStreamGateway("key-1", testSecret, server.URL)
	if err := g.UpsertUsers(context.Background(), []video.User{{ID: "u1"}}); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}

func TestUpsertUsers_Empty(t *testing.T) {
	g := NewStreamGateway("key-1", testSecret, "http://127.0.0.1:1")
	if err := g.UpsertUsers(context.Background(), nil); err != nil {
		t.Fatalf("expected no request for empty list, got %v", err)
	}
}

func TestGenerateUserToken(t *testing.T) {
	g := NewStreamGateway("key-1", testSecret, "http://unused")
	now := time.Now().Truncate(time.Second)
	g.now = func() time.Time { return now }

	token, err := g.GenerateUserToken("u1", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	claims := parseToken(t, token)
	if claims["user_id"] != "u1" {
		t.Fatalf("unexpected user_id: %v", claims["user_id"])
	}
	if iat := int64(claims["iat"].(float64)); iat != now.Add(-60*time.Second).Unix() {
		t.Fatalf("unexpected iat: %d", iat)
	}
	if exp := int64(claims["exp"].(float64)); exp != now.Add(time.Hour).Unix() {
		t.Fatalf("unexpected exp: %d", exp)
	}
}
