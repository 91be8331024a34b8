package meeting

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/gparth254/meet-ai/internal/avatar"
	"github.com/gparth254/meet-ai/internal/repository"
)

func seedTranscriptMeeting(t *testing.T, f *fixture, url *string) {
	t.Helper()
	agent := f.addAgent(t, "u1", "agent-1", "Scheduler")
	seedMeetings(t, f, "u1", agent.ID, "Standup")
	if url != nil {
		_, err := f.repo.UpdateMeeting(context.Background(), "u1", "meeting-01", repository.UpdateMeetingInput{TranscriptURL: url})
		if err != nil {
			t.Fatalf("failed to set transcript url: %v", err)
		}
	}
}

func TestGetTranscriptWithoutURL(t *testing.T) {
	f := newFixture()
	seedTranscriptMeeting(t, f, nil)

	entries, err := f.svc.GetTranscript(asUser("u1"), "meeting-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Fatalf("expected empty list, got %#v", entries)
	}
	if len(f.fetcher.gotURLs) != 0 {
		t.Fatal("expected no fetch")
	}
}

func TestGetTranscriptFetchFailure(t *testing.T) {
	f := newFixture()
	url := "https://cdn.example.com/t.jsonl"
	seedTranscriptMeeting(t, f, &url)
	f.fetcher.err = errors.New("403 forbidden")

	entries, err := f.svc.GetTranscript(asUser("u1"), "meeting-01")
	if err != nil || len(entries) != 0 {
		t.Fatalf("expected empty list, got %v, %v", entries, err)
	}
}

func TestGetTranscriptMalformed(t *testing.T) {
	f := newFixture()
	url := "https://cdn.example.com/t.jsonl"
	seedTranscriptMeeting(t, f, &url)
	f.fetcher.body = []byte("{\"speaker_id\":\"u1\"}\nnot json\n")

	entries, err := f.svc.GetTranscript(asUser("u1"), "meeting-01")
	if err != nil || len(entries) != 0 {
		t.Fatalf("expected empty list, got %v, %v", entries, err)
	}
}

func TestGetTranscriptResolvesSpeakers(t *testing.T) {
	f := newFixture()
	url := "https://cdn.example.com/t.jsonl"
	seedTranscriptMeeting(t, f, &url)
	image := "https://example.com/ada.png"
	f.repo.AddUser(repository.User{ID: "u1", Name: "Ada", Email: "ada@example.com", Image: &image})
	f.repo.AddUser(repository.User{ID: "u3", Name: "Grace", Email: "grace@example.com"})
	f.fetcher.body = []byte(`{"speaker_id":"u1","type":"speech","text":"Hello","start_ts":0,"stop_ts":900}

{"speaker_id":"agent-1","type":"speech","text":"Hi Ada","start_ts":1000,"stop_ts":1800}
{"speaker_id":"u3","type":"speech","text":"Morning","start_ts":1900,"stop_ts":2500}
{"speaker_id":"ghost","type":"speech","text":"...","start_ts":2600,"stop_ts":2700}
`)

	entries, err := f.svc.GetTranscript(asUser("u1"), "meeting-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}
	want := []Speaker{
		{Name: "Ada", Image: image},
		{Name: "Scheduler", Image: avatar.Bot("Scheduler")},
		{Name: "Grace", Image: avatar.Initials("Grace")},
		{Name: "Unknown", Image: avatar.Initials("Unknown")},
	}
	for i, w := range want {
		if entries[i].User != w {
			t.Fatalf("entry %d: expected %+v, got %+v", i, w, entries[i].User)
		}
	}
	if entries[1].Text != "Hi Ada" || entries[1].StopTS != 1800 {
		t.Fatalf("expected item fields to be kept, got %+v", entries[1].Item)
	}
	if f.fetcher.gotURLs[0] != url {
		t.Fatalf("expected fetch of %s, got %v", url, f.fetcher.gotURLs)
	}
}

func TestGetTranscriptKeepsProviderFields(t *testing.T) {
	f := newFixture()
	url := "https://cdn.example.com/t.jsonl"
	seedTranscriptMeeting(t, f, &url)
	f.fetcher.body = []byte(`{"speaker_id":"agent-1","type":"speech","text":"hi","start_ts":1,"stop_ts":2,"confidence":0.9}`)

	entries, err := f.svc.GetTranscript(asUser("u1"), "meeting-01")
	if err != nil || len(entries) != 1 {
		t.Fatalf("unexpected result: %v, %v", entries, err)
	}
	b, err := json.Marshal(entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []map[string]any
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got[0]["confidence"] != 0.9 || got[0]["text"] != "hi" {
		t.Fatalf("provider fields lost: %s", b)
	}
	user, ok := got[0]["user"].(map[string]any)
	if !ok || user["name"] != "Scheduler" || user["image"] != avatar.Bot("Scheduler") {
		t.Fatalf("unexpected user: %s", b)
	}
}
