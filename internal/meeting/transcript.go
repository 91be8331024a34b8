package meeting

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gparth254/meet-ai/internal/apperr"
	"github.com/gparth254/meet-ai/internal/avatar"
	"github.com/gparth254/meet-ai/internal/transcript"
)

const unknownSpeaker = "Unknown"

type Speaker struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

type TranscriptEntry struct {
	transcript.Item
	User Speaker `json:"user"`
}

// MarshalJSON flattens the provider record and adds the resolved speaker as
// "user".
func (e TranscriptEntry) MarshalJSON() ([]byte, error) {
	return e.Item.MarshalWith(map[string]any{"user": e.User})
}

// GetTranscript returns the meeting's transcript with each line attributed to
// a user or agent. A missing or unreadable transcript yields an empty list.
func (s *Service) GetTranscript(ctx context.Context, id string) ([]TranscriptEntry, error) {
	who, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	mw, err := s.repo.GetMeeting(ctx, who.UserID, id)
	if err != nil {
		return nil, apperr.Internal("Failed to load meeting", err)
	}
	if mw == nil {
		return nil, apperr.NotFound("Meeting not found")
	}
	if mw.TranscriptURL == nil || strings.TrimSpace(*mw.TranscriptURL) == "" {
		return []TranscriptEntry{}, nil
	}

	body, err := s.transcripts.Fetch(ctx, *mw.TranscriptURL)
	if err != nil {
		slog.Warn("failed to fetch transcript", "meeting_id", id, "error", err)
		return []TranscriptEntry{}, nil
	}
	items, err := transcript.Parse(body)
	if err != nil {
		slog.Warn("failed to parse transcript", "meeting_id", id, "error", err)
		return []TranscriptEntry{}, nil
	}

	speakers, err := s.resolveSpeakers(ctx, items)
	if err != nil {
		return nil, err
	}
	entries := make([]TranscriptEntry, 0, len(items))
	for _, item := range items {
		speaker, ok := speakers[item.SpeakerID]
		if !ok {
			speaker = Speaker{Name: unknownSpeaker, Image: avatar.Initials(unknownSpeaker)}
		}
		entries = append(entries, TranscriptEntry{Item: item, User: speaker})
	}
	return entries, nil
}

func (s *Service) resolveSpeakers(ctx context.Context, items []transcript.Item) (map[string]Speaker, error) {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.SpeakerID]; ok || item.SpeakerID == "" {
			continue
		}
		seen[item.SpeakerID] = struct{}{}
		ids = append(ids, item.SpeakerID)
	}
	speakers := make(map[string]Speaker, len(ids))
	if len(ids) == 0 {
		return speakers, nil
	}

	users, err := s.repo.ListUsersByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Internal("Failed to load transcript speakers", err)
	}
	for _, u := range users {
		image := avatar.Initials(u.Name)
		if u.Image != nil && *u.Image != "" {
			image = *u.Image
		}
		speakers[u.ID] = Speaker{Name: u.Name, Image: image}
	}

	agents, err := s.repo.ListAgentsByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Internal("Failed to load transcript speakers", err)
	}
	for _, a := range agents {
		speakers[a.ID] = Speaker{Name: a.Name, Image: avatar.Bot(a.Name)}
	}
	return speakers, nil
}
