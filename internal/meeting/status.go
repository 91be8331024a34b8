package meeting

import (
	"fmt"
	"strings"

	"github.com/gparth254/meet-ai/internal/apperr"
	"github.com/gparth254/meet-ai/internal/repository"
)

var transitions = map[repository.MeetingStatus][]repository.MeetingStatus{
	repository.MeetingStatusUpcoming:   {repository.MeetingStatusActive, repository.MeetingStatusCancelled},
	repository.MeetingStatusActive:     {repository.MeetingStatusProcessing},
	repository.MeetingStatusProcessing: {repository.MeetingStatusCompleted},
}

// ParseStatus accepts the lower-case wire form of a status.
func ParseStatus(s string) (repository.MeetingStatus, error) {
	status := repository.MeetingStatus(strings.TrimSpace(s))
	if !IsValidStatus(status) {
		return "", apperr.BadRequest(fmt.Sprintf("Invalid meeting status %q", s))
	}
	return status, nil
}

func IsValidStatus(status repository.MeetingStatus) bool {
	switch status {
	case repository.MeetingStatusUpcoming,
		repository.MeetingStatusActive,
		repository.MeetingStatusProcessing,
		repository.MeetingStatusCompleted,
		repository.MeetingStatusCancelled:
		return true
	}
	return false
}

func IsTerminal(status repository.MeetingStatus) bool {
	return status == repository.MeetingStatusCompleted || status == repository.MeetingStatusCancelled
}

// ValidateTransition reports whether a meeting may move from one status to
// another. Staying in the same status is always allowed.
func ValidateTransition(from, to repository.MeetingStatus) error {
	if from == to {
		return nil
	}
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return apperr.InvalidTransition(fmt.Sprintf("Cannot move meeting from %s to %s", from, to))
}
