package notify

import (
	"fmt"

	"github.com/gparth254/meet-ai/internal/notify"
)

const (
	messageCreatedFormat       = ":calendar: **%s** was scheduled."
	messageStatusChangedFormat = ":arrows_counterclockwise: **%s** moved from `%s` to `%s`."
	messageRemovedFormat       = ":wastebasket: **%s** was removed."
	messageUpdatedFormat       = ":pencil2: **%s** was updated."
	messageFooterLine          = "-# meet-ai"
)

func formatDiscordMessage(event notify.Event) string {
	var title string
	switch event.Kind {
	case notify.KindMeetingCreated:
		title = fmt.Sprintf(messageCreatedFormat, event.Name)
	case notify.KindMeetingStatusChanged:
		title = fmt.Sprintf(messageStatusChangedFormat, event.Name, event.PreviousStatus, event.Status)
	case notify.KindMeetingRemoved:
		title = fmt.Sprintf(messageRemovedFormat, event.Name)
	default:
		title = fmt.Sprintf(messageUpdatedFormat, event.Name)
	}
	return title + "\n" + messageFooterLine
}
