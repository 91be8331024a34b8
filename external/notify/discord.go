package notify

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/gparth254/meet-ai/internal/meeting"
	"github.com/gparth254/meet-ai/internal/notify"
)

// DiscordNotifier posts a one-line summary to a text channel when a meeting
// is created or reaches a terminal status. Other events are skipped.
// Only the REST API is used, so no gateway connection is opened.
type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordNotifier(token, channelID string) (*DiscordNotifier, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	return &DiscordNotifier{session: s, channelID: channelID}, nil
}

func (n *DiscordNotifier) Publish(ctx context.Context, event notify.Event) error {
	if !announcesToDiscord(event) {
		return nil
	}
	_, err := n.session.ChannelMessageSend(n.channelID, formatDiscordMessage(event), discordgo.WithContext(ctx))
	return err
}

func (n *DiscordNotifier) Close() error {
	return n.session.Close()
}

func announcesToDiscord(event notify.Event) bool {
	switch event.Kind {
	case notify.KindMeetingCreated:
		return true
	case notify.KindMeetingStatusChanged:
		return meeting.IsTerminal(event.Status)
	}
	return false
}
