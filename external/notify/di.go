package notify

import (
	"log/slog"

	"github.com/gparth254/meet-ai/internal/config"
	"github.com/gparth254/meet-ai/internal/notify"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Fanout, error) {
		c := do.MustInvoke[*config.Config](i)
		f := NewFanout()
		if c.RedisURL != "" {
			p, err := NewRedisPublisher(c.RedisURL)
			if err != nil {
				return nil, err
			}
			f.Add("redis", p)
		}
		if c.DiscordNotifyEnabled() {
			p, err := NewDiscordNotifier(c.DiscordToken, c.DiscordNotifyChannelID)
			if err != nil {
				return nil, err
			}
			f.Add("discord", p)
		}
		if c.MeetingWebhookURL != "" {
			f.Add("webhook", NewWebhookPublisher(c.MeetingWebhookURL))
		}
		slog.Info("meeting notifications configured", "sinks", f.Len())
		return f, nil
	})
	do.Provide(injector, func(i do.Injector) (notify.Publisher, error) {
		return do.MustInvoke[*Fanout](i), nil
	})
}
