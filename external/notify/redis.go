package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gparth254/meet-ai/internal/notify"
	"github.com/redis/go-redis/v9"
)

// RedisChannelPrefix prefixes the event kind to form the pub/sub channel,
// e.g. "events.meeting.created".
const RedisChannelPrefix = "events."

type redisPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

type RedisPublisher struct {
	client  redisPublisher
	closeFn func() error
}

func NewRedisPublisher(redisURL string) (*RedisPublisher, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	return &RedisPublisher{client: client, closeFn: client.Close}, nil
}

func (p *RedisPublisher) Publish(ctx context.Context, event notify.Event) error {
	b, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, RedisChannel(event.Kind), b).Err()
}

func RedisChannel(kind notify.Kind) string {
	return RedisChannelPrefix + string(kind)
}

func (p *RedisPublisher) Close() error {
	if p.closeFn == nil {
		return nil
	}
	return p.closeFn()
}
