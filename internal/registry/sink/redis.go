package sink

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"namereg/internal/registry/models"
)

// Redis publishes events as JSON on a pub/sub channel so external observers
// can subscribe without coupling to the registry process.
type Redis struct {
	client  redis.UniversalClient
	channel string
	logger  *slog.Logger
}

// NewRedis creates a Redis pub/sub sink publishing on channel.
func NewRedis(client redis.UniversalClient, channel string, logger *slog.Logger) *Redis {
	return &Redis{client: client, channel: channel, logger: logger}
}

func (r *Redis) Emit(ctx context.Context, event models.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		r.logger.ErrorContext(ctx, "marshal registry event", "error", err)
		return
	}
	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		r.logger.ErrorContext(ctx, "publish registry event to redis",
			"channel", r.channel,
			"type", event.Type,
			"error", err,
		)
	}
}
