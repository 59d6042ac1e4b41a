package kafka

import (
	"context"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	"namereg/internal/platform/config"
	"namereg/pkg/platform/sentinel"
)

// NewClient connects a franz-go producer to the configured brokers.
// Returns nil if no brokers are configured (Kafka not required).
func NewClient(ctx context.Context, cfg config.KafkaConfig) (*kgo.Client, error) {
	if len(cfg.Brokers) == 0 {
		return nil, nil
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.Topic),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: kafka ping: %v", sentinel.ErrUnavailable, err)
	}
	return client, nil
}
