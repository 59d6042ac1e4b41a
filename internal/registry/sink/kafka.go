package sink

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	"namereg/internal/registry/models"
)

// Kafka produces events to a topic, keyed by the identity the event
// carries so per-identity ordering survives partitioning. Production is
// asynchronous; failures are logged by the delivery callback.
type Kafka struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// NewKafka creates a Kafka sink over an existing client.
func NewKafka(client *kgo.Client, topic string, logger *slog.Logger) *Kafka {
	return &Kafka{client: client, topic: topic, logger: logger}
}

func (k *Kafka) Emit(ctx context.Context, event models.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		k.logger.ErrorContext(ctx, "marshal registry event", "error", err)
		return
	}
	record := &kgo.Record{
		Topic: k.topic,
		Key:   []byte(event.Identity.String()),
		Value: payload,
	}
	k.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			k.logger.Error("produce registry event to kafka",
				"topic", k.topic,
				"type", event.Type,
				"error", err,
			)
		}
	})
}

// Close flushes outstanding records and releases the client.
func (k *Kafka) Close(ctx context.Context) error {
	if err := k.client.Flush(ctx); err != nil {
		return err
	}
	k.client.Close()
	return nil
}
