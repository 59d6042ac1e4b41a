// Package sink provides NotificationSink implementations: structured log
// output, Redis pub/sub, Kafka, a prometheus counter sink, and a buffered
// sink drained into an EventStore by a background worker.
//
// Delivery is best-effort by contract: a sink failure is logged and counted
// but never fails the registry operation that emitted the event.
package sink

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"namereg/internal/registry/models"
)

// Sink receives registry events. Implementations own their failure
// handling; Emit never reports errors back to the caller.
type Sink interface {
	Emit(ctx context.Context, event models.Event)
}

// Fanout delivers each event to every configured sink in order.
type Fanout struct {
	sinks []Sink
}

// NewFanout composes sinks; nil entries are skipped.
func NewFanout(sinks ...Sink) *Fanout {
	f := &Fanout{}
	for _, s := range sinks {
		if s != nil {
			f.sinks = append(f.sinks, s)
		}
	}
	return f
}

func (f *Fanout) Emit(ctx context.Context, event models.Event) {
	for _, s := range f.sinks {
		s.Emit(ctx, event)
	}
}

// Slog logs every event with structured attributes.
type Slog struct {
	logger *slog.Logger
}

func NewSlog(logger *slog.Logger) *Slog {
	return &Slog{logger: logger}
}

func (s *Slog) Emit(ctx context.Context, event models.Event) {
	s.logger.InfoContext(ctx, "registry event",
		"type", event.Type,
		"identity", event.Identity,
		"domain_id", event.DomainID,
		"name", event.Name,
	)
}

// Counters bumps a per-type prometheus counter for every event.
type Counters struct {
	events *prometheus.CounterVec
}

func NewCounters() *Counters {
	return &Counters{
		events: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "namereg_events_emitted_total",
			Help: "Registry notification events emitted, by type",
		}, []string{"type"}),
	}
}

func (c *Counters) Emit(_ context.Context, event models.Event) {
	c.events.WithLabelValues(string(event.Type)).Inc()
}
