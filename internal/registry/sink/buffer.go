package sink

import (
	"context"
	"log/slog"

	"namereg/internal/registry/models"
)

// Buffered hands events to a bounded channel consumed by a Worker. When the
// buffer is full the event is dropped and counted as lost; the registry
// never blocks on persistence.
type Buffered struct {
	inbox  chan models.Event
	logger *slog.Logger
}

// NewBuffered creates a buffered sink with the given capacity.
func NewBuffered(capacity int, logger *slog.Logger) *Buffered {
	return &Buffered{
		inbox:  make(chan models.Event, capacity),
		logger: logger,
	}
}

func (b *Buffered) Emit(ctx context.Context, event models.Event) {
	select {
	case b.inbox <- event:
	default:
		b.logger.WarnContext(ctx, "event buffer full, dropping event",
			"type", event.Type,
			"domain_id", event.DomainID,
		)
	}
}

// Worker drains a Buffered sink into an EventStore. It keeps background
// persistence testable without wiring queue infrastructure.
type Worker struct {
	store  EventStore
	inbox  <-chan models.Event
	logger *slog.Logger
}

// NewWorker creates a worker consuming from the buffered sink.
func NewWorker(store EventStore, buffered *Buffered, logger *slog.Logger) *Worker {
	return &Worker{store: store, inbox: buffered.inbox, logger: logger}
}

// Run consumes events until ctx is canceled. Store failures are logged and
// the event is dropped; a failed append must not wedge the worker.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "append registry event",
					"type", event.Type,
					"error", err,
				)
			}
		}
	}
}
