package sink

import (
	"context"

	"namereg/internal/registry/models"
)

// EventStore persists emitted events for the admin event feed. Append is
// called by the worker, never directly from registry operations.
type EventStore interface {
	Append(ctx context.Context, event models.Event) error
	Recent(ctx context.Context, limit int) ([]models.Event, error)
}
