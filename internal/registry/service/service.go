// Package service orchestrates registry operations: it resolves the caller
// identity injected by middleware, validates transport-level inputs, maps
// core sentinel kinds to coded domain errors, and records metrics.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"namereg/internal/registry"
	regmetrics "namereg/internal/registry/metrics"
	"namereg/internal/registry/models"
	"namereg/internal/registry/sink"
	id "namereg/pkg/domain"
	dErrors "namereg/pkg/domain-errors"
	"namereg/pkg/requestcontext"
)

// Service exposes the registry operations to transports.
type Service struct {
	registry *registry.Registry
	events   sink.EventStore
	metrics  *regmetrics.Metrics
	logger   *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithMetrics sets the metrics collector.
func WithMetrics(m *regmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithEventStore sets the store backing the admin event feed.
func WithEventStore(store sink.EventStore) Option {
	return func(s *Service) {
		s.events = store
	}
}

// New constructs the service around a registry.
func New(reg *registry.Registry, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{registry: reg, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ClaimInput carries the wire form of a claim request.
type ClaimInput struct {
	Name       string
	OfferState string
	OfferPrice string
}

// Claim registers a name to the authenticated caller.
func (s *Service) Claim(ctx context.Context, input ClaimInput) error {
	caller, err := s.requireCaller(ctx)
	if err != nil {
		return err
	}
	if input.Name == "" {
		return dErrors.New(dErrors.CodeBadRequest, "name is required")
	}
	state, err := models.ParseOfferState(input.OfferState)
	if err != nil {
		return err
	}
	price, err := models.ParseOfferPrice(input.OfferPrice)
	if err != nil {
		return err
	}

	start := time.Now()
	err = s.registry.Claim(ctx, input.Name, state, price, caller)
	if s.metrics != nil {
		s.metrics.ObserveClaim(start, err)
	}
	if err != nil {
		return wrapRegistryErr(err)
	}

	s.logger.InfoContext(ctx, "name claimed",
		"name", input.Name,
		"caller", caller,
		"request_id", requestcontext.RequestID(ctx),
	)
	return nil
}

// TransferOwnership hands the domain to a new holder on behalf of the
// authenticated caller.
func (s *Service) TransferOwnership(ctx context.Context, domainID int32, newHolder string) error {
	caller, err := s.requireCaller(ctx)
	if err != nil {
		return err
	}
	holder, err := id.ParseAccountID(newHolder)
	if err != nil {
		return err
	}

	start := time.Now()
	err = s.registry.TransferOwnership(ctx, domainID, holder, caller)
	if s.metrics != nil {
		s.metrics.ObserveTransfer(start, err)
	}
	if err != nil {
		return wrapRegistryErr(err)
	}

	s.logger.InfoContext(ctx, "ownership transferred",
		"domain_id", domainID,
		"new_holder", holder,
		"caller", caller,
		"request_id", requestcontext.RequestID(ctx),
	)
	return nil
}

// OwnedDomains lists the authenticated caller's records, ascending by ID.
func (s *Service) OwnedDomains(ctx context.Context) ([]models.DomainRecord, error) {
	caller, err := s.requireCaller(ctx)
	if err != nil {
		return nil, err
	}
	return s.registry.OwnedDomains(caller), nil
}

// HoldingCount returns the holding count for an identity, zero for unseen
// identities.
func (s *Service) HoldingCount(ctx context.Context, holder string) (int32, error) {
	account, err := id.ParseAccountID(holder)
	if err != nil {
		return 0, err
	}
	return s.registry.HoldingCount(account), nil
}

// IsClaimed reports the claim flag for a domain ID.
func (s *Service) IsClaimed(_ context.Context, domainID int32) bool {
	return s.registry.IsClaimed(domainID)
}

// Stats summarizes registry-wide state for the admin surface.
type Stats struct {
	AdministrativeOwner id.AccountID `json:"administrative_owner"`
	TotalClaimed        int32        `json:"total_claimed"`
}

// Stats returns the administrative owner and the total claim count.
func (s *Service) Stats(_ context.Context) Stats {
	return Stats{
		AdministrativeOwner: s.registry.AdministrativeOwner(),
		TotalClaimed:        s.registry.TotalClaimed(),
	}
}

// RecentEvents returns the latest persisted notification events, newest
// first. Returns an empty slice when no event store is wired.
func (s *Service) RecentEvents(ctx context.Context, limit int) ([]models.Event, error) {
	if s.events == nil {
		return []models.Event{}, nil
	}
	events, err := s.events.Recent(ctx, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load events")
	}
	if events == nil {
		events = []models.Event{}
	}
	return events, nil
}

func (s *Service) requireCaller(ctx context.Context) (id.AccountID, error) {
	caller := requestcontext.CallerID(ctx)
	if caller.IsNil() {
		return id.AccountID{}, dErrors.New(dErrors.CodeUnauthorized, "caller identity is required")
	}
	return caller, nil
}

// wrapRegistryErr translates core sentinel kinds into coded errors while
// keeping the kind reachable through errors.Is.
func wrapRegistryErr(err error) error {
	switch {
	case errors.Is(err, models.ErrDomainAlreadyOwned):
		return dErrors.Wrap(err, dErrors.CodeConflict, "domain name already owned")
	case errors.Is(err, models.ErrNameAlreadyClaimed):
		return dErrors.Wrap(err, dErrors.CodeConflict, "name already claimed")
	case errors.Is(err, models.ErrSameOwner):
		return dErrors.Wrap(err, dErrors.CodeConflict, "new holder already owns this domain")
	case errors.Is(err, models.ErrNotAOwner):
		return dErrors.Wrap(err, dErrors.CodeForbidden, "caller does not hold this domain")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "registry operation failed")
	}
}
