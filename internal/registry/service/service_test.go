package service

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"namereg/internal/registry"
	"namereg/internal/registry/models"
	"namereg/internal/registry/sink"
	id "namereg/pkg/domain"
	dErrors "namereg/pkg/domain-errors"
	"namereg/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	alice  id.AccountID
	bob    id.AccountID
	events *sink.InMemoryEventStore
	svc    *Service
}

func (s *ServiceSuite) SetupTest() {
	s.alice = id.AccountID(uuid.New())
	s.bob = id.AccountID(uuid.New())
	s.events = sink.NewInMemoryEventStore(16)

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	reg := registry.New(id.AccountID(uuid.New()), nil)
	s.svc = New(reg, logger, WithEventStore(s.events))
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) as(caller id.AccountID) context.Context {
	return requestcontext.WithCallerID(context.Background(), caller)
}

func (s *ServiceSuite) claimInput(name string) ClaimInput {
	return ClaimInput{Name: name, OfferState: "not_offering", OfferPrice: "0"}
}

func (s *ServiceSuite) TestClaimValidation() {
	s.Run("requires an authenticated caller", func() {
		err := s.svc.Claim(context.Background(), s.claimInput("alice.tld"))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("requires a name", func() {
		err := s.svc.Claim(s.as(s.alice), s.claimInput(""))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("rejects unknown offer states", func() {
		err := s.svc.Claim(s.as(s.alice), ClaimInput{Name: "alice.tld", OfferState: "auction"})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("rejects malformed prices", func() {
		err := s.svc.Claim(s.as(s.alice), ClaimInput{Name: "alice.tld", OfferState: "not_offering", OfferPrice: "-5"})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *ServiceSuite) TestClaimConflicts() {
	s.Require().NoError(s.svc.Claim(s.as(s.alice), s.claimInput("alice.tld")))

	err := s.svc.Claim(s.as(s.bob), s.claimInput("alice.tld"))
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	s.ErrorIs(err, models.ErrDomainAlreadyOwned)
}

func (s *ServiceSuite) TestTransferOwnership() {
	s.Require().NoError(s.svc.Claim(s.as(s.alice), s.claimInput("alice.tld")))

	s.Run("rejects malformed holders", func() {
		err := s.svc.TransferOwnership(s.as(s.alice), 1, "nope")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("maps NotAOwner to forbidden", func() {
		err := s.svc.TransferOwnership(s.as(s.bob), 1, s.bob.String())
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
		s.ErrorIs(err, models.ErrNotAOwner)
	})

	s.Run("maps SameOwner to conflict", func() {
		err := s.svc.TransferOwnership(s.as(s.alice), 1, s.alice.String())
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.ErrorIs(err, models.ErrSameOwner)
	})

	s.Run("transfers to a new holder", func() {
		s.Require().NoError(s.svc.TransferOwnership(s.as(s.alice), 1, s.bob.String()))

		owned, err := s.svc.OwnedDomains(s.as(s.bob))
		s.Require().NoError(err)
		s.Require().Len(owned, 1)
		s.Equal(s.bob, owned[0].Holder)
	})
}

func (s *ServiceSuite) TestQueries() {
	s.Require().NoError(s.svc.Claim(s.as(s.alice), s.claimInput("alice.tld")))

	s.Run("owned domains requires a caller", func() {
		_, err := s.svc.OwnedDomains(context.Background())
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("holding count validates the identity", func() {
		_, err := s.svc.HoldingCount(context.Background(), "not-a-uuid")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

		count, err := s.svc.HoldingCount(context.Background(), s.alice.String())
		s.Require().NoError(err)
		s.EqualValues(1, count)
	})

	s.Run("is claimed and stats", func() {
		s.True(s.svc.IsClaimed(context.Background(), 1))
		s.False(s.svc.IsClaimed(context.Background(), 2))
		s.EqualValues(1, s.svc.Stats(context.Background()).TotalClaimed)
	})
}

func (s *ServiceSuite) TestRecentEvents() {
	s.Run("empty without history", func() {
		events, err := s.svc.RecentEvents(context.Background(), 10)
		s.Require().NoError(err)
		s.Empty(events)
	})

	s.Run("returns persisted events newest first", func() {
		ctx := context.Background()
		s.Require().NoError(s.events.Append(ctx, models.Event{Type: models.EventNameClaimed, Identity: s.alice}))
		s.Require().NoError(s.events.Append(ctx, models.Event{Type: models.EventOwnerChanged, Identity: s.bob}))

		events, err := s.svc.RecentEvents(ctx, 10)
		s.Require().NoError(err)
		s.Require().Len(events, 2)
		s.Equal(models.EventOwnerChanged, events[0].Type)
		s.Equal(models.EventNameClaimed, events[1].Type)
	})
}
