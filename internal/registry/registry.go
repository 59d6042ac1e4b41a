// Package registry implements the authoritative name-registry state machine:
// the claim/transfer ownership lifecycle, global name uniqueness, and the
// bookkeeping counters that must stay consistent across operations.
//
// The registry owns all state exclusively. Callers are injected per
// operation (never discovered from ambient state) and notifications are
// handed to a NotificationSink as synchronous fire-and-forget calls.
//
// Several behaviors are inherited from the system this registry is the
// source of truth for, and are load-bearing contract rather than accidents:
//
//   - the ID allocator advances before the uniqueness check, so a failed
//     claim consumes ("wastes") an ID;
//   - a transfer toggles the claimed flag instead of clearing it;
//   - a transfer decrements the outgoing holder's count but does not
//     increment the incoming holder's, so counts can go negative;
//   - transferring an ID that was never claimed succeeds as a no-op but
//     still emits an owner-changed notification.
//
// Tests pin each of these down as documented behavior.
package registry

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"namereg/internal/registry/models"
	id "namereg/pkg/domain"
	"namereg/pkg/requestcontext"
)

// NotificationSink receives registry events. Implementations must not
// block the registry on delivery; failures are the sink's concern.
type NotificationSink interface {
	Emit(ctx context.Context, event models.Event)
}

// Registry is the registry state machine. All operations take the lock for
// their full duration, so each one is atomic with respect to observers:
// either all of its mutations take effect together or, on an error return,
// none of the holder/claim/count mutations do. The one sanctioned exception
// is the ID-allocator advance in Claim.
type Registry struct {
	mu sync.RWMutex

	admin        id.AccountID
	nextID       int32
	records      map[int32]models.DomainRecord
	nameOwner    map[string]id.AccountID
	claimed      map[int32]bool
	holdingCount map[id.AccountID]int32
	totalClaimed int32

	notifier NotificationSink
}

// New constructs an empty registry. The admin identity is recorded as the
// administrative owner; it is queryable but carries no special privileges
// in the core. IDs start at 1.
func New(admin id.AccountID, notifier NotificationSink) *Registry {
	return &Registry{
		admin:        admin,
		nextID:       1,
		records:      make(map[int32]models.DomainRecord),
		nameOwner:    make(map[string]id.AccountID),
		claimed:      make(map[int32]bool),
		holdingCount: make(map[id.AccountID]int32),
		notifier:     notifier,
	}
}

// Claim registers name to caller with the supplied offer terms.
//
// The domain ID is allocated unconditionally before any check; a
// DomainAlreadyOwned failure therefore leaves a gap in the ID sequence.
// Returns models.ErrDomainAlreadyOwned when the name has an owner, or
// models.ErrNameAlreadyClaimed if the fresh ID already carries an active
// claim flag (unreachable while the allocator stays monotonic).
func (r *Registry) Claim(ctx context.Context, name string, state models.OfferState, price decimal.Decimal, caller id.AccountID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	domainID := r.nextDomainID()
	wasClaimed := r.claimed[domainID]

	if _, taken := r.nameOwner[name]; taken {
		return models.ErrDomainAlreadyOwned
	}
	r.nameOwner[name] = caller

	// Guard against ID reuse. The allocator's monotonicity makes this
	// unreachable; kept as defense in depth.
	if wasClaimed {
		return models.ErrNameAlreadyClaimed
	}

	r.records[domainID] = models.DomainRecord{
		ID:         domainID,
		Name:       name,
		OfferState: state,
		OfferPrice: price,
		Holder:     caller,
	}
	r.claimed[domainID] = true
	r.totalClaimed++
	r.holdingCount[caller]++

	r.emit(ctx, models.Event{
		Type:     models.EventNameClaimed,
		Identity: caller,
		DomainID: domainID,
		Name:     name,
	})
	return nil
}

// TransferOwnership rewrites the holder of domainID to newHolder.
//
// When the ID has no record the call succeeds vacuously but still emits the
// owner-changed notification carrying newHolder; this pass-through is part
// of the contract. When the record exists, the caller must be its current
// holder (models.ErrNotAOwner) and the target must differ from the current
// holder (models.ErrSameOwner).
func (r *Registry) TransferOwnership(ctx context.Context, domainID int32, newHolder, caller id.AccountID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record, ok := r.records[domainID]; ok {
		if record.Holder != caller {
			return models.ErrNotAOwner
		}
		if record.Holder == newHolder {
			return models.ErrSameOwner
		}

		// Only the outgoing side of the ledger moves; there is no floor at
		// zero and the incoming holder's count is untouched.
		r.holdingCount[caller]--

		// The claim flag is toggled, not cleared.
		r.claimed[domainID] = !r.claimed[domainID]

		record.Holder = newHolder
		r.records[domainID] = record
	}

	r.emit(ctx, models.Event{
		Type:     models.EventOwnerChanged,
		Identity: newHolder,
		DomainID: domainID,
	})
	return nil
}

// OwnedDomains returns the records held by caller in ascending ID order.
// The scan covers every ID ever allocated, so cost is bounded by the size
// of the ID space consumed so far.
func (r *Registry) OwnedDomains(caller id.AccountID) []models.DomainRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owned := make([]models.DomainRecord, 0)
	for domainID := int32(0); domainID < r.nextID; domainID++ {
		record, ok := r.records[domainID]
		if !ok {
			continue
		}
		if record.Holder == caller {
			owned = append(owned, record)
		}
	}
	return owned
}

// AdministrativeOwner returns the identity recorded at construction.
func (r *Registry) AdministrativeOwner() id.AccountID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.admin
}

// TotalClaimed returns the number of successful claims since construction.
func (r *Registry) TotalClaimed() int32 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.totalClaimed
}

// HoldingCount returns the holding count for holder, zero for identities
// the registry has never seen.
func (r *Registry) HoldingCount(holder id.AccountID) int32 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.holdingCount[holder]
}

// IsClaimed reports the claim flag for domainID, false for unknown IDs.
func (r *Registry) IsClaimed(domainID int32) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.claimed[domainID]
}

// nextDomainID hands out the next ID and advances the allocator. Callers
// must hold the write lock.
func (r *Registry) nextDomainID() int32 {
	domainID := r.nextID
	r.nextID++
	return domainID
}

func (r *Registry) emit(ctx context.Context, event models.Event) {
	if r.notifier == nil {
		return
	}
	event.At = requestcontext.Now(ctx)
	r.notifier.Emit(ctx, event)
}
