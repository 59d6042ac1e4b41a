package models

import "errors"

// Sentinel kinds for registry operation failures. The core returns these
// directly; the service layer wraps them with pkg/domain-errors codes for
// transport mapping, keeping the kind reachable via errors.Is.
var (
	// ErrDomainAlreadyOwned: the name already has an owner at claim time.
	ErrDomainAlreadyOwned = errors.New("domain already owned")

	// ErrNameAlreadyClaimed: the freshly allocated ID already has an active
	// claim flag. Unreachable while the allocator stays monotonic; kept as a
	// guard against ID reuse.
	ErrNameAlreadyClaimed = errors.New("name already claimed")

	// ErrNotAOwner: the transfer caller is not the record's current holder.
	ErrNotAOwner = errors.New("not an owner")

	// ErrSameOwner: the transfer target equals the current holder.
	ErrSameOwner = errors.New("same owner")

	// Reserved kinds carried in the taxonomy for API compatibility.
	// No operation raises them today.
	ErrCallerIsNotOwner  = errors.New("caller is not owner")
	ErrNameAlreadyExists = errors.New("name already exists")
)
