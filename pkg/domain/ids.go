// Package domain defines typed identifiers shared across the registry.
//
// Identities are modeled as typed UUID wrappers so the compiler rejects
// cross-type assignment. Parsing lives here because it enforces a trust
// boundary invariant: IDs entering the system must be valid, non-empty,
// non-nil UUIDs.
package domain

import (
	"github.com/google/uuid"

	dErrors "namereg/pkg/domain-errors"
)

// AccountID identifies a party that can hold names: a claimer, a transfer
// target, or the registry's administrative owner.
type AccountID uuid.UUID

// ParseAccountID parses and validates an account ID from its string form.
func ParseAccountID(s string) (AccountID, error) {
	parsed, err := parseUUID(s, "account id")
	return AccountID(parsed), err
}

// IsNil reports whether the ID is the zero UUID.
func (a AccountID) IsNil() bool {
	return uuid.UUID(a) == uuid.Nil
}

// String returns the canonical UUID string form.
func (a AccountID) String() string {
	return uuid.UUID(a).String()
}

// MarshalText renders the ID as its canonical UUID string, so JSON
// encoding produces a string rather than a byte array.
func (a AccountID) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText parses the ID from its canonical UUID string.
func (a *AccountID) UnmarshalText(text []byte) error {
	parsed, err := ParseAccountID(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func parseUUID(s, what string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, what+" is required")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid "+what)
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, what+" must not be the nil UUID")
	}
	return parsed, nil
}
