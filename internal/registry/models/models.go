package models

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	id "namereg/pkg/domain"
	dErrors "namereg/pkg/domain-errors"
)

// OfferState is the three-way sale status stored on a record at claim time.
// No business logic is attached to any state; the registry only stores it.
type OfferState string

const (
	NotOffering     OfferState = "not_offering"
	PrivateOffering OfferState = "private_offering"
	PublicOffering  OfferState = "public_offering"
)

// ParseOfferState validates the wire form of an offer state.
func ParseOfferState(s string) (OfferState, error) {
	switch OfferState(s) {
	case NotOffering, PrivateOffering, PublicOffering:
		return OfferState(s), nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput,
			fmt.Sprintf("unknown offer state %q", s))
	}
}

// maxOfferPrice is the largest value an offer price may take (2^128 - 1).
var maxOfferPrice = decimal.RequireFromString("340282366920938463463374607431768211455")

// ParseOfferPrice validates the wire form of an offer price: a base-10
// unsigned integer that fits in 128 bits.
func ParseOfferPrice(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid offer price")
	}
	if !price.IsInteger() {
		return decimal.Decimal{}, dErrors.New(dErrors.CodeInvalidInput, "offer price must be an integer")
	}
	if price.IsNegative() {
		return decimal.Decimal{}, dErrors.New(dErrors.CodeInvalidInput, "offer price must not be negative")
	}
	if price.GreaterThan(maxOfferPrice) {
		return decimal.Decimal{}, dErrors.New(dErrors.CodeInvalidInput, "offer price exceeds 128 bits")
	}
	return price, nil
}

// DomainRecord is one claimed name.
//
// Invariants:
//   - ID is assigned by the registry's allocator, never supplied externally
//   - Name is set once at claim time and immutable thereafter
//   - OfferState and OfferPrice persist unchanged across transfers
//   - Holder is the only field a transfer may rewrite
type DomainRecord struct {
	ID         int32           `json:"id"`
	Name       string          `json:"name"`
	OfferState OfferState      `json:"offer_state"`
	OfferPrice decimal.Decimal `json:"offer_price"`
	Holder     id.AccountID    `json:"holder"`
}

// MarshalJSON renders the holder as its UUID string; decimal already
// marshals as a JSON number string.
func (r DomainRecord) MarshalJSON() ([]byte, error) {
	type alias struct {
		ID         int32      `json:"id"`
		Name       string     `json:"name"`
		OfferState OfferState `json:"offer_state"`
		OfferPrice string     `json:"offer_price"`
		Holder     string     `json:"holder"`
	}
	return json.Marshal(alias{
		ID:         r.ID,
		Name:       r.Name,
		OfferState: r.OfferState,
		OfferPrice: r.OfferPrice.String(),
		Holder:     r.Holder.String(),
	})
}
