package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "namereg/pkg/domain"
	dErrors "namereg/pkg/domain-errors"
)

func TestParseOfferState(t *testing.T) {
	t.Run("accepts the three states", func(t *testing.T) {
		for _, raw := range []string{"not_offering", "private_offering", "public_offering"} {
			state, err := ParseOfferState(raw)
			require.NoError(t, err)
			assert.EqualValues(t, raw, state)
		}
	})

	t.Run("rejects anything else", func(t *testing.T) {
		for _, raw := range []string{"", "offering", "NotOffering"} {
			_, err := ParseOfferState(raw)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		}
	})
}

func TestParseOfferPrice(t *testing.T) {
	t.Run("empty defaults to zero", func(t *testing.T) {
		price, err := ParseOfferPrice("")
		require.NoError(t, err)
		assert.True(t, price.IsZero())
	})

	t.Run("accepts the 128-bit maximum", func(t *testing.T) {
		price, err := ParseOfferPrice("340282366920938463463374607431768211455")
		require.NoError(t, err)
		assert.Equal(t, "340282366920938463463374607431768211455", price.String())
	})

	t.Run("rejects values beyond 128 bits", func(t *testing.T) {
		_, err := ParseOfferPrice("340282366920938463463374607431768211456")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects negatives, fractions, and garbage", func(t *testing.T) {
		for _, raw := range []string{"-1", "1.5", "ten"} {
			_, err := ParseOfferPrice(raw)
			require.Error(t, err, "input %q", raw)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		}
	})
}

func TestDomainRecordJSON(t *testing.T) {
	holder := id.AccountID(uuid.New())
	record := DomainRecord{
		ID:         7,
		Name:       "alice.tld",
		OfferState: PublicOffering,
		OfferPrice: decimal.RequireFromString("1000"),
		Holder:     holder,
	}

	encoded, err := json.Marshal(record)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.EqualValues(t, 7, decoded["id"])
	assert.Equal(t, "alice.tld", decoded["name"])
	assert.Equal(t, "public_offering", decoded["offer_state"])
	assert.Equal(t, "1000", decoded["offer_price"])
	assert.Equal(t, holder.String(), decoded["holder"])
}
