package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "namereg/pkg/domain-errors"
)

func TestParseDomainID(t *testing.T) {
	t.Run("parses 32-bit IDs", func(t *testing.T) {
		domainID, err := parseDomainID("42")
		require.NoError(t, err)
		assert.EqualValues(t, 42, domainID)
	})

	t.Run("rejects non-numeric and out-of-range values", func(t *testing.T) {
		for _, raw := range []string{"", "abc", "1.5", "2147483648"} {
			_, err := parseDomainID(raw)
			require.Error(t, err, "input %q", raw)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
		}
	})
}
