package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	dErrors "namereg/pkg/domain-errors"
)

type claimRequest struct {
	Name       string `json:"name"`
	OfferState string `json:"offer_state"`
	OfferPrice string `json:"offer_price"`
}

type transferRequest struct {
	NewHolder string `json:"new_holder"`
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid JSON body")
	}
	return nil
}

// parseDomainID parses a path segment into a 32-bit domain ID. IDs outside
// the signed 32-bit range cannot exist in the registry.
func parseDomainID(raw string) (int32, error) {
	parsed, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid domain id")
	}
	return int32(parsed), nil
}
