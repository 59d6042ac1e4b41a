// Package httputil centralizes JSON response writing and the mapping from
// domain error codes to HTTP statuses, so handlers stay thin.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "namereg/pkg/domain-errors"
)

type errorBody struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps a domain error to an HTTP status and writes a JSON error
// body. Internal errors omit the description so infrastructure details never
// leak to clients.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status, label := statusOf(code)

	body := errorBody{Error: label}
	if code != dErrors.CodeInternal {
		var de *dErrors.Error
		if errors.As(err, &de) {
			body.Description = de.Message
		}
	}
	WriteJSON(w, status, body)
}

func statusOf(code dErrors.Code) (int, string) {
	switch code {
	case dErrors.CodeInvalidInput:
		return http.StatusBadRequest, "invalid_input"
	case dErrors.CodeBadRequest:
		return http.StatusBadRequest, "bad_request"
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized, "unauthorized"
	case dErrors.CodeForbidden:
		return http.StatusForbidden, "forbidden"
	case dErrors.CodeNotFound:
		return http.StatusNotFound, "not_found"
	case dErrors.CodeConflict:
		return http.StatusConflict, "conflict"
	case dErrors.CodeInvariantViolation:
		return http.StatusConflict, "invariant_violation"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
