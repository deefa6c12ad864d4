package shared

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"staffpay/internal/transport/http/api"
)

// fieldAliases maps accepted ingress spellings to canonical snake_case names.
var fieldAliases = map[string]string{
	"employeeId":      "employee_id",
	"checkIn":         "check_in",
	"checkOut":        "check_out",
	"jobTimeFrom":     "job_time_from",
	"jobTimeTo":       "job_time_to",
	"joiningDate":     "joining_date",
	"totalLeaves":     "total_leaves",
	"leavesAllocated": "total_leaves",
	"imageUrl":        "image_url",
	"area":            "place",
}

var (
	ErrEmptyBody    = errors.New("request body is empty")
	ErrBodyTooLarge = errors.New("request body too large")
	ErrInvalidJSON  = errors.New("invalid JSON payload")
)

// NormalizeFields rewrites aliased keys to their canonical names. When both
// spellings are present the canonical value is kept.
func NormalizeFields(payload map[string]json.RawMessage) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(payload))
	for key, value := range payload {
		if _, aliased := fieldAliases[key]; !aliased {
			out[key] = value
		}
	}
	for key, value := range payload {
		canonical, aliased := fieldAliases[key]
		if !aliased {
			continue
		}
		if _, exists := out[canonical]; exists {
			continue
		}
		out[canonical] = value
	}
	return out
}

// DecodeJSON reads a JSON object, normalizes aliased field names and decodes
// the result into dst.
func DecodeJSON(r *http.Request, dst any) error {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return ErrBodyTooLarge
		}
		return ErrInvalidJSON
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return ErrEmptyBody
	}

	payload := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ErrInvalidJSON
	}
	normalized, err := json.Marshal(NormalizeFields(payload))
	if err != nil {
		return ErrInvalidJSON
	}
	if err := json.Unmarshal(normalized, dst); err != nil {
		return ErrInvalidJSON
	}
	return nil
}

// FailDecode answers a DecodeJSON error.
func FailDecode(w http.ResponseWriter, err error, requestID string) {
	if errors.Is(err, ErrBodyTooLarge) {
		api.Fail(w, http.StatusBadRequest, "payload_too_large", "request body too large", requestID)
		return
	}
	api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), requestID)
}
