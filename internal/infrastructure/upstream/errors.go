package upstream

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
)

// APIError carries a backend failure back to the caller. Message is the
// first available of a field-specific message, a general message, or the
// operation's fallback string; it is meant to be shown verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err is a backend 401. Only unauthorized
// responses are retried (once, after a refresh); everything else is
// terminal for the operation.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// General message keys, checked after field-specific errors, in order.
var generalKeys = []string{"detail", "message", "error", "non_field_errors"}

func isGeneralKey(key string) bool {
	for _, g := range generalKeys {
		if key == g {
			return true
		}
	}
	return false
}

// newAPIError builds an APIError from a response body. The backend sends
// either DRF field maps like {"email": ["taken"]} or {"detail": "..."}
// style general messages; field-specific messages win over general ones,
// and anything unparsable falls back to the supplied fallback string.
func newAPIError(status int, body []byte, fallback string) *APIError {
	apiErr := &APIError{StatusCode: status, Message: fallback}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil || len(payload) == 0 {
		return apiErr
	}

	// Field-specific errors: take the first field in sorted order so the
	// surfaced message is deterministic.
	keys := make([]string, 0, len(payload))
	for k := range payload {
		if !isGeneralKey(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		if msg := stringValue(payload[k]); msg != "" {
			apiErr.Message = fmt.Sprintf("%s: %s", k, msg)
			return apiErr
		}
	}

	for _, key := range generalKeys {
		if msg := stringValue(payload[key]); msg != "" {
			apiErr.Message = msg
			return apiErr
		}
	}

	return apiErr
}

// stringValue extracts a display string from a raw JSON value that is
// either a string or a non-empty array of strings.
func stringValue(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return list[0]
	}
	return ""
}
