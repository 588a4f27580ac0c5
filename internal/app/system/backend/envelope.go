// internal/app/system/backend/envelope.go
package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// envelope is the wrapped response shape some endpoints use:
//
//	{"success": true, "status": 200, "message": "...", "data": ...}
type envelope struct {
	Success *bool           `json:"success"`
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// isEnvelope reports whether body is a JSON object carrying envelope keys.
// A bare record that happens to have a "status" field is not an envelope
// unless it also carries "data" or "success".
func isEnvelope(body []byte) (envelope, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return envelope{}, false
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return envelope{}, false
	}
	_, hasData := probe["data"]
	_, hasSuccess := probe["success"]
	if !hasData && !hasSuccess {
		return envelope{}, false
	}
	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return envelope{}, false
	}
	return env, true
}

// unwrap returns the payload of body, peeling off an envelope if present.
// An envelope with success=false becomes an *APIError.
func unwrap(body []byte, httpStatus int) ([]byte, error) {
	env, ok := isEnvelope(body)
	if !ok {
		return bytes.TrimSpace(body), nil
	}
	if env.Success != nil && !*env.Success {
		status := env.Status
		if status == 0 {
			status = httpStatus
		}
		return nil, &APIError{Status: status, Message: env.Message}
	}
	return bytes.TrimSpace(env.Data), nil
}

// decodeList normalises a bare JSON array or an enveloped array into []T.
// A missing or null payload yields an empty, non-nil slice.
func decodeList[T any](body []byte, httpStatus int) ([]T, error) {
	payload, err := unwrap(body, httpStatus)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		return out, nil
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// decodeOne normalises a bare JSON object or an enveloped object into T.
func decodeOne[T any](body []byte, httpStatus int) (T, error) {
	var out T
	payload, err := unwrap(body, httpStatus)
	if err != nil {
		return out, err
	}
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		return out, nil
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return out, fmt.Errorf("decode record: %w", err)
	}
	return out, nil
}

// errorMessage pulls a human message out of an error body of either shape.
func errorMessage(body []byte) string {
	var m struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(bytes.TrimSpace(body), &m); err != nil {
		return ""
	}
	if m.Message != "" {
		return m.Message
	}
	return m.Error
}
