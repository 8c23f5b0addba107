package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"

	"perfectmatch/internal/common"
)

// Error carries the HTTP status and the human-readable message extracted
// from a backend error payload. It unwraps to the matching sentinel in the
// common package so callers can branch with errors.Is.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend: %s (HTTP %d)", e.Message, e.Status)
}

func (e *Error) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized:
		return common.ErrUnauthorized
	case e.Status == http.StatusNotFound:
		return common.ErrNotFound
	case e.Status >= 500:
		return common.ErrServer
	default:
		return nil
	}
}

// ExtractMessage pulls a human-readable message out of a loosely-typed error
// payload. Priority: raw string body, then "message" field, then "error"
// field, then a generic HTTP line.
func ExtractMessage(body []byte, status int) string {
	if len(body) > 0 {
		var s string
		if err := json.Unmarshal(body, &s); err == nil && s != "" {
			return s
		}
		var m map[string]any
		if err := json.Unmarshal(body, &m); err == nil {
			if v, ok := m["message"].(string); ok && v != "" {
				return v
			}
			if v, ok := m["error"].(string); ok && v != "" {
				return v
			}
		}
		// plain-text bodies come back verbatim
		if !json.Valid(body) {
			return string(body)
		}
	}
	return fmt.Sprintf("HTTP %d", status)
}

// classifyTransportErr maps a resty transport error onto the taxonomy.
// Cancellation passes through untouched so callers can stay silent on it.
func classifyTransportErr(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", common.ErrTimeout, err)
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return fmt.Errorf("%w: %v", common.ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", common.ErrNetwork, err)
}

func statusError(status int, body []byte) error {
	return &Error{Status: status, Message: ExtractMessage(body, status)}
}
