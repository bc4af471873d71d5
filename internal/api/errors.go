// Package api implements the HTTP client for the TalentLens ranking service.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a failure for callers that branch on the failure class
// rather than the concrete error type.
type Kind int

const (
	// KindUnknown covers errors that did not originate in this package.
	KindUnknown Kind = iota
	// KindPrecondition marks requests rejected before any network call.
	KindPrecondition
	// KindTransport marks requests that never completed or returned non-2xx.
	KindTransport
	// KindProtocol marks 2xx responses missing an expected field or shape.
	KindProtocol
	// KindAuthExpired is a distinguished transport failure: the service
	// answered 401 and the stored token is no longer accepted.
	KindAuthExpired
)

// PreconditionError indicates a request was rejected client-side, before any
// network call was made.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return e.Reason
}

// TransportError indicates the request never completed or the service
// answered with a non-success status.
type TransportError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *TransportError) Error() string {
	if e.StatusCode == http.StatusUnauthorized {
		return "Session expired. Please log in again."
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Cause != nil {
		return fmt.Sprintf("request failed: %v", e.Cause)
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// ProtocolError indicates a successful response that did not carry the
// expected payload, such as a submission acknowledged without a session id.
type ProtocolError struct {
	Message string
}

func (e *ProtocolError) Error() string {
	return e.Message
}

// ErrorKind returns the failure class of err.
func ErrorKind(err error) Kind {
	var pre *PreconditionError
	if errors.As(err, &pre) {
		return KindPrecondition
	}
	var transport *TransportError
	if errors.As(err, &transport) {
		if transport.StatusCode == http.StatusUnauthorized {
			return KindAuthExpired
		}
		return KindTransport
	}
	var protocol *ProtocolError
	if errors.As(err, &protocol) {
		return KindProtocol
	}
	return KindUnknown
}

// normalizeDetail extracts a single message from a FastAPI-style error body.
// The detail field is either a plain string, used verbatim, or a list of
// validation errors whose msg fields are joined with a comma. Anything else
// yields an empty string so the caller can fall back to a generic message.
func normalizeDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}

	var message string
	if err := json.Unmarshal(payload.Detail, &message); err == nil {
		return message
	}

	var validationErrors []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(payload.Detail, &validationErrors); err == nil {
		messages := make([]string, 0, len(validationErrors))
		for _, ve := range validationErrors {
			if ve.Msg != "" {
				messages = append(messages, ve.Msg)
			}
		}
		return strings.Join(messages, ", ")
	}

	return ""
}

// failure turns a non-success response into a TransportError. The service's
// detail message wins, then the raw body text, then the fallback.
func failure(statusCode int, body []byte, fallback string) error {
	message := normalizeDetail(body)
	if message == "" {
		message = strings.TrimSpace(string(body))
	}
	if message == "" {
		message = fallback
	}
	return &TransportError{StatusCode: statusCode, Message: message}
}

// authFailure is like failure but never echoes the raw body: the auth
// endpoints answer JSON, and a body without a usable detail field maps to the
// generic message.
func authFailure(statusCode int, body []byte, fallback string) error {
	message := normalizeDetail(body)
	if message == "" {
		message = fallback
	}
	return &TransportError{StatusCode: statusCode, Message: message}
}
