package client

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrEmptyAuthKey     = errors.New("auth key cannot be empty")
	ErrEmptyDocument    = errors.New("document content cannot be empty")
	ErrEmptyText        = errors.New("text cannot be empty")
	ErrEmptyDocumentID  = errors.New("document id cannot be empty")
	ErrEmptyDocumentKey = errors.New("document key cannot be empty")
	ErrEmptyGlossaryID  = errors.New("glossary id cannot be empty")
	ErrEmptyEntries     = errors.New("glossary entries cannot be empty")
	ErrNilReader        = errors.New("reader cannot be nil")
	ErrNilWriter        = errors.New("writer cannot be nil")
)

// ValidationError reports invalid translation options, caught before any
// network activity.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// AuthorizationError reports a rejected credential. Never retried.
type AuthorizationError struct {
	Operation string
	Message   string
}

func (e *AuthorizationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: authorization failed", e.Operation)
	}
	return fmt.Sprintf("%s: authorization failed: %s", e.Operation, e.Message)
}

// QuotaExceededError reports an exhausted usage limit, either from the
// local pre-check or from a server rejection.
type QuotaExceededError struct {
	Kind    LimitKind
	Message string
}

func (e *QuotaExceededError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("%s quota exceeded", e.Kind)
	}
	if e.Message == "" {
		return "quota exceeded"
	}
	return "quota exceeded: " + e.Message
}

// TooManyRequestsError reports that every retry attempt was rejected
// with a rate-limit status. Callers can match it to back off at a
// higher level than a single call.
type TooManyRequestsError struct {
	Operation string
	Attempts  int
}

func (e *TooManyRequestsError) Error() string {
	return fmt.Sprintf("%s: rate limited after %d attempts", e.Operation, e.Attempts)
}

// ConnectionError reports a transport-level failure that survived every
// retry attempt.
type ConnectionError struct {
	Operation string
	Err       error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s: connection failed: %v", e.Operation, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// DocumentTranslationError reports a document job the server finished in
// the error state. Carries the server-provided message.
type DocumentTranslationError struct {
	DocumentID string
	Message    string
}

func (e *DocumentTranslationError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "unknown error"
	}
	return fmt.Sprintf("document %s: translation failed: %s", e.DocumentID, msg)
}

// TimeoutError reports that an overall deadline elapsed. For document
// polling the server-side job keeps running; the client just stopped
// waiting.
type TimeoutError struct {
	Operation string
	Elapsed   time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: timed out after %s", e.Operation, e.Elapsed.Round(time.Millisecond))
}

// APIError reports a request the server rejected with a status this
// client does not map to a more specific error type.
type APIError struct {
	Operation  string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s failed with status %d", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("%s failed with status %d: %s", e.Operation, e.StatusCode, e.Message)
}
