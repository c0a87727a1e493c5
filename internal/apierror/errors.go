package apierror

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrNotFound is returned by repositories and gateways when a record is missing.
var ErrNotFound = errors.New("record not found")

// ValidationError is raised locally before any network call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func Invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

// NetworkError means the request never produced an HTTP response
// (connection refused, timeout, cancelled).
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network failure: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is a non-2xx reply. Message is the server's {error} text when
// the body carried one, otherwise the HTTP status line.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Is lets a remote 404 satisfy errors.Is(err, ErrNotFound).
func (e *ServerError) Is(target error) bool {
	return target == ErrNotFound && e.Status == 404
}

// MalformedResponseError is a reply that should have been JSON but was not.
type MalformedResponseError struct {
	Status  int
	Snippet string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("unexpected non-JSON response (%d): %s", e.Status, e.Snippet)
}

const snippetLimit = 120

// Snippet trims body to a short single-line excerpt suitable for display.
func Snippet(body string) string {
	s := strings.Join(strings.Fields(body), " ")
	if utf8.RuneCountInString(s) <= snippetLimit {
		return s
	}
	runes := []rune(s)
	return string(runes[:snippetLimit]) + "…"
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// SubmissionError is returned when an order could not be submitted. Message
// is the store's own error text when it sent one, else a generic
// network-failure message. The session ledger is left untouched.
type SubmissionError struct {
	Message string
	Err     error
}

func (e *SubmissionError) Error() string { return e.Message }

func (e *SubmissionError) Unwrap() error { return e.Err }

// GenericSubmissionFailure is shown when the store gave no usable message.
const GenericSubmissionFailure = "network failure: order was not submitted"

// NewSubmissionError picks the operator-facing message for a failed create.
func NewSubmissionError(err error) *SubmissionError {
	msg := GenericSubmissionFailure
	var se *ServerError
	var ve *ValidationError
	switch {
	case errors.As(err, &se) && strings.TrimSpace(se.Message) != "":
		msg = se.Message
	case errors.As(err, &ve):
		msg = ve.Error()
	}
	return &SubmissionError{Message: msg, Err: err}
}
