package fcm

import (
	"errors"
	"net/http"
)

// ErrorKind classifies a relay failure. It is also used as the metrics outcome label.
type ErrorKind string

const (
	KindUnauthorized     ErrorKind = "unauthorized"
	KindMethodNotAllowed ErrorKind = "method_not_allowed"
	KindBadRequest       ErrorKind = "bad_request"
	KindConfiguration    ErrorKind = "configuration_error"
	KindCredential       ErrorKind = "credential_error"
	KindUpstream         ErrorKind = "upstream_error"
	KindUnknown          ErrorKind = "unknown_error"
)

const (
	msgUnauthorized     = "unauthorized"
	msgMethodNotAllowed = "method not allowed"
	msgMissingFields    = "receiverToken, title and body are required"
	msgMissingTopic     = "topic, title and body are required"
)

// Error is a failure that already knows the HTTP status it maps to.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

var (
	ErrUnauthorized     = &Error{Kind: KindUnauthorized, Status: http.StatusUnauthorized, Message: msgUnauthorized}
	ErrMethodNotAllowed = &Error{Kind: KindMethodNotAllowed, Status: http.StatusMethodNotAllowed, Message: msgMethodNotAllowed}
)

func badRequest(message string, err error) *Error {
	return &Error{Kind: KindBadRequest, Status: http.StatusBadRequest, Message: message, Err: err}
}

func configurationError(message string) *Error {
	return &Error{Kind: KindConfiguration, Status: http.StatusInternalServerError, Message: message}
}

func credentialError(message string, err error) *Error {
	return &Error{Kind: KindCredential, Status: http.StatusInternalServerError, Message: message, Err: err}
}

// classify maps any error to the status, kind and message written to the caller.
// Errors that are not *Error are reported as 500 with their own text.
func classify(err error) (int, ErrorKind, string) {
	var relayErr *Error
	if errors.As(err, &relayErr) {
		return relayErr.Status, relayErr.Kind, relayErr.Error()
	}
	return http.StatusInternalServerError, KindUnknown, err.Error()
}
