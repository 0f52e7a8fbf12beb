package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is against any error returned by the collector.
var (
	ErrAuth       = errors.New("authentication failed")
	ErrConnection = errors.New("connection failed")
	ErrProtocol   = errors.New("unexpected gateway response")
	ErrStorage    = errors.New("storage failure")
	ErrTimeout    = errors.New("timed out")
)

// CollectorError is a categorized error with an optional hint for the user
type CollectorError struct {
	Err        error
	Kind       error
	Message    string
	Op         string
	Suggestion string
}

func (e *CollectorError) Error() string {
	msg := e.Kind.Error()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += fmt.Sprintf(" (%v)", e.Err)
	}
	return msg
}

func (e *CollectorError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the kind sentinel of this error
func (e *CollectorError) Is(target error) bool {
	return e.Kind == target
}

// WithSuggestion returns a copy of the error carrying a hint for the user
func (e *CollectorError) WithSuggestion(suggestion string) *CollectorError {
	c := *e
	c.Suggestion = suggestion
	return &c
}

func newError(kind error, op, msg string, err error) *CollectorError {
	return &CollectorError{Err: err, Kind: kind, Message: msg, Op: op}
}

// NewAuthError creates an ErrAuth error
func NewAuthError(op, msg string, err error) *CollectorError {
	return newError(ErrAuth, op, msg, err)
}

// NewConnectionError creates an ErrConnection error
func NewConnectionError(op, msg string, err error) *CollectorError {
	return newError(ErrConnection, op, msg, err)
}

// NewProtocolError creates an ErrProtocol error
func NewProtocolError(op, msg string, err error) *CollectorError {
	return newError(ErrProtocol, op, msg, err)
}

// NewStorageError creates an ErrStorage error
func NewStorageError(op, msg string, err error) *CollectorError {
	return newError(ErrStorage, op, msg, err)
}

// NewTimeoutError creates an ErrTimeout error
func NewTimeoutError(op, msg string, err error) *CollectorError {
	return newError(ErrTimeout, op, msg, err)
}

// SuggestionOf returns the first suggestion found in the error chain
func SuggestionOf(err error) string {
	var ce *CollectorError
	if errors.As(err, &ce) {
		return ce.Suggestion
	}
	return ""
}
