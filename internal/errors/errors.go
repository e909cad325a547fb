// Package errors implements the arbitrage engine's typed error taxonomy.
//
// Every recoverable condition inside the scanning pipeline (no quote, an
// invalid event, no eligible funds, a rejected filter, a provider timeout)
// is represented as an ArbError with a stable Code rather than a bespoke
// error type, so callers can branch on Code instead of on error identity.
package errors

import (
	"fmt"
	"runtime"
	"time"
)

// Code identifies the kind of failure, independent of the message text.
type Code string

const (
	// NoData is returned when a provider has no record for the requested
	// key at the requested instant.
	NoData Code = "NO_DATA"
	// InvalidEvent is returned when a detector's IsValid check fails.
	InvalidEvent Code = "INVALID_EVENT"
	// NoCandidate is returned when there are no eligible funds, or the
	// fund selector declines to choose one.
	NoCandidate Code = "NO_CANDIDATE"
	// FilterRejected is returned when a required SignalFilter rejects.
	FilterRejected Code = "FILTER_REJECTED"
	// ProviderTimeout is returned when a provider call exceeds its
	// implicit tick deadline; treated identically to NoData by callers.
	ProviderTimeout Code = "PROVIDER_TIMEOUT"
	// Config is returned when the engine is wired with an unknown plugin
	// name or an invalid threshold. Fatal: the engine does not start.
	Config Code = "CONFIG"
	// RepositoryIO is returned when a persistence write fails. The
	// in-memory state of the repository remains consistent.
	RepositoryIO Code = "REPOSITORY_IO"
)

// ArbError is a structured error carrying a stable Code, a human message,
// optional key/value detail, and the call site that raised it.
type ArbError struct {
	Code      Code
	Message   string
	Details   map[string]any
	Timestamp time.Time
	File      string
	Line      int
	Cause     error
}

func (e *ArbError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap allows errors.Is/errors.As from the standard library to see
// through an ArbError to its Cause.
func (e *ArbError) Unwrap() error {
	return e.Cause
}

// WithDetail attaches a key/value detail and returns the same error for
// chaining.
func (e *ArbError) WithDetail(key string, value any) *ArbError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates an ArbError, capturing the caller's file and line.
func New(code Code, message string) *ArbError {
	_, file, line, _ := runtime.Caller(1)
	return &ArbError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
		File:      file,
		Line:      line,
	}
}

// Newf creates an ArbError with a formatted message.
func Newf(code Code, format string, args ...any) *ArbError {
	_, file, line, _ := runtime.Caller(1)
	return &ArbError{
		Code:      code,
		Message:   fmt.Sprintf(format, args...),
		Timestamp: time.Now(),
		File:      file,
		Line:      line,
	}
}

// Wrap wraps an existing error with a Code and message. Returns nil if err
// is nil, so call sites can write `return errors.Wrap(err, ...)` unconditionally.
func Wrap(err error, code Code, message string) *ArbError {
	if err == nil {
		return nil
	}
	_, file, line, _ := runtime.Caller(1)
	return &ArbError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
		File:      file,
		Line:      line,
		Cause:     err,
	}
}

// CodeOf extracts the Code from err, walking its Unwrap chain. Returns ""
// if err is nil or carries no ArbError.
func CodeOf(err error) Code {
	for err != nil {
		if ae, ok := err.(*ArbError); ok {
			return ae.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return ""
}

// IsRetryable reports whether an error's code denotes a condition worth
// retrying (transient provider trouble), as opposed to a structural
// rejection (no candidate, filter reject, bad config).
func IsRetryable(err error) bool {
	switch CodeOf(err) {
	case ProviderTimeout, NoData:
		return true
	default:
		return false
	}
}

// IsFatal reports whether err should abort engine construction rather than
// be recovered inline by the chain executor.
func IsFatal(err error) bool {
	return CodeOf(err) == Config
}
