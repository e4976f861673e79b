package calil

import (
	"errors"
	"fmt"
)

// Sentinel errors for error classification.
var (
	// ErrDecode indicates a wire payload that could not be parsed.
	ErrDecode = errors.New("malformed payload")

	// ErrUpstream indicates a non-success transport outcome at any stage.
	ErrUpstream = errors.New("upstream error")

	// ErrPollTimeout indicates the poll round budget ran out while the
	// check operation was still incomplete.
	ErrPollTimeout = errors.New("poll budget exhausted")

	// ErrValidation indicates invalid input rejected before any network call.
	ErrValidation = errors.New("validation error")

	// ErrConfiguration indicates an invalid or incomplete configuration.
	ErrConfiguration = errors.New("configuration error")
)

// DecodeError reports a wire payload that was not valid JSON after JSONP
// unwrapping. It is never downgraded to an empty result; callers must be able
// to tell "no data" from "malformed data".
type DecodeError struct {
	// Err is the underlying parse failure.
	Err error
}

// Error returns the error message.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed payload: %v", e.Err)
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *DecodeError) Unwrap() error { return e.Err }

// Is reports whether this error matches the target.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// UpstreamError reports a failed transport round against a Calil endpoint.
type UpstreamError struct {
	// Status is the HTTP status code. Zero when the request never got a
	// response (connection failure, cancellation mid-request).
	Status int

	// Endpoint is the API path the round was issued against.
	Endpoint string

	// Err is the underlying transport error, if any.
	Err error
}

// Error returns the error message, including the status when known.
func (e *UpstreamError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("upstream error: %s returned status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("upstream error: %s: %v", e.Endpoint, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *UpstreamError) Unwrap() error { return e.Err }

// Is reports whether this error matches the target.
func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }

// PollTimeoutError reports a check operation that stayed incomplete through
// the whole round budget. Distinct from UpstreamError so callers can decide
// whether a retry is worthwhile: a timeout may be transient, a 4xx/5xx is not.
type PollTimeoutError struct {
	// Session is the last continuation token observed.
	Session string

	// Rounds is the number of continuation rounds attempted.
	Rounds int
}

// Error returns the error message.
func (e *PollTimeoutError) Error() string {
	return fmt.Sprintf("poll budget exhausted after %d rounds (session %s)", e.Rounds, e.Session)
}

// Is reports whether this error matches the target.
func (e *PollTimeoutError) Is(target error) bool { return target == ErrPollTimeout }

// ValidationError reports invalid input caught before any network call.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s %s", e.Field, e.Message)
}

// Is reports whether this error matches the target.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
