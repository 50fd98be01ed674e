package lastfm

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidReference is returned when an entity is constructed without
	// a usable Fetcher.
	ErrInvalidReference = errors.New("lastfm: fetcher reference must be supplied")

	// ErrMissingIdentity is returned by identity-dependent operations on an
	// entity whose identity attributes were not supplied.
	ErrMissingIdentity = errors.New("lastfm: identity attribute is missing")

	// ErrRemote is matched by every *RemoteError.
	ErrRemote = errors.New("lastfm: remote error")

	// ErrMalformedResponse is returned when a response cannot be read as a
	// tree or lacks the element a relationship is built from.
	ErrMalformedResponse = errors.New("lastfm: malformed response")

	// ErrUnsupported is returned by lookups that are declared but not
	// implemented. It also matches errors.ErrUnsupported.
	ErrUnsupported = fmt.Errorf("lastfm: lookup not implemented: %w", errors.ErrUnsupported)
)

// RemoteError describes a failed call to the web service.
//
// Code is the Last.fm error code for service-reported failures (for
// example 6, "Tag not found") or the HTTP status code for transport-level
// failures. Code is 0 when the request never got a response.
type RemoteError struct {
	Method  string
	Code    int
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Code != 0 {
		return fmt.Sprintf("lastfm: %s failed (%d): %s", e.Method, e.Code, msg)
	}
	return fmt.Sprintf("lastfm: %s failed: %s", e.Method, msg)
}

// Unwrap returns the underlying cause, if any.
func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrRemote.
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemote
}
