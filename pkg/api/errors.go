package api

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionExpired marks a 401 from any endpoint. It always escalates to
	// the session guard and is never shown as a form error.
	ErrSessionExpired = errors.New("session expired")

	// ErrNetworkUnavailable marks transport-level failures (unreachable host,
	// timeout) as distinct from application errors.
	ErrNetworkUnavailable = errors.New("network unavailable")

	// ErrNotLoggedIn is returned when no credential is stored at all.
	ErrNotLoggedIn = errors.New("not logged in")
)

// RequestError is a non-2xx application response carrying the server's
// structured detail message when one was present.
type RequestError struct {
	Status int
	Detail string
}

func (e *RequestError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// IsRequestError unwraps err into a RequestError when possible.
func IsRequestError(err error) (*RequestError, bool) {
	var re *RequestError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
