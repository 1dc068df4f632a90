package client

import (
	"errors"
	"fmt"
)

// TransportError reports a request that never produced an HTTP response:
// DNS failure, connection refused, timeout, and the like. A response with a
// 4xx/5xx status is a successful transport outcome, carried as an ordinary
// *Response, not as an error.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsTransportError reports whether err, or anything it wraps, is a
// *TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
