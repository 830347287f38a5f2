package fetcher

import (
	"fmt"
	"net/http"
)

// ErrorClass classifies a failed fetch for reporting and retry decisions.
type ErrorClass int8

const (
	// ErrorClassNone means the fetch succeeded
	ErrorClassNone ErrorClass = iota
	// ErrorClassNetwork covers malformed requests and unrecoverable dial errors
	ErrorClassNetwork
	// ErrorClassTransient covers connection resets, timeouts, 429 and 5xx
	ErrorClassTransient
	// ErrorClassAuth covers 401 and 403
	ErrorClassAuth
	// ErrorClassHTTP covers every other non-2xx status
	ErrorClassHTTP
)

func (c ErrorClass) String() string {
	switch c {
	case ErrorClassNone:
		return "none"
	case ErrorClassNetwork:
		return "network"
	case ErrorClassTransient:
		return "transient"
	case ErrorClassAuth:
		return "auth"
	case ErrorClassHTTP:
		return "http"
	default:
		return "unknown"
	}
}

// StatusError is a non-2xx HTTP response carried as an error value.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

func statusError(code int) error {
	return &StatusError{StatusCode: code}
}
