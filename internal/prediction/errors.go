package prediction

import (
	"errors"
	"fmt"
)

// NetworkError means the request could not be sent or no response was received
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServiceError means the service answered with a non-2xx status
type ServiceError struct {
	StatusCode int
	Status     string // Status text, e.g. "Internal Server Error"
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("API error: %s", e.Status)
}

// ParseError means the response body was malformed or incomplete
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Kind classifies err for logs and the fetch journal
func Kind(err error) string {
	var (
		netErr   *NetworkError
		svcErr   *ServiceError
		parseErr *ParseError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &netErr):
		return "network"
	case errors.As(err, &svcErr):
		return "service"
	case errors.As(err, &parseErr):
		return "parse"
	default:
		return "unknown"
	}
}
