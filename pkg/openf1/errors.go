package openf1

import (
	"context"
	"fmt"
	"net"

	"github.com/pkg/errors"
)

// ErrorKind classifies every failure the client can return.
type ErrorKind string

const (
	KindConfiguration  ErrorKind = "configuration"
	KindInvalidRequest ErrorKind = "invalid_request"
	KindTransport      ErrorKind = "transport"
	KindRemoteStatus   ErrorKind = "remote_status"
	KindDecode         ErrorKind = "decode"
	KindUnknown        ErrorKind = "unknown"
)

var (
	ErrEmptyEndpoint = errors.New("empty endpoint")
	ErrInvalidURL    = errors.New("invalid request url")
)

// ConfigError reports a missing or malformed configuration value. No request
// is attempted when one is returned.
type ConfigError struct {
	Key string
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("openf1: configuration %s: %v", e.Key, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// RequestError reports a request that could not be built.
type RequestError struct {
	Endpoint string
	Err      error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("openf1: request %q: %v", e.Endpoint, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// TransportError reports a connection, DNS, timeout or read failure.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("openf1: GET %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// RemoteStatusError reports a response outside the 2xx range.
type RemoteStatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *RemoteStatusError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	if body == "" {
		return fmt.Sprintf("openf1: GET %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("openf1: GET %s: status %d: %s", e.URL, e.StatusCode, body)
}

// DecodeError reports a body that is not a JSON array of objects.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("openf1: decode %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Kind returns the category of err.
func Kind(err error) ErrorKind {
	var (
		configErr  *ConfigError
		requestErr *RequestError
		transErr   *TransportError
		statusErr  *RemoteStatusError
		decodeErr  *DecodeError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &configErr):
		return KindConfiguration
	case errors.As(err, &requestErr):
		return KindInvalidRequest
	case errors.As(err, &transErr):
		return KindTransport
	case errors.As(err, &statusErr):
		return KindRemoteStatus
	case errors.As(err, &decodeErr):
		return KindDecode
	}
	return KindUnknown
}
