package naver

import (
	"errors"
	"fmt"
)

// ErrNoCredentials short-circuits every operation before any network
// I/O when the client id/secret pair is not configured.
var ErrNoCredentials = errors.New("naver api credentials not configured")

// StatusError reports a non-2xx response. The raw body is retained for
// diagnostics but kept out of the message.
type StatusError struct {
	Endpoint string
	Status   int
	Body     []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API error: %d", e.Endpoint, e.Status)
}

// DecodeError reports a 2xx response whose payload did not match the
// expected shape.
type DecodeError struct {
	Endpoint string
	Err      error
	Body     []byte
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s response decode failed: %v (body: %s)", e.Endpoint, e.Err, snippet(e.Body))
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func snippet(body []byte) string {
	const max = 200
	if len(body) <= max {
		return string(body)
	}
	return string(body[:max]) + "..."
}
