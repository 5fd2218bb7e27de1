package llm

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyResponse = errors.New("provider returned no text")
	ErrMalformedJSON = errors.New("provider response is not valid JSON")
)

// StatusError is a non-2xx answer from a backend.
type StatusError struct {
	Backend    string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s error: status %d, body: %s", e.Backend, e.StatusCode, truncateBody(e.Body))
}

func NewStatusError(backend string, statusCode int, body []byte) error {
	return &StatusError{Backend: backend, StatusCode: statusCode, Body: string(body)}
}

// IsStatus reports whether err carries a backend status error with the given code.
func IsStatus(err error, code int) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == code
}

func truncateBody(body string) string {
	const max = 512
	if len(body) <= max {
		return body
	}
	return body[:max] + "..."
}
