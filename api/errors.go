package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrRequestFailed matches every failure returned by the client.
	ErrRequestFailed = errors.New("request failed")
	// ErrNotFound matches failures caused by a 404 response.
	ErrNotFound = errors.New("not found")
)

// Error describes a failed API call. Status is 0 for transport and
// decoding failures.
type Error struct {
	Op     string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrRequestFailed:
		return true
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}
