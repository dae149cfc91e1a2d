package notes

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the note id is unknown to the store or to the local list.
	ErrNotFound = errors.New("note not found")
	// ErrValidation means the submission was rejected as empty or malformed.
	ErrValidation = errors.New("invalid note")
	// ErrMalformed means the store answered with a payload that could not be decoded.
	ErrMalformed = errors.New("malformed response")
)

// NetworkError reports that the store could not be reached.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: note store unreachable: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// StoreError is a non-success response that has no more specific meaning.
type StoreError struct {
	Op      string
	Status  int
	Message string
}

func (e *StoreError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: note store returned %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: note store returned %d: %s", e.Op, e.Status, e.Message)
}
