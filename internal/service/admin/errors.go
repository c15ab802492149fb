package admin

import (
	"errors"
	"fmt"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrEventConflict = errors.New("event already exists")
	ErrGridImmutable = errors.New("seat grid dimensions cannot change")
)

type InvalidEventError struct {
	Field  string
	Reason string
}

func (e InvalidEventError) Error() string {
	return fmt.Sprintf("invalid event %s: %s", e.Field, e.Reason)
}
