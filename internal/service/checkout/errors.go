package checkout

import (
	"errors"
	"fmt"
	"time"

	"github.com/kirinyoku/eventbuzz/internal/format"
)

var (
	ErrUnauthenticated = errors.New("sign in to purchase tickets")
	ErrEmptySelection  = errors.New("select at least one seat")
	ErrInvalidBuyer    = errors.New("buyer name and email are required")
	ErrInvalidSeat     = errors.New("invalid seat")
	ErrSeatConflict    = errors.New("some seats are no longer available")
	ErrEventNotFound   = errors.New("event not found")
	ErrRateLimited     = errors.New("too many checkout attempts")
)

type InvalidSeatError struct {
	Seat   string
	Reason string
}

func (e InvalidSeatError) Error() string {
	return fmt.Sprintf("invalid seat %q: %s", e.Seat, e.Reason)
}

func (e InvalidSeatError) Unwrap() error {
	return ErrInvalidSeat
}

type SeatConflictError struct {
	Seats []string
}

func (e SeatConflictError) Error() string {
	if len(e.Seats) == 0 {
		return ErrSeatConflict.Error()
	}
	return fmt.Sprintf("seats already reserved: %s", format.JoinSeatLabels(e.Seats))
}

func (e SeatConflictError) Unwrap() error {
	return ErrSeatConflict
}

type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited, retry in %s", e.RetryAfter)
}

func (e RateLimitedError) Unwrap() error {
	return ErrRateLimited
}
