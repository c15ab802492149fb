package checkin

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrTicketNotFound = errors.New("ticket not found")
	ErrAlreadyUsed    = errors.New("ticket already checked in")
)

// AlreadyUsedError reports when the ticket was redeemed.
type AlreadyUsedError struct {
	TicketID    string
	CheckedInAt time.Time
}

func (e AlreadyUsedError) Error() string {
	if e.CheckedInAt.IsZero() {
		return fmt.Sprintf("ticket %s already checked in", e.TicketID)
	}
	return fmt.Sprintf("ticket %s already checked in at %s", e.TicketID, e.CheckedInAt.Format(time.RFC3339))
}

func (e AlreadyUsedError) Unwrap() error {
	return ErrAlreadyUsed
}
