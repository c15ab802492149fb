package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrMalformedSeatKey = errors.New("malformed seat key")

// Grid limits. Rows are labelled A to Z.
const (
	MaxRows = 26
	MaxCols = 100
)

// SeatKey builds the "{row}-{col}" key for a grid cell.
func SeatKey(row, col int) string {
	return strconv.Itoa(row) + "-" + strconv.Itoa(col)
}

// ParseSeatKey splits a "{row}-{col}" key into its zero-based indexes.
// Only the canonical decimal form is accepted, so "01-2" and "+1-2" are malformed.
func ParseSeatKey(key string) (row, col int, err error) {
	r, c, ok := strings.Cut(key, "-")
	if !ok {
		return 0, 0, fmt.Errorf("%q: %w", key, ErrMalformedSeatKey)
	}

	row, err = strconv.Atoi(r)
	if err != nil || row < 0 {
		return 0, 0, fmt.Errorf("%q: %w", key, ErrMalformedSeatKey)
	}

	col, err = strconv.Atoi(c)
	if err != nil || col < 0 {
		return 0, 0, fmt.Errorf("%q: %w", key, ErrMalformedSeatKey)
	}

	if SeatKey(row, col) != key {
		return 0, 0, fmt.Errorf("%q: %w", key, ErrMalformedSeatKey)
	}

	return row, col, nil
}

// InGrid reports whether key is well formed and addresses a cell of the event grid.
func (e *Event) InGrid(key string) bool {
	row, col, err := ParseSeatKey(key)
	if err != nil {
		return false
	}
	return row < e.Rows && col < e.Cols
}

// AvailableSeats counts the free cells of the grid.
func (e *Event) AvailableSeats() int {
	reserved := 0
	for k, v := range e.Seats {
		if v && e.InGrid(k) {
			reserved++
		}
	}
	return e.Rows*e.Cols - reserved
}
