package repository

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrSeatsUnavailable = errors.New("some seats unavailable")
	ErrAlreadyCheckedIn = errors.New("already checked in")
	ErrUnavailable      = errors.New("store unavailable")
)
