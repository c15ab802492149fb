package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/kirinyoku/eventbuzz/internal/repository"
)

func TestTranslateDBErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "no rows", err: pgx.ErrNoRows, want: repository.ErrNotFound},
		{name: "wrapped no rows", err: fmt.Errorf("scan: %w", pgx.ErrNoRows), want: repository.ErrNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: repository.ErrConflict},
		{name: "serialization failure", err: &pgconn.PgError{Code: "40001"}, want: repository.ErrConflict},
		{name: "foreign key", err: &pgconn.PgError{Code: "23503"}, want: repository.ErrNotFound},
		{name: "other pg error", err: &pgconn.PgError{Code: "42P01"}, want: repository.ErrUnavailable},
		{name: "network", err: errors.New("dial tcp: connection refused"), want: repository.ErrUnavailable},
		{name: "deadline", err: context.DeadlineExceeded, want: context.DeadlineExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, translateDBErr(tt.err), tt.want)
		})
	}

	assert.NoError(t, translateDBErr(nil))
}

func TestWrapDBErrKeepsOp(t *testing.T) {
	err := wrapDBErr("postgres.EventRepo.Get", pgx.ErrNoRows)

	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Contains(t, err.Error(), "postgres.EventRepo.Get")
	assert.NoError(t, wrapDBErr("op", nil))
}

func TestUnavailableKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := translateDBErr(cause)

	assert.ErrorIs(t, err, repository.ErrUnavailable)
	assert.ErrorIs(t, err, cause)
}
