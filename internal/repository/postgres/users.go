package postgres

import (
	"context"

	"github.com/kirinyoku/eventbuzz/internal/domain"
)

type UserRepo struct {
	db DB
}

// Create inserts a user.
//
// Returns:
//   - error: repository.ErrConflict if the ID or email is taken.
func (r *UserRepo) Create(ctx context.Context, u domain.User) error {
	const op = "postgres.UserRepo.Create"

	if _, err := r.db.Exec(ctx,
		`INSERT INTO users(id, name, email, password_hash, role, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Name, u.Email, u.PasswordHash, string(u.Role), u.CreatedAt,
	); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

// GetByEmail retrieves a user by normalized email.
//
// Returns:
//   - *domain.User: the user when found.
//   - error: repository.ErrNotFound if no account uses the email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const op = "postgres.UserRepo.GetByEmail"

	var (
		u    domain.User
		role string
	)
	if err := r.db.QueryRow(ctx,
		`SELECT id, name, email, password_hash, role, created_at
		 FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.CreatedAt); err != nil {
		return nil, wrapDBErr(op, err)
	}

	u.Role = domain.Role(role)
	u.CreatedAt = u.CreatedAt.UTC()

	return &u, nil
}
