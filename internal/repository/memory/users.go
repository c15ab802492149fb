package memory

import (
	"context"
	"fmt"

	"github.com/kirinyoku/eventbuzz/internal/domain"
	"github.com/kirinyoku/eventbuzz/internal/repository"
)

type UserRepo struct {
	store *Store
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) error {
	const op = "memory.UserRepo.Create"

	err := r.store.with(ctx, func(st *state) error {
		if _, ok := st.users[u.ID]; ok {
			return repository.ErrConflict
		}
		if _, ok := st.emails[u.Email]; ok {
			return repository.ErrConflict
		}

		st.users[u.ID] = u
		st.emails[u.Email] = u.ID

		return nil
	})
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const op = "memory.UserRepo.GetByEmail"

	var out domain.User
	err := r.store.with(ctx, func(st *state) error {
		id, ok := st.emails[email]
		if !ok {
			return repository.ErrNotFound
		}
		out = st.users[id]
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &out, nil
}
