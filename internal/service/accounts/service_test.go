package accounts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kirinyoku/eventbuzz/internal/auth"
	"github.com/kirinyoku/eventbuzz/internal/domain"
	"github.com/kirinyoku/eventbuzz/internal/ident"
	"github.com/kirinyoku/eventbuzz/internal/repository/memory"
)

func newService() (*Service, *auth.TokenManager) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return New(memory.New(), tokens, Config{BcryptCost: bcrypt.MinCost}), tokens
}

func TestRegisterLogin(t *testing.T) {
	svc, tokens := newService()
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Name: " Ann ", Email: " Ann@X.io ", Password: "pw"})
	require.NoError(t, err)
	assert.True(t, ident.HasPrefix(u.ID, ident.PrefixUser))
	assert.Equal(t, "Ann", u.Name)
	assert.Equal(t, "ann@x.io", u.Email)
	assert.Equal(t, domain.RoleUser, u.Role)
	assert.NotEqual(t, "pw", u.PasswordHash)

	sess, err := svc.Login(ctx, "ANN@x.io", "pw", "")
	require.NoError(t, err)
	assert.Equal(t, u.ID, sess.User.ID)

	actor, err := tokens.Parse(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, ActorOf(*u), actor)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "Ann", Email: "ann@x.io", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Name: "Other", Email: "ANN@x.io", Password: "pw2"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_Invalid(t *testing.T) {
	svc, _ := newService()

	tests := []struct {
		field string
		in    RegisterInput
	}{
		{"name", RegisterInput{Email: "a@x.io", Password: "pw"}},
		{"email", RegisterInput{Name: "A", Email: "nope", Password: "pw"}},
		{"password", RegisterInput{Name: "A", Email: "a@x.io"}},
		{"role", RegisterInput{Name: "A", Email: "a@x.io", Password: "pw", Role: "root"}},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.in)

			var invalid InvalidInputError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}

func TestLogin_Rejects(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "Ann", Email: "ann@x.io", Password: "pw", Role: domain.RoleUser})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "ann@x.io", "wrong", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "bob@x.io", "pw", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "ann@x.io", "pw", domain.RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
