package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/kirinyoku/eventbuzz/internal/auth"
	"github.com/kirinyoku/eventbuzz/internal/domain"
	"github.com/kirinyoku/eventbuzz/internal/ident"
	"github.com/kirinyoku/eventbuzz/internal/repository"
)

type Config struct {
	BcryptCost int
}

type Service struct {
	store  repository.Store
	tokens *auth.TokenManager
	cfg    Config
	now    func() time.Time
}

func New(store repository.Store, tokens *auth.TokenManager, cfg Config) *Service {
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		cfg.BcryptCost = bcrypt.DefaultCost
	}

	return &Service{
		store:  store,
		tokens: tokens,
		cfg:    cfg,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// Session is a signed-in user with a bearer token.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      domain.User
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account. Role defaults to user.
//
// Parameters:
//   - ctx: request-scoped context.
//   - in: name, email, password and role of the new account.
//
// Returns:
//   - *domain.User: the created user.
//   - error: accounts.InvalidInputError if a field is blank or the role is unknown.
//   - error: accounts.ErrEmailTaken if the email is registered already.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	const op = "service.accounts.Register"

	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}

	switch {
	case name == "":
		return nil, fmt.Errorf("%s:%w", op, InvalidInputError{Field: "name", Reason: "required"})
	case email == "" || !strings.Contains(email, "@"):
		return nil, fmt.Errorf("%s:%w", op, InvalidInputError{Field: "email", Reason: "must be an email address"})
	case in.Password == "":
		return nil, fmt.Errorf("%s:%w", op, InvalidInputError{Field: "password", Reason: "required"})
	case !role.Valid():
		return nil, fmt.Errorf("%s:%w", op, InvalidInputError{Field: "role", Reason: "must be user or admin"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	now := s.now()
	u := domain.User{
		ID:           ident.NewAt(ident.PrefixUser, now),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
	}

	if err := s.store.Users().Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%s:%w", op, ErrEmailTaken)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &u, nil
}

// Login checks credentials and issues a session token. A non-empty role
// restricts the login to accounts holding it.
//
// Returns:
//   - *Session: the token and the signed-in user.
//   - error: accounts.ErrInvalidCredentials if the email, password or role does not match.
func (s *Service) Login(ctx context.Context, email, password string, role domain.Role) (*Session, error) {
	const op = "service.accounts.Login"

	u, err := s.store.Users().GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, fmt.Errorf("%s:%w", op, ErrInvalidCredentials)
	}

	if role != "" && u.Role != role {
		return nil, fmt.Errorf("%s:%w", op, ErrInvalidCredentials)
	}

	token, exp, err := s.tokens.Issue(ActorOf(*u))
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &Session{Token: token, ExpiresAt: exp, User: *u}, nil
}

func ActorOf(u domain.User) domain.Actor {
	return domain.Actor{
		ID:          u.ID,
		DisplayName: u.Name,
		Email:       u.Email,
		Role:        u.Role,
	}
}
