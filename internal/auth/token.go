// Package auth signs and verifies session tokens.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kirinyoku/eventbuzz/internal/domain"
)

var ErrInvalidToken = errors.New("invalid token")

const issuer = "eventbuzz"

type claims struct {
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues HS256 session tokens for actors.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token for actor.
//
// Parameters:
//   - actor: the principal the token speaks for
//
// Returns:
//   - string: the signed token
//   - time.Time: when the token expires
//   - error: if signing fails
func (m *TokenManager) Issue(actor domain.Actor) (string, time.Time, error) {
	const op = "auth.TokenManager.Issue"

	now := m.now().UTC()
	exp := now.Add(m.ttl)

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Name:  actor.DisplayName,
		Email: actor.Email,
		Role:  actor.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   actor.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})

	signed, err := t.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%s:%w", op, err)
	}

	return signed, exp, nil
}

// Parse verifies raw and returns the actor it was issued for.
func (m *TokenManager) Parse(raw string) (domain.Actor, error) {
	const op = "auth.TokenManager.Parse"

	var c claims
	tok, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !tok.Valid {
		return domain.Actor{}, fmt.Errorf("%s:%w", op, ErrInvalidToken)
	}

	if c.Subject == "" || !c.Role.Valid() {
		return domain.Actor{}, fmt.Errorf("%s:%w", op, ErrInvalidToken)
	}

	return domain.Actor{
		ID:          c.Subject,
		DisplayName: c.Name,
		Email:       c.Email,
		Role:        c.Role,
	}, nil
}
