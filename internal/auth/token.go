// Package auth issues and verifies the stateless session tokens handed out at
// login. Tokens are HS256 JWTs carrying the account id and email; nothing is
// stored server-side, so a token stays valid until its embedded expiry.
package auth

import (
	"errors"
	"fmt"
	"time"

	"scholarship-portal/internal/config"
	appErrors "scholarship-portal/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	SessionTTL    = 24 * time.Hour
	RememberMeTTL = 30 * 24 * time.Hour
)

// Claims is the token payload.
type Claims struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	jwt.RegisteredClaims
}

// Identity is what a verified token proves about its bearer.
type Identity struct {
	ID    uuid.UUID
	Email string
}

// Token is an issued session token and its expiry in epoch milliseconds.
type Token struct {
	Value     string
	ExpiresAt int64
}

type Issuer struct {
	secret []byte
	now    func() time.Time
}

type Option func(*Issuer)

// WithClock replaces time.Now for issuance and verification.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) {
		i.now = now
	}
}

// NewIssuer fails with config.ErrConfiguration when secret is empty.
func NewIssuer(secret string, opts ...Option) (*Issuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: token signing secret is not set", config.ErrConfiguration)
	}

	issuer := &Issuer{
		secret: []byte(secret),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(issuer)
	}

	return issuer, nil
}

// Issue signs a token for the account that lives 30 days when rememberMe is
// set and 1 day otherwise.
func (i *Issuer) Issue(accountID uuid.UUID, email string, rememberMe bool) (*Token, error) {
	ttl := SessionTTL
	if rememberMe {
		ttl = RememberMeTTL
	}

	issuedAt := i.now().Truncate(time.Second)
	expiresAt := issuedAt.Add(ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		ID:    accountID,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &Token{
		Value:     signed,
		ExpiresAt: expiresAt.UnixMilli(),
	}, nil
}

// Verify returns the identity bound to token. Any signature, algorithm, or
// expiry problem yields appErrors.ErrInvalidToken.
func (i *Issuer) Verify(token string) (*Identity, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, errors.Join(appErrors.ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.ID == uuid.Nil || claims.Email == "" {
		return nil, appErrors.ErrInvalidToken
	}

	return &Identity{ID: claims.ID, Email: claims.Email}, nil
}
