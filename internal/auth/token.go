package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"adboard/internal/domain"
)

// Options carries the signing configuration. It is built once at startup and
// never mutated afterwards.
type Options struct {
	SigningKey []byte
	Issuer     string
	Audience   string
	TokenTTL   time.Duration
}

// Issuer mints signed session tokens for authenticated users. Construction
// validates the configuration so Issue cannot fail on configuration grounds
// at request time.
type Issuer struct {
	opts Options
}

func NewIssuer(opts Options) (*Issuer, error) {
	if len(opts.SigningKey) == 0 {
		return nil, errors.New("signing key is required")
	}
	if opts.TokenTTL <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	return &Issuer{opts: opts}, nil
}

// Issue builds an HS256 token with the standard claim set. Tokens issued for
// the same user at the same instant still differ: each carries a fresh jti.
func (i *Issuer) Issue(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(user.ID, 10),
		Issuer:    i.opts.Issuer,
		Audience:  jwt.ClaimStrings{i.opts.Audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.opts.TokenTTL)),
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.opts.SigningKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies signature, issuer, audience and expiry, and returns the
// subject user id.
func (i *Issuer) Parse(tokenString string) (int64, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return i.opts.SigningKey, nil
		},
		jwt.WithIssuer(i.opts.Issuer),
		jwt.WithAudience(i.opts.Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return 0, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return 0, errors.New("unexpected claims type")
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse subject: %w", err)
	}
	return id, nil
}
