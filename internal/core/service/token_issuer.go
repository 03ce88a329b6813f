package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/moviemaker/movie-api/internal/core/domain"
)

// TokenTTL is the fixed lifetime of every issued token.
const TokenTTL = 15 * time.Minute

// MinKeyBytes is the smallest HMAC key accepted for HS512 signing.
const MinKeyBytes = 64

// TokenConfig holds the values shared between issuer and validator.
type TokenConfig struct {
	Key      []byte
	Issuer   string
	Audience string
}

// tokenClaims keeps the persisted user id in "sub" and the username in "name".
type tokenClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// TokenIssuer signs HS512 bearer tokens and validates them on the way back in.
type TokenIssuer struct {
	key      []byte
	issuer   string
	audience string
	now      func() time.Time
}

// NewTokenIssuer fails when any part of the signing configuration is missing.
func NewTokenIssuer(cfg TokenConfig) (*TokenIssuer, error) {
	switch {
	case len(cfg.Key) == 0:
		return nil, errors.New("token issuer: signing key is required")
	case len(cfg.Key) < MinKeyBytes:
		return nil, fmt.Errorf("token issuer: signing key must be at least %d bytes, got %d", MinKeyBytes, len(cfg.Key))
	case cfg.Issuer == "":
		return nil, errors.New("token issuer: issuer is required")
	case cfg.Audience == "":
		return nil, errors.New("token issuer: audience is required")
	}
	return &TokenIssuer{
		key:      cfg.Key,
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		now:      time.Now,
	}, nil
}

// Issue returns a compact signed token for user, valid for TokenTTL from now.
func (i *TokenIssuer) Issue(user *domain.User) (string, error) {
	if user == nil || user.ID == "" {
		return "", errors.New("issue token: user id is required")
	}

	now := i.now()
	claims := tokenClaims{
		Name: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return signed, nil
}

// Parse validates signature, algorithm, issuer, audience and expiry and
// returns the caller identity carried by the token.
func (i *TokenIssuer) Parse(raw string) (domain.Identity, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return i.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithAudience(i.audience),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if claims.Subject == "" || claims.ID == "" {
		return domain.Identity{}, fmt.Errorf("%w: missing subject or token id", domain.ErrInvalidToken)
	}

	return domain.Identity{
		UserID:    claims.Subject,
		Username:  claims.Name,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
