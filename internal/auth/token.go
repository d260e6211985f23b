package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const DefaultTokenTTL = 24 * time.Hour

// Claims carried by a session token. LoginTime is unix milliseconds.
type Claims struct {
	UserID    string `json:"userId"`
	LoginTime int64  `json:"loginTime"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 session tokens
type Issuer struct {
	secret []byte
	ttl    time.Duration
	clock  func() time.Time
}

type IssuerOption func(*Issuer)

// WithTTL overrides DefaultTokenTTL
func WithTTL(ttl time.Duration) IssuerOption {
	return func(i *Issuer) {
		if ttl > 0 {
			i.ttl = ttl
		}
	}
}

func WithIssuerClock(clock func() time.Time) IssuerOption {
	return func(i *Issuer) {
		i.clock = clock
	}
}

func NewIssuer(secret string, opts ...IssuerOption) (*Issuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("auth: signing secret is required")
	}

	i := &Issuer{
		secret: []byte(secret),
		ttl:    DefaultTokenTTL,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// Issue signs a token for userID
func (i *Issuer) Issue(userID string) (string, Claims, error) {
	now := i.clock()
	claims := Claims{
		UserID:    userID,
		LoginTime: now.UnixMilli(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", Claims{}, fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, claims, nil
}

// Verify checks signature and expiry. Expired tokens yield ErrTokenExpired,
// anything else unacceptable yields ErrInvalidToken.
func (i *Issuer) Verify(token string) (Claims, error) {
	if token == "" {
		return Claims{}, ErrMissingToken
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.clock),
		jwt.WithExpirationRequired(),
	)
	switch {
	case err == nil:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return Claims{}, ErrTokenExpired
	default:
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
}
