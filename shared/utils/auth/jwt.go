package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Algorithm is the only signing method accepted by TokenIssuer
const Algorithm = "HS256"

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("could not validate credentials")
)

// Claims carries the user id in the standard "sub" claim
type Claims struct {
	jwt.RegisteredClaims
}

// UserID parses the subject claim
func (c *Claims) UserID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid subject", ErrTokenInvalid)
	}
	return id, nil
}

// TokenIssuer mints and verifies access tokens with a shared secret
type TokenIssuer struct {
	secret []byte
	expire time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, expire time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		expire: expire,
		now:    time.Now,
	}
}

// WithClock replaces the time source, used by tests
func (i *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	i.now = now
	return i
}

// Issue returns a signed token for userID and its expiration instant
func (i *TokenIssuer) Issue(userID uuid.UUID) (string, time.Time, error) {
	now := i.now()
	expiresAt := now.Add(i.expire)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, claims.ExpiresAt.Time, nil
}

// Parse verifies signature and expiry. Expired tokens with a valid signature
// yield ErrTokenExpired, everything else that fails yields ErrTokenInvalid.
func (i *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{Algorithm}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)

	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	if _, err := claims.UserID(); err != nil {
		return nil, err
	}

	return claims, nil
}

// RemainingLifetime is the time left until claims expire; zero or negative once expired
func (i *TokenIssuer) RemainingLifetime(claims *Claims) time.Duration {
	if claims == nil || claims.ExpiresAt == nil {
		return 0
	}
	return claims.ExpiresAt.Time.Sub(i.now())
}
