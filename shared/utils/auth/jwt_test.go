package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestIssuer(expire time.Duration) (*TokenIssuer, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	return NewTokenIssuer(testSecret, expire).WithClock(clock.Now), clock
}

func TestTokenIssuer_IssueAndParse(t *testing.T) {
	issuer, clock := newTestIssuer(time.Hour)
	uid := uuid.New()

	token, expiresAt, err := issuer.Issue(uid)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, clock.now.Add(time.Hour), expiresAt)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)

	got, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uid, got)
	assert.Equal(t, uid.String(), claims.Subject)
}

func TestTokenIssuer_AcceptedUntilExpiry(t *testing.T) {
	issuer, clock := newTestIssuer(30 * time.Minute)

	token, _, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	clock.now = clock.now.Add(30*time.Minute - time.Second)
	_, err = issuer.Parse(token)
	require.NoError(t, err)

	clock.now = clock.now.Add(2 * time.Second)
	_, err = issuer.Parse(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.NotErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenIssuer_InvalidTokens(t *testing.T) {
	issuer, clock := newTestIssuer(time.Hour)
	uid := uuid.New()

	sign := func(method jwt.SigningMethod, secret []byte, claims jwt.Claims) string {
		t.Helper()
		s, err := jwt.NewWithClaims(method, claims).SignedString(secret)
		require.NoError(t, err)
		return s
	}

	valid := jwt.RegisteredClaims{
		Subject:   uid.String(),
		ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"wrong secret", sign(jwt.SigningMethodHS256, []byte("other-secret"), valid)},
		{"wrong alg", sign(jwt.SigningMethodHS512, []byte(testSecret), valid)},
		{"missing exp", sign(jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{Subject: uid.String()})},
		{"subject not a uuid", sign(jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
		})},
		{"expired with wrong secret", sign(jwt.SigningMethodHS256, []byte("other-secret"), jwt.RegisteredClaims{
			Subject:   uid.String(),
			ExpiresAt: jwt.NewNumericDate(clock.now.Add(-time.Hour)),
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.Parse(tt.token)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrTokenInvalid)
		})
	}
}

func TestTokenIssuer_RemainingLifetime(t *testing.T) {
	issuer, clock := newTestIssuer(time.Hour)

	token, _, err := issuer.Issue(uuid.New())
	require.NoError(t, err)
	claims, err := issuer.Parse(token)
	require.NoError(t, err)

	clock.now = clock.now.Add(20 * time.Minute)
	assert.Equal(t, 40*time.Minute, issuer.RemainingLifetime(claims))

	clock.now = clock.now.Add(time.Hour)
	assert.True(t, issuer.RemainingLifetime(claims) <= 0)

	assert.Equal(t, time.Duration(0), issuer.RemainingLifetime(nil))
}

func TestTokenIssuer_SameInputsSameToken(t *testing.T) {
	issuer, _ := newTestIssuer(time.Hour)
	uid := uuid.New()

	a, _, err := issuer.Issue(uid)
	require.NoError(t, err)
	b, _, err := issuer.Issue(uid)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}
