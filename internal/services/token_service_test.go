package services

import (
	"testing"
	"time"

	"invoicedash/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_IssueAndParse(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC))
	issuer := NewTokenIssuer("secret", 2*time.Hour, clock)

	session, err := issuer.Issue(&models.User{ID: "u1", Name: "User", Email: "user@nextmail.com"})
	require.NoError(t, err)
	assert.Equal(t, "u1", session.UserID)
	assert.Equal(t, clock.Now().Add(2*time.Hour), session.ExpiresAt)

	claims, err := issuer.Parse(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "User", claims.Name)
}

func TestTokenIssuer_ExpiredToken(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC))
	issuer := NewTokenIssuer("secret", time.Minute, clock)

	session, err := issuer.Issue(&models.User{ID: "u1"})
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)
	_, err = issuer.Parse(session.Token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenIssuer_RejectsOtherKeyAndMethod(t *testing.T) {
	clock := clockwork.NewFakeClock()
	issuer := NewTokenIssuer("secret", time.Hour, clock)

	other, err := NewTokenIssuer("another-secret", time.Hour, clock).Issue(&models.User{ID: "u1"})
	require.NoError(t, err)
	_, err = issuer.Parse(other.Token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "u1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = issuer.Parse(unsigned)
	assert.Error(t, err)
}

func TestTokenIssuer_EmptySecret(t *testing.T) {
	_, err := NewTokenIssuer("", time.Hour, clockwork.NewFakeClock()).Issue(&models.User{ID: "u1"})
	assert.Error(t, err)
}
