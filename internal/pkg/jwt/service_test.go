package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() *HMACService {
	return NewHMACService("access-secret", "refresh-secret", 15*time.Minute, time.Hour)
}

func TestAccessToken_RoundTrip(t *testing.T) {
	s := newService()
	id := Identity{UserID: uuid.New(), Email: "ada@example.com", Role: "recruiter", Verified: true}

	tok, err := s.GenerateAccessToken(id)
	require.NoError(t, err)

	c, err := s.ValidateAccessToken(tok)
	require.NoError(t, err)
	assert.Equal(t, id.UserID, c.UserID)
	assert.Equal(t, "recruiter", c.Role)
	assert.True(t, c.Verified)
	assert.False(t, s.IsRefreshToken(c))

	_, err = s.ValidateRefreshToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	s := newService()
	uid := uuid.New()

	tok, err := s.GenerateRefreshToken(uid)
	require.NoError(t, err)

	c, err := s.ValidateRefreshToken(tok)
	require.NoError(t, err)
	assert.Equal(t, uid, c.UserID)
	assert.True(t, s.IsRefreshToken(c))

	_, err = s.ValidateAccessToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	c, err = s.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, c.TokenType)
}

func TestToken_Expired(t *testing.T) {
	s := newService()
	issued := time.Now().Add(-time.Hour)
	s.now = func() time.Time { return issued }

	tok, err := s.GenerateAccessToken(Identity{UserID: uuid.New()})
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.ValidateAccessToken(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
	_, err = s.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestToken_WrongSecret(t *testing.T) {
	tok, err := newService().GenerateAccessToken(Identity{UserID: uuid.New()})
	require.NoError(t, err)

	other := NewHMACService("x", "y", time.Minute, time.Minute)
	_, err = other.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestGenerate_MissingSecret(t *testing.T) {
	s := NewHMACService("", "r", time.Minute, time.Minute)
	_, err := s.GenerateAccessToken(Identity{UserID: uuid.New()})
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
