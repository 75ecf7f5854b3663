package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "github.com/GradGuide-Team/CRM-Gradguide/internals/helpers"
)

func TestTokenRoundTrip(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ts := NewTokenService("s3cret", 30*time.Minute).WithClock(func() time.Time { return now })
	id := uuid.New()

	tok, err := ts.Issue(id, "a@example.com", "member")
	require.NoError(t, err)

	claims, err := ts.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, id.String(), claims.ID)
	assert.Equal(t, "a@example.com", claims.Subject)
	assert.Equal(t, "counselor", claims.Role, "legacy role is mapped at the boundary")

	t.Run("expired", func(t *testing.T) {
		later := NewTokenService("s3cret", time.Minute).WithClock(func() time.Time { return now.Add(31 * time.Minute) })
		_, err := later.Verify(tok)
		assert.ErrorIs(t, err, helper.ErrUnauthorized)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenService("other", time.Minute).WithClock(func() time.Time { return now })
		_, err := other.Verify(tok)
		assert.ErrorIs(t, err, helper.ErrUnauthorized)
	})

	t.Run("unsigned", func(t *testing.T) {
		raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, AccessClaims{ID: id.String()}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = ts.Verify(raw)
		assert.ErrorIs(t, err, helper.ErrUnauthorized)
	})

	t.Run("empty secret", func(t *testing.T) {
		_, err := NewTokenService("", time.Minute).Issue(id, "a@example.com", "admin")
		assert.Error(t, err)
	})
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)
	assert.NoError(t, CheckPasswordHash(hash, "secret123"))
	assert.Error(t, CheckPasswordHash(hash, "secret124"))
}
