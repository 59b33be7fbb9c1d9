package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens, err := NewTokenService("test-secret", "HS256", 30*time.Minute)
	require.NoError(t, err)

	signed, err := tokens.Issue("alice")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	username, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestTokenExpired(t *testing.T) {
	tokens, err := NewTokenService("test-secret", "HS256", -1*time.Minute)
	require.NoError(t, err)

	signed, err := tokens.Issue("alice")
	require.NoError(t, err)

	_, err = tokens.Verify(signed)
	assert.Error(t, err)
}

func TestTokenTampered(t *testing.T) {
	tokens, err := NewTokenService("test-secret", "HS256", 30*time.Minute)
	require.NoError(t, err)

	signed, err := tokens.Issue("alice")
	require.NoError(t, err)

	tampered := signed[:len(signed)-2] + "xx"

	_, err = tokens.Verify(tampered)
	assert.Error(t, err)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer, err := NewTokenService("secret-one", "HS256", 30*time.Minute)
	require.NoError(t, err)

	verifier, err := NewTokenService("secret-two", "HS256", 30*time.Minute)
	require.NoError(t, err)

	signed, err := issuer.Issue("alice")
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	assert.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	tokens, err := NewTokenService("test-secret", "HS256", 30*time.Minute)
	require.NoError(t, err)

	for _, input := range []string{"", "not-a-token", "a.b.c"} {
		_, err := tokens.Verify(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestNewTokenServiceRejectsNonHMAC(t *testing.T) {
	_, err := NewTokenService("test-secret", "RS256", 30*time.Minute)
	assert.Error(t, err)

	_, err = NewTokenService("test-secret", "bogus", 30*time.Minute)
	assert.Error(t, err)
}

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, VerifyPassword("correct horse battery staple", hash))
	assert.False(t, VerifyPassword("wrong password", hash))
	assert.False(t, VerifyPassword("", hash))
}
