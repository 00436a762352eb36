package auth

import (
	"testing"
	"time"

	"arena-stats/internal/core/config"

	"github.com/stretchr/testify/require"
)

func TestIssueAndValidateToken(t *testing.T) {
	a := NewAuthenticator(config.Config{AuthSecret: "test-secret"})

	token, err := a.IssueToken("user-1", []string{"admin"}, time.Minute)
	require.NoError(t, err)

	claims, err := a.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, []string{"admin"}, claims.Roles)
}

func TestValidateToken_WrongKey(t *testing.T) {
	issuer := NewAuthenticator(config.Config{AuthSecret: "key-one"})
	verifier := NewAuthenticator(config.Config{AuthSecret: "key-two"})

	token, err := issuer.IssueToken("user-1", nil, time.Minute)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	require.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	a := NewAuthenticator(config.Config{AuthSecret: "test-secret"})

	token, err := a.IssueToken("user-1", nil, -time.Minute)
	require.NoError(t, err)

	_, err = a.ValidateToken(token)
	require.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	a := NewAuthenticator(config.Config{AuthSecret: "test-secret"})

	_, err := a.ValidateToken("not-a-jwt")
	require.Error(t, err)
}
