package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	tok, err := svc.IssueToken("acct-1", "instructor")
	require.NoError(t, err)

	claims, err := svc.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "acct-1", claims.Sub)
	assert.Equal(t, "instructor", claims.Role)
	assert.Equal(t, "quizdeck", claims.Issuer)
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := NewService("secret-a", time.Hour).IssueToken("acct-1", "student")
	require.NoError(t, err)

	_, err = NewService("secret-b", time.Hour).Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Expired(t *testing.T) {
	svc := NewService("test-secret", time.Nanosecond)
	tok, err := svc.IssueToken("acct-1", "student")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = svc.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Garbage(t *testing.T) {
	svc := NewService("test-secret", time.Hour)
	_, err := svc.Parse("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
