package authtoken

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestIssueThenVerify(t *testing.T) {
	now := time.Now()

	token, expiresAt, err := Issue(secret, "p-1", "rider@example.com", time.Hour, now)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, now.Add(time.Hour), expiresAt, time.Second)

	claims, err := Verify(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "p-1", claims.Subject)
	assert.Equal(t, "rider@example.com", claims.Email)
	assert.Equal(t, RoleDeliveryPartner, claims.Role)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, _, err := Issue(secret, "p-1", "", time.Hour, time.Now())
	require.NoError(t, err)

	_, err = Verify([]byte("other"), token)
	assert.ErrorIs(t, err, jwt.ErrSignatureInvalid)
}

func TestVerifyRejectsExpired(t *testing.T) {
	token, _, err := Issue(secret, "p-1", "", time.Minute, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, err = Verify(secret, token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestIssueRequiresSecret(t *testing.T) {
	_, _, err := Issue(nil, "p-1", "", time.Hour, time.Now())
	assert.ErrorIs(t, err, ErrSecretIsRequired)
}

func TestParseExpiry(t *testing.T) {
	now := time.Now()
	token, expiresAt, err := Issue(secret, "p-1", "", 2*time.Hour, now)
	require.NoError(t, err)

	got, ok := ParseExpiry(token)
	require.True(t, ok)
	assert.True(t, expiresAt.Equal(got))

	_, ok = ParseExpiry("local:opaque-token")
	assert.False(t, ok)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "p-1"}).SignedString(secret)
	require.NoError(t, err)
	_, ok = ParseExpiry(noExp)
	assert.False(t, ok)
}
