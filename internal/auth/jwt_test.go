package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testKey    = "test-signing-key"
	testIssuer = "festreg-test"
)

func TestIssueAndParse(t *testing.T) {
	pair, err := Issue("admin", "admin", testIssuer, testKey, time.Hour, 24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := Parse(pair.AccessToken, testKey, testIssuer)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
}

func TestParseRejectsWrongKey(t *testing.T) {
	pair, err := Issue("admin", "admin", testIssuer, testKey, time.Hour, 24*time.Hour)
	require.NoError(t, err)

	_, err = Parse(pair.AccessToken, "other-key", testIssuer)
	require.Error(t, err)
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	pair, err := Issue("admin", "admin", "someone-else", testKey, time.Hour, 24*time.Hour)
	require.NoError(t, err)

	_, err = Parse(pair.AccessToken, testKey, testIssuer)
	require.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	pair, err := Issue("admin", "admin", testIssuer, testKey, -time.Minute, 24*time.Hour)
	require.NoError(t, err)

	_, err = Parse(pair.AccessToken, testKey, testIssuer)
	require.Error(t, err)
}

func TestCheckCredentials(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.NoError(t, CheckCredentials("admin", "s3cret", "admin", string(hash)))
	assert.Error(t, CheckCredentials("admin", "wrong", "admin", string(hash)))
	assert.Error(t, CheckCredentials("intruder", "s3cret", "admin", string(hash)))
	assert.Error(t, CheckCredentials("admin", "s3cret", "", ""))
}
