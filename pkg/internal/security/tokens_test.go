package security_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zhangmm/zblog/pkg/internal/security"
)

func init() {
	viper.Set("security.token_secret", "unit-test-secret")
	viper.Set("security.token_issuer", "zblog-test")
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := security.IssueToken(42, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := security.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestTokensDifferPerAccount(t *testing.T) {
	a, err := security.IssueToken(1, time.Hour)
	require.NoError(t, err)
	b, err := security.IssueToken(2, time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestExpiredTokenFails(t *testing.T) {
	token, err := security.IssueToken(7, -time.Minute)
	require.NoError(t, err)

	_, err = security.VerifyToken(token)
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}

func TestMalformedTokenFails(t *testing.T) {
	_, err := security.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}

func TestTamperedTokenFails(t *testing.T) {
	token, err := security.IssueToken(7, time.Hour)
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = security.VerifyToken(tampered)
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}

func TestConfirmTokenIsNotAnAPIToken(t *testing.T) {
	token, err := security.IssueConfirmToken(7, time.Hour)
	require.NoError(t, err)

	_, err = security.VerifyToken(token)
	assert.ErrorIs(t, err, security.ErrInvalidToken)

	id, err := security.VerifyConfirmToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)
}
