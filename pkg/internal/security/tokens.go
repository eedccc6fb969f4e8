package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

// ErrInvalidToken covers every verification failure: malformed token, bad
// signature, expired token, or a token minted for a different purpose.
// Callers only need to know the token did not identify anyone.
var ErrInvalidToken = errors.New("invalid token")

const (
	tokenPurposeAPI     = "api"
	tokenPurposeConfirm = "confirm"
)

type tokenClaims struct {
	AccountID uint   `json:"uid"`
	Purpose   string `json:"purpose"`
	jwt.RegisteredClaims
}

// The signing key is process-wide configuration, read once per process.
// Rotating it invalidates every previously issued token.
func signingKey() []byte {
	return []byte(viper.GetString("security.token_secret"))
}

func issueToken(accountID uint, purpose string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		AccountID: accountID,
		Purpose:   purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    viper.GetString("security.token_issuer"),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey())
}

func verifyToken(token, purpose string) (uint, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		return signingKey(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid || claims.Purpose != purpose {
		return 0, ErrInvalidToken
	}

	return claims.AccountID, nil
}

// IssueToken mints a signed, self-expiring API token bound to an account.
func IssueToken(accountID uint, ttl time.Duration) (string, error) {
	return issueToken(accountID, tokenPurposeAPI, ttl)
}

// VerifyToken checks signature and expiry and returns the account the token
// was bound to, or ErrInvalidToken.
func VerifyToken(token string) (uint, error) {
	return verifyToken(token, tokenPurposeAPI)
}

// IssueConfirmToken mints the account-confirmation token sent by email at
// registration. Confirmation tokens never double as API credentials.
func IssueConfirmToken(accountID uint, ttl time.Duration) (string, error) {
	return issueToken(accountID, tokenPurposeConfirm, ttl)
}

func VerifyConfirmToken(token string) (uint, error) {
	return verifyToken(token, tokenPurposeConfirm)
}
