package test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// JWTSecret is the secret tokens are signed with in tests.
const JWTSecret = "finova-test-secret"

// Token returns a signed token for email that is valid for one hour.
func Token(t *testing.T, email string) string {
	return sign(t, email, time.Now().Add(time.Hour))
}

// ExpiredToken returns a signed token for email that expired an hour ago.
func ExpiredToken(t *testing.T, email string) string {
	return sign(t, email, time.Now().Add(-time.Hour))
}

func sign(t *testing.T, email string, expiry time.Time) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"name":  "Test User",
		"sub":   email,
		"iat":   expiry.Add(-2 * time.Hour).Unix(),
		"exp":   expiry.Unix(),
	})

	signed, err := token.SignedString([]byte(JWTSecret))
	require.Nil(t, err, "Token could not be signed")

	return signed
}

// Auth returns the Authorization header for email.
func Auth(t *testing.T, email string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + Token(t, email)}
}
