// Package auth verifies the tokens of the identity provider.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/finova-app/backend/pkg/httperrors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

const identityKey = "finova-identity"

// MessageUnauthorized is returned for requests without a valid token.
const MessageUnauthorized = "You must be signed in to access this resource"

var (
	ErrNoToken      = errors.New("no bearer token")
	ErrInvalidToken = errors.New("invalid token")
	ErrNoEmail      = errors.New("token has no email claim")
)

// Identity is the authenticated user of a request.
type Identity struct {
	FullName string `json:"fullName" example:"Jane Doe"`
	Email    string `json:"email" example:"jane@example.com"`
}

// Claims are the claims the identity provider puts into its tokens.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Config configures the Verifier. One of Secret and PublicKey must be set.
type Config struct {
	Secret    string // Shared secret for HS256
	PublicKey string // PEM encoded RSA public key for RS256
	Issuer    string // Expected issuer, not checked when empty
}

// Verifier verifies bearer tokens.
type Verifier struct {
	parser *jwt.Parser
	key    any
}

// NewVerifier returns a Verifier for cfg. If a public key is configured,
// only RS256 tokens are accepted, HS256 tokens otherwise.
func NewVerifier(cfg Config) (*Verifier, error) {
	var key any
	var method string

	switch {
	case cfg.PublicKey != "":
		publicKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.PublicKey))
		if err != nil {
			return nil, fmt.Errorf("parsing public key: %w", err)
		}
		key, method = publicKey, jwt.SigningMethodRS256.Alg()
	case cfg.Secret != "":
		key, method = []byte(cfg.Secret), jwt.SigningMethodHS256.Alg()
	default:
		return nil, errors.New("either a secret or a public key is needed to verify tokens")
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{method}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		options = append(options, jwt.WithIssuer(cfg.Issuer))
	}

	return &Verifier{
		parser: jwt.NewParser(options...),
		key:    key,
	}, nil
}

// Verify returns the identity asserted by token.
func (v *Verifier) Verify(token string) (Identity, error) {
	claims := &Claims{}

	_, err := v.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.key, nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	email := strings.TrimSpace(claims.Email)
	if email == "" {
		return Identity{}, ErrNoEmail
	}

	return Identity{
		FullName: claims.Name,
		Email:    email,
	}, nil
}

// Middleware aborts requests without a valid bearer token and
// stores the identity for all others.
func (v *Verifier) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearer(c.GetHeader("Authorization"))
		if err == nil {
			var identity Identity
			identity, err = v.Verify(token)
			if err == nil {
				Set(c, identity)
				c.Next()
				return
			}
		}

		log.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("Unauthorized request")
		httperrors.New(c, http.StatusUnauthorized, MessageUnauthorized)
		c.Abort()
	}
}

func bearer(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", ErrNoToken
	}
	return strings.TrimSpace(token), nil
}

// Set stores the identity for the request.
func Set(c *gin.Context, identity Identity) {
	c.Set(identityKey, identity)
}

// Get returns the identity of the request.
//
// The second return value is false if the request is not authenticated.
func Get(c *gin.Context) (Identity, bool) {
	value, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}

	identity, ok := value.(Identity)
	return identity, ok
}
