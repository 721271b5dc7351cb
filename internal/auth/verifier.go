package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// VerifierConfig holds configuration for JWT verification.
type VerifierConfig struct {
	Algorithm    string // "HS256" or "RS256"
	SecretKey    string
	PublicKeyPEM string
}

// Verifier handles JWT token verification.
type Verifier struct {
	algorithm string
	key       any
	parser    *jwt.Parser
}

// tokenClaims is the wire form of the claims we accept.
type tokenClaims struct {
	Scopes []string `json:"scopes"`
	jwt.RegisteredClaims
}

// NewVerifier creates a new JWT verifier.
func NewVerifier(config VerifierConfig) (*Verifier, error) {
	v := &Verifier{algorithm: config.Algorithm}

	switch config.Algorithm {
	case "HS256":
		if config.SecretKey == "" {
			return nil, errors.New("HS256 requires secret key")
		}
		v.key = []byte(config.SecretKey)
	case "RS256":
		key, err := parsePublicKey(config.PublicKeyPEM)
		if err != nil {
			return nil, fmt.Errorf("failed to load public key from PEM: %w", err)
		}
		v.key = key
	default:
		return nil, fmt.Errorf("unsupported algorithm: %s", config.Algorithm)
	}

	v.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{config.Algorithm}),
		jwt.WithExpirationRequired(),
	)
	return v, nil
}

// VerifyToken verifies a JWT token and returns the claims.
func (v *Verifier) VerifyToken(tokenString string) (*Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, errors.New("token cannot be empty")
	}

	var tc tokenClaims
	token, err := v.parser.ParseWithClaims(tokenString, &tc, func(*jwt.Token) (any, error) {
		return v.key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if tc.Subject == "" {
		return nil, errors.New("missing 'sub' claim")
	}

	return &Claims{Subject: tc.Subject, Scopes: tc.Scopes}, nil
}

func parsePublicKey(pemData string) (*rsa.PublicKey, error) {
	if pemData == "" {
		return nil, errors.New("RS256 requires a public key")
	}
	return jwt.ParseRSAPublicKeyFromPEM([]byte(pemData))
}
