package auth

import (
	"crypto/rsa"
	"fmt"
	"os"

	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/domain"
	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/port"

	"github.com/golang-jwt/jwt/v5"
)

type jwtVerifier struct {
	publicKey *rsa.PublicKey
}

// NewJWTVerifier creates a verifier for RS256 tokens signed by the token
// issuer whose public key is stored at publicKeyPath
func NewJWTVerifier(publicKeyPath string) (port.TokenVerifier, error) {
	pemBytes, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("reading token public key: %w", err)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("parsing token public key: %w", err)
	}

	return &jwtVerifier{publicKey: publicKey}, nil
}

// Verify checks the token signature and expiry and extracts the subject
func (v *jwtVerifier) Verify(token string) (*domain.TokenClaims, error) {
	if token == "" {
		return nil, domain.ErrJWTTokenRequired
	}

	parsed, err := jwt.Parse(token,
		func(t *jwt.Token) (any, error) {
			return v.publicKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	subject, err := parsed.Claims.GetSubject()
	if err != nil || subject == "" {
		return nil, fmt.Errorf("%w: missing subject claim", domain.ErrInvalidToken)
	}

	return &domain.TokenClaims{Subject: subject}, nil
}
