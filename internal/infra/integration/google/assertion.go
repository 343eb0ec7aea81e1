package google

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"google.golang.org/api/sheets/v4"
)

const (
	// Scope pedido na assertion: leitura e escrita em planilhas.
	Scope = sheets.SpreadsheetsScope

	assertionLifetime = time.Hour
)

// AssertionClaims são os claims do JWT-bearer grant.
type AssertionClaims struct {
	Issuer   string
	Scope    string
	Audience string
	IssuedAt time.Time
}

// NewAssertionClaims builds the claims for a service account at time now.
func NewAssertionClaims(creds *Credentials, tokenURL string, now time.Time) AssertionClaims {
	return AssertionClaims{
		Issuer:   creds.ClientEmail,
		Scope:    Scope,
		Audience: tokenURL,
		IssuedAt: now,
	}
}

// SignAssertion signs the claims with RS256 and returns the compact
// header.claims.signature form. It has no side effects and does no I/O.
func SignAssertion(claims AssertionClaims, key *rsa.PrivateKey) (string, error) {
	if key == nil {
		return "", errors.New("sign assertion: nil private key")
	}

	// aud vai como string simples; jwt.RegisteredClaims serializaria como array
	mc := jwt.MapClaims{
		"iss":   claims.Issuer,
		"scope": claims.Scope,
		"aud":   claims.Audience,
		"iat":   claims.IssuedAt.Unix(),
		"exp":   claims.IssuedAt.Add(assertionLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, mc)
	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("error occurred during signing assertion: %w", err)
	}

	return signed, nil
}
