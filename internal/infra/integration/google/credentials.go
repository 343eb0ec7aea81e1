package google

import (
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTokenURL = "https://oauth2.googleapis.com/token"

// Credentials é a chave da service account (só os campos que usamos do JSON do GCP).
type Credentials struct {
	ClientEmail  string `json:"client_email"`
	PrivateKeyID string `json:"private_key_id"`
	PrivateKey   string `json:"private_key"`
	TokenURI     string `json:"token_uri"`

	key *rsa.PrivateKey
}

// Key returns the parsed RSA private key.
func (c *Credentials) Key() *rsa.PrivateKey {
	return c.key
}

// LoadCredentialsFile reads a service account key file.
func LoadCredentialsFile(path string) (*Credentials, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read service account file: %w", err)
	}

	return ParseCredentials(b)
}

// ParseCredentials decodes a service account key JSON and parses its PEM key.
func ParseCredentials(b []byte) (*Credentials, error) {
	var creds Credentials
	if err := json.Unmarshal(b, &creds); err != nil {
		return nil, fmt.Errorf("unable to parse service account json: %w", err)
	}

	if creds.ClientEmail == "" {
		return nil, errors.New("service account json: client_email is empty")
	}
	if creds.PrivateKey == "" {
		return nil, errors.New("service account json: private_key is empty")
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(creds.PrivateKey))
	if err != nil {
		return nil, fmt.Errorf("service account json: invalid private_key: %w", err)
	}
	creds.key = key

	if creds.TokenURI == "" {
		creds.TokenURI = DefaultTokenURL
	}

	return &creds, nil
}
