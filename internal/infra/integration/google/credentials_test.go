package google

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCredentials(t *testing.T) {
	creds, err := ParseCredentials(credentialsJSON(t, "https://example.test/token"))
	require.NoError(t, err)

	assert.Equal(t, testClientEmail, creds.ClientEmail)
	assert.Equal(t, "https://example.test/token", creds.TokenURI)
	require.NotNil(t, creds.Key())
	assert.Equal(t, rsaKey(t).N, creds.Key().N)
}

func TestParseCredentials_DefaultTokenURI(t *testing.T) {
	creds, err := ParseCredentials(credentialsJSON(t, ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultTokenURL, creds.TokenURI)
}

func TestParseCredentials_Invalid(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"not json", `{`},
		{"missing email", `{"private_key":"x"}`},
		{"missing key", `{"client_email":"a@b.c"}`},
		{"bad pem", `{"client_email":"a@b.c","private_key":"not a pem"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCredentials([]byte(tt.json))
			assert.Error(t, err)
		})
	}
}

func TestLoadCredentialsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, credentialsJSON(t, ""), 0o600))

	creds, err := LoadCredentialsFile(path)
	require.NoError(t, err)
	assert.Equal(t, testClientEmail, creds.ClientEmail)

	_, err = LoadCredentialsFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
