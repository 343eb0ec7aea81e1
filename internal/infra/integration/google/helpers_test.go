package google

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testClientEmail = "landing@ligue-test.iam.gserviceaccount.com"

var (
	keyOnce sync.Once
	testKey *rsa.PrivateKey
)

func rsaKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	keyOnce.Do(func() {
		k, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			panic(err)
		}
		testKey = k
	})
	return testKey
}

func credentialsJSON(t *testing.T, tokenURI string) []byte {
	t.Helper()
	block := &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(rsaKey(t))}

	b, err := json.Marshal(map[string]string{
		"type":           "service_account",
		"client_email":   testClientEmail,
		"private_key_id": "key-1",
		"private_key":    string(pem.EncodeToMemory(block)),
		"token_uri":      tokenURI,
	})
	require.NoError(t, err)
	return b
}

func testCredentials(t *testing.T, tokenURI string) *Credentials {
	t.Helper()
	creds, err := ParseCredentials(credentialsJSON(t, tokenURI))
	require.NoError(t, err)
	return creds
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
