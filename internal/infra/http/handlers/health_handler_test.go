package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type stubTokens struct {
	tok oauth2.Token
	ok  bool
}

func (s stubTokens) Cached() (oauth2.Token, bool) { return s.tok, s.ok }

func runHealth(t *testing.T, h *HealthHandler) (int, HealthResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestHealthHandler(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		tokens        stubTokens
		spreadsheetID string
		mail          bool
		wantCode      int
		wantStatus    string
		wantDeps      map[string]string
	}{
		{
			name:          "healthy with cached token",
			tokens:        stubTokens{tok: oauth2.Token{AccessToken: "t", Expiry: now.Add(time.Minute)}, ok: true},
			spreadsheetID: "sheet-123",
			mail:          true,
			wantCode:      http.StatusOK,
			wantStatus:    "healthy",
			wantDeps:      map[string]string{"google_token": "cached", "spreadsheet": "configured", "mail": "configured"},
		},
		{
			name:          "expired token is still healthy",
			tokens:        stubTokens{tok: oauth2.Token{AccessToken: "t", Expiry: now.Add(-time.Minute)}, ok: true},
			spreadsheetID: "sheet-123",
			wantCode:      http.StatusOK,
			wantStatus:    "healthy",
			wantDeps:      map[string]string{"google_token": "expired", "spreadsheet": "configured", "mail": "not configured"},
		},
		{
			name:          "placeholder spreadsheet",
			spreadsheetID: "SEU_SPREADSHEET_ID",
			wantCode:      http.StatusOK,
			wantStatus:    "degraded",
			wantDeps:      map[string]string{"google_token": "empty", "spreadsheet": "not configured", "mail": "not configured"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.tokens, tt.spreadsheetID, tt.mail, "1.0.0")
			h.StartTime = now.Add(-90 * time.Second)
			h.now = func() time.Time { return now }

			code, resp := runHealth(t, h)

			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, "1.0.0", resp.Version)
			assert.Equal(t, "1m30s", resp.Uptime)
			assert.Equal(t, tt.wantDeps, resp.Dependencies)
		})
	}
}
