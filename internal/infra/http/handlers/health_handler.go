package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// TokenCache é o que o health consegue ver do google.TokenProvider.
type TokenCache interface {
	Cached() (oauth2.Token, bool)
}

type HealthHandler struct {
	Tokens        TokenCache
	SpreadsheetID string
	MailEnabled   bool
	Version       string
	StartTime     time.Time

	now func() time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

// placeholderSpreadsheetID é o default do config quando SPREADSHEET_ID não foi definido.
const placeholderSpreadsheetID = "SEU_SPREADSHEET_ID"

func NewHealthHandler(tokens TokenCache, spreadsheetID string, mailEnabled bool, version string) *HealthHandler {
	return &HealthHandler{
		Tokens:        tokens,
		SpreadsheetID: spreadsheetID,
		MailEnabled:   mailEnabled,
		Version:       version,
		StartTime:     time.Now(),
		now:           time.Now,
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)
	now := h.now()

	// Token do Google
	switch tok, ok := h.Tokens.Cached(); {
	case !ok:
		deps["google_token"] = "empty"
	case now.After(tok.Expiry):
		deps["google_token"] = "expired"
	default:
		deps["google_token"] = "cached"
	}

	if h.SpreadsheetID != "" && h.SpreadsheetID != placeholderSpreadsheetID {
		deps["spreadsheet"] = "configured"
	} else {
		deps["spreadsheet"] = "not configured"
	}

	if h.MailEnabled {
		deps["mail"] = "configured"
	} else {
		deps["mail"] = "not configured"
	}

	status := "healthy"
	if deps["spreadsheet"] != "configured" {
		status = "degraded"
	}

	response := HealthResponse{
		Status:       status,
		Version:      h.Version,
		Uptime:       now.Sub(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	}

	// sempre 200: "degraded" é informativo, o processo está no ar
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	json.NewEncoder(w).Encode(response)
}
