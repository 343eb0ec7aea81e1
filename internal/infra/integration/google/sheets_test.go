package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/sheets/v4"
)

type failingSource struct{ err error }

func (f failingSource) Token() (*oauth2.Token, error) { return nil, f.err }

func newAppender(t *testing.T, ts oauth2.TokenSource, endpoint string) *SheetAppender {
	t.Helper()
	a, err := NewSheetAppender(context.Background(), ts, SheetConfig{
		SpreadsheetID: "sheet-123",
		Range:         "Leads!A:F",
		Endpoint:      endpoint + "/",
		Timeout:       2 * time.Second,
	})
	require.NoError(t, err)
	return a
}

func TestSheetAppender_AppendRow(t *testing.T) {
	var got sheets.ValueRange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasPrefix(r.URL.Path, "/v4/spreadsheets/sheet-123/values/"), r.URL.Path)
		assert.True(t, strings.HasSuffix(r.URL.Path, ":append"), r.URL.Path)
		assert.Equal(t, "RAW", r.URL.Query().Get("valueInputOption"))
		assert.Equal(t, "INSERT_ROWS", r.URL.Query().Get("insertDataOption"))
		assert.Equal(t, "Bearer static-token", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"spreadsheetId":"sheet-123","updates":{"updatedRange":"Leads!A2:F2","updatedRows":1}}`)
	}))
	defer srv.Close()

	a := newAppender(t, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "static-token"}), srv.URL)

	row := []string{"2025-03-10T12:00:00.000Z", "Ana", "Silva", "", "", "a@x.com"}
	resp, err := a.AppendRow(context.Background(), row)
	require.NoError(t, err)

	assert.Equal(t, "sheet-123", resp.SpreadsheetId)
	require.NotNil(t, resp.Updates)
	assert.EqualValues(t, 1, resp.Updates.UpdatedRows)

	require.Len(t, got.Values, 1)
	require.Len(t, got.Values[0], len(row))
	for i, v := range row {
		assert.Equal(t, v, got.Values[0][i])
	}
}

func TestSheetAppender_APIErrorBecomesSheetWriteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":{"code":403,"message":"The caller does not have permission","status":"PERMISSION_DENIED"}}`)
	}))
	defer srv.Close()

	a := newAppender(t, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "t"}), srv.URL)

	_, err := a.AppendRow(context.Background(), []string{"x"})
	require.Error(t, err)

	var writeErr *SheetWriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, http.StatusForbidden, writeErr.StatusCode)
	assert.Contains(t, writeErr.Body, "PERMISSION_DENIED")
	assert.False(t, IsAuthError(err))
}

func TestSheetAppender_TokenFailureIsAuthError(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	a := newAppender(t, failingSource{err: &AuthError{StatusCode: 400, Body: "invalid_grant"}}, srv.URL)

	_, err := a.AppendRow(context.Background(), []string{"x"})
	require.Error(t, err)
	assert.True(t, IsAuthError(err))
	assert.False(t, IsSheetWriteError(err))
	assert.Zero(t, hits.Load())
}

func TestSheetAppender_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	a := newAppender(t, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "t"}), endpoint)

	_, err := a.AppendRow(context.Background(), []string{"x"})
	require.Error(t, err)

	var writeErr *SheetWriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Zero(t, writeErr.StatusCode)
	assert.NotNil(t, errors.Unwrap(writeErr))
}

func TestSheetAppender_WithTokenProvider(t *testing.T) {
	tokenSrv := newTokenServer(t)
	p := newProvider(t, tokenSrv, newFakeClock())

	var auth atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth.Store(r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"spreadsheetId":"sheet-123"}`)
	}))
	defer srv.Close()

	a := newAppender(t, p.TokenSource(context.Background()), srv.URL)

	for i := 0; i < 2; i++ {
		_, err := a.AppendRow(context.Background(), []string{"x"})
		require.NoError(t, err)
	}

	assert.Equal(t, "Bearer token-1", auth.Load())
	assert.EqualValues(t, 1, tokenSrv.calls.Load())
}
