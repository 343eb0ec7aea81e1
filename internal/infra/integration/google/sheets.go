package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	// RAW: a planilha grava o texto como veio, sem fórmulas nem conversão de tipo.
	valueInputRaw    = "RAW"
	insertDataAppend = "INSERT_ROWS"
)

type SheetConfig struct {
	SpreadsheetID string
	Range         string
	// Endpoint sobrescreve https://sheets.googleapis.com/ (testes, proxies).
	Endpoint string
	Timeout  time.Duration
}

// SheetAppender adiciona linhas no fim de um range da planilha.
type SheetAppender struct {
	service       *sheets.Service
	spreadsheetID string
	writeRange    string
}

func NewSheetAppender(ctx context.Context, ts oauth2.TokenSource, cfg SheetConfig) (*SheetAppender, error) {
	client := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: &oauth2.Transport{Source: ts, Base: http.DefaultTransport},
	}

	opts := []option.ClientOption{option.WithHTTPClient(client)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return &SheetAppender{
		service:       srv,
		spreadsheetID: cfg.SpreadsheetID,
		writeRange:    cfg.Range,
	}, nil
}

// AppendRow appends values as a single row. A token failure is returned as
// *AuthError, anything else as *SheetWriteError. There is no retry.
func (a *SheetAppender) AppendRow(ctx context.Context, values []string) (*sheets.AppendValuesResponse, error) {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}

	vr := &sheets.ValueRange{
		MajorDimension: "ROWS",
		Values:         [][]interface{}{row},
	}

	resp, err := a.service.Spreadsheets.Values.Append(a.spreadsheetID, a.writeRange, vr).
		ValueInputOption(valueInputRaw).
		InsertDataOption(insertDataAppend).
		Context(ctx).
		Do()
	if err != nil {
		return nil, wrapAppendError(err)
	}

	return resp, nil
}

func wrapAppendError(err error) error {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return &SheetWriteError{StatusCode: gerr.Code, Body: gerr.Body, Err: err}
	}

	return &SheetWriteError{Err: err}
}
