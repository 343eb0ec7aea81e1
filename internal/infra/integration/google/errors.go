package google

import (
	"errors"
	"fmt"
)

// AuthError means the service account could not obtain an access token
// (transport failure, non-2xx from the token endpoint or an unusable body).
type AuthError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("google auth: %v", e.Err)
	}
	return fmt.Sprintf("google auth: status %d: %s", e.StatusCode, e.Body)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// SheetWriteError means the Sheets append call failed.
type SheetWriteError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *SheetWriteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("sheets append: status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("sheets append: %v", e.Err)
}

func (e *SheetWriteError) Unwrap() error {
	return e.Err
}

func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

func IsSheetWriteError(err error) bool {
	var writeErr *SheetWriteError
	return errors.As(err, &writeErr)
}
