package testutil

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	apperrors "github.com/Asshabanu/finance-tracker/internal/errors"
)

// AssertAppError fails unless err is an *AppError carrying expectedCode and a
// non-zero HTTP status.
func AssertAppError(t testing.TB, err error, expectedCode string) {
	t.Helper()

	var appErr *apperrors.AppError
	switch {
	case err == nil:
		t.Fatalf("expected AppError %s, got nil", expectedCode)
	case !errors.As(err, &appErr):
		t.Fatalf("expected *AppError %s, got %T: %v", expectedCode, err, err)
	case appErr.Code != expectedCode:
		t.Errorf("expected error code %s, got %s (%s)", expectedCode, appErr.Code, appErr.Message)
	case appErr.StatusCode == 0:
		t.Errorf("AppError %s has no HTTP status", appErr.Code)
	}
}

// AssertNoError stops the test on a non-nil err.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertDecimal compares a money value numerically, so "10.50" matches "10.5".
func AssertDecimal(t testing.TB, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("expected %s %s, got %s", name, want, got)
	}
}
