package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckerPassesCleanInput(t *testing.T) {
	err := New().
		Required("name", "Tambak Utara").
		Email("email", "ops@aquanotes.io").
		MinLen("password", "secret1", 6).
		Positive("panjang", 12.5).
		OneOf("role", "operator", "admin", "operator", "viewer").
		Err()
	require.NoError(t, err)
}

func TestCheckerCollectsAllFailures(t *testing.T) {
	err := New().
		Required("name", "   ").
		Email("email", "@broken").
		MinLen("password", "abc", 6).
		Positive("kedalaman", 0).
		OneOf("role", "root", "admin", "operator").
		Err()

	var vErr *Error
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.Fields, 5)
	require.Equal(t, "is required", vErr.Fields["name"])
	require.Equal(t, "must be positive", vErr.Fields["kedalaman"])
}

func TestErrorMessageSortedByField(t *testing.T) {
	err := &Error{Fields: map[string]string{
		"b_field": "is required",
		"a_field": "is required",
	}}
	require.Equal(t, "validation failed: a_field: is required; b_field: is required", err.Error())
}

func TestEmailEdgeCases(t *testing.T) {
	for _, bad := range []string{"plain", "@lead", "trail@", ""} {
		require.Error(t, New().Email("email", bad).Err(), "email %q should fail", bad)
	}
	require.NoError(t, New().Email("email", "a@b").Err())
}

func TestErrorIsDistinguishable(t *testing.T) {
	err := New().Required("x", "").Err()
	var vErr *Error
	require.True(t, errors.As(err, &vErr))
}
