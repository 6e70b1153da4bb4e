package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindErrors(t *testing.T) {
	err := Conflict("User already exists")
	require.ErrorIs(t, err, ErrConflict)
	require.NotErrorIs(t, err, ErrNotFound)
	require.Equal(t, "User already exists", err.Error())

	wrapped := fmt.Errorf("Register: %w", Forbidden("nope"))
	require.ErrorIs(t, wrapped, ErrForbidden)

	require.ErrorIs(t, Unauthenticated("x"), ErrUnauthenticated)
	require.ErrorIs(t, NotFound("x"), ErrNotFound)
}

func TestValidationError(t *testing.T) {
	err := fmt.Errorf("bind: %w", &ValidationError{Fields: []FieldError{
		{Field: "title", Message: "is required"},
		{Field: "price", Message: "must be a decimal number"},
	}})
	require.ErrorIs(t, err, ErrValidation)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	require.Len(t, ve.Fields, 2)
	require.Contains(t, err.Error(), "title: is required")
}

func TestMessage(t *testing.T) {
	err := fmt.Errorf("Register: %w", fmt.Errorf("CreateUser: %w", Conflict("Username already taken")))
	require.Equal(t, "Username already taken", Message(err, "x"))
	require.Equal(t, "fallback", Message(errors.New("db down"), "fallback"))
}
