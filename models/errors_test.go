package models

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequestErrorStatus(t *testing.T) {
	tests := []struct {
		err  *RequestError
		want int
	}{
		{NewValidationError("bad input", "title"), http.StatusBadRequest},
		{NewPermissionError("not yours"), http.StatusForbidden},
		{NewNotFoundError("ticket not found"), http.StatusNotFound},
		{NewInvalidTransitionError("no reopen"), http.StatusBadRequest},
		{NewInvalidStateError("not open"), http.StatusBadRequest},
		{NewConflictError("stale write"), http.StatusConflict},
	}

	for _, tc := range tests {
		require.Equal(t, tc.want, tc.err.Status(), tc.err.Message)
	}
}

func TestRequestErrorFields(t *testing.T) {
	err := NewValidationError("Missing required fields", "issue_type", "description")
	require.Equal(t, "Missing required fields: issue_type, description", err.Error())

	wrapped := fmt.Errorf("create ticket: %w", err)
	reqErr, ok := AsRequestError(wrapped)
	require.True(t, ok)
	require.Equal(t, ValidationError, reqErr.Kind)

	_, ok = AsRequestError(fmt.Errorf("plain failure"))
	require.False(t, ok)
}
