package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := Wrap(cause, CodeDatabaseError, "Internal server error", http.StatusInternalServerError)

	assert.Contains(t, err.Error(), "DATABASE_ERROR")
	assert.Contains(t, err.Error(), "connection refused")
	assert.True(t, errors.Is(err, cause))

	plain := New(CodeNotFound, "Not found", http.StatusNotFound)
	assert.Equal(t, "[NOT_FOUND] Not found", plain.Error())
	assert.Nil(t, plain.Unwrap())
}

func TestAppError_MarshalHidesCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("secret internals")
	err := Wrap(cause, CodeInternalError, "Internal server error", http.StatusInternalServerError)

	data, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)
	assert.NotContains(t, string(data), "secret internals")
	assert.Contains(t, string(data), "Internal server error")
	assert.NotContains(t, string(data), "HTTPCode")
}

func TestValidationError_Shape(t *testing.T) {
	t.Parallel()

	err := ValidationError(map[string]string{"title": "This field is required"})
	assert.Equal(t, http.StatusUnprocessableEntity, err.HTTPCode)
	assert.Equal(t, "Invalid data", err.Message)

	data, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Invalid data", decoded["message"])
	assert.Equal(t, string(CodeValidationFailed), decoded["code"])

	details, ok := decoded["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "This field is required", details["title"])
}

func TestFixedResponses(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err      *AppError
		httpCode int
		message  string
	}{
		{ErrNotWork, http.StatusForbidden, "Not work"},
		{ErrLikeAlready, http.StatusBadRequest, "Like already"},
		{ErrCommentNotAvailable, http.StatusBadRequest, "Comment not avaible"},
		{ErrEmptyUpdate, http.StatusBadRequest, "Http bad request"},
		{ErrInvalidCredentials, http.StatusUnauthorized, "Invalid login or password"},
		{ErrInvalidRefreshToken, http.StatusUnauthorized, "Invalid refresh token"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.httpCode, tc.err.HTTPCode, tc.message)
		assert.Equal(t, tc.message, tc.err.Message)
	}
}

func TestAsAppError(t *testing.T) {
	t.Parallel()

	appErr, ok := AsAppError(NewNotFoundError("Not found"))
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, appErr.Code)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)

	// Wrapped AppErrors still unwrap.
	wrapped := InternalError(NewNotFoundError("Not found"))
	appErr, ok = AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeInternalError, appErr.Code)
}
