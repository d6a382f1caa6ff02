package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeToHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, ErrTodoNotFound.HTTPStatus)
	assert.Equal(t, http.StatusNotFound, ErrLlmConfigNotFound.HTTPStatus)
	assert.Equal(t, http.StatusBadRequest, ErrLlmInactive.HTTPStatus)
	assert.Equal(t, http.StatusInternalServerError, ErrLlmUnavailable.HTTPStatus)
	assert.Equal(t, http.StatusInternalServerError, ErrLlmCallFailed.HTTPStatus)
	assert.Equal(t, http.StatusUnauthorized, ErrTokenExpired.HTTPStatus)
}

func TestWithDetailClones(t *testing.T) {
	detailed := ErrNotFound.WithDetail("todo 42")

	assert.Equal(t, "todo 42", detailed.Detail)
	assert.Empty(t, ErrNotFound.Detail, "predefined error must not be mutated")
	assert.Equal(t, ErrNotFound.Code, detailed.Code)
}

func TestWithErrorUnwraps(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	wrapped := ErrLlmCallFailed.WithError(cause)

	assert.Equal(t, cause, wrapped.Unwrap())
	assert.Nil(t, ErrLlmCallFailed.Err)
	assert.Contains(t, wrapped.Error(), "connection refused")
}
