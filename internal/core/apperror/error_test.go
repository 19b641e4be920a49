package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFactories_HTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"validation", NewValidation("bad"), http.StatusBadRequest},
		{"bad request", NewBadRequest("cannot move"), http.StatusBadRequest},
		{"not found", NewNotFound("category", 1), http.StatusNotFound},
		{"route not found", NewRouteNotFound("/api/v9"), http.StatusNotFound},
		{"unauthorized", NewUnauthorized("no token"), http.StatusUnauthorized},
		{"forbidden", NewForbidden("origin"), http.StatusForbidden},
		{"method", NewMethodNotAllowed("PATCH"), http.StatusMethodNotAllowed},
		{"conflict", NewConflict("active"), http.StatusConflict},
		{"not implemented", NewNotImplemented("retired"), http.StatusNotImplemented},
		{"internal", NewInternal(errors.New("boom")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPStatus)
			assert.Equal(t, tt.want, GetHTTPStatus(tt.err))
		})
	}
}

func TestAsAppError_Wrapped(t *testing.T) {
	base := NewNotFound("lot", 7)
	wrapped := fmt.Errorf("load lot: %w", base)

	appErr, ok := AsAppError(wrapped)
	assert.True(t, ok)
	assert.Same(t, base, appErr)
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsBadRequest(wrapped))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(errors.New("plain")))
}

func TestWithCause_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewInternal(nil).WithCause(cause).WithDetail("op", "swap")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "swap", err.Details["op"])
	assert.Contains(t, err.Error(), "connection reset")
}
