package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsAppError(t *testing.T) {
	notFound := NotFound("Genre")
	wrapped := fmt.Errorf("get genre: %w", notFound)

	got := AsAppError(wrapped)
	assert.Same(t, notFound, got)
	assert.Equal(t, http.StatusNotFound, got.Status)
	assert.Equal(t, "Genre not found", got.Message)

	cause := errors.New("connection refused")
	internal := AsAppError(cause)
	assert.Equal(t, http.StatusInternalServerError, internal.Status)
	assert.ErrorIs(t, internal, cause)
}
