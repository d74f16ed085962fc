package apperror_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/jflam/ai-starter-app-postgis/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	err := apperror.Store(assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.Equal(t, apperror.CodeStore, err.Code)
	require.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), assert.AnError.Error())
}

func TestValidation(t *testing.T) {
	err := apperror.Validation(map[string][]string{"lon": {"Required"}})

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, apperror.CodeValidation, err.Code)
	assert.Equal(t, "Invalid input", err.Error())
	assert.Equal(t, []string{"Required"}, err.Fields["lon"])
}

func TestFrom(t *testing.T) {
	notFound := apperror.NotFound("Restaurant not found")
	wrapped := fmt.Errorf("handler: %w", notFound)

	assert.Same(t, notFound, apperror.From(wrapped))
	assert.Nil(t, apperror.From(assert.AnError))
	assert.Nil(t, apperror.From(nil))
}
