package entity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Field: "title", Message: "is a required field"}
	assert.Equal(t, "validation error on field 'title': is a required field", err.Error())
	assert.Equal(t, "title is a required field", err.UserMessage())
	assert.Equal(t, "invalid payload", (&ValidationError{Message: "invalid payload"}).UserMessage())
}

func TestValidationError_IsValidationFailed(t *testing.T) {
	err := fmt.Errorf("add event: %w", &ValidationError{Field: "date", Message: "invalid"})

	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.False(t, errors.Is(err, ErrInvalidInput))

	var ve *ValidationError
	if assert.True(t, errors.As(err, &ve)) {
		assert.Equal(t, "date", ve.Field)
	}
}
