package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidation(t *testing.T) {
	err := Validation("name is required")

	assert.Equal(t, "name is required", err.Error())
	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestNew(t *testing.T) {
	err := New(ErrNotFound, "order not found")
	wrapped := fmt.Errorf("load order: %w", err)

	assert.Equal(t, "order not found", err.Error())
	assert.True(t, errors.Is(wrapped, ErrNotFound))
}
