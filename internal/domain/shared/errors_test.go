package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Is(t *testing.T) {
	t.Run("matches sentinel through wrapping", func(t *testing.T) {
		err := fmt.Errorf("generate report: %w", ErrInvalidRange.WithMessage("start 2023-02-01 is after end 2023-01-01"))

		assert.ErrorIs(t, err, ErrInvalidRange)
		assert.NotErrorIs(t, err, ErrInvalidThreshold)
	})

	t.Run("keeps code and message", func(t *testing.T) {
		err := ErrNotFound.WithMessage("product not found")

		var de *DomainError
		assert.True(t, errors.As(err, &de))
		assert.Equal(t, "NOT_FOUND", de.Code)
		assert.Equal(t, "product not found", de.Error())
		assert.Equal(t, "Resource not found", ErrNotFound.Message)
	})
}
