package apperr_test

import (
	"fmt"
	"testing"

	"meetz/backend/internal/apperr"

	"github.com/stretchr/testify/assert"
)

func TestRetryable(t *testing.T) {
	assert.True(t, apperr.Retryable(apperr.ErrStorageUnavailable))
	assert.True(t, apperr.Retryable(apperr.ErrTranscriptionFailed))
	assert.False(t, apperr.Retryable(apperr.ErrNotFound))
	assert.False(t, apperr.Retryable(apperr.ErrDuplicate))
	assert.False(t, apperr.Retryable(nil))
}

// TestRetryable_Wrapped verifies the classification survives wrapping, which
// is how services hand these errors upward.
func TestRetryable_Wrapped(t *testing.T) {
	err := fmt.Errorf("object meeting42/fan_7.webm: %w", apperr.ErrStorageUnavailable)
	assert.True(t, apperr.Retryable(err))

	err = fmt.Errorf("user 7: %w", apperr.ErrNotFound)
	assert.False(t, apperr.Retryable(err))
}
