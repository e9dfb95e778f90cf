package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-kardex/internal/application/inventory"
	"github.com/jhoicas/Inventario-kardex/internal/domain"
)

func TestRetryOnContention_RetriesUntilSuccess(t *testing.T) {
	calls := 0
	got, err := inventory.RetryOnContention(context.Background(), 3, func() (string, error) {
		calls++
		if calls < 3 {
			return "", domain.ErrLockContention
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, calls)
}

func TestRetryOnContention_GivesUp(t *testing.T) {
	calls := 0
	_, err := inventory.RetryOnContention(context.Background(), 2, func() (int, error) {
		calls++
		return 0, domain.ErrLockContention
	})

	assert.ErrorIs(t, err, domain.ErrLockContention)
	assert.Equal(t, 2, calls)
}

func TestRetryOnContention_BusinessErrorIsPermanent(t *testing.T) {
	calls := 0
	_, err := inventory.RetryOnContention(context.Background(), 5, func() (int, error) {
		calls++
		return 0, domain.ErrInsufficientStock
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 1, calls)
}
