package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-kardex/internal/domain"
)

func TestStockError_EsInsufficientStock(t *testing.T) {
	var err error = &domain.StockError{Available: 10, Requested: 15}
	wrapped := fmt.Errorf("salida: %w", err)

	assert.True(t, errors.Is(wrapped, domain.ErrInsufficientStock))

	var se *domain.StockError
	require.True(t, errors.As(wrapped, &se))
	assert.Equal(t, int64(10), se.Available)
	assert.Equal(t, int64(15), se.Requested)
	assert.Contains(t, err.Error(), "Disponible: 10")
}

func TestLedgerError_Unwrap(t *testing.T) {
	err := domain.Wrap(domain.ErrNoInventory, "warehouse", "wh-1")
	assert.True(t, errors.Is(err, domain.ErrNoInventory))
	assert.Contains(t, err.Error(), "wh-1")
}

func TestIsRetryable_SoloContencion(t *testing.T) {
	assert.True(t, domain.IsRetryable(fmt.Errorf("tx: %w", domain.ErrLockContention)))
	assert.False(t, domain.IsRetryable(domain.ErrInsufficientStock))
	assert.False(t, domain.IsRetryable(nil))
}
