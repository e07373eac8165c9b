package costs_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcosts "github.com/jhoicas/Mantenix-api/internal/application/costs"
	"github.com/jhoicas/Mantenix-api/internal/domain"
)

func TestClassifyStockError_VarianteEstructurada(t *testing.T) {
	err := &domain.InsufficientStockError{
		ItemID:    "inv-1",
		Requested: qty("8"),
		Available: qty("5"),
	}
	// Incluso envuelto, errors.As lo encuentra.
	wrapped := fmt.Errorf("ajuste rechazado: %w", err)

	shortage, ok := appcosts.ClassifyStockError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "inv-1", shortage.ItemID)
	assert.True(t, shortage.Requested.Equal(qty("8")))
	assert.True(t, shortage.Available.Equal(qty("5")))
}

func TestClassifyStockError_MensajeEnEspanol(t *testing.T) {
	err := errors.New("stock insuficiente: solicitado 8, disponible 5")
	shortage, ok := appcosts.ClassifyStockError(err)
	require.True(t, ok)
	assert.True(t, shortage.Requested.Equal(qty("8")))
	assert.True(t, shortage.Available.Equal(qty("5")))
}

func TestClassifyStockError_MensajeEnIngles(t *testing.T) {
	err := errors.New("insufficient stock: requested 12.5, available 3")
	shortage, ok := appcosts.ClassifyStockError(err)
	require.True(t, ok)
	assert.True(t, shortage.Requested.Equal(qty("12.5")))
	assert.True(t, shortage.Available.Equal(qty("3")))
}

func TestClassifyStockError_SentinelSinCifras(t *testing.T) {
	err := fmt.Errorf("pasarela: %w", domain.ErrInsufficientStock)
	shortage, ok := appcosts.ClassifyStockError(err)
	require.True(t, ok)
	assert.True(t, shortage.Requested.IsZero())
	assert.True(t, shortage.Available.IsZero())
}

func TestClassifyStockError_NoReconocible(t *testing.T) {
	_, ok := appcosts.ClassifyStockError(errors.New("connection refused"))
	assert.False(t, ok)

	_, ok = appcosts.ClassifyStockError(nil)
	assert.False(t, ok)
}
