package costs_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Mantenix-api/internal/domain/costs"
)

// ──────────────────────────────────────────────────────────────────────────────
// Invariante aritmético: TotalCents == redondeo(cantidad × precio unitario).
// ──────────────────────────────────────────────────────────────────────────────

func TestTotalCents_CantidadesEnteras(t *testing.T) {
	// 3 × $12.50 = $37.50
	total := costs.TotalCents(decimal.NewFromInt(3), 1250)
	assert.Equal(t, int64(3750), total)
}

func TestTotalCents_CantidadFraccionaria(t *testing.T) {
	// 2.5 horas × $100.00/h = $250.00
	total := costs.TotalCents(decimal.RequireFromString("2.5"), 10000)
	assert.Equal(t, int64(25000), total)
}

func TestTotalCents_RedondeoMitadHaciaArriba(t *testing.T) {
	// 1.5 × 3¢ = 4.5¢ → redondea a 5¢ (half-up)
	assert.Equal(t, int64(5), costs.TotalCents(decimal.RequireFromString("1.5"), 3))
	// 2.5 × 1¢ = 2.5¢ → 3¢; banker's rounding daría 2, aquí no se usa
	assert.Equal(t, int64(3), costs.TotalCents(decimal.RequireFromString("2.5"), 1))
}

func TestTotalCents_Ceros(t *testing.T) {
	assert.Equal(t, int64(0), costs.TotalCents(decimal.Zero, 1250))
	assert.Equal(t, int64(0), costs.TotalCents(decimal.NewFromInt(4), 0))
}
