package costs_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Mantenix-api/internal/domain/costs"
	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
)

func item(createdBy string, totalCents int64) *entity.CostItem {
	return &entity.CostItem{
		Description: "línea",
		Quantity:    decimal.NewFromInt(1),
		TotalCents:  totalCents,
		CreatedBy:   createdBy,
	}
}

func TestSummarize_ListaVacia(t *testing.T) {
	s := costs.Summarize(nil)
	assert.Equal(t, 0, s.TotalItems)
	assert.Equal(t, int64(0), s.TotalCostCents)
	// Promedio definido como 0 cuando no hay líneas (sin división por cero).
	assert.Equal(t, int64(0), s.AverageItemCostCents)
	assert.Empty(t, s.ByCreator)
}

func TestSummarize_TotalesYPromedio(t *testing.T) {
	items := []*entity.CostItem{
		item("tecnico-1", 1000),
		item("tecnico-1", 1999),
		item("tecnico-2", 500),
	}
	s := costs.Summarize(items)
	assert.Equal(t, 3, s.TotalItems)
	assert.Equal(t, int64(3499), s.TotalCostCents)
	// Promedio entero: 3499 / 3 = 1166 (truncado)
	assert.Equal(t, int64(1166), s.AverageItemCostCents)
}

func TestSummarize_RollupPorCreador(t *testing.T) {
	items := []*entity.CostItem{
		item("tecnico-1", 1000),
		item("tecnico-1", 1999),
		item("tecnico-2", 500),
	}
	s := costs.Summarize(items)
	require.Len(t, s.ByCreator, 2)
	assert.Equal(t, costs.CreatorRollup{ItemCount: 2, TotalCents: 2999}, s.ByCreator["tecnico-1"])
	assert.Equal(t, costs.CreatorRollup{ItemCount: 1, TotalCents: 500}, s.ByCreator["tecnico-2"])
}

// Escenario del libro de costos mixto: una línea manual (2 × 500¢) y una
// vinculada a inventario (1 × 1999¢) → totalItems=2, total=2999¢.
func TestSummarize_EscenarioManualMasVinculada(t *testing.T) {
	invID := "item-inv-1"
	orig := decimal.NewFromInt(1)
	items := []*entity.CostItem{
		{Description: "mano de obra", Quantity: decimal.NewFromInt(2), UnitPriceCents: 500, TotalCents: 1000, CreatedBy: "t1"},
		{Description: "rodamiento", Quantity: decimal.NewFromInt(1), UnitPriceCents: 1999, TotalCents: 1999, CreatedBy: "t1", InventoryItemID: &invID, OriginalQuantity: &orig},
	}
	s := costs.Summarize(items)
	assert.Equal(t, 2, s.TotalItems)
	assert.Equal(t, int64(2999), s.TotalCostCents)
}
