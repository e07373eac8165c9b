package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostItem representa una línea de costo de una orden de trabajo (mano de obra,
// repuesto o material). Los montos van en centavos (int64): nada de aritmética
// monetaria en punto flotante.
//
// Invariante: TotalCents == redondeo(Quantity × UnitPriceCents), recalculado
// por costs.TotalCents cada vez que cambia cantidad o precio.
//
// Si la línea consume inventario físico, InventoryItemID apunta al ítem y
// OriginalQuantity guarda las unidades reservadas (descontadas del stock al
// crear). Borrar o reducir la línea devuelve stock a través del ajuste
// atómico, nunca con un read-then-write del cliente.
type CostItem struct {
	ID             string
	WorkOrderID    string
	CompanyID      string
	Description    string
	Quantity       decimal.Decimal // > 0; unidades discretas si es de inventario
	UnitPriceCents int64           // >= 0
	TotalCents     int64

	// Vínculo con inventario (nil en líneas manuales).
	InventoryItemID  *string
	OriginalQuantity *decimal.Decimal // unidades reservadas vigentes

	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsInventoryLinked indica si la línea consume stock físico.
func (c *CostItem) IsInventoryLinked() bool {
	return c.InventoryItemID != nil && *c.InventoryItemID != ""
}
