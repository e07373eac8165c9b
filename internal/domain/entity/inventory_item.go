package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa un repuesto o material con stock controlado.
// Quantity es la única pieza de estado compartido que toca el motor de costos
// y solo se muta vía el ajuste atómico (SELECT FOR UPDATE en el adaptador).
type InventoryItem struct {
	ID            string
	CompanyID     string
	SKU           string // código único por empresa
	Name          string
	Description   string
	Quantity      decimal.Decimal // stock disponible, unidades discretas
	UnitCostCents int64           // costo unitario en centavos
	ReorderPoint  decimal.Decimal // umbral para la lista de reposición
	Location      string          // bodega/estante
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
