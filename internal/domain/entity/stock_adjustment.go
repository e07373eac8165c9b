package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Motivos de ajuste de stock.
const (
	AdjustmentReasonConsumption = "work_order_consumption" // consumo desde orden de trabajo
	AdjustmentReasonRestock     = "work_order_restock"     // devolución por borrado/reducción de línea
	AdjustmentReasonManual      = "manual"                 // corrección manual de inventario
	AdjustmentReasonReceiving   = "receiving"              // entrada de compra
)

// StockAdjustment es el registro journal de cada ajuste atómico de stock.
// La suma de Delta por ítem+orden debe netear con el consumo vivo de las
// líneas de costo vinculadas (conservación de la restauración).
type StockAdjustment struct {
	ID              string
	CompanyID       string
	InventoryItemID string
	WorkOrderID     string          // vacío en ajustes manuales
	Delta           decimal.Decimal // negativo = consumo, positivo = devolución/entrada
	QuantityAfter   decimal.Decimal // stock resultante tras aplicar el delta
	Reason          string          // ver constantes AdjustmentReason*
	Notes           string
	CreatedBy       string
	CreatedAt       time.Time
}
