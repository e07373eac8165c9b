package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInventoryItemRequest entrada para registrar un repuesto/material.
type CreateInventoryItemRequest struct {
	SKU           string          `json:"sku" validate:"required,min=1,max=50"`
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Description   string          `json:"description"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCostCents int64           `json:"unit_cost_cents" validate:"min=0"`
	ReorderPoint  decimal.Decimal `json:"reorder_point"`
	Location      string          `json:"location"`
}

// UpdateInventoryItemRequest entrada para actualizar un ítem (campos opcionales).
// El stock NO se edita por aquí: todo cambio de cantidad pasa por el ajuste
// atómico (POST /adjust) para que quede en el journal.
type UpdateInventoryItemRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description   *string          `json:"description"`
	UnitCostCents *int64           `json:"unit_cost_cents" validate:"omitempty,min=0"`
	ReorderPoint  *decimal.Decimal `json:"reorder_point"`
	Location      *string          `json:"location"`
}

// AdjustStockRequest ajuste manual de stock (delta con signo).
type AdjustStockRequest struct {
	Delta  decimal.Decimal `json:"delta"`
	Reason string          `json:"reason" validate:"required,oneof=manual receiving"`
	Notes  string          `json:"notes"`
}

// InventoryItemResponse salida de un ítem de inventario.
type InventoryItemResponse struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"company_id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCostCents int64           `json:"unit_cost_cents"`
	ReorderPoint  decimal.Decimal `json:"reorder_point"`
	Location      string          `json:"location,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// InventoryListResponse lista paginada de ítems.
type InventoryListResponse struct {
	Items []InventoryItemResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// StockAdjustmentResponse un registro del journal de ajustes.
type StockAdjustmentResponse struct {
	ID              string          `json:"id"`
	InventoryItemID string          `json:"inventory_item_id"`
	WorkOrderID     string          `json:"work_order_id,omitempty"`
	Delta           decimal.Decimal `json:"delta"`
	QuantityAfter   decimal.Decimal `json:"quantity_after"`
	Reason          string          `json:"reason"`
	Notes           string          `json:"notes,omitempty"`
	CreatedBy       string          `json:"created_by"`
	CreatedAt       time.Time       `json:"created_at"`
}
