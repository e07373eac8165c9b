package dto

import "time"

// CreateWorkOrderRequest entrada para crear una orden de trabajo.
type CreateWorkOrderRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=200"`
	Description string     `json:"description"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=low medium high"`
	AssignedTo  string     `json:"assigned_to" validate:"omitempty,uuid"`
	DueDate     *time.Time `json:"due_date"`
	// Equipos afectados por la orden (acotan los repuestos elegibles).
	EquipmentIDs []string `json:"equipment_ids" validate:"omitempty,dive,uuid"`
}

// UpdateWorkOrderRequest entrada para actualizar una orden (campos opcionales).
type UpdateWorkOrderRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description"`
	Status      *string    `json:"status" validate:"omitempty,oneof=open in_progress completed cancelled"`
	Priority    *string    `json:"priority" validate:"omitempty,oneof=low medium high"`
	AssignedTo  *string    `json:"assigned_to"`
	DueDate     *time.Time `json:"due_date"`
}

// WorkOrderResponse salida de una orden de trabajo.
type WorkOrderResponse struct {
	ID          string     `json:"id"`
	CompanyID   string     `json:"company_id"`
	Code        string     `json:"code"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	AssignedTo  string     `json:"assigned_to,omitempty"`
	CreatedBy   string     `json:"created_by"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// WorkOrderListResponse lista paginada de órdenes.
type WorkOrderListResponse struct {
	Items []WorkOrderResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// CostSummaryResponse resumen agregado del libro de costos de una orden.
type CostSummaryResponse struct {
	TotalItems           int                   `json:"total_items"`
	TotalCostCents       int64                 `json:"total_cost_cents"`
	AverageItemCostCents int64                 `json:"average_item_cost_cents"`
	ByCreator            []CreatorRollupDetail `json:"by_creator"`
}

// CreatorRollupDetail subtotal de costos por usuario creador.
type CreatorRollupDetail struct {
	CreatedBy      string `json:"created_by"`
	Items          int    `json:"items"`
	TotalCostCents int64  `json:"total_cost_cents"`
}
