package entity

import "time"

// Estados de una orden de trabajo.
const (
	WorkOrderStatusOpen       = "open"
	WorkOrderStatusInProgress = "in_progress"
	WorkOrderStatusCompleted  = "completed"
	WorkOrderStatusCancelled  = "cancelled"
)

// Prioridades válidas.
const (
	WorkOrderPriorityLow    = "low"
	WorkOrderPriorityMedium = "medium"
	WorkOrderPriorityHigh   = "high"
)

// WorkOrder representa una orden de trabajo de mantenimiento. Los costos
// (mano de obra, repuestos, materiales) cuelgan de ella como CostItem.
type WorkOrder struct {
	ID          string
	CompanyID   string
	Code        string // consecutivo legible, ej. OT-2026-0042
	Title       string
	Description string
	Status      string // open, in_progress, completed, cancelled
	Priority    string // low, medium, high
	AssignedTo  string // UserID del técnico responsable (vacío = sin asignar)
	CreatedBy   string
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
