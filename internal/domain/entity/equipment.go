package entity

import "time"

// Estados de un equipo.
const (
	EquipmentStatusOperational = "operational"
	EquipmentStatusMaintenance = "maintenance"
	EquipmentStatusRetired     = "retired"
)

// Equipment representa un equipo/activo sujeto a mantenimiento.
// Los repuestos elegibles para una orden de trabajo se resuelven por
// compatibilidad equipo ↔ ítem de inventario (tabla equipment_compatibility).
type Equipment struct {
	ID           string
	CompanyID    string
	Code         string // código interno único por empresa
	Name         string
	Model        string
	SerialNumber string
	Location     string
	Status       string // operational, maintenance, retired
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
