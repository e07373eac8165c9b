package dto

import "time"

// CreateEquipmentRequest entrada para registrar un equipo.
type CreateEquipmentRequest struct {
	Code         string `json:"code" validate:"required,min=1,max=50"`
	Name         string `json:"name" validate:"required,min=1,max=200"`
	Model        string `json:"model"`
	SerialNumber string `json:"serial_number"`
	Location     string `json:"location"`
}

// UpdateEquipmentRequest entrada para actualizar un equipo (campos opcionales).
type UpdateEquipmentRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=200"`
	Model        *string `json:"model"`
	SerialNumber *string `json:"serial_number"`
	Location     *string `json:"location"`
	Status       *string `json:"status" validate:"omitempty,oneof=operational maintenance retired"`
}

// EquipmentResponse salida de un equipo.
type EquipmentResponse struct {
	ID           string    `json:"id"`
	CompanyID    string    `json:"company_id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Model        string    `json:"model,omitempty"`
	SerialNumber string    `json:"serial_number,omitempty"`
	Location     string    `json:"location,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// EquipmentListResponse lista paginada de equipos.
type EquipmentListResponse struct {
	Items []EquipmentResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
