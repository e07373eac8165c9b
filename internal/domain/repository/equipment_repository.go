package repository

import "github.com/jhoicas/Mantenix-api/internal/domain/entity"

// EquipmentRepository define el puerto de persistencia para equipos.
type EquipmentRepository interface {
	Create(eq *entity.Equipment) error
	GetByID(id string) (*entity.Equipment, error)
	Update(eq *entity.Equipment) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Equipment, error)
	// ListByWorkOrder devuelve los equipos vinculados a una orden de trabajo
	// (colaborador de compatibilidad: acota las fuentes de inventario elegibles).
	ListByWorkOrder(workOrderID string) ([]*entity.Equipment, error)
	Delete(id string) error
}
