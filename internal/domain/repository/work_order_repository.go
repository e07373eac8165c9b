package repository

import "github.com/jhoicas/Mantenix-api/internal/domain/entity"

// WorkOrderRepository define el puerto de persistencia para órdenes de trabajo.
type WorkOrderRepository interface {
	Create(wo *entity.WorkOrder) error
	GetByID(id string) (*entity.WorkOrder, error)
	Update(wo *entity.WorkOrder) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.WorkOrder, error)
	Delete(id string) error
	// LinkEquipment / UnlinkEquipment mantienen la relación orden ↔ equipos
	// (tabla work_order_equipment).
	LinkEquipment(workOrderID, equipmentID string) error
	UnlinkEquipment(workOrderID, equipmentID string) error
}
