package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
)

// InventoryItemRepository define el puerto para repuestos/materiales con stock.
// Usado dentro de transacciones para garantizar consistencia.
type InventoryItemRepository interface {
	Create(item *entity.InventoryItem) error
	GetByID(id string) (*entity.InventoryItem, error)
	GetByCompanyAndSKU(companyID, sku string) (*entity.InventoryItem, error)
	Update(item *entity.InventoryItem) error
	// UpdateQuantity actualiza solo el stock (usado por el motor de ajustes).
	UpdateQuantity(id string, quantity decimal.Decimal) error
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.InventoryItem, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.InventoryItem, error)
	// ListCompatible lista los ítems compatibles con alguno de los equipos dados
	// (fuentes elegibles para "agregar desde inventario").
	ListCompatible(companyID string, equipmentIDs []string) ([]*entity.InventoryItem, error)
	// ListBelowReorderPoint lista los ítems con stock bajo el punto de reorden.
	ListBelowReorderPoint(companyID string) ([]*entity.InventoryItem, error)
	Delete(id string) error
}
