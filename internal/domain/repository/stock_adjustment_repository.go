package repository

import "github.com/jhoicas/Mantenix-api/internal/domain/entity"

// StockAdjustmentRepository define el puerto del journal de ajustes de stock.
// Cada ajuste atómico del motor deja exactamente un registro.
type StockAdjustmentRepository interface {
	Create(adj *entity.StockAdjustment) error
	ListByItem(inventoryItemID string, limit, offset int) ([]*entity.StockAdjustment, error)
	ListByWorkOrder(workOrderID string) ([]*entity.StockAdjustment, error)
}
