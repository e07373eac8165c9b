package repository

import (
	"github.com/jhoicas/Mantenix-api/internal/domain/costs"
	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
)

// CostItemRepository define el puerto de persistencia del libro de costos
// de órdenes de trabajo (Cost Entity Store). La implementación recalcula
// total_cents en Update cuando cambian cantidad o precio: la fila persistida
// es la fuente de verdad del total.
type CostItemRepository interface {
	Create(item *entity.CostItem) error
	Update(item *entity.CostItem) error
	Delete(id string) error
	GetByID(id string) (*entity.CostItem, error)
	ListByWorkOrder(workOrderID string) ([]*entity.CostItem, error)
	// Summary agrega totales/rollup por creador en SQL (mismo resultado que
	// costs.Summarize sobre ListByWorkOrder, sin traer las filas).
	Summary(workOrderID string) (*costs.Summary, error)
}
