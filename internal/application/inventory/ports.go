package inventory

import (
	"context"

	"github.com/jhoicas/Mantenix-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la verificación de stock, el
// decremento y el registro journal ocurran como una sola operación atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		adjRepo repository.StockAdjustmentRepository,
	) error) error
}
