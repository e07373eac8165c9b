package costs

import (
	"context"

	"github.com/shopspring/decimal"
)

// StockAdjuster es la frontera con la pasarela de ajuste de inventario:
// adjust(itemId, delta, reason, workOrderId) -> nueva cantidad. Delta negativo
// consume stock, positivo lo devuelve. La implementación debe ser atómica y
// segura bajo llamadas concurrentes (bloqueo de fila del lado del servidor);
// el motor de costos trata su respuesta como la única fuente de verdad del
// nivel de stock. La implementa inventory.AdjustStockUseCase.
type StockAdjuster interface {
	AdjustForWorkOrder(ctx context.Context, itemID string, delta decimal.Decimal, reason, workOrderID, userID string) (decimal.Decimal, error)
}
