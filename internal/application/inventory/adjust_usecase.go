package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Mantenix-api/internal/domain"
	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
	"github.com/jhoicas/Mantenix-api/internal/domain/repository"
)

// AdjustStockUseCase es la pasarela de ajuste de inventario: decrementa o
// devuelve stock de forma atómica con bloqueo de fila (SELECT FOR UPDATE) y
// Commit/Rollback. El chequeo autoritativo de disponibilidad y el decremento
// ocurren juntos del lado del servidor; cualquier pre-chequeo del cliente es
// solo UX y no se confía en él.
type AdjustStockUseCase struct {
	txRunner TxRunner
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(txRunner TxRunner) *AdjustStockUseCase {
	return &AdjustStockUseCase{txRunner: txRunner}
}

// AdjustmentInput entrada para un ajuste de stock.
// Delta negativo = consumo, positivo = devolución/entrada.
type AdjustmentInput struct {
	CompanyID       string
	UserID          string
	InventoryItemID string
	WorkOrderID     string // vacío en ajustes manuales
	Delta           decimal.Decimal
	Reason          string // ver entity.AdjustmentReason*
	Notes           string
}

// Adjust aplica el delta sobre el stock del ítem dentro de una transacción y
// devuelve la cantidad resultante. Un delta negativo que dejaría el stock
// bajo cero se rechaza con *domain.InsufficientStockError (cantidad
// solicitada y disponible exactas) sin mutar nada.
func (uc *AdjustStockUseCase) Adjust(ctx context.Context, input AdjustmentInput) (decimal.Decimal, error) {
	if input.InventoryItemID == "" || input.Delta.IsZero() || input.Reason == "" {
		return decimal.Zero, domain.ErrInvalidInput
	}
	// Stock en unidades discretas: no se aceptan deltas fraccionarios.
	if !input.Delta.Equal(input.Delta.Truncate(0)) {
		return decimal.Zero, domain.ErrInvalidInput
	}

	var newQty decimal.Decimal
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		adjRepo repository.StockAdjustmentRepository,
	) error {
		// Bloquea la fila del ítem para evitar condiciones de carrera entre sesiones.
		item, err := itemRepo.GetForUpdate(input.InventoryItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if input.CompanyID != "" && item.CompanyID != input.CompanyID {
			return domain.ErrForbidden
		}

		newQty = item.Quantity.Add(input.Delta)
		if newQty.IsNegative() {
			return &domain.InsufficientStockError{
				ItemID:    item.ID,
				Requested: input.Delta.Neg(),
				Available: item.Quantity,
			}
		}

		if err := itemRepo.UpdateQuantity(item.ID, newQty); err != nil {
			return err
		}
		// Journal: un registro por ajuste, con el stock resultante.
		adj := &entity.StockAdjustment{
			ID:              uuid.New().String(),
			CompanyID:       item.CompanyID,
			InventoryItemID: item.ID,
			WorkOrderID:     input.WorkOrderID,
			Delta:           input.Delta,
			QuantityAfter:   newQty,
			Reason:          input.Reason,
			Notes:           input.Notes,
			CreatedBy:       input.UserID,
			CreatedAt:       time.Now(),
		}
		return adjRepo.Create(adj)
	})
	if err != nil {
		return decimal.Zero, err
	}
	return newQty, nil
}

// AdjustForWorkOrder firma plana que implementa el puerto costs.StockAdjuster:
// adjust(itemId, delta, reason, workOrderId) -> nueva cantidad.
func (uc *AdjustStockUseCase) AdjustForWorkOrder(ctx context.Context, itemID string, delta decimal.Decimal, reason, workOrderID, userID string) (decimal.Decimal, error) {
	return uc.Adjust(ctx, AdjustmentInput{
		UserID:          userID,
		InventoryItemID: itemID,
		WorkOrderID:     workOrderID,
		Delta:           delta,
		Reason:          reason,
	})
}
