package costs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Mantenix-api/internal/domain"
	domaincosts "github.com/jhoicas/Mantenix-api/internal/domain/costs"
	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
	"github.com/jhoicas/Mantenix-api/internal/domain/repository"
)

// AddFromInventoryUseCase crea una línea de costo consumiendo stock físico:
// decrementa primero (ajuste atómico con bloqueo de fila) y crea la fila de
// costo después. Si el decremento falla, la línea no se crea; si la creación
// falla, se emite la devolución compensatoria para no dejar stock descontado
// huérfano. El consumo se aplica de inmediato, no se difiere al commit.
type AddFromInventoryUseCase struct {
	costRepo      repository.CostItemRepository
	itemRepo      repository.InventoryItemRepository
	workOrderRepo repository.WorkOrderRepository
	adjuster      StockAdjuster
}

// NewAddFromInventoryUseCase construye el caso de uso.
func NewAddFromInventoryUseCase(
	costRepo repository.CostItemRepository,
	itemRepo repository.InventoryItemRepository,
	workOrderRepo repository.WorkOrderRepository,
	adjuster StockAdjuster,
) *AddFromInventoryUseCase {
	return &AddFromInventoryUseCase{
		costRepo:      costRepo,
		itemRepo:      itemRepo,
		workOrderRepo: workOrderRepo,
		adjuster:      adjuster,
	}
}

// AddFromInventoryInput entrada para consumir stock hacia una orden.
// UnitPriceCents nil = usar el costo unitario vigente del ítem.
type AddFromInventoryInput struct {
	CompanyID       string
	UserID          string
	WorkOrderID     string
	InventoryItemID string
	Quantity        decimal.Decimal
	UnitPriceCents  *int64
}

// AddFromInventory descuenta stock y crea la línea vinculada. Devuelve la
// línea creada para que la UI la refleje de inmediato (AddFilled en el
// borrador) sin esperar una recarga completa.
func (uc *AddFromInventoryUseCase) AddFromInventory(ctx context.Context, in AddFromInventoryInput) (*entity.CostItem, error) {
	if in.WorkOrderID == "" || in.InventoryItemID == "" {
		return nil, domain.ErrInvalidInput
	}
	// Unidades discretas, positivas.
	if !in.Quantity.IsPositive() || !in.Quantity.Equal(in.Quantity.Truncate(0)) {
		return nil, domain.ErrInvalidInput
	}

	wo, err := uc.workOrderRepo.GetByID(in.WorkOrderID)
	if err != nil {
		return nil, err
	}
	if wo == nil {
		return nil, domain.ErrNotFound
	}
	if wo.CompanyID != in.CompanyID {
		return nil, domain.ErrForbidden
	}

	item, err := uc.itemRepo.GetByID(in.InventoryItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.CompanyID != in.CompanyID {
		return nil, domain.ErrForbidden
	}

	unitPrice := item.UnitCostCents
	if in.UnitPriceCents != nil {
		if *in.UnitPriceCents < 0 {
			return nil, domain.ErrInvalidInput
		}
		unitPrice = *in.UnitPriceCents
	}

	// Decrementar primero: el chequeo autoritativo vive en la pasarela.
	if _, err := uc.adjuster.AdjustForWorkOrder(ctx, item.ID, in.Quantity.Neg(),
		entity.AdjustmentReasonConsumption, in.WorkOrderID, in.UserID); err != nil {
		return nil, err
	}

	now := time.Now()
	qty := in.Quantity
	cost := &entity.CostItem{
		ID:               uuid.New().String(),
		WorkOrderID:      in.WorkOrderID,
		CompanyID:        in.CompanyID,
		Description:      item.Name,
		Quantity:         qty,
		UnitPriceCents:   unitPrice,
		TotalCents:       domaincosts.TotalCents(qty, unitPrice),
		InventoryItemID:  &item.ID,
		OriginalQuantity: &qty,
		CreatedBy:        in.UserID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.costRepo.Create(cost); err != nil {
		// El stock ya se descontó: devolverlo para no dejarlo huérfano.
		if _, compErr := uc.adjuster.AdjustForWorkOrder(ctx, item.ID, in.Quantity,
			entity.AdjustmentReasonRestock, in.WorkOrderID, in.UserID); compErr != nil {
			log.Error().
				Err(compErr).
				Str("inventory_item_id", item.ID).
				Str("work_order_id", in.WorkOrderID).
				Str("quantity", in.Quantity.String()).
				Msg("devolución compensatoria fallida: stock descontado sin línea de costo")
		}
		return nil, fmt.Errorf("crear línea de costo: %w", err)
	}
	return cost, nil
}
