package costs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Mantenix-api/internal/domain"
	domaincosts "github.com/jhoicas/Mantenix-api/internal/domain/costs"
	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
	"github.com/jhoicas/Mantenix-api/internal/domain/repository"
)

// Operaciones por línea dentro de un commit.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Estado tri-valuado de cada línea tras el commit.
const (
	StatusCommitted = "committed"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped"
)

// ItemResult resultado de una línea dentro del commit. El motor devuelve
// datos, no notificaciones: la capa de UI decide cómo presentarlos.
type ItemResult struct {
	Ref    string
	Op     string // create, update, delete
	Status string // committed, failed, skipped
	Err    error
	// Shortage presente cuando la falla fue por stock insuficiente
	// (números exactos solicitado/disponible para el usuario).
	Shortage *StockShortage
	// StockNotRestored: borrado de línea vinculada cuya devolución de stock
	// falló. La línea NO se eliminó: hay que avisar que el stock no volvió y
	// el costo sigue registrado (se evita el doble daño).
	StockNotRestored bool
}

// CommitResult enumera el resultado de cada operación emitida. El commit es
// secuencial y sin batch atómico: ante una falla a mitad de lote, las líneas
// ya confirmadas quedan confirmadas y aquí se reporta exactamente cuáles,
// para que la sesión pueda reanudar en vez de perder el rastro.
type CommitResult struct {
	Results []ItemResult
}

func (r *CommitResult) add(res ItemResult) { r.Results = append(r.Results, res) }

// Committed cuenta las líneas confirmadas.
func (r *CommitResult) Committed() int { return r.count(StatusCommitted) }

// Failed cuenta las líneas fallidas.
func (r *CommitResult) Failed() int { return r.count(StatusFailed) }

// Skipped cuenta las líneas omitidas (tocadas sin cambio real).
func (r *CommitResult) Skipped() int { return r.count(StatusSkipped) }

func (r *CommitResult) count(status string) int {
	n := 0
	for _, it := range r.Results {
		if it.Status == status {
			n++
		}
	}
	return n
}

// AllOK indica que ninguna línea falló.
func (r *CommitResult) AllOK() bool { return r.Failed() == 0 }

// CommitUseCase reconcilia el borrador contra el Cost Entity Store: particiona
// en New/Updated/Deleted y emite una operación por línea, en orden
// creaciones → updates → borrados, de forma secuencial (sin paralelismo: la
// contabilidad de falla parcial es más simple a costa de latencia total).
// Una falla por línea nunca cancela a las hermanas ya confirmadas.
type CommitUseCase struct {
	costRepo repository.CostItemRepository
	adjuster StockAdjuster
}

// NewCommitUseCase construye el caso de uso.
func NewCommitUseCase(costRepo repository.CostItemRepository, adjuster StockAdjuster) *CommitUseCase {
	return &CommitUseCase{costRepo: costRepo, adjuster: adjuster}
}

// Commit valida el borrador y emite las operaciones pendientes. Los errores
// de validación bloquean el inicio (ninguna llamada de red); a partir de ahí
// el resultado es por línea. Un borrador sin cambios no emite nada. Cada
// operación confirmada avanza el baseline del borrador: re-cometer la misma
// sesión no re-aplica devoluciones de stock ya hechas.
func (uc *CommitUseCase) Commit(ctx context.Context, d *Draft, userID string) (*CommitResult, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	result := &CommitResult{}
	changes := d.Diff()

	// Tocadas sin cambio real: cero llamadas de red, pero el resultado las
	// enumera como omitidas (tri-estado completo por línea).
	for _, di := range changes.Skipped {
		di.IsModified = false
		result.add(ItemResult{Ref: di.Ref, Op: OpUpdate, Status: StatusSkipped})
	}

	for _, di := range changes.New {
		result.add(uc.commitCreate(ctx, d, di, userID))
	}
	for _, di := range changes.Updated {
		result.add(uc.commitUpdate(ctx, d, di, userID))
	}
	for _, di := range changes.Deleted {
		result.add(uc.commitDelete(ctx, d, di, userID))
	}
	return result, nil
}

// commitCreate inserta una línea nueva (siempre manual: las vinculadas a
// inventario se crean de inmediato vía AddFromInventory, nunca en el commit).
func (uc *CommitUseCase) commitCreate(ctx context.Context, d *Draft, di *DraftItem, userID string) ItemResult {
	now := time.Now()
	item := di.Item
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.WorkOrderID = d.workOrderID
	item.TotalCents = domaincosts.TotalCents(item.Quantity, item.UnitPriceCents)
	if item.CreatedBy == "" {
		item.CreatedBy = userID
	}
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := uc.costRepo.Create(&item); err != nil {
		return failed(di.Ref, OpCreate, err)
	}
	di.Item = item
	di.IsNew = false
	d.baseline[di.Ref] = item
	return ItemResult{Ref: di.Ref, Op: OpCreate, Status: StatusCommitted}
}

// commitUpdate aplica los cambios de campo de una línea existente. Si una
// línea vinculada redujo su cantidad, primero devuelve al stock exactamente
// el delta reducido (no la reserva completa) vía la pasarela atómica.
func (uc *CommitUseCase) commitUpdate(ctx context.Context, d *Draft, di *DraftItem, userID string) ItemResult {
	base, ok := d.Baseline(di.Ref)
	if !ok {
		return failed(di.Ref, OpUpdate, domain.ErrNotFound)
	}

	item := di.Item
	restored := decimal.Zero
	if item.IsInventoryLinked() && item.Quantity.LessThan(base.Quantity) {
		delta := base.Quantity.Sub(item.Quantity)
		if _, err := uc.adjuster.AdjustForWorkOrder(ctx, *item.InventoryItemID, delta,
			entity.AdjustmentReasonRestock, d.workOrderID, userID); err != nil {
			res := failed(di.Ref, OpUpdate, err)
			res.StockNotRestored = true
			return res
		}
		restored = delta
		// La reserva vigente pasa a ser la nueva cantidad.
		q := item.Quantity
		item.OriginalQuantity = &q
	}

	item.TotalCents = domaincosts.TotalCents(item.Quantity, item.UnitPriceCents)
	item.UpdatedAt = time.Now()
	if err := uc.costRepo.Update(&item); err != nil {
		// El stock ya se devolvió pero la fila no cambió: compensar
		// re-consumiendo el delta para no dejar el neto descuadrado.
		if restored.IsPositive() {
			uc.compensate(ctx, *item.InventoryItemID, restored.Neg(), d.workOrderID, userID, "update fallido tras devolución")
		}
		return failed(di.Ref, OpUpdate, err)
	}
	di.Item = item
	di.IsModified = false
	d.baseline[di.Ref] = item
	return ItemResult{Ref: di.Ref, Op: OpUpdate, Status: StatusCommitted}
}

// commitDelete elimina una línea. En líneas vinculadas primero devuelve el
// consumo vigente al stock; si la devolución falla, la línea NO se borra y la
// falla se reporta con StockNotRestored para que la UI avise con claridad.
func (uc *CommitUseCase) commitDelete(ctx context.Context, d *Draft, di *DraftItem, userID string) ItemResult {
	base, ok := d.Baseline(di.Ref)
	if !ok {
		return failed(di.Ref, OpDelete, domain.ErrNotFound)
	}

	if base.IsInventoryLinked() {
		if _, err := uc.adjuster.AdjustForWorkOrder(ctx, *base.InventoryItemID, base.Quantity,
			entity.AdjustmentReasonRestock, d.workOrderID, userID); err != nil {
			res := failed(di.Ref, OpDelete, err)
			res.StockNotRestored = true
			return res
		}
		if err := uc.costRepo.Delete(base.ID); err != nil {
			// Stock devuelto pero la fila sigue viva: re-consumir para
			// restablecer la conservación del neto.
			uc.compensate(ctx, *base.InventoryItemID, base.Quantity.Neg(), d.workOrderID, userID, "delete fallido tras devolución")
			return failed(di.Ref, OpDelete, err)
		}
		uc.settleDelete(d, di.Ref)
		return ItemResult{Ref: di.Ref, Op: OpDelete, Status: StatusCommitted}
	}

	if err := uc.costRepo.Delete(base.ID); err != nil {
		return failed(di.Ref, OpDelete, err)
	}
	uc.settleDelete(d, di.Ref)
	return ItemResult{Ref: di.Ref, Op: OpDelete, Status: StatusCommitted}
}

// settleDelete saca la línea borrada del borrador y su baseline: un re-commit
// de la misma sesión no vuelve a borrarla ni a devolver su stock.
func (uc *CommitUseCase) settleDelete(d *Draft, ref string) {
	delete(d.baseline, ref)
	d.drop(ref)
}

// compensate emite el ajuste inverso tras una falla a mitad de operación.
// Si también falla, queda un descuadre stock↔libro que no se puede resolver
// aquí: se registra con todo el contexto para intervención manual.
func (uc *CommitUseCase) compensate(ctx context.Context, itemID string, delta decimal.Decimal, workOrderID, userID, motivo string) {
	if _, err := uc.adjuster.AdjustForWorkOrder(ctx, itemID, delta, entity.AdjustmentReasonConsumption, workOrderID, userID); err != nil {
		log.Error().
			Err(err).
			Str("inventory_item_id", itemID).
			Str("work_order_id", workOrderID).
			Str("delta", delta.String()).
			Str("motivo", motivo).
			Msg("compensación de stock fallida: descuadre stock↔libro pendiente de corrección manual")
	}
}

func failed(ref, op string, err error) ItemResult {
	res := ItemResult{Ref: ref, Op: op, Status: StatusFailed, Err: err}
	if shortage, ok := ClassifyStockError(err); ok {
		res.Shortage = shortage
	}
	return res
}
