package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
	"github.com/jhoicas/Mantenix-api/internal/domain/repository"
)

var _ repository.StockAdjustmentRepository = (*StockAdjustmentRepo)(nil)

const stockAdjustmentColumns = `id, company_id, inventory_item_id, work_order_id, delta, quantity_after, reason, notes, created_by, created_at`

// StockAdjustmentRepo implementación del journal de ajustes sobre PostgreSQL
// (usable con pool o tx).
type StockAdjustmentRepo struct {
	q Querier
}

// NewStockAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockAdjustmentRepository(q Querier) *StockAdjustmentRepo {
	return &StockAdjustmentRepo{q: q}
}

// Create persiste un registro del journal.
func (r *StockAdjustmentRepo) Create(adj *entity.StockAdjustment) error {
	if adj.ID == "" {
		adj.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_adjustments (` + stockAdjustmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	workOrderID := (*string)(nil)
	if adj.WorkOrderID != "" {
		workOrderID = &adj.WorkOrderID
	}
	_, err := r.q.Exec(context.Background(), query,
		adj.ID, adj.CompanyID, adj.InventoryItemID, workOrderID,
		adj.Delta, adj.QuantityAfter, adj.Reason, adj.Notes,
		adj.CreatedBy, adj.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock adjustment: %w", err)
	}
	return nil
}

// ListByItem lista el journal de un ítem, más reciente primero.
func (r *StockAdjustmentRepo) ListByItem(inventoryItemID string, limit, offset int) ([]*entity.StockAdjustment, error) {
	query := `SELECT ` + stockAdjustmentColumns + `
		FROM stock_adjustments WHERE inventory_item_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, inventoryItemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list adjustments by item: %w", err)
	}
	defer rows.Close()
	return collectAdjustments(rows)
}

// ListByWorkOrder lista los ajustes originados por una orden de trabajo.
func (r *StockAdjustmentRepo) ListByWorkOrder(workOrderID string) ([]*entity.StockAdjustment, error) {
	query := `SELECT ` + stockAdjustmentColumns + `
		FROM stock_adjustments WHERE work_order_id = $1
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, workOrderID)
	if err != nil {
		return nil, fmt.Errorf("list adjustments by work order: %w", err)
	}
	defer rows.Close()
	return collectAdjustments(rows)
}

func collectAdjustments(rows pgx.Rows) ([]*entity.StockAdjustment, error) {
	var list []*entity.StockAdjustment
	for rows.Next() {
		var a entity.StockAdjustment
		var workOrderID *string
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.InventoryItemID, &workOrderID,
			&a.Delta, &a.QuantityAfter, &a.Reason, &a.Notes, &a.CreatedBy, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock adjustment: %w", err)
		}
		if workOrderID != nil {
			a.WorkOrderID = *workOrderID
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
