package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Mantenix-api/internal/domain/costs"
	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
	"github.com/jhoicas/Mantenix-api/internal/domain/repository"
)

var _ repository.CostItemRepository = (*CostItemRepo)(nil)

const costItemColumns = `id, work_order_id, company_id, description, quantity, unit_price_cents, total_cents, inventory_item_id, original_quantity, created_by, created_at, updated_at`

// CostItemRepo implementación del puerto CostItemRepository sobre PostgreSQL
// (usable con pool o tx).
type CostItemRepo struct {
	q Querier
}

// NewCostItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCostItemRepository(q Querier) *CostItemRepo {
	return &CostItemRepo{q: q}
}

func scanCostItem(row pgx.Row) (*entity.CostItem, error) {
	var it entity.CostItem
	err := row.Scan(
		&it.ID, &it.WorkOrderID, &it.CompanyID, &it.Description,
		&it.Quantity, &it.UnitPriceCents, &it.TotalCents,
		&it.InventoryItemID, &it.OriginalQuantity,
		&it.CreatedBy, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Create persiste una línea de costo.
func (r *CostItemRepo) Create(item *entity.CostItem) error {
	query := `
		INSERT INTO cost_items (` + costItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.WorkOrderID, item.CompanyID, item.Description,
		item.Quantity, item.UnitPriceCents, item.TotalCents,
		item.InventoryItemID, item.OriginalQuantity,
		item.CreatedBy, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cost item: %w", err)
	}
	return nil
}

// Update actualiza una línea existente, incluido el total recalculado y la
// reserva vigente (original_quantity) tras una reducción.
func (r *CostItemRepo) Update(item *entity.CostItem) error {
	query := `
		UPDATE cost_items
		SET description = $2, quantity = $3, unit_price_cents = $4, total_cents = $5, original_quantity = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Description, item.Quantity, item.UnitPriceCents,
		item.TotalCents, item.OriginalQuantity, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update cost item: %w", err)
	}
	return nil
}

// Delete elimina una línea por ID.
func (r *CostItemRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM cost_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cost item: %w", err)
	}
	return nil
}

// GetByID obtiene una línea por ID.
func (r *CostItemRepo) GetByID(id string) (*entity.CostItem, error) {
	query := `SELECT ` + costItemColumns + ` FROM cost_items WHERE id = $1`
	it, err := scanCostItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cost item: %w", err)
	}
	return it, nil
}

// ListByWorkOrder lista las líneas de una orden en orden de creación.
func (r *CostItemRepo) ListByWorkOrder(workOrderID string) ([]*entity.CostItem, error) {
	query := `SELECT ` + costItemColumns + ` FROM cost_items WHERE work_order_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, workOrderID)
	if err != nil {
		return nil, fmt.Errorf("list cost items: %w", err)
	}
	defer rows.Close()
	var list []*entity.CostItem
	for rows.Next() {
		it, err := scanCostItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cost item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// Summary agrega el resumen en SQL: total, conteo, promedio entero y rollup
// por creador, sin traer las filas a memoria.
func (r *CostItemRepo) Summary(workOrderID string) (*costs.Summary, error) {
	query := `
		SELECT created_by, COUNT(*), COALESCE(SUM(total_cents), 0)
		FROM cost_items WHERE work_order_id = $1
		GROUP BY created_by`
	rows, err := r.q.Query(context.Background(), query, workOrderID)
	if err != nil {
		return nil, fmt.Errorf("cost summary: %w", err)
	}
	defer rows.Close()

	s := &costs.Summary{ByCreator: make(map[string]costs.CreatorRollup)}
	for rows.Next() {
		var createdBy string
		var count int
		var total int64
		if err := rows.Scan(&createdBy, &count, &total); err != nil {
			return nil, fmt.Errorf("scan cost summary: %w", err)
		}
		s.ByCreator[createdBy] = costs.CreatorRollup{ItemCount: count, TotalCents: total}
		s.TotalItems += count
		s.TotalCostCents += total
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if s.TotalItems > 0 {
		s.AverageItemCostCents = s.TotalCostCents / int64(s.TotalItems)
	}
	return s, nil
}
