package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Mantenix-api/internal/domain"
	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
	"github.com/jhoicas/Mantenix-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

const inventoryItemColumns = `id, company_id, sku, name, description, quantity, unit_cost_cents, reorder_point, location, created_at, updated_at`

// InventoryItemRepo implementación del puerto InventoryItemRepository sobre
// PostgreSQL (usable con pool o tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

func scanInventoryItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := row.Scan(
		&it.ID, &it.CompanyID, &it.SKU, &it.Name, &it.Description,
		&it.Quantity, &it.UnitCostCents, &it.ReorderPoint, &it.Location,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Create persiste un ítem nuevo.
func (r *InventoryItemRepo) Create(item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (` + inventoryItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.CompanyID, item.SKU, item.Name, item.Description,
		item.Quantity, item.UnitCostCents, item.ReorderPoint, item.Location,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID.
func (r *InventoryItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items WHERE id = $1`
	it, err := scanInventoryItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return it, nil
}

// GetByCompanyAndSKU obtiene un ítem por empresa y SKU.
func (r *InventoryItemRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items WHERE company_id = $1 AND sku = $2`
	it, err := scanInventoryItem(r.q.QueryRow(context.Background(), query, companyID, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item by sku: %w", err)
	}
	return it, nil
}

// GetForUpdate obtiene el ítem y bloquea la fila (SELECT FOR UPDATE). Solo
// tiene sentido dentro de una transacción: es la base del ajuste atómico.
func (r *InventoryItemRepo) GetForUpdate(id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items WHERE id = $1 FOR UPDATE`
	it, err := scanInventoryItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item for update: %w", err)
	}
	return it, nil
}

// Update actualiza los campos de catálogo. La cantidad NO se toca por aquí:
// todo cambio de stock pasa por UpdateQuantity dentro del ajuste atómico.
func (r *InventoryItemRepo) Update(item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET name = $2, description = $3, unit_cost_cents = $4, reorder_point = $5, location = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Description, item.UnitCostCents,
		item.ReorderPoint, item.Location, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory item: %w", err)
	}
	return nil
}

// UpdateQuantity actualiza solo el stock (usado por el motor de ajustes).
func (r *InventoryItemRepo) UpdateQuantity(id string, quantity decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE inventory_items SET quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update inventory quantity: %w", err)
	}
	return nil
}

// ListByCompany lista ítems por empresa con paginación.
func (r *InventoryItemRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + `
		FROM inventory_items WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	return collectInventoryItems(rows)
}

// ListCompatible lista los ítems compatibles con alguno de los equipos dados
// (join con equipment_compatibility; fuentes elegibles para consumo).
func (r *InventoryItemRepo) ListCompatible(companyID string, equipmentIDs []string) ([]*entity.InventoryItem, error) {
	if len(equipmentIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT DISTINCT i.id, i.company_id, i.sku, i.name, i.description, i.quantity, i.unit_cost_cents, i.reorder_point, i.location, i.created_at, i.updated_at
		FROM inventory_items i
		JOIN equipment_compatibility ec ON ec.inventory_item_id = i.id
		WHERE i.company_id = $1 AND ec.equipment_id = ANY($2)
		ORDER BY i.name`
	rows, err := r.q.Query(context.Background(), query, companyID, equipmentIDs)
	if err != nil {
		return nil, fmt.Errorf("list compatible items: %w", err)
	}
	defer rows.Close()
	return collectInventoryItems(rows)
}

// ListBelowReorderPoint lista los ítems con stock en o bajo el punto de reorden.
func (r *InventoryItemRepo) ListBelowReorderPoint(companyID string) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + `
		FROM inventory_items
		WHERE company_id = $1 AND quantity <= reorder_point
		ORDER BY quantity - reorder_point`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list below reorder point: %w", err)
	}
	defer rows.Close()
	return collectInventoryItems(rows)
}

// Delete elimina un ítem por ID.
func (r *InventoryItemRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	return nil
}

func collectInventoryItems(rows pgx.Rows) ([]*entity.InventoryItem, error) {
	var list []*entity.InventoryItem
	for rows.Next() {
		it, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}
