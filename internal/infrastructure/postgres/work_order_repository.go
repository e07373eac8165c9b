package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Mantenix-api/internal/domain"
	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
	"github.com/jhoicas/Mantenix-api/internal/domain/repository"
)

var _ repository.WorkOrderRepository = (*WorkOrderRepo)(nil)

const workOrderColumns = `id, company_id, code, title, description, status, priority, assigned_to, created_by, due_date, created_at, updated_at`

// WorkOrderRepo implementación del puerto WorkOrderRepository sobre PostgreSQL
// (usable con pool o tx).
type WorkOrderRepo struct {
	q Querier
}

// NewWorkOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWorkOrderRepository(q Querier) *WorkOrderRepo {
	return &WorkOrderRepo{q: q}
}

func scanWorkOrder(row pgx.Row) (*entity.WorkOrder, error) {
	var wo entity.WorkOrder
	var assignedTo *string
	err := row.Scan(
		&wo.ID, &wo.CompanyID, &wo.Code, &wo.Title, &wo.Description,
		&wo.Status, &wo.Priority, &assignedTo, &wo.CreatedBy,
		&wo.DueDate, &wo.CreatedAt, &wo.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if assignedTo != nil {
		wo.AssignedTo = *assignedTo
	}
	return &wo, nil
}

// Create persiste una orden de trabajo.
func (r *WorkOrderRepo) Create(wo *entity.WorkOrder) error {
	query := `
		INSERT INTO work_orders (` + workOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	assignedTo := (*string)(nil)
	if wo.AssignedTo != "" {
		assignedTo = &wo.AssignedTo
	}
	_, err := r.q.Exec(context.Background(), query,
		wo.ID, wo.CompanyID, wo.Code, wo.Title, wo.Description,
		wo.Status, wo.Priority, assignedTo, wo.CreatedBy,
		wo.DueDate, wo.CreatedAt, wo.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert work order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID.
func (r *WorkOrderRepo) GetByID(id string) (*entity.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE id = $1`
	wo, err := scanWorkOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get work order: %w", err)
	}
	return wo, nil
}

// Update actualiza una orden existente.
func (r *WorkOrderRepo) Update(wo *entity.WorkOrder) error {
	query := `
		UPDATE work_orders
		SET title = $2, description = $3, status = $4, priority = $5, assigned_to = $6, due_date = $7, updated_at = $8
		WHERE id = $1`
	assignedTo := (*string)(nil)
	if wo.AssignedTo != "" {
		assignedTo = &wo.AssignedTo
	}
	_, err := r.q.Exec(context.Background(), query,
		wo.ID, wo.Title, wo.Description, wo.Status, wo.Priority,
		assignedTo, wo.DueDate, wo.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update work order: %w", err)
	}
	return nil
}

// ListByCompany lista órdenes por empresa, más recientes primero.
func (r *WorkOrderRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + `
		FROM work_orders WHERE company_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list work orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.WorkOrder
	for rows.Next() {
		wo, err := scanWorkOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan work order: %w", err)
		}
		list = append(list, wo)
	}
	return list, rows.Err()
}

// Delete elimina una orden por ID.
func (r *WorkOrderRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM work_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete work order: %w", err)
	}
	return nil
}

// LinkEquipment vincula un equipo a la orden (idempotente por ON CONFLICT).
func (r *WorkOrderRepo) LinkEquipment(workOrderID, equipmentID string) error {
	query := `
		INSERT INTO work_order_equipment (work_order_id, equipment_id)
		VALUES ($1, $2)
		ON CONFLICT (work_order_id, equipment_id) DO NOTHING`
	_, err := r.q.Exec(context.Background(), query, workOrderID, equipmentID)
	if err != nil {
		return fmt.Errorf("link equipment: %w", err)
	}
	return nil
}

// UnlinkEquipment desvincula un equipo de la orden.
func (r *WorkOrderRepo) UnlinkEquipment(workOrderID, equipmentID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM work_order_equipment WHERE work_order_id = $1 AND equipment_id = $2`,
		workOrderID, equipmentID,
	)
	if err != nil {
		return fmt.Errorf("unlink equipment: %w", err)
	}
	return nil
}
