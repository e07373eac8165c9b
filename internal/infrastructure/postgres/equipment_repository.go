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

var _ repository.EquipmentRepository = (*EquipmentRepo)(nil)

const equipmentColumns = `id, company_id, code, name, model, serial_number, location, status, created_at, updated_at`

// EquipmentRepo implementación del puerto EquipmentRepository sobre PostgreSQL
// (usable con pool o tx).
type EquipmentRepo struct {
	q Querier
}

// NewEquipmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEquipmentRepository(q Querier) *EquipmentRepo {
	return &EquipmentRepo{q: q}
}

func scanEquipment(row pgx.Row) (*entity.Equipment, error) {
	var eq entity.Equipment
	err := row.Scan(
		&eq.ID, &eq.CompanyID, &eq.Code, &eq.Name, &eq.Model,
		&eq.SerialNumber, &eq.Location, &eq.Status, &eq.CreatedAt, &eq.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &eq, nil
}

// Create persiste un equipo.
func (r *EquipmentRepo) Create(eq *entity.Equipment) error {
	query := `
		INSERT INTO equipment (` + equipmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		eq.ID, eq.CompanyID, eq.Code, eq.Name, eq.Model,
		eq.SerialNumber, eq.Location, eq.Status, eq.CreatedAt, eq.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert equipment: %w", err)
	}
	return nil
}

// GetByID obtiene un equipo por ID.
func (r *EquipmentRepo) GetByID(id string) (*entity.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = $1`
	eq, err := scanEquipment(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get equipment: %w", err)
	}
	return eq, nil
}

// Update actualiza un equipo existente.
func (r *EquipmentRepo) Update(eq *entity.Equipment) error {
	query := `
		UPDATE equipment
		SET name = $2, model = $3, serial_number = $4, location = $5, status = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		eq.ID, eq.Name, eq.Model, eq.SerialNumber, eq.Location, eq.Status, eq.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update equipment: %w", err)
	}
	return nil
}

// ListByCompany lista equipos por empresa con paginación.
func (r *EquipmentRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Equipment, error) {
	query := `SELECT ` + equipmentColumns + `
		FROM equipment WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	defer rows.Close()
	return collectEquipment(rows)
}

// ListByWorkOrder devuelve los equipos vinculados a una orden de trabajo.
func (r *EquipmentRepo) ListByWorkOrder(workOrderID string) ([]*entity.Equipment, error) {
	query := `
		SELECT e.id, e.company_id, e.code, e.name, e.model, e.serial_number, e.location, e.status, e.created_at, e.updated_at
		FROM equipment e
		JOIN work_order_equipment we ON we.equipment_id = e.id
		WHERE we.work_order_id = $1
		ORDER BY e.name`
	rows, err := r.q.Query(context.Background(), query, workOrderID)
	if err != nil {
		return nil, fmt.Errorf("list equipment by work order: %w", err)
	}
	defer rows.Close()
	return collectEquipment(rows)
}

// Delete elimina un equipo por ID.
func (r *EquipmentRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete equipment: %w", err)
	}
	return nil
}

func collectEquipment(rows pgx.Rows) ([]*entity.Equipment, error) {
	var list []*entity.Equipment
	for rows.Next() {
		eq, err := scanEquipment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan equipment: %w", err)
		}
		list = append(list, eq)
	}
	return list, rows.Err()
}
