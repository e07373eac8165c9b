package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Mantenix-api/internal/application/dto"
	"github.com/jhoicas/Mantenix-api/internal/domain"
	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
	"github.com/jhoicas/Mantenix-api/internal/domain/repository"
)

// EquipmentUseCase aplica reglas de negocio para equipos.
type EquipmentUseCase struct {
	repo     repository.EquipmentRepository
	itemRepo repository.InventoryItemRepository
}

// NewEquipmentUseCase construye el caso de uso con los puertos de persistencia.
func NewEquipmentUseCase(repo repository.EquipmentRepository, itemRepo repository.InventoryItemRepository) *EquipmentUseCase {
	return &EquipmentUseCase{repo: repo, itemRepo: itemRepo}
}

// Create registra un equipo en estado operational.
func (uc *EquipmentUseCase) Create(companyID string, in dto.CreateEquipmentRequest) (*dto.EquipmentResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	eq := &entity.Equipment{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Code:         in.Code,
		Name:         in.Name,
		Model:        in.Model,
		SerialNumber: in.SerialNumber,
		Location:     in.Location,
		Status:       entity.EquipmentStatusOperational,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(eq); err != nil {
		return nil, err
	}
	return entityToEquipmentResponse(eq), nil
}

// GetByID obtiene un equipo validando tenant.
func (uc *EquipmentUseCase) GetByID(companyID, id string) (*dto.EquipmentResponse, error) {
	eq, err := uc.getOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	return entityToEquipmentResponse(eq), nil
}

// Update aplica cambios parciales sobre un equipo.
func (uc *EquipmentUseCase) Update(companyID, id string, in dto.UpdateEquipmentRequest) (*dto.EquipmentResponse, error) {
	eq, err := uc.getOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		eq.Name = *in.Name
	}
	if in.Model != nil {
		eq.Model = *in.Model
	}
	if in.SerialNumber != nil {
		eq.SerialNumber = *in.SerialNumber
	}
	if in.Location != nil {
		eq.Location = *in.Location
	}
	if in.Status != nil {
		eq.Status = *in.Status
	}
	eq.UpdatedAt = time.Now()
	if err := uc.repo.Update(eq); err != nil {
		return nil, err
	}
	return entityToEquipmentResponse(eq), nil
}

// List lista equipos de la empresa con paginación.
func (uc *EquipmentUseCase) List(companyID string, limit, offset int) (*dto.EquipmentListResponse, error) {
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EquipmentResponse, 0, len(list))
	for _, eq := range list {
		items = append(items, *entityToEquipmentResponse(eq))
	}
	return &dto.EquipmentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListEligibleParts devuelve los ítems de inventario compatibles con los
// equipos vinculados a una orden de trabajo: las fuentes válidas para
// "agregar costo desde inventario". Orden sin equipos = lista vacía.
func (uc *EquipmentUseCase) ListEligibleParts(companyID, workOrderID string) ([]dto.InventoryItemResponse, error) {
	equipos, err := uc.repo.ListByWorkOrder(workOrderID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(equipos))
	for _, eq := range equipos {
		if eq.CompanyID == companyID {
			ids = append(ids, eq.ID)
		}
	}
	if len(ids) == 0 {
		return []dto.InventoryItemResponse{}, nil
	}
	parts, err := uc.itemRepo.ListCompatible(companyID, ids)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryItemResponse, 0, len(parts))
	for _, p := range parts {
		out = append(out, *entityToInventoryItemResponse(p))
	}
	return out, nil
}

func (uc *EquipmentUseCase) getOwned(companyID, id string) (*entity.Equipment, error) {
	eq, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if eq == nil {
		return nil, domain.ErrNotFound
	}
	if eq.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return eq, nil
}

func entityToEquipmentResponse(eq *entity.Equipment) *dto.EquipmentResponse {
	if eq == nil {
		return nil
	}
	return &dto.EquipmentResponse{
		ID:           eq.ID,
		CompanyID:    eq.CompanyID,
		Code:         eq.Code,
		Name:         eq.Name,
		Model:        eq.Model,
		SerialNumber: eq.SerialNumber,
		Location:     eq.Location,
		Status:       eq.Status,
		CreatedAt:    eq.CreatedAt,
		UpdatedAt:    eq.UpdatedAt,
	}
}
