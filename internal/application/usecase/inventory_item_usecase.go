package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Mantenix-api/internal/application/dto"
	"github.com/jhoicas/Mantenix-api/internal/domain"
	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
	"github.com/jhoicas/Mantenix-api/internal/domain/repository"
)

// InventoryItemUseCase aplica reglas de negocio para el catálogo de
// repuestos/materiales. El stock NO se muta por aquí: todo cambio de cantidad
// pasa por inventory.AdjustStockUseCase para quedar en el journal.
type InventoryItemUseCase struct {
	repo    repository.InventoryItemRepository
	adjRepo repository.StockAdjustmentRepository
}

// NewInventoryItemUseCase construye el caso de uso con los puertos de persistencia.
func NewInventoryItemUseCase(repo repository.InventoryItemRepository, adjRepo repository.StockAdjustmentRepository) *InventoryItemUseCase {
	return &InventoryItemUseCase{repo: repo, adjRepo: adjRepo}
}

// Create registra un ítem nuevo. Devuelve domain.ErrDuplicate si el SKU ya
// existe en la empresa.
func (uc *InventoryItemUseCase) Create(companyID string, in dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	if in.SKU == "" || in.Name == "" || in.UnitCostCents < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByCompanyAndSKU(companyID, in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	item := &entity.InventoryItem{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		SKU:           in.SKU,
		Name:          in.Name,
		Description:   in.Description,
		Quantity:      in.Quantity,
		UnitCostCents: in.UnitCostCents,
		ReorderPoint:  in.ReorderPoint,
		Location:      in.Location,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	return entityToInventoryItemResponse(item), nil
}

// GetByID obtiene un ítem validando tenant.
func (uc *InventoryItemUseCase) GetByID(companyID, id string) (*dto.InventoryItemResponse, error) {
	item, err := uc.getOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	return entityToInventoryItemResponse(item), nil
}

// Update aplica cambios parciales sobre un ítem (nunca sobre Quantity).
func (uc *InventoryItemUseCase) Update(companyID, id string, in dto.UpdateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	item, err := uc.getOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.UnitCostCents != nil {
		if *in.UnitCostCents < 0 {
			return nil, domain.ErrInvalidInput
		}
		item.UnitCostCents = *in.UnitCostCents
	}
	if in.ReorderPoint != nil {
		item.ReorderPoint = *in.ReorderPoint
	}
	if in.Location != nil {
		item.Location = *in.Location
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	return entityToInventoryItemResponse(item), nil
}

// List lista ítems de la empresa con paginación.
func (uc *InventoryItemUseCase) List(companyID string, limit, offset int) (*dto.InventoryListResponse, error) {
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *entityToInventoryItemResponse(it))
	}
	return &dto.InventoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListLowStock lista los ítems con stock en o bajo su punto de reorden.
func (uc *InventoryItemUseCase) ListLowStock(companyID string) ([]dto.InventoryItemResponse, error) {
	list, err := uc.repo.ListBelowReorderPoint(companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *entityToInventoryItemResponse(it))
	}
	return items, nil
}

// ListAdjustments devuelve el journal de ajustes de un ítem.
func (uc *InventoryItemUseCase) ListAdjustments(companyID, id string, limit, offset int) ([]dto.StockAdjustmentResponse, error) {
	if _, err := uc.getOwned(companyID, id); err != nil {
		return nil, err
	}
	list, err := uc.adjRepo.ListByItem(id, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockAdjustmentResponse, 0, len(list))
	for _, adj := range list {
		out = append(out, dto.StockAdjustmentResponse{
			ID:              adj.ID,
			InventoryItemID: adj.InventoryItemID,
			WorkOrderID:     adj.WorkOrderID,
			Delta:           adj.Delta,
			QuantityAfter:   adj.QuantityAfter,
			Reason:          adj.Reason,
			Notes:           adj.Notes,
			CreatedBy:       adj.CreatedBy,
			CreatedAt:       adj.CreatedAt,
		})
	}
	return out, nil
}

func (uc *InventoryItemUseCase) getOwned(companyID, id string) (*entity.InventoryItem, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return item, nil
}

func entityToInventoryItemResponse(it *entity.InventoryItem) *dto.InventoryItemResponse {
	if it == nil {
		return nil
	}
	return &dto.InventoryItemResponse{
		ID:            it.ID,
		CompanyID:     it.CompanyID,
		SKU:           it.SKU,
		Name:          it.Name,
		Description:   it.Description,
		Quantity:      it.Quantity,
		UnitCostCents: it.UnitCostCents,
		ReorderPoint:  it.ReorderPoint,
		Location:      it.Location,
		CreatedAt:     it.CreatedAt,
		UpdatedAt:     it.UpdatedAt,
	}
}
