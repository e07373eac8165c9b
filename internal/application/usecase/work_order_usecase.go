package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Mantenix-api/internal/application/dto"
	"github.com/jhoicas/Mantenix-api/internal/domain"
	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
	"github.com/jhoicas/Mantenix-api/internal/domain/repository"
)

// WorkOrderUseCase aplica reglas de negocio para órdenes de trabajo.
type WorkOrderUseCase struct {
	repo          repository.WorkOrderRepository
	equipmentRepo repository.EquipmentRepository
}

// NewWorkOrderUseCase construye el caso de uso con los puertos de persistencia.
func NewWorkOrderUseCase(repo repository.WorkOrderRepository, equipmentRepo repository.EquipmentRepository) *WorkOrderUseCase {
	return &WorkOrderUseCase{repo: repo, equipmentRepo: equipmentRepo}
}

// Create crea una orden de trabajo en estado open y vincula los equipos
// indicados. Los equipos deben existir y pertenecer a la misma empresa.
func (uc *WorkOrderUseCase) Create(companyID, userID string, in dto.CreateWorkOrderRequest) (*dto.WorkOrderResponse, error) {
	if in.Title == "" {
		return nil, domain.ErrInvalidInput
	}
	priority := in.Priority
	if priority == "" {
		priority = entity.WorkOrderPriorityMedium
	}
	for _, eqID := range in.EquipmentIDs {
		eq, err := uc.equipmentRepo.GetByID(eqID)
		if err != nil {
			return nil, err
		}
		if eq == nil || eq.CompanyID != companyID {
			return nil, fmt.Errorf("equipo %s: %w", eqID, domain.ErrNotFound)
		}
	}

	now := time.Now()
	wo := &entity.WorkOrder{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Code:        fmt.Sprintf("OT-%d-%s", now.Year(), uuid.New().String()[:8]),
		Title:       in.Title,
		Description: in.Description,
		Status:      entity.WorkOrderStatusOpen,
		Priority:    priority,
		AssignedTo:  in.AssignedTo,
		CreatedBy:   userID,
		DueDate:     in.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(wo); err != nil {
		return nil, err
	}
	for _, eqID := range in.EquipmentIDs {
		if err := uc.repo.LinkEquipment(wo.ID, eqID); err != nil {
			return nil, err
		}
	}
	return entityToWorkOrderResponse(wo), nil
}

// GetByID obtiene una orden validando tenant.
func (uc *WorkOrderUseCase) GetByID(companyID, id string) (*dto.WorkOrderResponse, error) {
	wo, err := uc.getOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	return entityToWorkOrderResponse(wo), nil
}

// Update aplica cambios parciales sobre una orden.
func (uc *WorkOrderUseCase) Update(companyID, id string, in dto.UpdateWorkOrderRequest) (*dto.WorkOrderResponse, error) {
	wo, err := uc.getOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		wo.Title = *in.Title
	}
	if in.Description != nil {
		wo.Description = *in.Description
	}
	if in.Status != nil {
		wo.Status = *in.Status
	}
	if in.Priority != nil {
		wo.Priority = *in.Priority
	}
	if in.AssignedTo != nil {
		wo.AssignedTo = *in.AssignedTo
	}
	if in.DueDate != nil {
		wo.DueDate = in.DueDate
	}
	wo.UpdatedAt = time.Now()
	if err := uc.repo.Update(wo); err != nil {
		return nil, err
	}
	return entityToWorkOrderResponse(wo), nil
}

// List lista órdenes de la empresa con paginación.
func (uc *WorkOrderUseCase) List(companyID string, limit, offset int) (*dto.WorkOrderListResponse, error) {
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WorkOrderResponse, 0, len(list))
	for _, wo := range list {
		items = append(items, *entityToWorkOrderResponse(wo))
	}
	return &dto.WorkOrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// LinkEquipment vincula un equipo a la orden (valida tenant de ambos).
func (uc *WorkOrderUseCase) LinkEquipment(companyID, workOrderID, equipmentID string) error {
	if _, err := uc.getOwned(companyID, workOrderID); err != nil {
		return err
	}
	eq, err := uc.equipmentRepo.GetByID(equipmentID)
	if err != nil {
		return err
	}
	if eq == nil || eq.CompanyID != companyID {
		return domain.ErrNotFound
	}
	return uc.repo.LinkEquipment(workOrderID, equipmentID)
}

// UnlinkEquipment desvincula un equipo de la orden.
func (uc *WorkOrderUseCase) UnlinkEquipment(companyID, workOrderID, equipmentID string) error {
	if _, err := uc.getOwned(companyID, workOrderID); err != nil {
		return err
	}
	return uc.repo.UnlinkEquipment(workOrderID, equipmentID)
}

func (uc *WorkOrderUseCase) getOwned(companyID, id string) (*entity.WorkOrder, error) {
	wo, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if wo == nil {
		return nil, domain.ErrNotFound
	}
	if wo.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return wo, nil
}

func entityToWorkOrderResponse(wo *entity.WorkOrder) *dto.WorkOrderResponse {
	if wo == nil {
		return nil
	}
	return &dto.WorkOrderResponse{
		ID:          wo.ID,
		CompanyID:   wo.CompanyID,
		Code:        wo.Code,
		Title:       wo.Title,
		Description: wo.Description,
		Status:      wo.Status,
		Priority:    wo.Priority,
		AssignedTo:  wo.AssignedTo,
		CreatedBy:   wo.CreatedBy,
		DueDate:     wo.DueDate,
		CreatedAt:   wo.CreatedAt,
		UpdatedAt:   wo.UpdatedAt,
	}
}
