package costs

import (
	"context"

	"github.com/jhoicas/Mantenix-api/internal/application/dto"
	"github.com/jhoicas/Mantenix-api/internal/domain"
	domaincosts "github.com/jhoicas/Mantenix-api/internal/domain/costs"
	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
	"github.com/jhoicas/Mantenix-api/internal/domain/repository"
)

// LedgerService expone el libro de costos de una orden de trabajo hacia la
// capa HTTP: listado, resumen y el ciclo borrador → diff → commit. Arma la
// sesión Draft desde el baseline persistido, aplica las entradas del request
// y delega en CommitUseCase.
type LedgerService struct {
	costRepo      repository.CostItemRepository
	workOrderRepo repository.WorkOrderRepository
	companyRepo   repository.CompanyRepository
	commit        *CommitUseCase
}

// NewLedgerService construye el servicio.
func NewLedgerService(
	costRepo repository.CostItemRepository,
	workOrderRepo repository.WorkOrderRepository,
	companyRepo repository.CompanyRepository,
	commit *CommitUseCase,
) *LedgerService {
	return &LedgerService{costRepo: costRepo, workOrderRepo: workOrderRepo, companyRepo: companyRepo, commit: commit}
}

// workOrderOf valida existencia y tenant de la orden.
func (s *LedgerService) workOrderOf(companyID, workOrderID string) (*entity.WorkOrder, error) {
	wo, err := s.workOrderRepo.GetByID(workOrderID)
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

// ListCosts devuelve las líneas confirmadas de la orden.
func (s *LedgerService) ListCosts(ctx context.Context, companyID, workOrderID string) ([]*entity.CostItem, error) {
	if _, err := s.workOrderOf(companyID, workOrderID); err != nil {
		return nil, err
	}
	return s.costRepo.ListByWorkOrder(workOrderID)
}

// Summary devuelve el resumen agregado (total, promedio, rollup por creador).
func (s *LedgerService) Summary(ctx context.Context, companyID, workOrderID string) (*domaincosts.Summary, error) {
	if _, err := s.workOrderOf(companyID, workOrderID); err != nil {
		return nil, err
	}
	return s.costRepo.Summary(workOrderID)
}

// ReportData reúne los insumos del reporte PDF: empresa, orden, líneas y
// resumen.
func (s *LedgerService) ReportData(ctx context.Context, companyID, workOrderID string) (*entity.Company, *entity.WorkOrder, []*entity.CostItem, *domaincosts.Summary, error) {
	wo, err := s.workOrderOf(companyID, workOrderID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	company, err := s.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if company == nil {
		return nil, nil, nil, nil, domain.ErrNotFound
	}
	items, err := s.costRepo.ListByWorkOrder(workOrderID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	summary, err := s.costRepo.Summary(workOrderID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return company, wo, items, summary, nil
}

// CommitDraft reconstruye la sesión de edición a partir del borrador enviado
// por el cliente y lo comete contra el baseline vigente. Entradas que
// referencian líneas ya inexistentes (borradas por otra sesión) se reportan
// como fallidas sin abortar el resto del lote.
func (s *LedgerService) CommitDraft(ctx context.Context, companyID, userID, workOrderID string, in dto.CommitCostsRequest) (*CommitResult, error) {
	if _, err := s.workOrderOf(companyID, workOrderID); err != nil {
		return nil, err
	}
	baseline, err := s.costRepo.ListByWorkOrder(workOrderID)
	if err != nil {
		return nil, err
	}

	d := NewDraft(workOrderID, baseline)
	var preFailed []ItemResult

	for _, e := range in.Entries {
		if e.ID == "" {
			di := d.AddBlank(userID)
			_ = d.SetDescription(di.Ref, e.Description)
			_ = d.SetQuantity(di.Ref, e.Quantity)
			_ = d.SetUnitPrice(di.Ref, e.UnitPriceCents)
			continue
		}

		di := d.Get(e.ID)
		if di == nil {
			// Línea desaparecida entre la carga del cliente y este commit.
			op := OpUpdate
			if e.Deleted {
				op = OpDelete
			}
			preFailed = append(preFailed, ItemResult{Ref: e.ID, Op: op, Status: StatusFailed, Err: domain.ErrNotFound})
			continue
		}

		if e.Deleted {
			needsConfirm, err := d.Remove(e.ID)
			if err != nil {
				return nil, err
			}
			if needsConfirm {
				if !e.ConfirmRestock {
					// El borrado devolvería stock y el usuario no confirmó:
					// el commit no puede iniciar con esto pendiente.
					_ = d.CancelRemove(e.ID)
					return nil, &ValidationError{Issues: []string{"línea " + e.ID + ": borrado de línea vinculada requiere confirm_restock"}}
				}
				if err := d.ConfirmRemove(e.ID); err != nil {
					return nil, err
				}
			}
			continue
		}

		// Aplicar solo los campos que de verdad cambiaron; en líneas
		// vinculadas la descripción es de solo lectura y no se toca.
		if !di.Item.IsInventoryLinked() && e.Description != di.Item.Description {
			_ = d.SetDescription(e.ID, e.Description)
		}
		if !e.Quantity.Equal(di.Item.Quantity) {
			_ = d.SetQuantity(e.ID, e.Quantity)
		}
		if e.UnitPriceCents != di.Item.UnitPriceCents {
			_ = d.SetUnitPrice(e.ID, e.UnitPriceCents)
		}
	}

	result, err := s.commit.Commit(ctx, d, userID)
	if err != nil {
		return nil, err
	}
	result.Results = append(preFailed, result.Results...)
	return result, nil
}
