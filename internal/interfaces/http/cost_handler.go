package http

import (
	"context"
	"errors"
	"sort"

	"github.com/gofiber/fiber/v2"

	appcosts "github.com/jhoicas/Mantenix-api/internal/application/costs"
	"github.com/jhoicas/Mantenix-api/internal/application/dto"
	"github.com/jhoicas/Mantenix-api/internal/domain"
	domaincosts "github.com/jhoicas/Mantenix-api/internal/domain/costs"
	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
)

// CostHandler maneja el libro de costos de una orden de trabajo: listado,
// resumen, commit del borrador, consumo desde inventario y reporte PDF.
type CostHandler struct {
	ledger *appcosts.LedgerService
	addInv *appcosts.AddFromInventoryUseCase
	pdfGen costReportGenerator
}

// costReportGenerator contrato mínimo del generador de PDF (lo implementa
// pdf.CostReportGenerator; la interfaz evita acoplar el handler a maroto).
type costReportGenerator interface {
	GenerateCostReport(ctx context.Context, company *entity.Company, workOrder *entity.WorkOrder, items []*entity.CostItem, summary *domaincosts.Summary) ([]byte, error)
}

// NewCostHandler construye el handler de costos.
func NewCostHandler(ledger *appcosts.LedgerService, addInv *appcosts.AddFromInventoryUseCase, pdfGen costReportGenerator) *CostHandler {
	return &CostHandler{ledger: ledger, addInv: addInv, pdfGen: pdfGen}
}

// List godoc
// @Summary      Listar líneas de costo de una orden
// @Tags         costs
// @Produce      json
// @Param        id   path  string  true  "ID de la orden de trabajo"
// @Success      200  {array}   dto.CostItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id}/costs [get]
func (h *CostHandler) List(c *fiber.Ctx) error {
	items, err := h.ledger.ListCosts(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return costError(c, err)
	}
	out := make([]dto.CostItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, costItemToResponse(it))
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen de costos de una orden
// @Tags         costs
// @Produce      json
// @Param        id   path  string  true  "ID de la orden de trabajo"
// @Success      200  {object}  dto.CostSummaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id}/costs/summary [get]
func (h *CostHandler) Summary(c *fiber.Ctx) error {
	s, err := h.ledger.Summary(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return costError(c, err)
	}
	return c.JSON(summaryToResponse(s))
}

// Commit godoc
// @Summary      Cometer el borrador de costos de una orden
// @Description  Recibe el borrador completo de la sesión de edición, lo
// @Description  reconcilia contra el baseline y aplica creaciones, updates y
// @Description  borrados de forma secuencial. La respuesta detalla el
// @Description  resultado por línea; una falla parcial no revierte las
// @Description  líneas ya confirmadas.
// @Tags         costs
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la orden de trabajo"
// @Param        body  body  dto.CommitCostsRequest  true  "Borrador completo"
// @Success      200   {object}  dto.CommitCostsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id}/costs/commit [post]
func (h *CostHandler) Commit(c *fiber.Ctx) error {
	var in dto.CommitCostsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.ledger.CommitDraft(c.Context(), GetCompanyID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		var ve *appcosts.ValidationError
		if errors.As(err, &ve) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: ve.Error()})
		}
		return costError(c, err)
	}
	return c.JSON(commitResultToResponse(result))
}

// AddFromInventory godoc
// @Summary      Agregar costo consumiendo inventario
// @Description  Descuenta stock de forma atómica y crea la línea vinculada.
// @Description  Si no hay stock suficiente responde 409 con las cantidades
// @Description  solicitada y disponible exactas.
// @Tags         costs
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID de la orden de trabajo"
// @Param        body  body  dto.AddFromInventoryRequest  true  "Ítem y cantidad"
// @Success      201   {object}  dto.CostItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id}/costs/from-inventory [post]
func (h *CostHandler) AddFromInventory(c *fiber.Ctx) error {
	var in dto.AddFromInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.addInv.AddFromInventory(c.Context(), appcosts.AddFromInventoryInput{
		CompanyID:       GetCompanyID(c),
		UserID:          GetUserID(c),
		WorkOrderID:     c.Params("id"),
		InventoryItemID: in.InventoryItemID,
		Quantity:        in.Quantity,
		UnitPriceCents:  in.UnitPriceCents,
	})
	if err != nil {
		if shortage, ok := appcosts.ClassifyStockError(err); ok {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"code":     "INSUFFICIENT_STOCK",
				"message":  "stock insuficiente",
				"shortage": dto.ShortageDetail{Requested: shortage.Requested, Available: shortage.Available},
			})
		}
		return costError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(costItemToResponse(item))
}

// Report godoc
// @Summary      Reporte PDF del libro de costos
// @Tags         costs
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la orden de trabajo"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id}/costs/report [get]
func (h *CostHandler) Report(c *fiber.Ctx) error {
	company, wo, items, summary, err := h.ledger.ReportData(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return costError(c, err)
	}
	pdfBytes, err := h.pdfGen.GenerateCostReport(c.Context(), company, wo, items, summary)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF_FAILED", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="costos-`+wo.Code+`.pdf"`)
	return c.Send(pdfBytes)
}

// ── mapeo ─────────────────────────────────────────────────────────────────────

func costError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func costItemToResponse(it *entity.CostItem) dto.CostItemResponse {
	return dto.CostItemResponse{
		ID:               it.ID,
		WorkOrderID:      it.WorkOrderID,
		Description:      it.Description,
		Quantity:         it.Quantity,
		UnitPriceCents:   it.UnitPriceCents,
		TotalCents:       it.TotalCents,
		InventoryItemID:  it.InventoryItemID,
		OriginalQuantity: it.OriginalQuantity,
		CreatedBy:        it.CreatedBy,
		CreatedAt:        it.CreatedAt,
		UpdatedAt:        it.UpdatedAt,
	}
}

func commitResultToResponse(r *appcosts.CommitResult) dto.CommitCostsResponse {
	out := dto.CommitCostsResponse{
		Committed: r.Committed(),
		Failed:    r.Failed(),
		Skipped:   r.Skipped(),
		Results:   make([]dto.CommitItemResult, 0, len(r.Results)),
	}
	for _, res := range r.Results {
		item := dto.CommitItemResult{
			Ref:              res.Ref,
			Op:               res.Op,
			Status:           res.Status,
			StockNotRestored: res.StockNotRestored,
		}
		if res.Err != nil {
			item.Error = res.Err.Error()
		}
		if res.Shortage != nil {
			item.Shortage = &dto.ShortageDetail{Requested: res.Shortage.Requested, Available: res.Shortage.Available}
		}
		out.Results = append(out.Results, item)
	}
	return out
}

func summaryToResponse(s *domaincosts.Summary) dto.CostSummaryResponse {
	out := dto.CostSummaryResponse{
		TotalItems:           s.TotalItems,
		TotalCostCents:       s.TotalCostCents,
		AverageItemCostCents: s.AverageItemCostCents,
		ByCreator:            make([]dto.CreatorRollupDetail, 0, len(s.ByCreator)),
	}
	creators := make([]string, 0, len(s.ByCreator))
	for createdBy := range s.ByCreator {
		creators = append(creators, createdBy)
	}
	sort.Strings(creators)
	for _, createdBy := range creators {
		r := s.ByCreator[createdBy]
		out.ByCreator = append(out.ByCreator, dto.CreatorRollupDetail{
			CreatedBy:      createdBy,
			Items:          r.ItemCount,
			TotalCostCents: r.TotalCents,
		})
	}
	return out
}
