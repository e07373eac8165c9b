package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Mantenix-api/internal/application/dto"
	"github.com/jhoicas/Mantenix-api/internal/application/usecase"
)

// WorkOrderHandler maneja las peticiones HTTP para órdenes de trabajo.
type WorkOrderHandler struct {
	uc          *usecase.WorkOrderUseCase
	equipmentUC *usecase.EquipmentUseCase
}

// NewWorkOrderHandler construye el handler.
func NewWorkOrderHandler(uc *usecase.WorkOrderUseCase, equipmentUC *usecase.EquipmentUseCase) *WorkOrderHandler {
	return &WorkOrderHandler{uc: uc, equipmentUC: equipmentUC}
}

// Create godoc
// @Summary      Crear orden de trabajo
// @Tags         work-orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWorkOrderRequest  true  "Datos de la orden"
// @Success      201   {object}  dto.WorkOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/work-orders [post]
func (h *WorkOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWorkOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "title es requerido"})
	}
	out, err := h.uc.Create(GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return costError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden por ID
// @Tags         work-orders
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.WorkOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id} [get]
func (h *WorkOrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return costError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar orden de trabajo
// @Tags         work-orders
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID de la orden"
// @Param        body  body  dto.UpdateWorkOrderRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.WorkOrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id} [put]
func (h *WorkOrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateWorkOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return costError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar órdenes de trabajo
// @Tags         work-orders
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.WorkOrderListResponse
// @Router       /api/work-orders [get]
func (h *WorkOrderHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	out, err := h.uc.List(GetCompanyID(c), limit, offset)
	if err != nil {
		return costError(c, err)
	}
	return c.JSON(out)
}

// LinkEquipment godoc
// @Summary      Vincular equipo a la orden
// @Tags         work-orders
// @Param        id           path  string  true  "ID de la orden"
// @Param        equipmentId  path  string  true  "ID del equipo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id}/equipment/{equipmentId} [put]
func (h *WorkOrderHandler) LinkEquipment(c *fiber.Ctx) error {
	if err := h.uc.LinkEquipment(GetCompanyID(c), c.Params("id"), c.Params("equipmentId")); err != nil {
		return costError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UnlinkEquipment godoc
// @Summary      Desvincular equipo de la orden
// @Tags         work-orders
// @Param        id           path  string  true  "ID de la orden"
// @Param        equipmentId  path  string  true  "ID del equipo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id}/equipment/{equipmentId} [delete]
func (h *WorkOrderHandler) UnlinkEquipment(c *fiber.Ctx) error {
	if err := h.uc.UnlinkEquipment(GetCompanyID(c), c.Params("id"), c.Params("equipmentId")); err != nil {
		return costError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListEligibleParts godoc
// @Summary      Repuestos elegibles para una orden
// @Description  Ítems de inventario compatibles con los equipos vinculados a
// @Description  la orden: las fuentes válidas para "agregar desde inventario".
// @Tags         work-orders
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {array}  dto.InventoryItemResponse
// @Router       /api/work-orders/{id}/eligible-parts [get]
func (h *WorkOrderHandler) ListEligibleParts(c *fiber.Ctx) error {
	out, err := h.equipmentUC.ListEligibleParts(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return costError(c, err)
	}
	return c.JSON(out)
}
