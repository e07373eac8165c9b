package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Mantenix-api/internal/application/dto"
	appinv "github.com/jhoicas/Mantenix-api/internal/application/inventory"
	"github.com/jhoicas/Mantenix-api/internal/application/usecase"
	"github.com/jhoicas/Mantenix-api/internal/domain"
)

// InventoryHandler maneja el catálogo de repuestos/materiales y los ajustes
// manuales de stock.
type InventoryHandler struct {
	uc     *usecase.InventoryItemUseCase
	adjust *appinv.AdjustStockUseCase
}

// NewInventoryHandler construye el handler de inventario.
func NewInventoryHandler(uc *usecase.InventoryItemUseCase, adjust *appinv.AdjustStockUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc, adjust: adjust}
}

// Create godoc
// @Summary      Crear ítem de inventario
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryItemRequest  true  "Datos del ítem"
// @Success      201   {object}  dto.InventoryItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInventoryItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(GetCompanyID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ítem con ese SKU ya existe"})
		}
		return costError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener ítem por ID
// @Tags         inventory
// @Produce      json
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {object}  dto.InventoryItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return costError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar ítem (no el stock)
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID del ítem"
// @Param        body  body  dto.UpdateInventoryItemRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.InventoryItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInventoryItemRequest
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
// @Summary      Listar ítems de inventario
// @Tags         inventory
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.InventoryListResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
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

// ListLowStock godoc
// @Summary      Ítems con stock en o bajo el punto de reorden
// @Tags         inventory
// @Produce      json
// @Success      200  {array}  dto.InventoryItemResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) ListLowStock(c *fiber.Ctx) error {
	out, err := h.uc.ListLowStock(GetCompanyID(c))
	if err != nil {
		return costError(c, err)
	}
	return c.JSON(out)
}

// Adjust godoc
// @Summary      Ajuste manual de stock
// @Description  Aplica un delta con signo sobre el stock del ítem de forma
// @Description  atómica y deja registro en el journal. Un delta negativo que
// @Description  dejaría el stock bajo cero responde 409 con las cantidades
// @Description  solicitada y disponible.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del ítem"
// @Param        body  body  dto.AdjustStockRequest  true  "Delta, motivo y notas"
// @Success      200   {object}  dto.InventoryItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	id := c.Params("id")
	_, err := h.adjust.Adjust(c.Context(), appinv.AdjustmentInput{
		CompanyID:       GetCompanyID(c),
		UserID:          GetUserID(c),
		InventoryItemID: id,
		Delta:           in.Delta,
		Reason:          in.Reason,
		Notes:           in.Notes,
	})
	if err != nil {
		var ise *domain.InsufficientStockError
		if errors.As(err, &ise) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"code":     "INSUFFICIENT_STOCK",
				"message":  "stock insuficiente",
				"shortage": dto.ShortageDetail{Requested: ise.Requested, Available: ise.Available},
			})
		}
		return costError(c, err)
	}
	out, err := h.uc.GetByID(GetCompanyID(c), id)
	if err != nil {
		return costError(c, err)
	}
	return c.JSON(out)
}

// ListAdjustments godoc
// @Summary      Journal de ajustes de un ítem
// @Tags         inventory
// @Produce      json
// @Param        id      path   string  true   "ID del ítem"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {array}  dto.StockAdjustmentResponse
// @Router       /api/inventory/{id}/adjustments [get]
func (h *InventoryHandler) ListAdjustments(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	out, err := h.uc.ListAdjustments(GetCompanyID(c), c.Params("id"), limit, offset)
	if err != nil {
		return costError(c, err)
	}
	return c.JSON(out)
}
