package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Mantenix-api/internal/application/auth"
	appcosts "github.com/jhoicas/Mantenix-api/internal/application/costs"
	appinv "github.com/jhoicas/Mantenix-api/internal/application/inventory"
	"github.com/jhoicas/Mantenix-api/internal/application/usecase"
	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC   *usecase.CompanyUseCase
	UserUC      *usecase.UserUseCase
	EquipmentUC *usecase.EquipmentUseCase
	WorkOrderUC *usecase.WorkOrderUseCase
	InventoryUC *usecase.InventoryItemUseCase
	AdjustStock *appinv.AdjustStockUseCase
	Ledger      *appcosts.LedgerService
	AddFromInv  *appcosts.AddFromInventoryUseCase
	PDFGen      costReportGenerator
	AuthUC      *auth.AuthUseCase
	Modules     moduleChecker
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (público para alta inicial; el resto requiere token)
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	userHandler := NewUserHandler(deps.UserUC)
	protected.Get("/me", userHandler.Me)

	// Equipment (protegido, módulo maintenance)
	equipment := protected.Group("/equipment", RequireModule(entity.ModuleMaintenance, deps.Modules))
	equipmentHandler := NewEquipmentHandler(deps.EquipmentUC)
	equipment.Post("/", RequireRole(entity.RoleAdmin, entity.RoleSupervisor), equipmentHandler.Create)
	equipment.Get("/", equipmentHandler.List)
	equipment.Get("/:id", equipmentHandler.GetByID)
	equipment.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleSupervisor), equipmentHandler.Update)

	// Work orders (protegido, módulo maintenance)
	workOrders := protected.Group("/work-orders", RequireModule(entity.ModuleMaintenance, deps.Modules))
	workOrderHandler := NewWorkOrderHandler(deps.WorkOrderUC, deps.EquipmentUC)
	workOrders.Post("/", workOrderHandler.Create)
	workOrders.Get("/", workOrderHandler.List)
	workOrders.Get("/:id", workOrderHandler.GetByID)
	workOrders.Put("/:id", workOrderHandler.Update)
	workOrders.Put("/:id/equipment/:equipmentId", workOrderHandler.LinkEquipment)
	workOrders.Delete("/:id/equipment/:equipmentId", workOrderHandler.UnlinkEquipment)
	workOrders.Get("/:id/eligible-parts", workOrderHandler.ListEligibleParts)

	// Costos de órdenes (protegido, módulo costs)
	costHandler := NewCostHandler(deps.Ledger, deps.AddFromInv, deps.PDFGen)
	costs := workOrders.Group("/:id/costs", RequireModule(entity.ModuleCosts, deps.Modules))
	costs.Get("/", costHandler.List)
	costs.Get("/summary", costHandler.Summary)
	costs.Get("/report", costHandler.Report)
	costs.Post("/commit", costHandler.Commit)
	costs.Post("/from-inventory", costHandler.AddFromInventory)

	// Inventory (protegido, módulo inventory)
	invGroup := protected.Group("/inventory", RequireModule(entity.ModuleInventory, deps.Modules))
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.AdjustStock)
	invGroup.Post("/", RequireRole(entity.RoleAdmin, entity.RoleSupervisor), inventoryHandler.Create)
	invGroup.Get("/", inventoryHandler.List)
	invGroup.Get("/low-stock", inventoryHandler.ListLowStock)
	invGroup.Get("/:id", inventoryHandler.GetByID)
	invGroup.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleSupervisor), inventoryHandler.Update)
	invGroup.Post("/:id/adjust", RequireRole(entity.RoleAdmin, entity.RoleSupervisor), inventoryHandler.Adjust)
	invGroup.Get("/:id/adjustments", inventoryHandler.ListAdjustments)
}
