package costs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcosts "github.com/jhoicas/Mantenix-api/internal/application/costs"
	"github.com/jhoicas/Mantenix-api/internal/domain"
	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// fakeWorkOrderRepo implementa repository.WorkOrderRepository; el caso de uso
// solo consulta GetByID (validación de existencia y tenant).
type fakeWorkOrderRepo struct {
	orders map[string]*entity.WorkOrder
}

func (r *fakeWorkOrderRepo) Create(wo *entity.WorkOrder) error {
	r.orders[wo.ID] = wo
	return nil
}

func (r *fakeWorkOrderRepo) GetByID(id string) (*entity.WorkOrder, error) {
	wo, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *wo
	return &cp, nil
}

func (r *fakeWorkOrderRepo) Update(*entity.WorkOrder) error { return nil }
func (r *fakeWorkOrderRepo) ListByCompany(string, int, int) ([]*entity.WorkOrder, error) {
	return nil, nil
}
func (r *fakeWorkOrderRepo) Delete(string) error                  { return nil }
func (r *fakeWorkOrderRepo) LinkEquipment(string, string) error   { return nil }
func (r *fakeWorkOrderRepo) UnlinkEquipment(string, string) error { return nil }

// fakeInventoryRepo implementa repository.InventoryItemRepository; aquí solo
// se ejercita GetByID (el nivel de stock autoritativo vive en la pasarela).
type fakeInventoryRepo struct {
	items map[string]*entity.InventoryItem
}

func (r *fakeInventoryRepo) Create(it *entity.InventoryItem) error {
	r.items[it.ID] = it
	return nil
}

func (r *fakeInventoryRepo) GetByID(id string) (*entity.InventoryItem, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *fakeInventoryRepo) GetByCompanyAndSKU(string, string) (*entity.InventoryItem, error) {
	return nil, nil
}
func (r *fakeInventoryRepo) Update(*entity.InventoryItem) error               { return nil }
func (r *fakeInventoryRepo) UpdateQuantity(string, decimal.Decimal) error     { return nil }
func (r *fakeInventoryRepo) GetForUpdate(id string) (*entity.InventoryItem, error) {
	return r.GetByID(id)
}
func (r *fakeInventoryRepo) ListByCompany(string, int, int) ([]*entity.InventoryItem, error) {
	return nil, nil
}
func (r *fakeInventoryRepo) ListCompatible(string, []string) ([]*entity.InventoryItem, error) {
	return nil, nil
}
func (r *fakeInventoryRepo) ListBelowReorderPoint(string) ([]*entity.InventoryItem, error) {
	return nil, nil
}
func (r *fakeInventoryRepo) Delete(string) error { return nil }

// newAddFromInventoryFixture arma el caso de uso con una orden wo-1 de co-1 y
// un ítem inv-1 (costo unitario 1250) con el stock indicado.
func newAddFromInventoryFixture(stock string) (*fakeCostRepo, *fakeAdjuster, *appcosts.AddFromInventoryUseCase) {
	costRepo := newFakeCostRepo()
	woRepo := &fakeWorkOrderRepo{orders: map[string]*entity.WorkOrder{
		"wo-1": {ID: "wo-1", CompanyID: "co-1", Code: "OT-2026-001", Title: "Mantenimiento preventivo"},
	}}
	invRepo := &fakeInventoryRepo{items: map[string]*entity.InventoryItem{
		"inv-1": {
			ID:            "inv-1",
			CompanyID:     "co-1",
			SKU:           "FIL-001",
			Name:          "Filtro de aceite",
			Quantity:      qty(stock),
			UnitCostCents: 1250,
		},
	}}
	adj := &fakeAdjuster{stock: map[string]decimal.Decimal{"inv-1": qty(stock)}}
	uc := appcosts.NewAddFromInventoryUseCase(costRepo, invRepo, woRepo, adj)
	return costRepo, adj, uc
}

// ──────────────────────────────────────────────────────────────────────────────
// Consumo inmediato (decrementar primero, crear después)
// ──────────────────────────────────────────────────────────────────────────────

func TestAddFromInventory_ConsumoInmediato(t *testing.T) {
	costRepo, adj, uc := newAddFromInventoryFixture("10")

	out, err := uc.AddFromInventory(context.Background(), appcosts.AddFromInventoryInput{
		CompanyID:       "co-1",
		UserID:          "user-1",
		WorkOrderID:     "wo-1",
		InventoryItemID: "inv-1",
		Quantity:        qty("1"),
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	// El stock se descontó de inmediato, no se difirió al commit.
	assert.True(t, adj.stock["inv-1"].Equal(qty("9")), "stock debe quedar en 9, quedó %s", adj.stock["inv-1"])

	stored, ok := costRepo.items[out.ID]
	require.True(t, ok, "la línea debe quedar persistida")
	assert.Equal(t, "Filtro de aceite", stored.Description)
	assert.Equal(t, int64(1250), stored.UnitPriceCents, "sin override usa el costo vigente del ítem")
	assert.Equal(t, int64(1250), stored.TotalCents)
	require.NotNil(t, stored.InventoryItemID)
	assert.Equal(t, "inv-1", *stored.InventoryItemID)
	require.NotNil(t, stored.OriginalQuantity)
	assert.True(t, stored.OriginalQuantity.Equal(qty("1")), "la reserva registra lo consumido")
	assert.Equal(t, "user-1", stored.CreatedBy)
	assert.Equal(t, "wo-1", stored.WorkOrderID)
}

// Stock insuficiente: rechazo con las cantidades exactas y cero efectos.
func TestAddFromInventory_StockInsuficienteSinEfectos(t *testing.T) {
	costRepo, adj, uc := newAddFromInventoryFixture("10")

	_, err := uc.AddFromInventory(context.Background(), appcosts.AddFromInventoryInput{
		CompanyID:       "co-1",
		UserID:          "user-1",
		WorkOrderID:     "wo-1",
		InventoryItemID: "inv-1",
		Quantity:        qty("12"),
	})
	require.Error(t, err)

	shortage, ok := appcosts.ClassifyStockError(err)
	require.True(t, ok)
	assert.True(t, shortage.Requested.Equal(qty("12")))
	assert.True(t, shortage.Available.Equal(qty("10")))

	assert.Empty(t, costRepo.items, "sin línea de costo")
	assert.Empty(t, costRepo.calls, "el insert nunca se intenta")
	assert.True(t, adj.stock["inv-1"].Equal(qty("10")), "el stock no se movió")
}

// Insert fallido tras el decremento: la devolución compensatoria regresa el
// stock descontado (nunca queda huérfano).
func TestAddFromInventory_InsertFallidoDevuelveElStock(t *testing.T) {
	costRepo, adj, uc := newAddFromInventoryFixture("10")
	costRepo.failCreate = errors.New("deadlock detected")

	_, err := uc.AddFromInventory(context.Background(), appcosts.AddFromInventoryInput{
		CompanyID:       "co-1",
		UserID:          "user-1",
		WorkOrderID:     "wo-1",
		InventoryItemID: "inv-1",
		Quantity:        qty("2"),
	})
	require.Error(t, err)

	assert.Empty(t, costRepo.items, "la línea no quedó creada")
	assert.Equal(t, 2, adj.calls, "consumo + devolución compensatoria")
	assert.True(t, adj.stock["inv-1"].Equal(qty("10")), "el stock volvió al nivel previo")
}

// Validaciones de entrada y tenant antes de tocar inventario.
func TestAddFromInventory_EntradaInvalidaSinLlamadas(t *testing.T) {
	_, adj, uc := newAddFromInventoryFixture("10")

	// Cantidad fraccionaria: las unidades son discretas.
	_, err := uc.AddFromInventory(context.Background(), appcosts.AddFromInventoryInput{
		CompanyID:       "co-1",
		UserID:          "user-1",
		WorkOrderID:     "wo-1",
		InventoryItemID: "inv-1",
		Quantity:        qty("1.5"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// La orden pertenece a otra empresa.
	_, err = uc.AddFromInventory(context.Background(), appcosts.AddFromInventoryInput{
		CompanyID:       "co-2",
		UserID:          "user-1",
		WorkOrderID:     "wo-1",
		InventoryItemID: "inv-1",
		Quantity:        qty("1"),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assert.Zero(t, adj.calls, "nada llegó a la pasarela de ajuste")
}
