package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/Mantenix-api/internal/application/inventory"
	"github.com/jhoicas/Mantenix-api/internal/domain"
	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
	"github.com/jhoicas/Mantenix-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria con semántica transaccional: los cambios solo se aplican
// si el callback del TxRunner termina sin error (commit), y se descartan si
// devuelve error (rollback).
// ──────────────────────────────────────────────────────────────────────────────

type fakeItemRepo struct {
	items map[string]*entity.InventoryItem
}

func (r *fakeItemRepo) Create(item *entity.InventoryItem) error { return nil }

func (r *fakeItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	return r.GetForUpdate(id)
}

func (r *fakeItemRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.InventoryItem, error) {
	return nil, nil
}

func (r *fakeItemRepo) Update(item *entity.InventoryItem) error { return nil }

func (r *fakeItemRepo) UpdateQuantity(id string, quantity decimal.Decimal) error {
	it, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.Quantity = quantity
	return nil
}

func (r *fakeItemRepo) GetForUpdate(id string) (*entity.InventoryItem, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *fakeItemRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.InventoryItem, error) {
	return nil, nil
}

func (r *fakeItemRepo) ListCompatible(companyID string, equipmentIDs []string) ([]*entity.InventoryItem, error) {
	return nil, nil
}

func (r *fakeItemRepo) ListBelowReorderPoint(companyID string) ([]*entity.InventoryItem, error) {
	return nil, nil
}

func (r *fakeItemRepo) Delete(id string) error { return nil }

type fakeAdjRepo struct {
	journal []*entity.StockAdjustment
}

func (r *fakeAdjRepo) Create(adj *entity.StockAdjustment) error {
	r.journal = append(r.journal, adj)
	return nil
}

func (r *fakeAdjRepo) ListByItem(inventoryItemID string, limit, offset int) ([]*entity.StockAdjustment, error) {
	return nil, nil
}

func (r *fakeAdjRepo) ListByWorkOrder(workOrderID string) ([]*entity.StockAdjustment, error) {
	return nil, nil
}

type fakeTxRunner struct {
	itemRepo *fakeItemRepo
	adjRepo  *fakeAdjRepo
}

func (tr *fakeTxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	adjRepo repository.StockAdjustmentRepository,
) error) error {
	// Snapshot para simular rollback.
	snapshot := map[string]entity.InventoryItem{}
	for id, it := range tr.itemRepo.items {
		snapshot[id] = *it
	}
	journalLen := len(tr.adjRepo.journal)

	if err := fn(tr.itemRepo, tr.adjRepo); err != nil {
		for id := range tr.itemRepo.items {
			prev := snapshot[id]
			tr.itemRepo.items[id] = &prev
		}
		tr.adjRepo.journal = tr.adjRepo.journal[:journalLen]
		return err
	}
	return nil
}

func newFixture(q string) (*appinv.AdjustStockUseCase, *fakeItemRepo, *fakeAdjRepo) {
	itemRepo := &fakeItemRepo{items: map[string]*entity.InventoryItem{
		"inv-1": {
			ID:        "inv-1",
			CompanyID: "co-1",
			Name:      "filtro de aceite",
			Quantity:  decimal.RequireFromString(q),
		},
	}}
	adjRepo := &fakeAdjRepo{}
	uc := appinv.NewAdjustStockUseCase(&fakeTxRunner{itemRepo: itemRepo, adjRepo: adjRepo})
	return uc, itemRepo, adjRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajustes
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust_ConsumoDecrementaYRegistraJournal(t *testing.T) {
	uc, itemRepo, adjRepo := newFixture("10")

	newQty, err := uc.Adjust(context.Background(), appinv.AdjustmentInput{
		CompanyID:       "co-1",
		UserID:          "user-1",
		InventoryItemID: "inv-1",
		WorkOrderID:     "wo-1",
		Delta:           decimal.NewFromInt(-4),
		Reason:          entity.AdjustmentReasonConsumption,
	})
	require.NoError(t, err)
	assert.True(t, newQty.Equal(decimal.NewFromInt(6)))
	assert.True(t, itemRepo.items["inv-1"].Quantity.Equal(decimal.NewFromInt(6)))

	require.Len(t, adjRepo.journal, 1)
	adj := adjRepo.journal[0]
	assert.Equal(t, "inv-1", adj.InventoryItemID)
	assert.Equal(t, "wo-1", adj.WorkOrderID)
	assert.True(t, adj.Delta.Equal(decimal.NewFromInt(-4)))
	assert.True(t, adj.QuantityAfter.Equal(decimal.NewFromInt(6)))
	assert.Equal(t, entity.AdjustmentReasonConsumption, adj.Reason)
}

func TestAdjust_SobreConsumoRechazaSinMutar(t *testing.T) {
	uc, itemRepo, adjRepo := newFixture("5")

	_, err := uc.Adjust(context.Background(), appinv.AdjustmentInput{
		CompanyID:       "co-1",
		UserID:          "user-1",
		InventoryItemID: "inv-1",
		Delta:           decimal.NewFromInt(-8),
		Reason:          entity.AdjustmentReasonConsumption,
	})
	require.Error(t, err)

	var ise *domain.InsufficientStockError
	require.ErrorAs(t, err, &ise)
	assert.True(t, ise.Requested.Equal(decimal.NewFromInt(8)))
	assert.True(t, ise.Available.Equal(decimal.NewFromInt(5)))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Rollback: nada cambió.
	assert.True(t, itemRepo.items["inv-1"].Quantity.Equal(decimal.NewFromInt(5)))
	assert.Empty(t, adjRepo.journal)
}

// Consumir exactamente el disponible es válido: el stock queda en cero.
func TestAdjust_ConsumoExactoDejaCero(t *testing.T) {
	uc, itemRepo, _ := newFixture("5")

	newQty, err := uc.Adjust(context.Background(), appinv.AdjustmentInput{
		CompanyID:       "co-1",
		UserID:          "user-1",
		InventoryItemID: "inv-1",
		Delta:           decimal.NewFromInt(-5),
		Reason:          entity.AdjustmentReasonConsumption,
	})
	require.NoError(t, err)
	assert.True(t, newQty.IsZero())
	assert.True(t, itemRepo.items["inv-1"].Quantity.IsZero())
}

func TestAdjust_DevolucionIncrementa(t *testing.T) {
	uc, _, adjRepo := newFixture("6")

	newQty, err := uc.Adjust(context.Background(), appinv.AdjustmentInput{
		CompanyID:       "co-1",
		UserID:          "user-1",
		InventoryItemID: "inv-1",
		WorkOrderID:     "wo-1",
		Delta:           decimal.NewFromInt(4),
		Reason:          entity.AdjustmentReasonRestock,
	})
	require.NoError(t, err)
	assert.True(t, newQty.Equal(decimal.NewFromInt(10)))
	require.Len(t, adjRepo.journal, 1)
	assert.Equal(t, entity.AdjustmentReasonRestock, adjRepo.journal[0].Reason)
}

func TestAdjust_EntradasInvalidas(t *testing.T) {
	uc, _, _ := newFixture("10")
	ctx := context.Background()

	_, err := uc.Adjust(ctx, appinv.AdjustmentInput{InventoryItemID: "inv-1", Reason: entity.AdjustmentReasonManual})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "delta cero")

	_, err = uc.Adjust(ctx, appinv.AdjustmentInput{InventoryItemID: "inv-1", Delta: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin motivo")

	_, err = uc.Adjust(ctx, appinv.AdjustmentInput{
		InventoryItemID: "inv-1",
		Delta:           decimal.RequireFromString("-1.5"),
		Reason:          entity.AdjustmentReasonConsumption,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "delta fraccionario")
}

func TestAdjust_ItemInexistente(t *testing.T) {
	uc, _, _ := newFixture("10")

	_, err := uc.Adjust(context.Background(), appinv.AdjustmentInput{
		InventoryItemID: "no-existe",
		Delta:           decimal.NewFromInt(-1),
		Reason:          entity.AdjustmentReasonConsumption,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdjust_OtroTenantProhibido(t *testing.T) {
	uc, itemRepo, _ := newFixture("10")

	_, err := uc.Adjust(context.Background(), appinv.AdjustmentInput{
		CompanyID:       "co-otra",
		InventoryItemID: "inv-1",
		Delta:           decimal.NewFromInt(-1),
		Reason:          entity.AdjustmentReasonConsumption,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.True(t, itemRepo.items["inv-1"].Quantity.Equal(decimal.NewFromInt(10)))
}
