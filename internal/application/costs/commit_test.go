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
	domaincosts "github.com/jhoicas/Mantenix-api/internal/domain/costs"
	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// fakeCostRepo implementa repository.CostItemRepository en memoria.
type fakeCostRepo struct {
	items map[string]*entity.CostItem
	calls []string
	// failOn provoca un error en la operación indicada para un ID dado.
	failOn map[string]error // clave: "create:<id>", "update:<id>", "delete:<id>"
	// failCreate falla toda creación (los IDs se generan dentro del caso de
	// uso y no se conocen de antemano).
	failCreate error
}

func newFakeCostRepo(seed ...*entity.CostItem) *fakeCostRepo {
	r := &fakeCostRepo{items: map[string]*entity.CostItem{}, failOn: map[string]error{}}
	for _, it := range seed {
		cp := *it
		r.items[it.ID] = &cp
	}
	return r
}

func (r *fakeCostRepo) Create(item *entity.CostItem) error {
	r.calls = append(r.calls, "create:"+item.ID)
	if r.failCreate != nil {
		return r.failCreate
	}
	if err := r.failOn["create:"+item.ID]; err != nil {
		return err
	}
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeCostRepo) Update(item *entity.CostItem) error {
	r.calls = append(r.calls, "update:"+item.ID)
	if err := r.failOn["update:"+item.ID]; err != nil {
		return err
	}
	if _, ok := r.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeCostRepo) Delete(id string) error {
	r.calls = append(r.calls, "delete:"+id)
	if err := r.failOn["delete:"+id]; err != nil {
		return err
	}
	delete(r.items, id)
	return nil
}

func (r *fakeCostRepo) GetByID(id string) (*entity.CostItem, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *fakeCostRepo) ListByWorkOrder(workOrderID string) ([]*entity.CostItem, error) {
	var out []*entity.CostItem
	for _, it := range r.items {
		if it.WorkOrderID == workOrderID {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeCostRepo) Summary(workOrderID string) (*domaincosts.Summary, error) {
	list, _ := r.ListByWorkOrder(workOrderID)
	s := domaincosts.Summarize(list)
	return &s, nil
}

// fakeAdjuster implementa costs.StockAdjuster sobre un mapa de stock,
// replicando el contrato de la pasarela: atómico, rechaza sobre-consumo con
// el error estructurado y devuelve la cantidad resultante.
type fakeAdjuster struct {
	stock map[string]decimal.Decimal
	calls int
	// failAll fuerza una falla de transporte en todo ajuste.
	failAll error
}

func (a *fakeAdjuster) AdjustForWorkOrder(_ context.Context, itemID string, delta decimal.Decimal, reason, workOrderID, userID string) (decimal.Decimal, error) {
	a.calls++
	if a.failAll != nil {
		return decimal.Zero, a.failAll
	}
	current, ok := a.stock[itemID]
	if !ok {
		return decimal.Zero, domain.ErrNotFound
	}
	next := current.Add(delta)
	if next.IsNegative() {
		return decimal.Zero, &domain.InsufficientStockError{
			ItemID:    itemID,
			Requested: delta.Neg(),
			Available: current,
		}
	}
	a.stock[itemID] = next
	return next, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Idempotencia del no-op
// ──────────────────────────────────────────────────────────────────────────────

func TestCommit_SinCambiosCeroLlamadas(t *testing.T) {
	base := []*entity.CostItem{manualItem("c1", "2", 500), linkedItem("c2", "inv-1", "3", 100)}
	repo := newFakeCostRepo(base...)
	adj := &fakeAdjuster{stock: map[string]decimal.Decimal{"inv-1": qty("7")}}
	uc := appcosts.NewCommitUseCase(repo, adj)

	d := appcosts.NewDraft("wo-1", base)
	res, err := uc.Commit(context.Background(), d, "user-1")
	require.NoError(t, err)
	assert.Empty(t, res.Results)
	assert.Empty(t, repo.calls, "no debe emitir ninguna llamada")
	assert.Zero(t, adj.calls)
}

// Entrada tocada pero sin cambio real de campos: cero llamadas de red y la
// línea aparece como omitida en el resultado (no desaparece en silencio).
func TestCommit_TocadaSinCambioRealReportaOmitida(t *testing.T) {
	base := []*entity.CostItem{manualItem("c1", "2", 500)}
	repo := newFakeCostRepo(base...)
	adj := &fakeAdjuster{stock: map[string]decimal.Decimal{}}
	uc := appcosts.NewCommitUseCase(repo, adj)

	d := appcosts.NewDraft("wo-1", base)
	// Mismo valor: marca IsModified sin cambiar nada.
	require.NoError(t, d.SetUnitPrice("c1", 500))
	require.True(t, d.Get("c1").IsModified)

	res, err := uc.Commit(context.Background(), d, "user-1")
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.Equal(t, appcosts.StatusSkipped, res.Results[0].Status)
	assert.Equal(t, appcosts.OpUpdate, res.Results[0].Op)
	assert.Equal(t, "c1", res.Results[0].Ref)
	assert.Equal(t, 1, res.Skipped())
	assert.Zero(t, res.Committed())
	assert.Empty(t, repo.calls, "omitida no emite ninguna llamada")
	assert.Zero(t, adj.calls)
}

func TestCommit_ValidacionBloqueaInicio(t *testing.T) {
	repo := newFakeCostRepo()
	adj := &fakeAdjuster{stock: map[string]decimal.Decimal{}}
	uc := appcosts.NewCommitUseCase(repo, adj)

	d := appcosts.NewDraft("wo-1", nil)
	d.AddBlank("user-1") // descripción vacía

	_, err := uc.Commit(context.Background(), d, "user-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, repo.calls)
	assert.Zero(t, adj.calls)
}

// ──────────────────────────────────────────────────────────────────────────────
// Restauración
// ──────────────────────────────────────────────────────────────────────────────

// Conservación: borrar la línea vinculada devuelve el stock exactamente al
// nivel previo al consumo.
func TestCommit_BorradoVinculadaRestauraStock(t *testing.T) {
	linked := linkedItem("c1", "inv-1", "4", 1000)
	repo := newFakeCostRepo(linked)
	// El consumo ya ocurrió: 10 - 4 = 6.
	adj := &fakeAdjuster{stock: map[string]decimal.Decimal{"inv-1": qty("6")}}
	uc := appcosts.NewCommitUseCase(repo, adj)

	d := appcosts.NewDraft("wo-1", []*entity.CostItem{linked})
	_, err := d.Remove("c1")
	require.NoError(t, err)
	require.NoError(t, d.ConfirmRemove("c1"))

	res, err := uc.Commit(context.Background(), d, "user-1")
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.Equal(t, appcosts.StatusCommitted, res.Results[0].Status)
	assert.True(t, adj.stock["inv-1"].Equal(qty("10")), "stock debe volver a 10, quedó %s", adj.stock["inv-1"])
	_, exists := repo.items["c1"]
	assert.False(t, exists)

	// Re-commit de la misma sesión: la línea borrada ya salió del borrador,
	// no hay segunda devolución.
	res2, err := uc.Commit(context.Background(), d, "user-1")
	require.NoError(t, err)
	assert.Empty(t, res2.Results)
	assert.True(t, adj.stock["inv-1"].Equal(qty("10")))
}

// Tras un commit exitoso el borrador avanza su baseline: volver a cometer la
// misma sesión no re-particiona la reducción ya aplicada ni devuelve stock
// dos veces.
func TestCommit_RecommitMismaSesionEsNoOp(t *testing.T) {
	linked := linkedItem("c1", "inv-1", "5", 1000)
	repo := newFakeCostRepo(linked)
	adj := &fakeAdjuster{stock: map[string]decimal.Decimal{"inv-1": qty("0")}}
	uc := appcosts.NewCommitUseCase(repo, adj)

	d := appcosts.NewDraft("wo-1", []*entity.CostItem{linked})
	require.NoError(t, d.SetQuantity("c1", qty("2")))

	res, err := uc.Commit(context.Background(), d, "user-1")
	require.NoError(t, err)
	require.Equal(t, 1, res.Committed())
	require.True(t, adj.stock["inv-1"].Equal(qty("3")))
	require.Equal(t, 1, adj.calls)

	res2, err := uc.Commit(context.Background(), d, "user-1")
	require.NoError(t, err)
	assert.Empty(t, res2.Results)
	assert.Equal(t, 1, adj.calls, "la devolución del delta no se repite")
	assert.True(t, adj.stock["inv-1"].Equal(qty("3")))
	assert.False(t, d.Get("c1").IsModified)
}

// Reducir (no borrar) devuelve solo el delta reducido: 5 → 2 devuelve 3.
func TestCommit_ReduccionRestauraSoloElDelta(t *testing.T) {
	linked := linkedItem("c1", "inv-1", "5", 1000)
	repo := newFakeCostRepo(linked)
	adj := &fakeAdjuster{stock: map[string]decimal.Decimal{"inv-1": qty("0")}}
	uc := appcosts.NewCommitUseCase(repo, adj)

	d := appcosts.NewDraft("wo-1", []*entity.CostItem{linked})
	require.NoError(t, d.SetQuantity("c1", qty("2")))

	res, err := uc.Commit(context.Background(), d, "user-1")
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.Equal(t, appcosts.StatusCommitted, res.Results[0].Status)
	assert.True(t, adj.stock["inv-1"].Equal(qty("3")), "deben volver exactamente 3 unidades")

	updated := repo.items["c1"]
	require.NotNil(t, updated)
	assert.True(t, updated.Quantity.Equal(qty("2")))
	require.NotNil(t, updated.OriginalQuantity)
	// La reserva vigente ahora es 2: un borrado posterior devuelve 2, no 5.
	assert.True(t, updated.OriginalQuantity.Equal(qty("2")))
	assert.Equal(t, int64(2000), updated.TotalCents)
}

// Devolución fallida en borrado: la línea NO se elimina y se reporta.
func TestCommit_DevolucionFallidaNoBorraLaLinea(t *testing.T) {
	linked := linkedItem("c1", "inv-1", "4", 1000)
	repo := newFakeCostRepo(linked)
	adj := &fakeAdjuster{stock: map[string]decimal.Decimal{}, failAll: errors.New("timeout")}
	uc := appcosts.NewCommitUseCase(repo, adj)

	d := appcosts.NewDraft("wo-1", []*entity.CostItem{linked})
	_, err := d.Remove("c1")
	require.NoError(t, err)
	require.NoError(t, d.ConfirmRemove("c1"))

	res, err := uc.Commit(context.Background(), d, "user-1")
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.Equal(t, appcosts.StatusFailed, res.Results[0].Status)
	assert.True(t, res.Results[0].StockNotRestored)
	_, exists := repo.items["c1"]
	assert.True(t, exists, "evitar el doble daño: sin devolución no hay borrado")
}

// ──────────────────────────────────────────────────────────────────────────────
// Falla parcial
// ──────────────────────────────────────────────────────────────────────────────

func TestCommit_FallaParcialReportaExactamenteQue(t *testing.T) {
	base := []*entity.CostItem{
		manualItem("c1", "1", 100),
		manualItem("c2", "1", 200),
		manualItem("c3", "1", 300),
	}
	repo := newFakeCostRepo(base...)
	repo.failOn["update:c2"] = errors.New("connection reset")
	adj := &fakeAdjuster{stock: map[string]decimal.Decimal{}}
	uc := appcosts.NewCommitUseCase(repo, adj)

	d := appcosts.NewDraft("wo-1", base)
	require.NoError(t, d.SetUnitPrice("c1", 111))
	require.NoError(t, d.SetUnitPrice("c2", 222))
	require.NoError(t, d.SetUnitPrice("c3", 333))

	res, err := uc.Commit(context.Background(), d, "user-1")
	require.NoError(t, err)
	require.Len(t, res.Results, 3)
	assert.Equal(t, 2, res.Committed())
	assert.Equal(t, 1, res.Failed())

	byRef := map[string]appcosts.ItemResult{}
	for _, r := range res.Results {
		byRef[r.Ref] = r
	}
	// Las hermanas confirmadas no se cancelan por la falla de c2.
	assert.Equal(t, appcosts.StatusCommitted, byRef["c1"].Status)
	assert.Equal(t, appcosts.StatusFailed, byRef["c2"].Status)
	assert.Equal(t, appcosts.StatusCommitted, byRef["c3"].Status)
	assert.Equal(t, int64(111), repo.items["c1"].UnitPriceCents)
	assert.Equal(t, int64(200), repo.items["c2"].UnitPriceCents, "c2 conserva el valor del baseline")
	assert.Equal(t, int64(333), repo.items["c3"].UnitPriceCents)
}

// Creación de líneas nuevas manuales en el commit.
func TestCommit_CreaLineasNuevas(t *testing.T) {
	repo := newFakeCostRepo()
	adj := &fakeAdjuster{stock: map[string]decimal.Decimal{}}
	uc := appcosts.NewCommitUseCase(repo, adj)

	d := appcosts.NewDraft("wo-1", nil)
	di := d.AddBlank("user-1")
	require.NoError(t, d.SetDescription(di.Ref, "mano de obra"))
	require.NoError(t, d.SetQuantity(di.Ref, qty("2")))
	require.NoError(t, d.SetUnitPrice(di.Ref, 500))

	res, err := uc.Commit(context.Background(), d, "user-1")
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.Equal(t, appcosts.StatusCommitted, res.Results[0].Status)
	require.Len(t, repo.items, 1)
	for _, it := range repo.items {
		assert.Equal(t, "mano de obra", it.Description)
		assert.Equal(t, int64(1000), it.TotalCents)
		assert.Equal(t, "user-1", it.CreatedBy)
		assert.Equal(t, "wo-1", it.WorkOrderID)
	}
	assert.Zero(t, adj.calls, "líneas manuales no tocan inventario")
}
