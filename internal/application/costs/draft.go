// Package costs implementa el motor del libro de costos de órdenes de
// trabajo: sesión de edición en borrador, partición diff, commit secuencial
// con contabilidad de progreso parcial y consumo/devolución de inventario a
// través de la pasarela de ajuste atómico.
package costs

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Mantenix-api/internal/domain"
	domaincosts "github.com/jhoicas/Mantenix-api/internal/domain/costs"
	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
)

// DraftItem es la copia de trabajo de una línea de costo durante la edición.
// Los flags son mutuamente informativos: nueva+borrada no llega a existir
// (se descarta en Remove), modificada comete un update, sin flags es no-op.
type DraftItem struct {
	// Ref identifica la entrada dentro del borrador: el ID persistido para
	// líneas existentes, un UUID efímero para líneas nuevas.
	Ref  string
	Item entity.CostItem

	IsNew      bool
	IsModified bool
	IsDeleted  bool
	// PendingRemoval: borrado solicitado sobre una línea vinculada a
	// inventario, a la espera de confirmación explícita del usuario.
	PendingRemoval bool
}

// Draft es la sesión de edición en memoria del libro de costos de una orden:
// una copia de trabajo sembrada desde la última lectura del servidor
// (baseline). Nada toca la red hasta el commit, con una excepción: agregar
// desde inventario consume stock de inmediato y entra vía AddFilled.
type Draft struct {
	workOrderID string
	baseline    map[string]entity.CostItem
	items       []*DraftItem
}

// NewDraft siembra la copia de trabajo desde el baseline cargado del servidor.
func NewDraft(workOrderID string, baseline []*entity.CostItem) *Draft {
	d := &Draft{workOrderID: workOrderID}
	d.Reset(baseline)
	return d
}

// Reset descarta todo el estado del borrador y resiembra desde un baseline
// fresco (usado al cancelar la edición). Sin efecto de red.
func (d *Draft) Reset(baseline []*entity.CostItem) {
	d.baseline = make(map[string]entity.CostItem, len(baseline))
	d.items = make([]*DraftItem, 0, len(baseline))
	for _, it := range baseline {
		d.baseline[it.ID] = *it
		d.items = append(d.items, &DraftItem{Ref: it.ID, Item: *it})
	}
}

// WorkOrderID devuelve la orden de trabajo de la sesión.
func (d *Draft) WorkOrderID() string { return d.workOrderID }

// Items devuelve las entradas del borrador (incluidas las marcadas borradas).
func (d *Draft) Items() []*DraftItem { return d.items }

// Get busca una entrada por Ref. Devuelve nil si no existe.
func (d *Draft) Get(ref string) *DraftItem {
	for _, di := range d.items {
		if di.Ref == ref {
			return di
		}
	}
	return nil
}

// Baseline devuelve la copia confirmada de una línea, si existía al sembrar.
func (d *Draft) Baseline(id string) (entity.CostItem, bool) {
	b, ok := d.baseline[id]
	return b, ok
}

// AddBlank agrega una línea nueva y vacía (entrada manual) con cantidad 1.
func (d *Draft) AddBlank(createdBy string) *DraftItem {
	di := &DraftItem{
		Ref: uuid.New().String(),
		Item: entity.CostItem{
			WorkOrderID: d.workOrderID,
			Quantity:    decimal.NewFromInt(1),
			CreatedBy:   createdBy,
		},
		IsNew: true,
	}
	d.items = append(d.items, di)
	return di
}

// AddFilled agrega una línea ya confirmada del lado del servidor (consumo de
// inventario aplicado de inmediato): entra como existente, no como nueva, y
// pasa a formar parte del baseline para que el commit no la re-cree.
func (d *Draft) AddFilled(item *entity.CostItem) *DraftItem {
	d.baseline[item.ID] = *item
	di := &DraftItem{Ref: item.ID, Item: *item}
	d.items = append(d.items, di)
	return di
}

// SetDescription cambia la descripción. En líneas vinculadas a inventario la
// descripción es de solo lectura (viene del ítem de stock).
func (d *Draft) SetDescription(ref, description string) error {
	di := d.Get(ref)
	if di == nil {
		return domain.ErrNotFound
	}
	if di.Item.IsInventoryLinked() {
		return fmt.Errorf("descripción de línea vinculada a inventario es de solo lectura: %w", domain.ErrInvalidInput)
	}
	di.Item.Description = description
	d.markTouched(di)
	return nil
}

// SetQuantity cambia la cantidad y recalcula el total.
func (d *Draft) SetQuantity(ref string, quantity decimal.Decimal) error {
	di := d.Get(ref)
	if di == nil {
		return domain.ErrNotFound
	}
	di.Item.Quantity = quantity
	di.Item.TotalCents = domaincosts.TotalCents(quantity, di.Item.UnitPriceCents)
	d.markTouched(di)
	return nil
}

// SetUnitPrice cambia el precio unitario (centavos) y recalcula el total.
func (d *Draft) SetUnitPrice(ref string, unitPriceCents int64) error {
	di := d.Get(ref)
	if di == nil {
		return domain.ErrNotFound
	}
	di.Item.UnitPriceCents = unitPriceCents
	di.Item.TotalCents = domaincosts.TotalCents(di.Item.Quantity, unitPriceCents)
	d.markTouched(di)
	return nil
}

func (d *Draft) markTouched(di *DraftItem) {
	if !di.IsNew {
		di.IsModified = true
	}
}

// Remove solicita el borrado de una entrada.
//   - Línea nueva: se descarta en el acto (no hay nada que cometer).
//   - Línea vinculada a inventario: queda en PendingRemoval y devuelve true;
//     el borrado devuelve stock, así que exige confirmación explícita
//     (ConfirmRemove) o cancelación (CancelRemove).
//   - Línea manual existente: soft-delete directo en el borrador.
func (d *Draft) Remove(ref string) (needsConfirmation bool, err error) {
	di := d.Get(ref)
	if di == nil {
		return false, domain.ErrNotFound
	}
	if di.IsNew {
		d.drop(ref)
		return false, nil
	}
	if di.Item.IsInventoryLinked() {
		di.PendingRemoval = true
		return true, nil
	}
	di.IsDeleted = true
	return false, nil
}

// ConfirmRemove confirma el borrado de una línea vinculada pendiente.
func (d *Draft) ConfirmRemove(ref string) error {
	di := d.Get(ref)
	if di == nil {
		return domain.ErrNotFound
	}
	if !di.PendingRemoval {
		return domain.ErrConflict
	}
	di.PendingRemoval = false
	di.IsDeleted = true
	return nil
}

// CancelRemove cancela una solicitud de borrado pendiente (vuelve a Displayed).
func (d *Draft) CancelRemove(ref string) error {
	di := d.Get(ref)
	if di == nil {
		return domain.ErrNotFound
	}
	di.PendingRemoval = false
	return nil
}

func (d *Draft) drop(ref string) {
	for i, di := range d.items {
		if di.Ref == ref {
			d.items = append(d.items[:i], d.items[i+1:]...)
			return
		}
	}
}

// ValidationError acumula los problemas del borrador. El commit se niega a
// correr mientras exista alguno: estos errores se resuelven del lado del
// cliente y nunca llegan al servidor.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return "borrador inválido: " + strings.Join(e.Issues, "; ")
}

// Unwrap permite errors.Is(err, domain.ErrInvalidInput).
func (e *ValidationError) Unwrap() error { return domain.ErrInvalidInput }

// Validate revisa todas las entradas no borradas: descripción no vacía,
// cantidad positiva, precio no negativo; en líneas vinculadas la cantidad no
// puede superar lo reservado ni quedar con confirmación de borrado pendiente.
func (d *Draft) Validate() error {
	var issues []string
	for _, di := range d.items {
		if di.PendingRemoval {
			issues = append(issues, fmt.Sprintf("línea %s: borrado sin confirmar", di.Ref))
			continue
		}
		if di.IsDeleted {
			continue
		}
		if strings.TrimSpace(di.Item.Description) == "" {
			issues = append(issues, fmt.Sprintf("línea %s: descripción vacía", di.Ref))
		}
		if !di.Item.Quantity.IsPositive() {
			issues = append(issues, fmt.Sprintf("línea %s: cantidad debe ser positiva", di.Ref))
		}
		if di.Item.UnitPriceCents < 0 {
			issues = append(issues, fmt.Sprintf("línea %s: precio unitario negativo", di.Ref))
		}
		if di.Item.IsInventoryLinked() && di.Item.OriginalQuantity != nil &&
			di.Item.Quantity.GreaterThan(*di.Item.OriginalQuantity) {
			issues = append(issues, fmt.Sprintf("línea %s: cantidad supera lo reservado (%s)", di.Ref, di.Item.OriginalQuantity.String()))
		}
	}
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}
