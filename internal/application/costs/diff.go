package costs

import "github.com/jhoicas/Mantenix-api/internal/domain/entity"

// Changes es la partición del borrador contra el baseline en tres conjuntos
// disjuntos por construcción: una entrada nueva nunca es actualizada ni
// borrada (las nuevas+borradas se descartaron en Remove), y una borrada no
// entra en Updated aunque tenga campos cambiados.
type Changes struct {
	New     []*DraftItem
	Updated []*DraftItem
	Deleted []*DraftItem
	// Skipped: entradas tocadas (IsModified) cuyos campos terminaron iguales
	// al baseline. No emiten llamada de red pero el commit las enumera como
	// omitidas en el resultado por línea.
	Skipped []*DraftItem
}

// Empty indica que no hay nada que cometer: el commit no emite ninguna
// llamada de red (idempotencia del no-op). Las omitidas no cuentan: tampoco
// tocan la red.
func (c Changes) Empty() bool {
	return len(c.New) == 0 && len(c.Updated) == 0 && len(c.Deleted) == 0
}

// Diff particiona el borrador actual contra el baseline sembrado.
// Una entrada existente entra en Updated solo si algún campo relevante
// (descripción, cantidad, precio unitario) difiere de verdad del baseline;
// tocada sin cambio real (ida y vuelta) va a Skipped: no comete update
// pero queda reportada.
func (d *Draft) Diff() Changes {
	var ch Changes
	for _, di := range d.items {
		switch {
		case di.IsNew && di.IsDeleted:
			// No llega a existir; Remove descarta estas entradas, pero se
			// cubre el caso por si el flag se fuerza desde fuera.
		case di.IsNew:
			ch.New = append(ch.New, di)
		case di.IsDeleted:
			ch.Deleted = append(ch.Deleted, di)
		default:
			base, ok := d.baseline[di.Ref]
			if !ok {
				break
			}
			if fieldsChanged(di, base) {
				ch.Updated = append(ch.Updated, di)
			} else if di.IsModified {
				ch.Skipped = append(ch.Skipped, di)
			}
		}
	}
	return ch
}

func fieldsChanged(di *DraftItem, base entity.CostItem) bool {
	return di.Item.Description != base.Description ||
		!di.Item.Quantity.Equal(base.Quantity) ||
		di.Item.UnitPriceCents != base.UnitPriceCents
}
