package costs

import "github.com/jhoicas/Mantenix-api/internal/domain/entity"

// CreatorRollup subtotal de un creador dentro del resumen.
type CreatorRollup struct {
	ItemCount  int   `json:"item_count"`
	TotalCents int64 `json:"total_cents"`
}

// Summary resumen derivado del libro de costos de una orden de trabajo.
// Nunca se persiste; se recalcula a partir de las líneas confirmadas.
type Summary struct {
	TotalItems           int                      `json:"total_items"`
	TotalCostCents       int64                    `json:"total_cost_cents"`
	AverageItemCostCents int64                    `json:"average_item_cost_cents"`
	ByCreator            map[string]CreatorRollup `json:"by_creator"`
}

// Summarize agrega una lista de líneas de costo: total, conteo, promedio
// entero (0 si no hay líneas) y subtotales por creador. Función pura.
func Summarize(items []*entity.CostItem) Summary {
	s := Summary{ByCreator: make(map[string]CreatorRollup)}
	for _, it := range items {
		s.TotalItems++
		s.TotalCostCents += it.TotalCents
		r := s.ByCreator[it.CreatedBy]
		r.ItemCount++
		r.TotalCents += it.TotalCents
		s.ByCreator[it.CreatedBy] = r
	}
	if s.TotalItems > 0 {
		s.AverageItemCostCents = s.TotalCostCents / int64(s.TotalItems)
	}
	return s
}
