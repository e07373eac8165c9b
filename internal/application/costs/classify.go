package costs

import (
	"errors"
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Mantenix-api/internal/domain"
)

// StockShortage es el resultado tipado de una falta de stock, consumible por
// la capa de UI sin inspeccionar strings.
type StockShortage struct {
	ItemID    string          `json:"item_id,omitempty"`
	Requested decimal.Decimal `json:"requested"`
	Available decimal.Decimal `json:"available"`
}

// Patrones defensivos para pasarelas remotas que solo devuelven prosa: se
// extraen los dos números de donde estén en el mensaje. La ruta preferida es
// la variante estructurada (*domain.InsufficientStockError); esto es el
// fallback y se asume frágil.
var shortagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)solicitad[oa]s?\D*(\d+(?:\.\d+)?)\D+disponibles?\D*(\d+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)requested\D*(\d+(?:\.\d+)?)\D+available\D*(\d+(?:\.\d+)?)`),
}

// ClassifyStockError mapea un rechazo del backend a un resultado tipado.
// Primero intenta la variante estructurada; si el error solo trae un mensaje
// legible, extrae solicitado/disponible por regex. Devuelve (nil, false) si
// el error no es una falta de stock reconocible.
func ClassifyStockError(err error) (*StockShortage, bool) {
	if err == nil {
		return nil, false
	}
	var ise *domain.InsufficientStockError
	if errors.As(err, &ise) {
		return &StockShortage{ItemID: ise.ItemID, Requested: ise.Requested, Available: ise.Available}, true
	}
	msg := err.Error()
	for _, re := range shortagePatterns {
		if m := re.FindStringSubmatch(msg); m != nil {
			req, err1 := decimal.NewFromString(m[1])
			avail, err2 := decimal.NewFromString(m[2])
			if err1 == nil && err2 == nil {
				return &StockShortage{Requested: req, Available: avail}, true
			}
		}
	}
	// Falta de stock sin números extraíbles: sigue siendo clasificable como
	// tal, pero sin cifras.
	if errors.Is(err, domain.ErrInsufficientStock) {
		return &StockShortage{}, true
	}
	return nil, false
}
