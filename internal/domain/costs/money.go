// Package costs contiene los servicios de dominio puros del libro de costos:
// aritmética monetaria en centavos y agregación de resúmenes.
package costs

import "github.com/shopspring/decimal"

// TotalCents calcula el total de una línea: cantidad × precio unitario en
// centavos, redondeado al centavo más cercano con mitad hacia arriba
// (decimal.Round redondea mitad alejándose de cero; con cantidades y precios
// no negativos equivale a half-up). Política de redondeo única de todo el
// motor: ningún otro punto del código redondea dinero.
func TotalCents(quantity decimal.Decimal, unitPriceCents int64) int64 {
	return quantity.Mul(decimal.NewFromInt(unitPriceCents)).Round(0).IntPart()
}
