package model

import "github.com/shopspring/decimal"

var cien = decimal.NewFromInt(100)

// LineaDetalle holds the priced fields shared by every detail line
// (DetalleCompra, DetalleVenta). Descuento and Subtotal are derived and only
// written by Recalcular.
type LineaDetalle struct {
	Cantidad            int             `gorm:"not null"`
	PrecioUnitario      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PorcentajeDescuento decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Descuento           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Subtotal            decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
}

// PrecioBase is cantidad × precio_unitario rounded to cents. Not stored.
func (l LineaDetalle) PrecioBase() decimal.Decimal {
	return l.bruto().Round(2)
}

// Recalcular overwrites Descuento and Subtotal from the current inputs.
// It must run right before every persist of the line.
func (l *LineaDetalle) Recalcular() {
	base := l.bruto()
	l.Descuento = base.Mul(l.PorcentajeDescuento).Div(cien).Round(2)
	l.Subtotal = base.Sub(l.Descuento).Round(2)
}

// Importes lets generic helpers read the priced fields of any embedding type.
func (l LineaDetalle) Importes() LineaDetalle { return l }

func (l LineaDetalle) bruto() decimal.Decimal {
	return l.PrecioUnitario.Mul(decimal.NewFromInt(int64(l.Cantidad)))
}

// Totales are the derived amounts cached on an aggregate.
type Totales struct {
	Subtotal       decimal.Decimal // sum of line base prices
	DescuentoTotal decimal.Decimal // sum of line discounts
	Total          decimal.Decimal // sum of line subtotals
}

// Totalizar sums the current lines of an aggregate. An empty set yields zero.
func Totalizar[T interface{ Importes() LineaDetalle }](lineas []T) Totales {
	t := Totales{Subtotal: decimal.Zero, DescuentoTotal: decimal.Zero, Total: decimal.Zero}
	for _, l := range lineas {
		imp := l.Importes()
		t.Subtotal = t.Subtotal.Add(imp.PrecioBase())
		t.DescuentoTotal = t.DescuentoTotal.Add(imp.Descuento)
		t.Total = t.Total.Add(imp.Subtotal)
	}
	return t
}
