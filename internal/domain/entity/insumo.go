package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Insumo representa una materia prima que se consume para producir productos
// terminados. Su stock se mueve por reservas de pedidos, producción y
// pérdidas, y nunca puede quedar negativo: cualquier operación que lo
// dejaría bajo cero debe fallar en esa operación.
type Insumo struct {
	ID            string
	Nombre        string
	Stock         decimal.Decimal
	StockMinimo   decimal.Decimal
	UnidadMedida  string // kg, g, l, ml, unidad
	CostoUnitario decimal.Decimal
	ProveedorID   string // opcional, vacío si no tiene proveedor asignado
	Activo        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BajoMinimo indica si el insumo está por debajo de su punto de reorden.
func (i *Insumo) BajoMinimo() bool {
	return i.Stock.LessThan(i.StockMinimo)
}
