package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto representa un producto terminado vendible, con su propio stock.
// Stock es un contador materializado: debe coincidir en todo momento con el
// efecto neto de los movimientos de inventario del producto.
type Producto struct {
	ID          string
	Nombre      string
	Descripcion string
	Precio      decimal.Decimal // precio de venta
	Stock       decimal.Decimal // nunca negativo
	StockMinimo decimal.Decimal // punto de reorden
	Activo      bool            // baja lógica; los productos nunca se eliminan físicamente
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BajoMinimo indica si el producto está por debajo de su punto de reorden.
func (p *Producto) BajoMinimo() bool {
	return p.Stock.LessThan(p.StockMinimo)
}
