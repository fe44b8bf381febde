package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Venta es una venta de mostrador (carrito de punto de venta). Cada detalle
// descuenta stock del producto vía el libro de movimientos con referencia a
// la venta.
type Venta struct {
	ID         string
	ClienteID  string // opcional
	Total      decimal.Decimal
	MetodoPago string // efectivo, tarjeta, transferencia
	Usuario    string
	Fecha      time.Time
	CreatedAt  time.Time

	Detalles []VentaDetalle
}

// VentaDetalle es una línea del carrito: producto, cantidad y precio al
// momento de la venta.
type VentaDetalle struct {
	ID             string
	VentaID        string
	ProductoID     string
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
	Subtotal       decimal.Decimal
}
