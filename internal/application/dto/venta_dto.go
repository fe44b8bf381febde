package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DetalleVentaRequest línea del carrito de punto de venta.
type DetalleVentaRequest struct {
	ProductoID string          `json:"producto_id" validate:"required"`
	Cantidad   decimal.Decimal `json:"cantidad"`
}

// RegistrarVentaRequest body para POST /api/ventas.
type RegistrarVentaRequest struct {
	ClienteID  string                `json:"cliente_id"`
	MetodoPago string                `json:"metodo_pago" validate:"required,oneof=efectivo tarjeta transferencia"`
	Detalles   []DetalleVentaRequest `json:"detalles" validate:"required,min=1,dive"`
}

// DetalleVentaResponse línea persistida de la venta.
type DetalleVentaResponse struct {
	ProductoID     string          `json:"producto_id"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// VentaResponse salida de una venta.
type VentaResponse struct {
	ID         string                 `json:"id"`
	ClienteID  string                 `json:"cliente_id,omitempty"`
	Total      decimal.Decimal        `json:"total"`
	MetodoPago string                 `json:"metodo_pago"`
	Usuario    string                 `json:"usuario,omitempty"`
	Fecha      time.Time              `json:"fecha"`
	Detalles   []DetalleVentaResponse `json:"detalles"`
}
