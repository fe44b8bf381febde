package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineaPedidoRequest línea solicitada: producto y cantidad.
type LineaPedidoRequest struct {
	ProductoID string          `json:"producto_id" validate:"required"`
	Cantidad   decimal.Decimal `json:"cantidad"`
}

// CrearPedidoRequest body para POST /api/pedidos.
type CrearPedidoRequest struct {
	ClienteID    string               `json:"cliente_id"`
	FechaEntrega *time.Time           `json:"fecha_entrega"`
	Notas        string               `json:"notas"`
	Lineas       []LineaPedidoRequest `json:"lineas" validate:"required,min=1,dive"`
}

// AjustarPedidoRequest body para PUT /api/pedidos/:id/lineas. Cantidad cero
// quita la línea.
type AjustarPedidoRequest struct {
	Lineas []LineaPedidoRequest `json:"lineas" validate:"required,dive"`
}

// DisponibilidadRequest body para POST /api/pedidos/disponibilidad
// (vista previa sin reservar).
type DisponibilidadRequest struct {
	Lineas []LineaPedidoRequest `json:"lineas" validate:"required,min=1,dive"`
}

// FaltanteInsumoResponse insumo obligatorio cuyo stock no alcanza.
type FaltanteInsumoResponse struct {
	InsumoID  string          `json:"insumo_id"`
	Nombre    string          `json:"nombre"`
	Requerido decimal.Decimal `json:"requerido"`
	Stock     decimal.Decimal `json:"stock"`
}

// LineaDisponibilidadResponse informe de factibilidad de una línea.
type LineaDisponibilidadResponse struct {
	ProductoID          string                   `json:"producto_id"`
	Solicitado          decimal.Decimal          `json:"solicitado"`
	StockProducto       decimal.Decimal          `json:"stock_producto"`
	ReservadoDeStock    decimal.Decimal          `json:"reservado_de_stock"`
	ProducibleDeInsumos decimal.Decimal          `json:"producible_de_insumos"`
	Faltantes           []FaltanteInsumoResponse `json:"faltantes,omitempty"`
	Satisfacible        bool                     `json:"satisfacible"`
}

// DisponibilidadResponse informe completo de un pedido solicitado.
type DisponibilidadResponse struct {
	Lineas           []LineaDisponibilidadResponse `json:"lineas"`
	TodoSatisfacible bool                          `json:"todo_satisfacible"`
}

// PedidoLineaResponse línea persistida de un pedido.
type PedidoLineaResponse struct {
	ID         string          `json:"id"`
	ProductoID string          `json:"producto_id"`
	Cantidad   decimal.Decimal `json:"cantidad"`
}

// PedidoResponse salida de un pedido.
type PedidoResponse struct {
	ID           string                `json:"id"`
	ClienteID    string                `json:"cliente_id,omitempty"`
	Estado       string                `json:"estado"`
	FechaPedido  time.Time             `json:"fecha_pedido"`
	FechaEntrega *time.Time            `json:"fecha_entrega,omitempty"`
	Notas        string                `json:"notas,omitempty"`
	Lineas       []PedidoLineaResponse `json:"lineas"`
}

// CrearPedidoResponse pedido creado junto con el informe de disponibilidad
// con el que se reservó.
type CrearPedidoResponse struct {
	Pedido         PedidoResponse         `json:"pedido"`
	Disponibilidad DisponibilidadResponse `json:"disponibilidad"`
}
