package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Claves de estado del ciclo de vida de un pedido (categoría "pedido" en la
// tabla de estados).
const (
	EstadoPedidoPendiente = "pendiente"
	EstadoPedidoEntregado = "entregado"
	EstadoPedidoCancelado = "cancelado"
)

// Pedido es un pedido de venta con reserva de stock. La cancelación es una
// transición de estado más la liberación de reservas; un pedido nunca se
// elimina físicamente una vez creado.
type Pedido struct {
	ID           string
	ClienteID    string // opcional
	EstadoClave  string
	FechaPedido  time.Time
	FechaEntrega *time.Time
	Notas        string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Lineas []PedidoLinea
}

// PedidoLinea es una línea del pedido: producto y cantidad solicitada tal
// como la pidió el cliente, independiente de cuánto pudo reservarse.
type PedidoLinea struct {
	ID         string
	PedidoID   string
	ProductoID string
	Cantidad   decimal.Decimal
	CreatedAt  time.Time
}
