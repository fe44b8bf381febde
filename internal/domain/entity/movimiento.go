package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Claves semánticas de tipos de movimiento. Se resuelven a un id de tabla de
// referencia al persistir (ReferenciaRepository).
const (
	MovimientoEntrada = "entrada"
	MovimientoSalida  = "salida"
	MovimientoConsumo = "consumo" // solo insumos: consumo por producción
	MovimientoPerdida = "perdida"
	MovimientoAjuste  = "ajuste" // solo insumos: corrección positiva de stock
)

// Tipos de referencia: entidad de negocio que ancla un movimiento. Es el
// único vínculo entre el libro de movimientos y pedidos/producciones/etc.
// (no hay foreign key; la reserva neta se calcula sumando filas por tag).
const (
	ReferenciaPedido     = "pedido"
	ReferenciaProduccion = "produccion"
	ReferenciaPerdida    = "perdida"
	ReferenciaVenta      = "venta"
)

// DireccionDeClave devuelve +1 si la clave incrementa stock y -1 si lo
// decrementa. Las correcciones negativas se registran como salida, así toda
// fila del libro queda reconstruible desde su clave. Clave desconocida
// devuelve 0.
func DireccionDeClave(clave string) int {
	switch clave {
	case MovimientoEntrada, MovimientoAjuste:
		return 1
	case MovimientoSalida, MovimientoConsumo, MovimientoPerdida:
		return -1
	}
	return 0
}

// MovimientoInventario es una fila inmutable del libro de movimientos de
// productos terminados. Cantidad siempre positiva; el signo lo da el tipo.
type MovimientoInventario struct {
	ID             string
	ProductoID     string
	TipoClave      string // entrada | salida
	Cantidad       decimal.Decimal
	ReferenciaID   string // opcional: id del pedido/produccion/perdida/venta
	ReferenciaTipo string // opcional: pedido | produccion | perdida | venta
	Notas          string
	CreadoPor      string
	CreatedAt      time.Time
}

// MovimientoInsumo es la fila equivalente del libro de insumos.
type MovimientoInsumo struct {
	ID             string
	InsumoID       string
	TipoClave      string // entrada | salida | consumo | perdida | ajuste
	Cantidad       decimal.Decimal
	ReferenciaID   string
	ReferenciaTipo string
	Notas          string
	CreadoPor      string
	CreatedAt      time.Time
}
