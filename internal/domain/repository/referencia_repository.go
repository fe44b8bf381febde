package repository

// ReferenciaRepository resuelve datos de referencia por clave semántica: los
// tipos de movimiento de cada libro y los estados del ciclo de vida de un
// pedido (tablas pequeñas de catálogo). Una clave inexistente devuelve
// domain.ErrNotFound.
type ReferenciaRepository interface {
	TipoMovimientoInventarioID(clave string) (string, error)
	TipoMovimientoInsumoID(clave string) (string, error)
	EstadoPedidoID(clave string) (string, error)
}
