package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pos/internal/domain/entity"
)

// MovimientoInventarioRepository define el puerto de persistencia del libro
// de movimientos de productos terminados. Las filas son inmutables: solo
// inserción y consulta.
//
// SumPorReferencia devuelve la suma con signo (entradas positivas, salidas
// negativas) de los movimientos del producto anclados a una referencia; es
// la consulta sum-with-filter sobre la que se calcula la reserva neta.
type MovimientoInventarioRepository interface {
	Create(mov *entity.MovimientoInventario) error
	ListByProducto(productoID string, limit, offset int) ([]*entity.MovimientoInventario, error)
	ListByReferencia(referenciaID, referenciaTipo string) ([]*entity.MovimientoInventario, error)
	SumPorReferencia(referenciaID, referenciaTipo, productoID string) (decimal.Decimal, error)
	SumPorReferenciaAgrupado(referenciaID, referenciaTipo string) (map[string]decimal.Decimal, error)
}

// MovimientoInsumoRepository es el puerto equivalente para el libro de
// insumos.
type MovimientoInsumoRepository interface {
	Create(mov *entity.MovimientoInsumo) error
	ListByInsumo(insumoID string, limit, offset int) ([]*entity.MovimientoInsumo, error)
	ListByReferencia(referenciaID, referenciaTipo string) ([]*entity.MovimientoInsumo, error)
	SumPorReferencia(referenciaID, referenciaTipo, insumoID string) (decimal.Decimal, error)
	SumPorReferenciaAgrupado(referenciaID, referenciaTipo string) (map[string]decimal.Decimal, error)
}
