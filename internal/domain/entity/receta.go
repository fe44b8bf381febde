package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecetaLinea es una línea de la receta (lista de materiales) de un producto:
// cuánto de un insumo se necesita para producir una unidad del producto.
// Si Obligatorio es true, la falta de stock del insumo bloquea la producción
// y la reserva de la cantidad correspondiente; si es false, el insumo se
// consume "hasta donde alcance" y su faltante no bloquea.
type RecetaLinea struct {
	ID                string
	ProductoID        string
	InsumoID          string
	CantidadPorUnidad decimal.Decimal
	Obligatorio       bool
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Enriquecido en lecturas (JOIN con insumos); no se persiste aquí.
	InsumoNombre string
	InsumoStock  decimal.Decimal
}
