package inventario

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pos/internal/domain/entity"
)

// FaltanteInsumo describe un insumo obligatorio cuyo stock no alcanza para la
// demanda calculada. Se devuelve como resultado estructurado (no como error)
// porque el llamador necesita el detalle para informar al usuario.
type FaltanteInsumo struct {
	InsumoID  string
	Nombre    string
	Requerido decimal.Decimal
	Stock     decimal.Decimal
}

// UnidadesProducibles calcula cuántas unidades enteras del producto pueden
// producirse con el stock actual de insumos (servicio de dominio):
//
//	floor(min sobre las líneas de receta de InsumoStock / CantidadPorUnidad)
//
// Las líneas con coeficiente cero se excluyen del cociente. Sin líneas de
// receta el resultado es cero: un producto sin receta no se produce.
func UnidadesProducibles(lineas []entity.RecetaLinea) decimal.Decimal {
	producibles := decimal.Zero
	primera := true
	for _, l := range lineas {
		if !l.CantidadPorUnidad.GreaterThan(decimal.Zero) {
			continue
		}
		ratio := l.InsumoStock.Div(l.CantidadPorUnidad).Floor()
		if primera || ratio.LessThan(producibles) {
			producibles = ratio
			primera = false
		}
	}
	if primera {
		return decimal.Zero
	}
	if producibles.IsNegative() {
		return decimal.Zero
	}
	return producibles
}
