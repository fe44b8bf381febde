package inventario_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/gestion-pos/internal/domain/entity"
	"github.com/tu-usuario/gestion-pos/internal/domain/inventario"
)

func linea(insumoID string, porUnidad, stock float64, obligatorio bool) entity.RecetaLinea {
	return entity.RecetaLinea{
		InsumoID:          insumoID,
		CantidadPorUnidad: decimal.NewFromFloat(porUnidad),
		Obligatorio:       obligatorio,
		InsumoStock:       decimal.NewFromFloat(stock),
	}
}

// El insumo más escaso (relativo a su coeficiente) es el cuello de botella.
func TestUnidadesProducibles_CuelloDeBotella(t *testing.T) {
	lineas := []entity.RecetaLinea{
		linea("harina", 0.5, 10, true), // alcanza para 20
		linea("queso", 0.2, 1, true),   // alcanza para 5
	}
	got := inventario.UnidadesProducibles(lineas)
	assert.True(t, got.Equal(decimal.NewFromInt(5)),
		"el mínimo entre 20 y 5 unidades producibles debe ser 5, fue %s", got)
}

// El cociente se redondea hacia abajo: 7 unidades de stock con coeficiente 2
// alcanzan para 3 unidades enteras, no 3.5.
func TestUnidadesProducibles_PisoEntero(t *testing.T) {
	lineas := []entity.RecetaLinea{linea("masa", 2, 7, true)}
	got := inventario.UnidadesProducibles(lineas)
	assert.True(t, got.Equal(decimal.NewFromInt(3)), "7/2 con piso debe ser 3, fue %s", got)
}

// Sin líneas de receta no se produce nada.
func TestUnidadesProducibles_SinReceta_Cero(t *testing.T) {
	got := inventario.UnidadesProducibles(nil)
	assert.True(t, got.IsZero(), "producto sin receta debe producir cero, fue %s", got)
}

// Las líneas con coeficiente cero no participan del cociente.
func TestUnidadesProducibles_CoeficienteCero_SeIgnora(t *testing.T) {
	lineas := []entity.RecetaLinea{
		linea("decoracion", 0, 0, false),
		linea("harina", 1, 4, true),
	}
	got := inventario.UnidadesProducibles(lineas)
	assert.True(t, got.Equal(decimal.NewFromInt(4)),
		"la línea con coeficiente cero no debe limitar la producción, fue %s", got)
}

// Si TODAS las líneas tienen coeficiente cero el resultado es cero, no
// infinito.
func TestUnidadesProducibles_SoloCoeficientesCero_Cero(t *testing.T) {
	lineas := []entity.RecetaLinea{linea("decoracion", 0, 100, false)}
	got := inventario.UnidadesProducibles(lineas)
	assert.True(t, got.IsZero())
}

// Un insumo sin stock bloquea toda la producción.
func TestUnidadesProducibles_InsumoSinStock_Cero(t *testing.T) {
	lineas := []entity.RecetaLinea{
		linea("harina", 0.5, 10, true),
		linea("levadura", 0.01, 0, true),
	}
	got := inventario.UnidadesProducibles(lineas)
	assert.True(t, got.IsZero(), "un insumo agotado debe dejar producibles en cero, fue %s", got)
}

// Las líneas opcionales también cuentan para el cociente: producibles mide
// cuántas unidades cubren la receta completa.
func TestUnidadesProducibles_OpcionalTambienLimita(t *testing.T) {
	lineas := []entity.RecetaLinea{
		linea("harina", 1, 10, true),
		linea("ajonjoli", 1, 2, false),
	}
	got := inventario.UnidadesProducibles(lineas)
	assert.True(t, got.Equal(decimal.NewFromInt(2)))
}
