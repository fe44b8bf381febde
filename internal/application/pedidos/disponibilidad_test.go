package pedidos_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestion-pos/internal/application/pedidos"
	"github.com/tu-usuario/gestion-pos/internal/application/recetas"
	"github.com/tu-usuario/gestion-pos/internal/domain"
	"github.com/tu-usuario/gestion-pos/internal/domain/entity"
	"github.com/tu-usuario/gestion-pos/internal/infrastructure/memory"
)

type escenarioDisponibilidad struct {
	calc      *pedidos.CalculadoraDisponibilidad
	productos *memory.ProductoRepository
	insumos   *memory.InsumoRepository
	recetasR  *memory.RecetaRepository
}

func nuevoEscenarioDisponibilidad(t *testing.T) *escenarioDisponibilidad {
	t.Helper()
	e := &escenarioDisponibilidad{
		productos: memory.NewProductoRepository(),
		insumos:   memory.NewInsumoRepository(),
	}
	e.recetasR = memory.NewRecetaRepository(e.insumos)
	catalogo := recetas.NewCatalogoRecetas(e.recetasR)
	e.calc = pedidos.NewCalculadoraDisponibilidad(e.productos, catalogo)
	return e
}

func (e *escenarioDisponibilidad) conProducto(t *testing.T, id string, stock float64) {
	t.Helper()
	require.NoError(t, e.productos.Create(&entity.Producto{
		ID: id, Nombre: "producto " + id, Stock: decimal.NewFromFloat(stock), Activo: true,
	}))
}

func (e *escenarioDisponibilidad) conInsumo(t *testing.T, id string, stock float64) {
	t.Helper()
	require.NoError(t, e.insumos.Create(&entity.Insumo{
		ID: id, Nombre: "insumo " + id, Stock: decimal.NewFromFloat(stock), Activo: true,
	}))
}

func (e *escenarioDisponibilidad) conReceta(t *testing.T, productoID, insumoID string, porUnidad float64, obligatorio bool) {
	t.Helper()
	require.NoError(t, e.recetasR.Upsert(&entity.RecetaLinea{
		ID:                productoID + "-" + insumoID,
		ProductoID:        productoID,
		InsumoID:          insumoID,
		CantidadPorUnidad: decimal.NewFromFloat(porUnidad),
		Obligatorio:       obligatorio,
	}))
}

func solicitud(productoID string, cantidad int64) pedidos.LineaSolicitud {
	return pedidos.LineaSolicitud{ProductoID: productoID, Cantidad: decimal.NewFromInt(cantidad)}
}

// Con stock suficiente todo sale del producto terminado: no se toca la
// receta ni hay reserva de insumos.
func TestDisponibilidad_TodoDesdeStock(t *testing.T) {
	e := nuevoEscenarioDisponibilidad(t)
	e.conProducto(t, "torta", 10)

	disp, err := e.calc.CalcularDisponibilidad([]pedidos.LineaSolicitud{solicitud("torta", 4)})
	require.NoError(t, err)
	require.Len(t, disp.Lineas, 1)

	ld := disp.Lineas[0]
	assert.True(t, disp.TodoSatisfacible)
	assert.True(t, ld.Satisfacible)
	assert.True(t, ld.ReservadoDeStock.Equal(decimal.NewFromInt(4)))
	assert.True(t, ld.ProducibleDeInsumos.IsZero())
	assert.Empty(t, ld.Faltantes)
	assert.True(t, ld.Plan.ReservaDeStock.Equal(decimal.NewFromInt(4)))
	assert.Empty(t, ld.Plan.Insumos)
}

// Cuando el stock no alcanza, el restante se cubre produciendo y el plan
// reserva los insumos obligatorios de esa porción.
func TestDisponibilidad_RestanteCubiertoProduciendo(t *testing.T) {
	e := nuevoEscenarioDisponibilidad(t)
	e.conProducto(t, "torta", 2)
	e.conInsumo(t, "harina", 10)
	e.conReceta(t, "torta", "harina", 2, true)

	disp, err := e.calc.CalcularDisponibilidad([]pedidos.LineaSolicitud{solicitud("torta", 5)})
	require.NoError(t, err)
	ld := disp.Lineas[0]

	assert.True(t, disp.TodoSatisfacible)
	assert.True(t, ld.ReservadoDeStock.Equal(decimal.NewFromInt(2)))
	assert.True(t, ld.ProducibleDeInsumos.Equal(decimal.NewFromInt(3)), "restante 3 <= producibles 5")
	assert.Empty(t, ld.Faltantes)
	require.Len(t, ld.Plan.Insumos, 1)
	assert.Equal(t, "harina", ld.Plan.Insumos[0].InsumoID)
	assert.True(t, ld.Plan.Insumos[0].Cantidad.Equal(decimal.NewFromInt(6)),
		"2 de harina por unidad * 3 producibles = 6, fue %s", ld.Plan.Insumos[0].Cantidad)
}

// Los faltantes se calculan contra el restante COMPLETO, no contra la
// porción producible, y el plan solo reserva la porción producible.
func TestDisponibilidad_FaltantesContraRestanteCompleto(t *testing.T) {
	e := nuevoEscenarioDisponibilidad(t)
	e.conProducto(t, "torta", 1)
	e.conInsumo(t, "harina", 4) // alcanza para 2 unidades
	e.conReceta(t, "torta", "harina", 2, true)

	// Solicitadas 6: 1 de stock, restante 5, producibles 2.
	disp, err := e.calc.CalcularDisponibilidad([]pedidos.LineaSolicitud{solicitud("torta", 6)})
	require.NoError(t, err)
	ld := disp.Lineas[0]

	assert.False(t, disp.TodoSatisfacible)
	assert.False(t, ld.Satisfacible)
	assert.True(t, ld.ReservadoDeStock.Equal(decimal.NewFromInt(1)))
	assert.True(t, ld.ProducibleDeInsumos.Equal(decimal.NewFromInt(2)))

	require.Len(t, ld.Faltantes, 1)
	f := ld.Faltantes[0]
	assert.Equal(t, "harina", f.InsumoID)
	assert.True(t, f.Requerido.Equal(decimal.NewFromInt(10)),
		"requerido = 2 por unidad * restante 5 = 10, fue %s", f.Requerido)
	assert.True(t, f.Stock.Equal(decimal.NewFromInt(4)))

	require.Len(t, ld.Plan.Insumos, 1)
	assert.True(t, ld.Plan.Insumos[0].Cantidad.Equal(decimal.NewFromInt(4)),
		"el plan reserva solo la porción producible: 2 * 2 = 4")
}

// Un insumo opcional escaso limita las unidades producibles pero no aparece
// como faltante ni bloquea la línea si el total alcanza.
func TestDisponibilidad_OpcionalNoGeneraFaltante(t *testing.T) {
	e := nuevoEscenarioDisponibilidad(t)
	e.conProducto(t, "torta", 0)
	e.conInsumo(t, "harina", 100)
	e.conInsumo(t, "ajonjoli", 1)
	e.conReceta(t, "torta", "harina", 1, true)
	e.conReceta(t, "torta", "ajonjoli", 1, false)

	disp, err := e.calc.CalcularDisponibilidad([]pedidos.LineaSolicitud{solicitud("torta", 3)})
	require.NoError(t, err)
	ld := disp.Lineas[0]

	assert.True(t, ld.ProducibleDeInsumos.Equal(decimal.NewFromInt(1)),
		"el opcional escaso limita las unidades producibles")
	assert.False(t, ld.Satisfacible)
	assert.Empty(t, ld.Faltantes, "el opcional nunca aparece como faltante")
	require.Len(t, ld.Plan.Insumos, 1, "el plan solo reserva obligatorios")
	assert.Equal(t, "harina", ld.Plan.Insumos[0].InsumoID)
}

// Producto sin receta y sin stock: el restante no puede producirse.
func TestDisponibilidad_SinRecetaNiStock_Insatisfacible(t *testing.T) {
	e := nuevoEscenarioDisponibilidad(t)
	e.conProducto(t, "torta", 1)

	disp, err := e.calc.CalcularDisponibilidad([]pedidos.LineaSolicitud{solicitud("torta", 3)})
	require.NoError(t, err)
	ld := disp.Lineas[0]

	assert.False(t, ld.Satisfacible)
	assert.True(t, ld.ReservadoDeStock.Equal(decimal.NewFromInt(1)))
	assert.True(t, ld.ProducibleDeInsumos.IsZero())
}

// Una línea con cantidad cero es degenerada: satisfacible, sin reserva.
func TestDisponibilidad_CantidadCero_Degenerada(t *testing.T) {
	e := nuevoEscenarioDisponibilidad(t)
	e.conProducto(t, "torta", 5)

	disp, err := e.calc.CalcularDisponibilidad([]pedidos.LineaSolicitud{solicitud("torta", 0)})
	require.NoError(t, err)
	ld := disp.Lineas[0]

	assert.True(t, ld.Satisfacible)
	assert.True(t, ld.ReservadoDeStock.IsZero())
	assert.True(t, ld.Plan.ReservaDeStock.IsZero())
	assert.True(t, disp.TodoSatisfacible)
}

// TodoSatisfacible es el AND de todas las líneas.
func TestDisponibilidad_UnaLineaInsatisfacibleBajaElTotal(t *testing.T) {
	e := nuevoEscenarioDisponibilidad(t)
	e.conProducto(t, "torta", 10)
	e.conProducto(t, "pan", 0)

	disp, err := e.calc.CalcularDisponibilidad([]pedidos.LineaSolicitud{
		solicitud("torta", 2),
		solicitud("pan", 1),
	})
	require.NoError(t, err)
	require.Len(t, disp.Lineas, 2)
	assert.True(t, disp.Lineas[0].Satisfacible)
	assert.False(t, disp.Lineas[1].Satisfacible)
	assert.False(t, disp.TodoSatisfacible)
}

func TestDisponibilidad_ProductoInexistente_NotFound(t *testing.T) {
	e := nuevoEscenarioDisponibilidad(t)
	_, err := e.calc.CalcularDisponibilidad([]pedidos.LineaSolicitud{solicitud("fantasma", 1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDisponibilidad_ProductoVacio_Invalido(t *testing.T) {
	e := nuevoEscenarioDisponibilidad(t)
	_, err := e.calc.CalcularDisponibilidad([]pedidos.LineaSolicitud{solicitud("", 1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
