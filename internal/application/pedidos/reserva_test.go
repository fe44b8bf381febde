package pedidos_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestion-pos/internal/application/inventario"
	"github.com/tu-usuario/gestion-pos/internal/application/pedidos"
	"github.com/tu-usuario/gestion-pos/internal/application/recetas"
	"github.com/tu-usuario/gestion-pos/internal/domain"
	"github.com/tu-usuario/gestion-pos/internal/domain/entity"
	"github.com/tu-usuario/gestion-pos/internal/infrastructure/memory"
)

type escenarioReservas struct {
	motor     *pedidos.MotorReservas
	libro     *inventario.LibroStock
	productos *memory.ProductoRepository
	insumos   *memory.InsumoRepository
	recetasR  *memory.RecetaRepository
	pedidosR  *memory.PedidoRepository
}

func nuevoEscenarioReservas(t *testing.T) *escenarioReservas {
	t.Helper()
	e := &escenarioReservas{
		productos: memory.NewProductoRepository(),
		insumos:   memory.NewInsumoRepository(),
		pedidosR:  memory.NewPedidoRepository(),
	}
	e.recetasR = memory.NewRecetaRepository(e.insumos)
	refRepo := memory.NewReferenciaRepository()
	e.libro = inventario.NewLibroStock(e.productos, e.insumos,
		memory.NewMovimientoInventarioRepository(), memory.NewMovimientoInsumoRepository(), refRepo)
	catalogo := recetas.NewCatalogoRecetas(e.recetasR)
	calc := pedidos.NewCalculadoraDisponibilidad(e.productos, catalogo)
	e.motor = pedidos.NewMotorReservas(calc, e.libro, catalogo, e.pedidosR, refRepo)
	return e
}

func (e *escenarioReservas) conProducto(t *testing.T, id string, stock float64) {
	t.Helper()
	require.NoError(t, e.productos.Create(&entity.Producto{
		ID: id, Nombre: "producto " + id, Stock: decimal.NewFromFloat(stock), Activo: true,
	}))
}

func (e *escenarioReservas) conInsumo(t *testing.T, id string, stock float64) {
	t.Helper()
	require.NoError(t, e.insumos.Create(&entity.Insumo{
		ID: id, Nombre: "insumo " + id, Stock: decimal.NewFromFloat(stock), Activo: true,
	}))
}

func (e *escenarioReservas) conReceta(t *testing.T, productoID, insumoID string, porUnidad float64, obligatorio bool) {
	t.Helper()
	require.NoError(t, e.recetasR.Upsert(&entity.RecetaLinea{
		ID:                productoID + "-" + insumoID,
		ProductoID:        productoID,
		InsumoID:          insumoID,
		CantidadPorUnidad: decimal.NewFromFloat(porUnidad),
		Obligatorio:       obligatorio,
	}))
}

func (e *escenarioReservas) stockProducto(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	p, err := e.productos.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func (e *escenarioReservas) stockInsumo(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	i, err := e.insumos.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, i)
	return i.Stock
}

func (e *escenarioReservas) crear(t *testing.T, lineas ...pedidos.LineaSolicitud) *pedidos.ResultadoPedido {
	t.Helper()
	resultado, err := e.motor.CrearPedidoConReserva(pedidos.CrearPedidoInput{
		ClienteID: "cliente-1",
		Usuario:   "ana",
		Lineas:    lineas,
	})
	require.NoError(t, err)
	require.NotNil(t, resultado.Pedido)
	return resultado
}

// Con stock suficiente la creación reserva todo desde producto terminado:
// el pedido queda pendiente, con sus líneas tal como se pidieron, y el
// stock descontado.
func TestCrearPedido_ReservaDesdeStock(t *testing.T) {
	e := nuevoEscenarioReservas(t)
	e.conProducto(t, "torta", 10)

	resultado := e.crear(t, solicitud("torta", 4))

	assert.Equal(t, entity.EstadoPedidoPendiente, resultado.Pedido.EstadoClave)
	require.Len(t, resultado.Pedido.Lineas, 1)
	assert.True(t, resultado.Pedido.Lineas[0].Cantidad.Equal(decimal.NewFromInt(4)))
	assert.True(t, resultado.Disponibilidad.TodoSatisfacible)

	assert.True(t, e.stockProducto(t, "torta").Equal(decimal.NewFromInt(6)))

	ref := inventario.Referencia{ID: resultado.Pedido.ID, Tipo: entity.ReferenciaPedido}
	neta, err := e.libro.ReservaNetaProducto(ref, "torta")
	require.NoError(t, err)
	assert.True(t, neta.Equal(decimal.NewFromInt(4)))
}

// Cuando el stock no alcanza se reserva además la porción producible de los
// insumos obligatorios. Las cantidades del pedido guardan lo SOLICITADO,
// no lo reservado.
func TestCrearPedido_ReservaMixtaStockEInsumos(t *testing.T) {
	e := nuevoEscenarioReservas(t)
	e.conProducto(t, "torta", 2)
	e.conInsumo(t, "harina", 10)
	e.conReceta(t, "torta", "harina", 2, true)

	resultado := e.crear(t, solicitud("torta", 5))

	// 2 de stock + 3 producibles: 6 de harina reservadas.
	assert.True(t, e.stockProducto(t, "torta").IsZero())
	assert.True(t, e.stockInsumo(t, "harina").Equal(decimal.NewFromInt(4)))
	require.Len(t, resultado.Pedido.Lineas, 1)
	assert.True(t, resultado.Pedido.Lineas[0].Cantidad.Equal(decimal.NewFromInt(5)),
		"la línea guarda lo solicitado aunque la reserva sea parcial")
}

// Un pedido insatisfacible igual se crea con reserva parcial: el informe de
// disponibilidad se lo dice al llamador, no es un error.
func TestCrearPedido_ParcialNoEsError(t *testing.T) {
	e := nuevoEscenarioReservas(t)
	e.conProducto(t, "torta", 1)

	resultado := e.crear(t, solicitud("torta", 8))

	assert.False(t, resultado.Disponibilidad.TodoSatisfacible)
	assert.True(t, e.stockProducto(t, "torta").IsZero(), "se reserva lo que hay")

	pedido, err := e.motor.GetPedido(resultado.Pedido.ID)
	require.NoError(t, err)
	require.NotNil(t, pedido)
	assert.Equal(t, entity.EstadoPedidoPendiente, pedido.EstadoClave)
}

func TestCrearPedido_SinLineas_Invalido(t *testing.T) {
	e := nuevoEscenarioReservas(t)
	_, err := e.motor.CrearPedidoConReserva(pedidos.CrearPedidoInput{Usuario: "ana"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// La cancelación devuelve las reservas netas de productos e insumos y
// transiciona el estado.
func TestCancelarPedido_LiberaReservas(t *testing.T) {
	e := nuevoEscenarioReservas(t)
	e.conProducto(t, "torta", 2)
	e.conInsumo(t, "harina", 10)
	e.conReceta(t, "torta", "harina", 2, true)
	resultado := e.crear(t, solicitud("torta", 5))

	require.NoError(t, e.motor.CancelarPedido(resultado.Pedido.ID, "ana"))

	assert.True(t, e.stockProducto(t, "torta").Equal(decimal.NewFromInt(2)))
	assert.True(t, e.stockInsumo(t, "harina").Equal(decimal.NewFromInt(10)))

	pedido, err := e.motor.GetPedido(resultado.Pedido.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoPedidoCancelado, pedido.EstadoClave)
}

// Cancelar dos veces no duplica la liberación: la segunda pasada no
// encuentra reserva neta y solo re-aplica el estado.
func TestCancelarPedido_Idempotente(t *testing.T) {
	e := nuevoEscenarioReservas(t)
	e.conProducto(t, "torta", 5)
	resultado := e.crear(t, solicitud("torta", 3))

	require.NoError(t, e.motor.CancelarPedido(resultado.Pedido.ID, "ana"))
	require.NoError(t, e.motor.CancelarPedido(resultado.Pedido.ID, "ana"))

	assert.True(t, e.stockProducto(t, "torta").Equal(decimal.NewFromInt(5)),
		"el stock no debe superar el original tras doble cancelación")
}

func TestCancelarPedido_Inexistente_NotFound(t *testing.T) {
	e := nuevoEscenarioReservas(t)
	err := e.motor.CancelarPedido("fantasma", "ana")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El ajuste con delta positivo recalcula la disponibilidad solo para el
// delta y reemplaza las líneas por las nuevas cantidades.
func TestAjustarPedido_DeltaPositivoReservaSoloElDelta(t *testing.T) {
	e := nuevoEscenarioReservas(t)
	e.conProducto(t, "torta", 10)
	resultado := e.crear(t, solicitud("torta", 2))
	require.True(t, e.stockProducto(t, "torta").Equal(decimal.NewFromInt(8)))

	require.NoError(t, e.motor.AjustarPedido(resultado.Pedido.ID,
		[]pedidos.LineaSolicitud{solicitud("torta", 5)}, "ana"))

	assert.True(t, e.stockProducto(t, "torta").Equal(decimal.NewFromInt(5)),
		"solo el delta de 3 se reserva adicionalmente")

	pedido, err := e.motor.GetPedido(resultado.Pedido.ID)
	require.NoError(t, err)
	require.Len(t, pedido.Lineas, 1)
	assert.True(t, pedido.Lineas[0].Cantidad.Equal(decimal.NewFromInt(5)))
}

// El ajuste con delta negativo escala la liberación de stock por la
// proporción reducción/original con piso entero, pero libera insumos por
// coeficiente * reducción. Las dos reglas son distintas a propósito.
func TestAjustarPedido_DeltaNegativoLiberacionAsimetrica(t *testing.T) {
	e := nuevoEscenarioReservas(t)
	e.conProducto(t, "torta", 2)
	e.conInsumo(t, "harina", 10)
	e.conReceta(t, "torta", "harina", 2, true)
	// Pedido de 5: reserva 2 de stock y 6 de harina (3 producibles).
	resultado := e.crear(t, solicitud("torta", 5))
	require.True(t, e.stockProducto(t, "torta").IsZero())
	require.True(t, e.stockInsumo(t, "harina").Equal(decimal.NewFromInt(4)))

	// Reducir de 5 a 3: reducción 2.
	require.NoError(t, e.motor.AjustarPedido(resultado.Pedido.ID,
		[]pedidos.LineaSolicitud{solicitud("torta", 3)}, "ana"))

	// Producto: floor(neto 2 * 2/5) = floor(0.8) = 0 liberadas.
	assert.True(t, e.stockProducto(t, "torta").IsZero(),
		"la liberación de stock se escala con piso entero: floor(2*2/5)=0")
	// Insumos: 2 por unidad * reducción 2 = 4 liberadas.
	assert.True(t, e.stockInsumo(t, "harina").Equal(decimal.NewFromInt(8)),
		"la liberación de insumos usa coeficiente * reducción, no la proporción")
}

// Quitar una línea (ausente en las nuevas) libera con reducción igual a la
// cantidad original.
func TestAjustarPedido_QuitarLineaLiberaCompleto(t *testing.T) {
	e := nuevoEscenarioReservas(t)
	e.conProducto(t, "torta", 10)
	e.conProducto(t, "pan", 10)
	resultado := e.crear(t, solicitud("torta", 2), solicitud("pan", 3))
	require.True(t, e.stockProducto(t, "pan").Equal(decimal.NewFromInt(7)))

	require.NoError(t, e.motor.AjustarPedido(resultado.Pedido.ID,
		[]pedidos.LineaSolicitud{solicitud("torta", 2)}, "ana"))

	assert.True(t, e.stockProducto(t, "pan").Equal(decimal.NewFromInt(10)),
		"la línea quitada libera toda su reserva")
	assert.True(t, e.stockProducto(t, "torta").Equal(decimal.NewFromInt(8)),
		"la línea sin delta no se toca")

	pedido, err := e.motor.GetPedido(resultado.Pedido.ID)
	require.NoError(t, err)
	require.Len(t, pedido.Lineas, 1)
	assert.Equal(t, "torta", pedido.Lineas[0].ProductoID)
}

// Cantidad cero en las nuevas líneas equivale a quitar la línea.
func TestAjustarPedido_CantidadCeroQuitaLinea(t *testing.T) {
	e := nuevoEscenarioReservas(t)
	e.conProducto(t, "torta", 10)
	resultado := e.crear(t, solicitud("torta", 4))

	require.NoError(t, e.motor.AjustarPedido(resultado.Pedido.ID,
		[]pedidos.LineaSolicitud{solicitud("torta", 0)}, "ana"))

	assert.True(t, e.stockProducto(t, "torta").Equal(decimal.NewFromInt(10)))
	pedido, err := e.motor.GetPedido(resultado.Pedido.ID)
	require.NoError(t, err)
	assert.Empty(t, pedido.Lineas)
}

// Un pedido cancelado no admite ajustes.
func TestAjustarPedido_Cancelado_Conflicto(t *testing.T) {
	e := nuevoEscenarioReservas(t)
	e.conProducto(t, "torta", 10)
	resultado := e.crear(t, solicitud("torta", 2))
	require.NoError(t, e.motor.CancelarPedido(resultado.Pedido.ID, "ana"))

	err := e.motor.AjustarPedido(resultado.Pedido.ID,
		[]pedidos.LineaSolicitud{solicitud("torta", 5)}, "ana")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// Dos líneas del mismo producto compiten por el mismo stock: la segunda
// falla al aplicar su plan (calculado antes de aplicar la primera) y el
// trabajo previo queda persistido. No hay rollback.
func TestCrearPedido_FalloIntermedioDejaLoAnterior(t *testing.T) {
	e := nuevoEscenarioReservas(t)
	e.conProducto(t, "torta", 5)

	_, err := e.motor.CrearPedidoConReserva(pedidos.CrearPedidoInput{
		Usuario: "ana",
		Lineas:  []pedidos.LineaSolicitud{solicitud("torta", 5), solicitud("torta", 3)},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStockInsuficiente)

	// La reserva de la primera línea quedó aplicada y el pedido persistido.
	assert.True(t, e.stockProducto(t, "torta").IsZero())
	pedidosCreados, listErr := e.motor.ListPedidos("", 10, 0)
	require.NoError(t, listErr)
	require.Len(t, pedidosCreados, 1)
	assert.Len(t, pedidosCreados[0].Lineas, 2)
}

// ListPedidos filtra por estado.
func TestListPedidos_FiltraPorEstado(t *testing.T) {
	e := nuevoEscenarioReservas(t)
	e.conProducto(t, "torta", 20)
	a := e.crear(t, solicitud("torta", 1))
	e.crear(t, solicitud("torta", 1))
	require.NoError(t, e.motor.CancelarPedido(a.Pedido.ID, "ana"))

	pendientes, err := e.motor.ListPedidos(entity.EstadoPedidoPendiente, 10, 0)
	require.NoError(t, err)
	assert.Len(t, pendientes, 1)

	cancelados, err := e.motor.ListPedidos(entity.EstadoPedidoCancelado, 10, 0)
	require.NoError(t, err)
	assert.Len(t, cancelados, 1)
	assert.Equal(t, a.Pedido.ID, cancelados[0].ID)
}
