package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestion-pos/internal/application/dto"
	"github.com/tu-usuario/gestion-pos/internal/application/inventario"
	"github.com/tu-usuario/gestion-pos/internal/application/usecase"
	"github.com/tu-usuario/gestion-pos/internal/domain"
	"github.com/tu-usuario/gestion-pos/internal/domain/entity"
	"github.com/tu-usuario/gestion-pos/internal/infrastructure/memory"
)

// pdfDeTest captura la última llamada al generador de comprobantes.
type pdfDeTest struct {
	detalles []usecase.DetalleComprobante
}

func (g *pdfDeTest) GenerarComprobanteVenta(venta *entity.Venta, detalles []usecase.DetalleComprobante) ([]byte, error) {
	g.detalles = detalles
	return []byte("%PDF-falso"), nil
}

type escenarioVentas struct {
	uc        *usecase.VentaUseCase
	productos *memory.ProductoRepository
	pdf       *pdfDeTest
}

func nuevoEscenarioVentas(t *testing.T) *escenarioVentas {
	t.Helper()
	e := &escenarioVentas{
		productos: memory.NewProductoRepository(),
		pdf:       &pdfDeTest{},
	}
	libro := inventario.NewLibroStock(e.productos, memory.NewInsumoRepository(),
		memory.NewMovimientoInventarioRepository(), memory.NewMovimientoInsumoRepository(),
		memory.NewReferenciaRepository())
	e.uc = usecase.NewVentaUseCase(memory.NewVentaRepository(), e.productos, libro, e.pdf)
	return e
}

func (e *escenarioVentas) conProducto(t *testing.T, id string, precio, stock float64) {
	t.Helper()
	require.NoError(t, e.productos.Create(&entity.Producto{
		ID:     id,
		Nombre: "producto " + id,
		Precio: decimal.NewFromFloat(precio),
		Stock:  decimal.NewFromFloat(stock),
		Activo: true,
	}))
}

func (e *escenarioVentas) stockProducto(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	p, err := e.productos.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

// Registrar una venta toma el precio vigente de cada producto, suma el
// total y descuenta el stock.
func TestRegistrarVenta_PrecioVigenteYDescuento(t *testing.T) {
	e := nuevoEscenarioVentas(t)
	e.conProducto(t, "torta", 12.5, 10)
	e.conProducto(t, "pan", 2, 20)

	resp, err := e.uc.Registrar(dto.RegistrarVentaRequest{
		MetodoPago: "efectivo",
		Detalles: []dto.DetalleVentaRequest{
			{ProductoID: "torta", Cantidad: decimal.NewFromInt(2)},
			{ProductoID: "pan", Cantidad: decimal.NewFromInt(3)},
		},
	}, "ana")
	require.NoError(t, err)

	assert.True(t, resp.Total.Equal(decimal.NewFromInt(31)), "2*12.5 + 3*2 = 31, fue %s", resp.Total)
	require.Len(t, resp.Detalles, 2)
	assert.True(t, resp.Detalles[0].PrecioUnitario.Equal(decimal.NewFromFloat(12.5)))

	assert.True(t, e.stockProducto(t, "torta").Equal(decimal.NewFromInt(8)))
	assert.True(t, e.stockProducto(t, "pan").Equal(decimal.NewFromInt(17)))
}

// Sin stock suficiente la venta falla en el detalle que no alcanza; los
// descuentos anteriores de la misma venta quedan aplicados.
func TestRegistrarVenta_SinStock_FallaEnElDetalle(t *testing.T) {
	e := nuevoEscenarioVentas(t)
	e.conProducto(t, "torta", 10, 5)
	e.conProducto(t, "pan", 2, 1)

	_, err := e.uc.Registrar(dto.RegistrarVentaRequest{
		MetodoPago: "efectivo",
		Detalles: []dto.DetalleVentaRequest{
			{ProductoID: "torta", Cantidad: decimal.NewFromInt(2)},
			{ProductoID: "pan", Cantidad: decimal.NewFromInt(4)},
		},
	}, "ana")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStockInsuficiente)

	assert.True(t, e.stockProducto(t, "torta").Equal(decimal.NewFromInt(3)),
		"el descuento del primer detalle queda aplicado")
	assert.True(t, e.stockProducto(t, "pan").Equal(decimal.NewFromInt(1)))
}

func TestRegistrarVenta_SinDetalles_Invalida(t *testing.T) {
	e := nuevoEscenarioVentas(t)
	_, err := e.uc.Registrar(dto.RegistrarVentaRequest{MetodoPago: "efectivo"}, "ana")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegistrarVenta_ProductoInexistente_NotFound(t *testing.T) {
	e := nuevoEscenarioVentas(t)
	_, err := e.uc.Registrar(dto.RegistrarVentaRequest{
		MetodoPago: "efectivo",
		Detalles:   []dto.DetalleVentaRequest{{ProductoID: "fantasma", Cantidad: decimal.NewFromInt(1)}},
	}, "ana")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El comprobante enriquece los detalles con el nombre del producto antes de
// pasarlos al generador.
func TestComprobante_EnriqueceNombres(t *testing.T) {
	e := nuevoEscenarioVentas(t)
	e.conProducto(t, "torta", 10, 5)
	resp, err := e.uc.Registrar(dto.RegistrarVentaRequest{
		MetodoPago: "tarjeta",
		Detalles:   []dto.DetalleVentaRequest{{ProductoID: "torta", Cantidad: decimal.NewFromInt(1)}},
	}, "ana")
	require.NoError(t, err)

	pdf, err := e.uc.Comprobante(resp.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	require.Len(t, e.pdf.detalles, 1)
	assert.Equal(t, "producto torta", e.pdf.detalles[0].ProductoNombre)
}

func TestComprobante_VentaInexistente_NotFound(t *testing.T) {
	e := nuevoEscenarioVentas(t)
	_, err := e.uc.Comprobante("fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
