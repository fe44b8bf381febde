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
	"github.com/tu-usuario/gestion-pos/internal/infrastructure/memory"
)

type escenarioInsumos struct {
	uc      *usecase.InsumoUseCase
	insumos *memory.InsumoRepository
}

func nuevoEscenarioInsumos(t *testing.T) *escenarioInsumos {
	t.Helper()
	e := &escenarioInsumos{insumos: memory.NewInsumoRepository()}
	libro := inventario.NewLibroStock(memory.NewProductoRepository(), e.insumos,
		memory.NewMovimientoInventarioRepository(), memory.NewMovimientoInsumoRepository(),
		memory.NewReferenciaRepository())
	e.uc = usecase.NewInsumoUseCase(e.insumos, libro)
	return e
}

func (e *escenarioInsumos) crearInsumo(t *testing.T, nombre string) string {
	t.Helper()
	resp, err := e.uc.Create(dto.CrearInsumoRequest{
		Nombre:       nombre,
		UnidadMedida: "kg",
	})
	require.NoError(t, err)
	return resp.ID
}

// Un insumo nace activo y con stock cero; el stock solo se mueve por el
// libro.
func TestCrearInsumo_NaceConStockCero(t *testing.T) {
	e := nuevoEscenarioInsumos(t)
	resp, err := e.uc.Create(dto.CrearInsumoRequest{
		Nombre:        "harina",
		UnidadMedida:  "kg",
		StockMinimo:   decimal.NewFromInt(5),
		CostoUnitario: decimal.NewFromFloat(1.2),
	})
	require.NoError(t, err)

	assert.True(t, resp.Stock.IsZero())
	assert.True(t, resp.Activo)
	assert.True(t, resp.BajoMinimo, "stock 0 con mínimo 5 queda bajo mínimo")
}

// La compra registra una entrada y sube el contador.
func TestRegistrarCompra_SubeStock(t *testing.T) {
	e := nuevoEscenarioInsumos(t)
	id := e.crearInsumo(t, "harina")

	err := e.uc.RegistrarCompra(id, dto.CompraInsumoRequest{
		Cantidad: decimal.NewFromFloat(12.5),
	}, "ana")
	require.NoError(t, err)

	resp, err := e.uc.GetByID(id)
	require.NoError(t, err)
	assert.True(t, resp.Stock.Equal(decimal.NewFromFloat(12.5)))
}

// El ajuste acepta cantidad con signo: positiva registra un ajuste,
// negativa una salida por merma de conteo.
func TestAjustarStock_ConSigno(t *testing.T) {
	e := nuevoEscenarioInsumos(t)
	id := e.crearInsumo(t, "harina")
	require.NoError(t, e.uc.RegistrarCompra(id, dto.CompraInsumoRequest{Cantidad: decimal.NewFromInt(10)}, "ana"))

	require.NoError(t, e.uc.AjustarStock(id, dto.AjusteInsumoRequest{Cantidad: decimal.NewFromInt(3)}, "ana"))
	resp, err := e.uc.GetByID(id)
	require.NoError(t, err)
	require.True(t, resp.Stock.Equal(decimal.NewFromInt(13)))

	require.NoError(t, e.uc.AjustarStock(id, dto.AjusteInsumoRequest{Cantidad: decimal.NewFromInt(-4)}, "ana"))
	resp, err = e.uc.GetByID(id)
	require.NoError(t, err)
	assert.True(t, resp.Stock.Equal(decimal.NewFromInt(9)))
}

func TestAjustarStock_CantidadCero_Invalida(t *testing.T) {
	e := nuevoEscenarioInsumos(t)
	id := e.crearInsumo(t, "harina")

	err := e.uc.AjustarStock(id, dto.AjusteInsumoRequest{Cantidad: decimal.Zero}, "ana")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Un ajuste negativo que dejaría el stock bajo cero se rechaza.
func TestAjustarStock_NegativoMayorAlStock_Rechazado(t *testing.T) {
	e := nuevoEscenarioInsumos(t)
	id := e.crearInsumo(t, "harina")
	require.NoError(t, e.uc.RegistrarCompra(id, dto.CompraInsumoRequest{Cantidad: decimal.NewFromInt(2)}, "ana"))

	err := e.uc.AjustarStock(id, dto.AjusteInsumoRequest{Cantidad: decimal.NewFromInt(-5)}, "ana")
	assert.ErrorIs(t, err, domain.ErrStockInsuficiente)
}

// Update nunca toca el stock aunque cambien los datos maestros.
func TestActualizarInsumo_NoTocaStock(t *testing.T) {
	e := nuevoEscenarioInsumos(t)
	id := e.crearInsumo(t, "harina")
	require.NoError(t, e.uc.RegistrarCompra(id, dto.CompraInsumoRequest{Cantidad: decimal.NewFromInt(7)}, "ana"))

	nombre := "harina integral"
	resp, err := e.uc.Update(id, dto.ActualizarInsumoRequest{Nombre: &nombre})
	require.NoError(t, err)

	assert.Equal(t, "harina integral", resp.Nombre)
	assert.True(t, resp.Stock.Equal(decimal.NewFromInt(7)))
}
