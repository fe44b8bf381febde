package produccion_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestion-pos/internal/application/inventario"
	"github.com/tu-usuario/gestion-pos/internal/application/produccion"
	"github.com/tu-usuario/gestion-pos/internal/application/recetas"
	"github.com/tu-usuario/gestion-pos/internal/domain"
	"github.com/tu-usuario/gestion-pos/internal/domain/entity"
	"github.com/tu-usuario/gestion-pos/internal/domain/repository"
	"github.com/tu-usuario/gestion-pos/internal/infrastructure/memory"
)

type escenarioProduccion struct {
	motor     *produccion.MotorProduccion
	productos *memory.ProductoRepository
	insumos   *memory.InsumoRepository
	recetasR  *memory.RecetaRepository
	corridas  *memory.ProduccionRepository
}

func nuevoEscenarioProduccion(t *testing.T) *escenarioProduccion {
	e := construirEscenarioProduccion(t, nil)
	return e
}

// construirEscenarioProduccion permite envolver el repositorio de corridas
// para inyectar fallos.
func construirEscenarioProduccion(t *testing.T, envolver func(repository.ProduccionRepository) repository.ProduccionRepository) *escenarioProduccion {
	t.Helper()
	e := &escenarioProduccion{
		productos: memory.NewProductoRepository(),
		insumos:   memory.NewInsumoRepository(),
		corridas:  memory.NewProduccionRepository(),
	}
	e.recetasR = memory.NewRecetaRepository(e.insumos)
	libro := inventario.NewLibroStock(e.productos, e.insumos,
		memory.NewMovimientoInventarioRepository(), memory.NewMovimientoInsumoRepository(),
		memory.NewReferenciaRepository())
	catalogo := recetas.NewCatalogoRecetas(e.recetasR)
	var corridas repository.ProduccionRepository = e.corridas
	if envolver != nil {
		corridas = envolver(corridas)
	}
	e.motor = produccion.NewMotorProduccion(catalogo, libro, corridas, e.productos)
	return e
}

func (e *escenarioProduccion) conProducto(t *testing.T, id string, stock float64) {
	t.Helper()
	require.NoError(t, e.productos.Create(&entity.Producto{
		ID: id, Nombre: "producto " + id, Stock: decimal.NewFromFloat(stock), Activo: true,
	}))
}

func (e *escenarioProduccion) conInsumo(t *testing.T, id string, stock float64) {
	t.Helper()
	require.NoError(t, e.insumos.Create(&entity.Insumo{
		ID: id, Nombre: "insumo " + id, Stock: decimal.NewFromFloat(stock), Activo: true,
	}))
}

func (e *escenarioProduccion) conReceta(t *testing.T, productoID, insumoID string, porUnidad float64, obligatorio bool) {
	t.Helper()
	require.NoError(t, e.recetasR.Upsert(&entity.RecetaLinea{
		ID:                productoID + "-" + insumoID,
		ProductoID:        productoID,
		InsumoID:          insumoID,
		CantidadPorUnidad: decimal.NewFromFloat(porUnidad),
		Obligatorio:       obligatorio,
	}))
}

func (e *escenarioProduccion) stockProducto(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	p, err := e.productos.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func (e *escenarioProduccion) stockInsumo(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	i, err := e.insumos.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, i)
	return i.Stock
}

// Una corrida exitosa consume los insumos según receta y suma la cantidad
// al producto, dejando el detalle de auditoría.
func TestProducir_ConsumeInsumosYSumaProducto(t *testing.T) {
	e := nuevoEscenarioProduccion(t)
	e.conProducto(t, "torta", 1)
	e.conInsumo(t, "harina", 10)
	e.conInsumo(t, "azucar", 6)
	e.conReceta(t, "torta", "harina", 2, true)
	e.conReceta(t, "torta", "azucar", 1, true)

	resultado, err := e.motor.Producir(produccion.ProducirInput{
		ProductoID: "torta", Cantidad: decimal.NewFromInt(3), Usuario: "ana",
	})
	require.NoError(t, err)
	require.NotNil(t, resultado.Produccion)
	assert.Empty(t, resultado.Faltantes)

	assert.True(t, e.stockProducto(t, "torta").Equal(decimal.NewFromInt(4)))
	assert.True(t, e.stockInsumo(t, "harina").Equal(decimal.NewFromInt(4)))
	assert.True(t, e.stockInsumo(t, "azucar").Equal(decimal.NewFromInt(3)))

	require.Len(t, resultado.Produccion.Insumos, 2)
	corrida, err := e.motor.GetProduccion(resultado.Produccion.ID)
	require.NoError(t, err)
	require.NotNil(t, corrida)
	assert.Len(t, corrida.Insumos, 2, "el detalle de consumo queda persistido")
}

// Los insumos opcionales se consumen hasta donde alcance el stock; su
// escasez no bloquea la corrida.
func TestProducir_OpcionalSeConsumeHastaDondeAlcance(t *testing.T) {
	e := nuevoEscenarioProduccion(t)
	e.conProducto(t, "torta", 0)
	e.conInsumo(t, "harina", 10)
	e.conInsumo(t, "ajonjoli", 1)
	e.conReceta(t, "torta", "harina", 1, true)
	e.conReceta(t, "torta", "ajonjoli", 1, false)

	resultado, err := e.motor.Producir(produccion.ProducirInput{
		ProductoID: "torta", Cantidad: decimal.NewFromInt(4), Usuario: "ana",
	})
	require.NoError(t, err)
	require.NotNil(t, resultado.Produccion)

	assert.True(t, e.stockProducto(t, "torta").Equal(decimal.NewFromInt(4)))
	assert.True(t, e.stockInsumo(t, "ajonjoli").IsZero(),
		"el opcional se consume solo hasta su stock: 1 en vez de 4")
}

// Si un insumo obligatorio no alcanza, la corrida devuelve los faltantes
// como resultado estructurado sin error y SIN efectos: nada se consume,
// nada se persiste.
func TestProducir_FaltanteObligatorio_SinEfectos(t *testing.T) {
	e := nuevoEscenarioProduccion(t)
	e.conProducto(t, "torta", 2)
	e.conInsumo(t, "harina", 3)
	e.conInsumo(t, "azucar", 100)
	e.conReceta(t, "torta", "harina", 2, true)
	e.conReceta(t, "torta", "azucar", 1, true)

	resultado, err := e.motor.Producir(produccion.ProducirInput{
		ProductoID: "torta", Cantidad: decimal.NewFromInt(5), Usuario: "ana",
	})
	require.NoError(t, err, "el faltante es resultado, no error")
	assert.Nil(t, resultado.Produccion)
	require.Len(t, resultado.Faltantes, 1)

	f := resultado.Faltantes[0]
	assert.Equal(t, "harina", f.InsumoID)
	assert.True(t, f.Requerido.Equal(decimal.NewFromInt(10)))
	assert.True(t, f.Stock.Equal(decimal.NewFromInt(3)))

	assert.True(t, e.stockProducto(t, "torta").Equal(decimal.NewFromInt(2)), "sin efectos")
	assert.True(t, e.stockInsumo(t, "azucar").Equal(decimal.NewFromInt(100)), "sin efectos")
	corridas, err := e.motor.ListProducciones(10, 0)
	require.NoError(t, err)
	assert.Empty(t, corridas, "no debe persistirse la corrida")
}

func TestProducir_SinReceta_Error(t *testing.T) {
	e := nuevoEscenarioProduccion(t)
	e.conProducto(t, "torta", 0)

	_, err := e.motor.Producir(produccion.ProducirInput{
		ProductoID: "torta", Cantidad: decimal.NewFromInt(1), Usuario: "ana",
	})
	assert.ErrorIs(t, err, domain.ErrSinReceta)
}

func TestProducir_ProductoInexistente_NotFound(t *testing.T) {
	e := nuevoEscenarioProduccion(t)
	_, err := e.motor.Producir(produccion.ProducirInput{
		ProductoID: "fantasma", Cantidad: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProducir_CantidadNoPositiva_Invalida(t *testing.T) {
	e := nuevoEscenarioProduccion(t)
	e.conProducto(t, "torta", 0)

	_, err := e.motor.Producir(produccion.ProducirInput{ProductoID: "torta", Cantidad: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// produccionRepoConFallo falla al persistir el segundo detalle de insumo.
type produccionRepoConFallo struct {
	repository.ProduccionRepository
	detalles int
}

var errAlmacenCaido = errors.New("almacén caído")

func (r *produccionRepoConFallo) CreateInsumo(detalle *entity.ProduccionInsumo) error {
	r.detalles++
	if r.detalles >= 2 {
		return errAlmacenCaido
	}
	return r.ProduccionRepository.CreateInsumo(detalle)
}

// Un fallo a mitad de la corrida aborta sin revertir: los consumos ya
// aplicados quedan en el libro y el producto no recibe su entrada.
func TestProducir_FalloIntermedioNoRevierte(t *testing.T) {
	e := construirEscenarioProduccion(t, func(r repository.ProduccionRepository) repository.ProduccionRepository {
		return &produccionRepoConFallo{ProduccionRepository: r}
	})
	e.conProducto(t, "torta", 0)
	e.conInsumo(t, "harina", 10)
	e.conInsumo(t, "azucar", 10)
	e.conReceta(t, "torta", "harina", 1, true)
	e.conReceta(t, "torta", "azucar", 1, true)

	_, err := e.motor.Producir(produccion.ProducirInput{
		ProductoID: "torta", Cantidad: decimal.NewFromInt(2), Usuario: "ana",
	})
	require.ErrorIs(t, err, errAlmacenCaido)

	assert.True(t, e.stockInsumo(t, "harina").Equal(decimal.NewFromInt(8)),
		"el consumo del primer insumo queda aplicado")
	assert.True(t, e.stockInsumo(t, "azucar").Equal(decimal.NewFromInt(8)),
		"el movimiento del segundo insumo se emitió antes del fallo del detalle")
	assert.True(t, e.stockProducto(t, "torta").IsZero(),
		"la entrada del producto nunca se aplicó")
}
