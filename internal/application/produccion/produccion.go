package produccion

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pos/internal/application/inventario"
	"github.com/tu-usuario/gestion-pos/internal/application/recetas"
	"github.com/tu-usuario/gestion-pos/internal/domain"
	"github.com/tu-usuario/gestion-pos/internal/domain/entity"
	domInv "github.com/tu-usuario/gestion-pos/internal/domain/inventario"
	"github.com/tu-usuario/gestion-pos/internal/domain/repository"
)

// ProducirInput entrada para una corrida de producción.
type ProducirInput struct {
	ProductoID string
	Cantidad   decimal.Decimal
	Usuario    string
	Notas      string
}

// ResultadoProduccion es el resultado de Producir. Si Faltantes no está
// vacío la producción no se ejecutó (Produccion es nil): el detalle de los
// insumos obligatorios que no alcanzan se devuelve como resultado
// estructurado, no como error, porque el llamador necesita informarlo.
type ResultadoProduccion struct {
	Produccion *entity.Produccion
	Faltantes  []domInv.FaltanteInsumo
}

// MotorProduccion convierte stock de insumos en stock de producto terminado
// según la receta: los insumos obligatorios deben alcanzar completos, los
// opcionales se consumen hasta donde haya.
type MotorProduccion struct {
	catalogo       *recetas.CatalogoRecetas
	libro          *inventario.LibroStock
	produccionRepo repository.ProduccionRepository
	productoRepo   repository.ProductoRepository
}

// NewMotorProduccion construye el motor.
func NewMotorProduccion(
	catalogo *recetas.CatalogoRecetas,
	libro *inventario.LibroStock,
	produccionRepo repository.ProduccionRepository,
	productoRepo repository.ProductoRepository,
) *MotorProduccion {
	return &MotorProduccion{
		catalogo:       catalogo,
		libro:          libro,
		produccionRepo: produccionRepo,
		productoRepo:   productoRepo,
	}
}

// Producir ejecuta una corrida de producción:
//
//  1. Valida cantidad positiva y que el producto exista y tenga receta.
//  2. Verifica los insumos obligatorios contra requerido = coeficiente *
//     cantidad; cualquier faltante devuelve la lista completa sin efectos.
//  3. Crea el registro de producción, consume cada insumo (obligatorios
//     completos, opcionales hasta el stock disponible) emitiendo movimientos
//     de consumo y el detalle de auditoría, y finalmente suma la cantidad al
//     stock del producto con un movimiento de entrada.
//
// Un fallo al consumir un insumo aborta la corrida y devuelve el error; los
// consumos ya aplicados de insumos anteriores en la misma llamada no se
// revierten (no hay transacción): el libro refleja el trabajo parcial.
func (m *MotorProduccion) Producir(in ProducirInput) (*ResultadoProduccion, error) {
	if in.ProductoID == "" || !in.Cantidad.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	producto, err := m.productoRepo.GetByID(in.ProductoID)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNotFound
	}
	lineas, err := m.catalogo.PorProducto(in.ProductoID)
	if err != nil {
		return nil, err
	}
	if len(lineas) == 0 {
		return nil, domain.ErrSinReceta
	}

	var faltantes []domInv.FaltanteInsumo
	for _, lr := range lineas {
		if !lr.Obligatorio {
			continue
		}
		requerido := lr.CantidadPorUnidad.Mul(in.Cantidad)
		if requerido.GreaterThan(lr.InsumoStock) {
			faltantes = append(faltantes, domInv.FaltanteInsumo{
				InsumoID:  lr.InsumoID,
				Nombre:    lr.InsumoNombre,
				Requerido: requerido,
				Stock:     lr.InsumoStock,
			})
		}
	}
	if len(faltantes) > 0 {
		return &ResultadoProduccion{Faltantes: faltantes}, nil
	}

	produccion := &entity.Produccion{
		ID:         uuid.New().String(),
		ProductoID: in.ProductoID,
		Cantidad:   in.Cantidad,
		Usuario:    in.Usuario,
		Notas:      in.Notas,
		CreatedAt:  time.Now(),
	}
	if err := m.produccionRepo.Create(produccion); err != nil {
		return nil, err
	}

	ref := inventario.Referencia{ID: produccion.ID, Tipo: entity.ReferenciaProduccion}
	for _, lr := range lineas {
		requerido := lr.CantidadPorUnidad.Mul(in.Cantidad)
		consumo := requerido
		if !lr.Obligatorio {
			consumo = decimal.Min(requerido, lr.InsumoStock)
		}
		if !consumo.GreaterThan(decimal.Zero) {
			continue
		}
		err := m.libro.RegistrarInsumo(lr.InsumoID, entity.MovimientoConsumo, consumo, ref, "consumo por producción", in.Usuario)
		if err != nil {
			return nil, err
		}
		detalle := entity.ProduccionInsumo{
			ID:           uuid.New().String(),
			ProduccionID: produccion.ID,
			InsumoID:     lr.InsumoID,
			Cantidad:     consumo,
		}
		if err := m.produccionRepo.CreateInsumo(&detalle); err != nil {
			return nil, err
		}
		produccion.Insumos = append(produccion.Insumos, detalle)
	}

	err = m.libro.RegistrarProducto(in.ProductoID, entity.MovimientoEntrada, in.Cantidad, ref, "producción", in.Usuario)
	if err != nil {
		return nil, err
	}
	return &ResultadoProduccion{Produccion: produccion}, nil
}

// GetProduccion devuelve una corrida con su detalle (nil si no existe).
func (m *MotorProduccion) GetProduccion(id string) (*entity.Produccion, error) {
	return m.produccionRepo.GetByID(id)
}

// ListProducciones lista corridas de producción con paginación.
func (m *MotorProduccion) ListProducciones(limit, offset int) ([]*entity.Produccion, error) {
	return m.produccionRepo.List(limit, offset)
}
