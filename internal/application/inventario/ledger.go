package inventario

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pos/internal/domain"
	"github.com/tu-usuario/gestion-pos/internal/domain/entity"
	"github.com/tu-usuario/gestion-pos/internal/domain/repository"
)

// Referencia ancla un movimiento a la entidad de negocio que lo originó
// (pedido, producción, pérdida, venta). Una referencia vacía es un
// movimiento suelto (compra, ajuste manual).
type Referencia struct {
	ID   string
	Tipo string
}

// Vacia indica si el movimiento no apunta a ninguna entidad.
func (r Referencia) Vacia() bool {
	return r.ID == ""
}

// LibroStock es el libro de movimientos de los dos pools de stock: productos
// terminados e insumos. Cada registro valida que el contador resultante no
// quede negativo, actualiza el contador y agrega la fila inmutable al libro.
//
// Las operaciones son llamadas independientes contra el almacén: no hay
// transacción que las envuelva. Un fallo deja aplicado lo anterior; el
// llamador debe rederivar el estado real desde el libro antes de reintentar.
type LibroStock struct {
	productoRepo repository.ProductoRepository
	insumoRepo   repository.InsumoRepository
	movInvRepo   repository.MovimientoInventarioRepository
	movInsRepo   repository.MovimientoInsumoRepository
	refRepo      repository.ReferenciaRepository
}

// NewLibroStock construye el libro con sus puertos de persistencia.
func NewLibroStock(
	productoRepo repository.ProductoRepository,
	insumoRepo repository.InsumoRepository,
	movInvRepo repository.MovimientoInventarioRepository,
	movInsRepo repository.MovimientoInsumoRepository,
	refRepo repository.ReferenciaRepository,
) *LibroStock {
	return &LibroStock{
		productoRepo: productoRepo,
		insumoRepo:   insumoRepo,
		movInvRepo:   movInvRepo,
		movInsRepo:   movInsRepo,
		refRepo:      refRepo,
	}
}

// RegistrarProducto registra un movimiento en el libro de productos:
// valida la clave contra la tabla de tipos, verifica que el stock resultante
// no quede negativo (rechaza, no recorta), actualiza el contador y persiste
// la fila.
func (l *LibroStock) RegistrarProducto(productoID, tipoClave string, cantidad decimal.Decimal, ref Referencia, notas, usuario string) error {
	if productoID == "" || !cantidad.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	dir := entity.DireccionDeClave(tipoClave)
	if dir == 0 {
		return domain.ErrInvalidInput
	}
	if _, err := l.refRepo.TipoMovimientoInventarioID(tipoClave); err != nil {
		return err
	}
	producto, err := l.productoRepo.GetByID(productoID)
	if err != nil {
		return err
	}
	if producto == nil {
		return domain.ErrNotFound
	}

	nuevo := producto.Stock.Add(cantidad.Mul(decimal.NewFromInt(int64(dir))))
	if nuevo.IsNegative() {
		return fmt.Errorf("producto %s: %w", producto.Nombre, domain.ErrStockInsuficiente)
	}
	if err := l.productoRepo.UpdateStock(productoID, nuevo); err != nil {
		return err
	}
	mov := &entity.MovimientoInventario{
		ID:             uuid.New().String(),
		ProductoID:     productoID,
		TipoClave:      tipoClave,
		Cantidad:       cantidad,
		ReferenciaID:   ref.ID,
		ReferenciaTipo: ref.Tipo,
		Notas:          notas,
		CreadoPor:      usuario,
		CreatedAt:      time.Now(),
	}
	return l.movInvRepo.Create(mov)
}

// RegistrarInsumo es el equivalente para el libro de insumos.
func (l *LibroStock) RegistrarInsumo(insumoID, tipoClave string, cantidad decimal.Decimal, ref Referencia, notas, usuario string) error {
	if insumoID == "" || !cantidad.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	dir := entity.DireccionDeClave(tipoClave)
	if dir == 0 {
		return domain.ErrInvalidInput
	}
	if _, err := l.refRepo.TipoMovimientoInsumoID(tipoClave); err != nil {
		return err
	}
	insumo, err := l.insumoRepo.GetByID(insumoID)
	if err != nil {
		return err
	}
	if insumo == nil {
		return domain.ErrNotFound
	}

	nuevo := insumo.Stock.Add(cantidad.Mul(decimal.NewFromInt(int64(dir))))
	if nuevo.IsNegative() {
		return fmt.Errorf("insumo %s: %w", insumo.Nombre, domain.ErrStockInsuficiente)
	}
	if err := l.insumoRepo.UpdateStock(insumoID, nuevo); err != nil {
		return err
	}
	mov := &entity.MovimientoInsumo{
		ID:             uuid.New().String(),
		InsumoID:       insumoID,
		TipoClave:      tipoClave,
		Cantidad:       cantidad,
		ReferenciaID:   ref.ID,
		ReferenciaTipo: ref.Tipo,
		Notas:          notas,
		CreadoPor:      usuario,
		CreatedAt:      time.Now(),
	}
	return l.movInsRepo.Create(mov)
}

// MovimientosProducto lista el historial de movimientos de un producto,
// más recientes primero.
func (l *LibroStock) MovimientosProducto(productoID string, limit, offset int) ([]*entity.MovimientoInventario, error) {
	return l.movInvRepo.ListByProducto(productoID, limit, offset)
}

// MovimientosInsumo lista el historial de movimientos de un insumo.
func (l *LibroStock) MovimientosInsumo(insumoID string, limit, offset int) ([]*entity.MovimientoInsumo, error) {
	return l.movInsRepo.ListByInsumo(insumoID, limit, offset)
}

// ReservaNetaProducto devuelve cuánto stock de un producto sigue reservado a
// nombre de la referencia: suma con signo de sus movimientos (salidas
// negativas, entradas positivas) y la reserva es max(0, -suma).
func (l *LibroStock) ReservaNetaProducto(ref Referencia, productoID string) (decimal.Decimal, error) {
	suma, err := l.movInvRepo.SumPorReferencia(ref.ID, ref.Tipo, productoID)
	if err != nil {
		return decimal.Zero, err
	}
	return reservaNeta(suma), nil
}

// ReservaNetaInsumo es el equivalente para el libro de insumos.
func (l *LibroStock) ReservaNetaInsumo(ref Referencia, insumoID string) (decimal.Decimal, error) {
	suma, err := l.movInsRepo.SumPorReferencia(ref.ID, ref.Tipo, insumoID)
	if err != nil {
		return decimal.Zero, err
	}
	return reservaNeta(suma), nil
}

// ReservasNetasProductos devuelve la reserva neta de cada producto con
// movimientos anclados a la referencia (solo los netos positivos).
func (l *LibroStock) ReservasNetasProductos(ref Referencia) (map[string]decimal.Decimal, error) {
	sumas, err := l.movInvRepo.SumPorReferenciaAgrupado(ref.ID, ref.Tipo)
	if err != nil {
		return nil, err
	}
	return reservasNetas(sumas), nil
}

// ReservasNetasInsumos es el equivalente para el libro de insumos.
func (l *LibroStock) ReservasNetasInsumos(ref Referencia) (map[string]decimal.Decimal, error) {
	sumas, err := l.movInsRepo.SumPorReferenciaAgrupado(ref.ID, ref.Tipo)
	if err != nil {
		return nil, err
	}
	return reservasNetas(sumas), nil
}

func reservaNeta(suma decimal.Decimal) decimal.Decimal {
	neta := suma.Neg()
	if neta.IsNegative() {
		return decimal.Zero
	}
	return neta
}

func reservasNetas(sumas map[string]decimal.Decimal) map[string]decimal.Decimal {
	netas := make(map[string]decimal.Decimal, len(sumas))
	for id, suma := range sumas {
		if neta := reservaNeta(suma); neta.GreaterThan(decimal.Zero) {
			netas[id] = neta
		}
	}
	return netas
}
