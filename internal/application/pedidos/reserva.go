package pedidos

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pos/internal/application/inventario"
	"github.com/tu-usuario/gestion-pos/internal/application/recetas"
	"github.com/tu-usuario/gestion-pos/internal/domain"
	"github.com/tu-usuario/gestion-pos/internal/domain/entity"
	"github.com/tu-usuario/gestion-pos/internal/domain/repository"
)

// CrearPedidoInput entrada para crear un pedido con reserva.
type CrearPedidoInput struct {
	ClienteID    string
	FechaEntrega *time.Time
	Notas        string
	Usuario      string
	Lineas       []LineaSolicitud
}

// ResultadoPedido devuelve el pedido persistido junto con el informe de
// disponibilidad con el que se reservó. El llamador decide qué hacer cuando
// TodoSatisfacible es false: la reserva parcial es válida y esperada.
type ResultadoPedido struct {
	Pedido         *entity.Pedido
	Disponibilidad *Disponibilidad
}

// MotorReservas crea pedidos con su reserva de stock, ajusta cantidades de
// pedidos en vuelo aplicando solo el delta, y cancela liberando las reservas
// netas.
//
// Cada operación es una secuencia de llamadas independientes al almacén, sin
// transacción que la envuelva: un fallo a mitad de camino deja aplicados los
// pasos anteriores. El estado de verdad es el libro de movimientos; el
// llamador debe rederivarlo antes de reintentar.
type MotorReservas struct {
	calc       *CalculadoraDisponibilidad
	libro      *inventario.LibroStock
	catalogo   *recetas.CatalogoRecetas
	pedidoRepo repository.PedidoRepository
	refRepo    repository.ReferenciaRepository
}

// NewMotorReservas construye el motor.
func NewMotorReservas(
	calc *CalculadoraDisponibilidad,
	libro *inventario.LibroStock,
	catalogo *recetas.CatalogoRecetas,
	pedidoRepo repository.PedidoRepository,
	refRepo repository.ReferenciaRepository,
) *MotorReservas {
	return &MotorReservas{
		calc:       calc,
		libro:      libro,
		catalogo:   catalogo,
		pedidoRepo: pedidoRepo,
		refRepo:    refRepo,
	}
}

// CrearPedidoConReserva calcula la disponibilidad de las líneas, persiste el
// pedido en estado pendiente con las cantidades tal como se pidieron, y
// aplica los movimientos de reserva que el plan indica: una salida de
// producto por lo reservable de stock y una salida de insumo por cada
// insumo obligatorio de la porción producible.
//
// La reserva de insumos falla con ErrStockInsuficiente si el stock ya no
// alcanza (la disponibilidad se calculó momentos antes; la carrera es
// posible y debe aflorar como error explícito, nunca como stock negativo).
// El pedido y lo reservado hasta ese punto quedan persistidos.
func (m *MotorReservas) CrearPedidoConReserva(in CrearPedidoInput) (*ResultadoPedido, error) {
	if len(in.Lineas) == 0 {
		return nil, domain.ErrInvalidInput
	}
	disp, err := m.calc.CalcularDisponibilidad(in.Lineas)
	if err != nil {
		return nil, err
	}
	if _, err := m.refRepo.EstadoPedidoID(entity.EstadoPedidoPendiente); err != nil {
		return nil, err
	}

	now := time.Now()
	pedido := &entity.Pedido{
		ID:           uuid.New().String(),
		ClienteID:    in.ClienteID,
		EstadoClave:  entity.EstadoPedidoPendiente,
		FechaPedido:  now,
		FechaEntrega: in.FechaEntrega,
		Notas:        in.Notas,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := m.pedidoRepo.Create(pedido); err != nil {
		return nil, err
	}
	for _, linea := range in.Lineas {
		pl := entity.PedidoLinea{
			ID:         uuid.New().String(),
			PedidoID:   pedido.ID,
			ProductoID: linea.ProductoID,
			Cantidad:   linea.Cantidad,
			CreatedAt:  now,
		}
		if err := m.pedidoRepo.CreateLinea(&pl); err != nil {
			return nil, err
		}
		pedido.Lineas = append(pedido.Lineas, pl)
	}

	ref := inventario.Referencia{ID: pedido.ID, Tipo: entity.ReferenciaPedido}
	for _, ld := range disp.Lineas {
		if err := m.aplicarPlan(ld, ref, in.Usuario); err != nil {
			return nil, err
		}
	}
	return &ResultadoPedido{Pedido: pedido, Disponibilidad: disp}, nil
}

// aplicarPlan emite los movimientos de reserva de una línea: salida de
// producto por lo reservable de stock y salida de cada insumo obligatorio
// por la porción producible.
func (m *MotorReservas) aplicarPlan(ld LineaDisponibilidad, ref inventario.Referencia, usuario string) error {
	if ld.Plan.ReservaDeStock.GreaterThan(decimal.Zero) {
		err := m.libro.RegistrarProducto(ld.ProductoID, entity.MovimientoSalida, ld.Plan.ReservaDeStock, ref, "reserva de pedido", usuario)
		if err != nil {
			return err
		}
	}
	for _, ri := range ld.Plan.Insumos {
		err := m.libro.RegistrarInsumo(ri.InsumoID, entity.MovimientoSalida, ri.Cantidad, ref, "reserva de pedido", usuario)
		if err != nil {
			return err
		}
	}
	return nil
}

// AjustarPedido reemplaza las cantidades del pedido por las nuevas líneas,
// aplicando solo los deltas contra lo ya reservado:
//
//   - delta positivo: se recalcula la disponibilidad para exactamente ese
//     delta (no para el total nuevo) y se aplican sus movimientos.
//   - delta negativo: se libera proporcionalmente (liberarParaProducto).
//   - cantidad cero o ausente en las nuevas líneas significa quitar la línea.
//
// Al final las líneas del pedido se reemplazan por completo: se borran todas
// y se insertan las nuevas con cantidad positiva. No hay transacción entre
// los deltas y el reemplazo: un fallo en un delta intermedio deja los deltas
// anteriores aplicados y la tabla de líneas sin tocar.
func (m *MotorReservas) AjustarPedido(pedidoID string, nuevas []LineaSolicitud, usuario string) error {
	if pedidoID == "" {
		return domain.ErrInvalidInput
	}
	pedido, err := m.pedidoRepo.GetByID(pedidoID)
	if err != nil {
		return err
	}
	if pedido == nil {
		return domain.ErrNotFound
	}
	if pedido.EstadoClave == entity.EstadoPedidoCancelado {
		return domain.ErrConflict
	}

	actuales := make(map[string]decimal.Decimal)
	lineasActuales, err := m.pedidoRepo.ListLineas(pedidoID)
	if err != nil {
		return err
	}
	for _, l := range lineasActuales {
		actuales[l.ProductoID] = l.Cantidad
	}

	// Cantidad cero significa "quitar la línea".
	deseadas := make(map[string]decimal.Decimal)
	for _, l := range nuevas {
		if l.Cantidad.GreaterThan(decimal.Zero) {
			deseadas[l.ProductoID] = l.Cantidad
		}
	}

	deltas := make(map[string]decimal.Decimal)
	for productoID, cantidad := range deseadas {
		deltas[productoID] = cantidad.Sub(actuales[productoID])
	}
	for productoID, cantidad := range actuales {
		if _, ok := deseadas[productoID]; !ok {
			deltas[productoID] = cantidad.Neg()
		}
	}

	productos := make([]string, 0, len(deltas))
	for productoID := range deltas {
		productos = append(productos, productoID)
	}
	sort.Strings(productos)

	for _, productoID := range productos {
		delta := deltas[productoID]
		switch {
		case delta.GreaterThan(decimal.Zero):
			if err := m.reservarParaProducto(pedidoID, productoID, delta, usuario); err != nil {
				return err
			}
		case delta.IsNegative():
			original, tiene := actuales[productoID]
			if err := m.liberarParaProducto(pedidoID, productoID, delta.Neg(), original, tiene, usuario); err != nil {
				return err
			}
		}
	}

	if err := m.pedidoRepo.DeleteLineas(pedidoID); err != nil {
		return err
	}
	now := time.Now()
	for _, l := range nuevas {
		if !l.Cantidad.GreaterThan(decimal.Zero) {
			continue
		}
		pl := entity.PedidoLinea{
			ID:         uuid.New().String(),
			PedidoID:   pedidoID,
			ProductoID: l.ProductoID,
			Cantidad:   l.Cantidad,
			CreatedAt:  now,
		}
		if err := m.pedidoRepo.CreateLinea(&pl); err != nil {
			return err
		}
	}
	return nil
}

// reservarParaProducto reserva cantidad unidades adicionales de un producto
// para el pedido: corre la disponibilidad completa solo para ese delta y
// aplica el plan resultante.
func (m *MotorReservas) reservarParaProducto(pedidoID, productoID string, cantidad decimal.Decimal, usuario string) error {
	disp, err := m.calc.CalcularDisponibilidad([]LineaSolicitud{{ProductoID: productoID, Cantidad: cantidad}})
	if err != nil {
		return err
	}
	ref := inventario.Referencia{ID: pedidoID, Tipo: entity.ReferenciaPedido}
	for _, ld := range disp.Lineas {
		if err := m.aplicarPlan(ld, ref, usuario); err != nil {
			return err
		}
	}
	return nil
}

// liberarParaProducto devuelve al stock parte de la reserva de un producto.
//
// La liberación de producto se escala por la proporción cantidad/original
// sobre la reserva neta, con piso entero. La liberación de insumos NO usa
// esa proporción: libera CantidadPorUnidad * cantidad por cada insumo
// obligatorio de la receta, independiente de cuánto de la reducción venía de
// stock o de producción. La asimetría es intencional; no "corregirla".
//
// Si el producto no tiene cantidad original almacenada (línea quitada sin
// contexto de reserva), se libera la reserva neta completa del producto y la
// de todos los insumos anclados al pedido.
func (m *MotorReservas) liberarParaProducto(pedidoID, productoID string, cantidad, original decimal.Decimal, tieneOriginal bool, usuario string) error {
	ref := inventario.Referencia{ID: pedidoID, Tipo: entity.ReferenciaPedido}
	netoProducto, err := m.libro.ReservaNetaProducto(ref, productoID)
	if err != nil {
		return err
	}

	if !tieneOriginal || !original.GreaterThan(decimal.Zero) {
		if netoProducto.GreaterThan(decimal.Zero) {
			err := m.libro.RegistrarProducto(productoID, entity.MovimientoEntrada, netoProducto, ref, "liberación total de reserva", usuario)
			if err != nil {
				return err
			}
		}
		netosInsumos, err := m.libro.ReservasNetasInsumos(ref)
		if err != nil {
			return err
		}
		for _, insumoID := range clavesOrdenadas(netosInsumos) {
			err := m.libro.RegistrarInsumo(insumoID, entity.MovimientoEntrada, netosInsumos[insumoID], ref, "liberación total de reserva", usuario)
			if err != nil {
				return err
			}
		}
		return nil
	}

	proporcion := cantidad.Div(original)
	liberarStock := netoProducto.Mul(proporcion).Floor()
	if liberarStock.GreaterThan(decimal.Zero) {
		err := m.libro.RegistrarProducto(productoID, entity.MovimientoEntrada, liberarStock, ref, "liberación parcial de reserva", usuario)
		if err != nil {
			return err
		}
	}

	lineasReceta, err := m.catalogo.PorProducto(productoID)
	if err != nil {
		return err
	}
	for _, lr := range lineasReceta {
		if !lr.Obligatorio {
			continue
		}
		liberar := lr.CantidadPorUnidad.Mul(cantidad)
		if !liberar.GreaterThan(decimal.Zero) {
			continue
		}
		err := m.libro.RegistrarInsumo(lr.InsumoID, entity.MovimientoEntrada, liberar, ref, "liberación parcial de reserva", usuario)
		if err != nil {
			return err
		}
	}
	return nil
}

// CancelarPedido libera la reserva neta de cada producto e insumo anclados
// al pedido y transiciona el estado a cancelado. Es idempotente en efecto:
// un pedido sin reserva neta no genera movimientos, pero el estado igual se
// transiciona.
func (m *MotorReservas) CancelarPedido(pedidoID, usuario string) error {
	if pedidoID == "" {
		return domain.ErrInvalidInput
	}
	pedido, err := m.pedidoRepo.GetByID(pedidoID)
	if err != nil {
		return err
	}
	if pedido == nil {
		return domain.ErrNotFound
	}
	if _, err := m.refRepo.EstadoPedidoID(entity.EstadoPedidoCancelado); err != nil {
		return err
	}

	ref := inventario.Referencia{ID: pedidoID, Tipo: entity.ReferenciaPedido}
	netosProductos, err := m.libro.ReservasNetasProductos(ref)
	if err != nil {
		return err
	}
	for _, productoID := range clavesOrdenadas(netosProductos) {
		err := m.libro.RegistrarProducto(productoID, entity.MovimientoEntrada, netosProductos[productoID], ref, "cancelación de pedido", usuario)
		if err != nil {
			return err
		}
	}
	netosInsumos, err := m.libro.ReservasNetasInsumos(ref)
	if err != nil {
		return err
	}
	for _, insumoID := range clavesOrdenadas(netosInsumos) {
		err := m.libro.RegistrarInsumo(insumoID, entity.MovimientoEntrada, netosInsumos[insumoID], ref, "cancelación de pedido", usuario)
		if err != nil {
			return err
		}
	}

	return m.pedidoRepo.UpdateEstado(pedidoID, entity.EstadoPedidoCancelado)
}

// GetPedido devuelve un pedido con sus líneas (nil si no existe).
func (m *MotorReservas) GetPedido(pedidoID string) (*entity.Pedido, error) {
	return m.pedidoRepo.GetByID(pedidoID)
}

// ListPedidos lista pedidos con paginación, opcionalmente filtrados por
// estado (clave vacía = todos).
func (m *MotorReservas) ListPedidos(estadoClave string, limit, offset int) ([]*entity.Pedido, error) {
	return m.pedidoRepo.List(estadoClave, limit, offset)
}

func clavesOrdenadas(m map[string]decimal.Decimal) []string {
	claves := make([]string, 0, len(m))
	for k := range m {
		claves = append(claves, k)
	}
	sort.Strings(claves)
	return claves
}
