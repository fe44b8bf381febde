package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/gestion-pos/internal/application/dto"
	"github.com/tu-usuario/gestion-pos/internal/application/pedidos"
	"github.com/tu-usuario/gestion-pos/internal/domain"
	"github.com/tu-usuario/gestion-pos/internal/domain/entity"
	"github.com/tu-usuario/gestion-pos/pkg/validator"
)

// PedidoHandler maneja el ciclo de vida de pedidos con reserva de stock:
// vista previa de disponibilidad, creación, ajuste de líneas y cancelación.
type PedidoHandler struct {
	motor *pedidos.MotorReservas
	calc  *pedidos.CalculadoraDisponibilidad
}

// NewPedidoHandler construye el handler.
func NewPedidoHandler(motor *pedidos.MotorReservas, calc *pedidos.CalculadoraDisponibilidad) *PedidoHandler {
	return &PedidoHandler{motor: motor, calc: calc}
}

// Disponibilidad calcula la factibilidad de las líneas sin reservar nada.
func (h *PedidoHandler) Disponibilidad(c *fiber.Ctx) error {
	var in dto.DisponibilidadRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validator.ValidateStruct(in); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validator.Resumen(errs)})
	}
	disp, err := h.calc.CalcularDisponibilidad(toLineasSolicitud(in.Lineas))
	if err != nil {
		return mapErrorPedido(c, err)
	}
	return c.JSON(toDisponibilidadResponse(disp))
}

// Crear crea el pedido y aplica la reserva que el plan de disponibilidad
// indica. La respuesta incluye el informe con el que se reservó.
func (h *PedidoHandler) Crear(c *fiber.Ctx) error {
	var in dto.CrearPedidoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validator.ValidateStruct(in); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validator.Resumen(errs)})
	}
	resultado, err := h.motor.CrearPedidoConReserva(pedidos.CrearPedidoInput{
		ClienteID:    in.ClienteID,
		FechaEntrega: in.FechaEntrega,
		Notas:        in.Notas,
		Usuario:      GetUserID(c),
		Lineas:       toLineasSolicitud(in.Lineas),
	})
	if err != nil {
		return mapErrorPedido(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CrearPedidoResponse{
		Pedido:         *toPedidoResponse(resultado.Pedido),
		Disponibilidad: *toDisponibilidadResponse(resultado.Disponibilidad),
	})
}

// GetByID obtiene un pedido con sus líneas.
func (h *PedidoHandler) GetByID(c *fiber.Ctx) error {
	pedido, err := h.motor.GetPedido(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if pedido == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido no encontrado"})
	}
	return c.JSON(toPedidoResponse(pedido))
}

// List lista pedidos. ?estado=pendiente|entregado|cancelado filtra.
func (h *PedidoHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	items, err := h.motor.ListPedidos(c.Query("estado"), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.PedidoResponse, 0, len(items))
	for _, p := range items {
		out = append(out, *toPedidoResponse(p))
	}
	return c.JSON(fiber.Map{"total": len(out), "pedidos": out})
}

// AjustarLineas reemplaza las líneas del pedido aplicando solo los deltas de
// reserva. Cantidad cero quita la línea.
func (h *PedidoHandler) AjustarLineas(c *fiber.Ctx) error {
	var in dto.AjustarPedidoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validator.ValidateStruct(in); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validator.Resumen(errs)})
	}
	if err := h.motor.AjustarPedido(c.Params("id"), toLineasSolicitud(in.Lineas), GetUserID(c)); err != nil {
		return mapErrorPedido(c, err)
	}
	pedido, err := h.motor.GetPedido(c.Params("id"))
	if err != nil || pedido == nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "pedido ajustado"})
	}
	return c.JSON(toPedidoResponse(pedido))
}

// Cancelar libera las reservas netas del pedido y lo transiciona a cancelado.
func (h *PedidoHandler) Cancelar(c *fiber.Ctx) error {
	if err := h.motor.CancelarPedido(c.Params("id"), GetUserID(c)); err != nil {
		return mapErrorPedido(c, err)
	}
	return c.JSON(fiber.Map{"message": "pedido cancelado"})
}

func mapErrorPedido(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	}
	if errors.Is(err, domain.ErrConflict) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "el pedido está cancelado"})
	}
	if errors.Is(err, domain.ErrStockInsuficiente) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func toLineasSolicitud(lineas []dto.LineaPedidoRequest) []pedidos.LineaSolicitud {
	out := make([]pedidos.LineaSolicitud, 0, len(lineas))
	for _, l := range lineas {
		out = append(out, pedidos.LineaSolicitud{ProductoID: l.ProductoID, Cantidad: l.Cantidad})
	}
	return out
}

func toPedidoResponse(p *entity.Pedido) *dto.PedidoResponse {
	resp := &dto.PedidoResponse{
		ID:           p.ID,
		ClienteID:    p.ClienteID,
		Estado:       p.EstadoClave,
		FechaPedido:  p.FechaPedido,
		FechaEntrega: p.FechaEntrega,
		Notas:        p.Notas,
		Lineas:       make([]dto.PedidoLineaResponse, 0, len(p.Lineas)),
	}
	for _, l := range p.Lineas {
		resp.Lineas = append(resp.Lineas, dto.PedidoLineaResponse{
			ID:         l.ID,
			ProductoID: l.ProductoID,
			Cantidad:   l.Cantidad,
		})
	}
	return resp
}

func toDisponibilidadResponse(d *pedidos.Disponibilidad) *dto.DisponibilidadResponse {
	resp := &dto.DisponibilidadResponse{
		Lineas:           make([]dto.LineaDisponibilidadResponse, 0, len(d.Lineas)),
		TodoSatisfacible: d.TodoSatisfacible,
	}
	for _, l := range d.Lineas {
		linea := dto.LineaDisponibilidadResponse{
			ProductoID:          l.ProductoID,
			Solicitado:          l.Solicitado,
			StockProducto:       l.StockProducto,
			ReservadoDeStock:    l.ReservadoDeStock,
			ProducibleDeInsumos: l.ProducibleDeInsumos,
			Satisfacible:        l.Satisfacible,
		}
		for _, f := range l.Faltantes {
			linea.Faltantes = append(linea.Faltantes, dto.FaltanteInsumoResponse{
				InsumoID:  f.InsumoID,
				Nombre:    f.Nombre,
				Requerido: f.Requerido,
				Stock:     f.Stock,
			})
		}
		resp.Lineas = append(resp.Lineas, linea)
	}
	return resp
}
