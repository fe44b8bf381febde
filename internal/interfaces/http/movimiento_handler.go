package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/gestion-pos/internal/application/dto"
	"github.com/tu-usuario/gestion-pos/internal/application/inventario"
)

// MovimientoHandler expone el historial de los libros de movimientos.
type MovimientoHandler struct {
	libro *inventario.LibroStock
}

// NewMovimientoHandler construye el handler.
func NewMovimientoHandler(libro *inventario.LibroStock) *MovimientoHandler {
	return &MovimientoHandler{libro: libro}
}

// ListByProducto lista los movimientos de un producto, más recientes primero.
func (h *MovimientoHandler) ListByProducto(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	movs, err := h.libro.MovimientosProducto(c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.MovimientoResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovimientoResponse{
			ID:             m.ID,
			RecursoID:      m.ProductoID,
			Tipo:           m.TipoClave,
			Cantidad:       m.Cantidad,
			ReferenciaID:   m.ReferenciaID,
			ReferenciaTipo: m.ReferenciaTipo,
			Notas:          m.Notas,
			CreadoPor:      m.CreadoPor,
			CreatedAt:      m.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "movimientos": out})
}

// ListByInsumo lista los movimientos de un insumo, más recientes primero.
func (h *MovimientoHandler) ListByInsumo(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	movs, err := h.libro.MovimientosInsumo(c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.MovimientoResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovimientoResponse{
			ID:             m.ID,
			RecursoID:      m.InsumoID,
			Tipo:           m.TipoClave,
			Cantidad:       m.Cantidad,
			ReferenciaID:   m.ReferenciaID,
			ReferenciaTipo: m.ReferenciaTipo,
			Notas:          m.Notas,
			CreadoPor:      m.CreadoPor,
			CreatedAt:      m.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "movimientos": out})
}
