package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/gestion-pos/internal/application/dto"
	"github.com/tu-usuario/gestion-pos/internal/application/produccion"
	"github.com/tu-usuario/gestion-pos/internal/domain"
	"github.com/tu-usuario/gestion-pos/internal/domain/entity"
	domInv "github.com/tu-usuario/gestion-pos/internal/domain/inventario"
	"github.com/tu-usuario/gestion-pos/pkg/validator"
)

// ProduccionHandler maneja las corridas de producción.
type ProduccionHandler struct {
	motor *produccion.MotorProduccion
}

// NewProduccionHandler construye el handler.
func NewProduccionHandler(motor *produccion.MotorProduccion) *ProduccionHandler {
	return &ProduccionHandler{motor: motor}
}

// Producir ejecuta una corrida. Si faltan insumos obligatorios responde 422
// con el detalle de faltantes y sin efectos sobre el stock.
func (h *ProduccionHandler) Producir(c *fiber.Ctx) error {
	var in dto.ProducirRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validator.ValidateStruct(in); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validator.Resumen(errs)})
	}
	resultado, err := h.motor.Producir(produccion.ProducirInput{
		ProductoID: in.ProductoID,
		Cantidad:   in.Cantidad,
		Usuario:    GetUserID(c),
		Notas:      in.Notas,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		if errors.Is(err, domain.ErrSinReceta) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "NO_RECIPE", Message: "el producto no tiene receta"})
		}
		if errors.Is(err, domain.ErrStockInsuficiente) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if len(resultado.Faltantes) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ProduccionResponse{
			Faltantes: toFaltantesResponse(resultado.Faltantes),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(toProduccionResponse(resultado.Produccion))
}

// GetByID obtiene una corrida con su detalle de insumos consumidos.
func (h *ProduccionHandler) GetByID(c *fiber.Ctx) error {
	p, err := h.motor.GetProduccion(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if p == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producción no encontrada"})
	}
	return c.JSON(toProduccionResponse(p))
}

// List lista corridas de producción.
func (h *ProduccionHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	items, err := h.motor.ListProducciones(page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.ProduccionResponse, 0, len(items))
	for _, p := range items {
		out = append(out, *toProduccionResponse(p))
	}
	return c.JSON(fiber.Map{"total": len(out), "producciones": out})
}

func toProduccionResponse(p *entity.Produccion) *dto.ProduccionResponse {
	resp := &dto.ProduccionResponse{
		ID:         p.ID,
		ProductoID: p.ProductoID,
		Cantidad:   p.Cantidad,
		Usuario:    p.Usuario,
		Notas:      p.Notas,
		CreatedAt:  p.CreatedAt,
	}
	for _, d := range p.Insumos {
		resp.Insumos = append(resp.Insumos, dto.ProduccionInsumoResponse{
			InsumoID: d.InsumoID,
			Cantidad: d.Cantidad,
		})
	}
	return resp
}

func toFaltantesResponse(faltantes []domInv.FaltanteInsumo) []dto.FaltanteInsumoResponse {
	out := make([]dto.FaltanteInsumoResponse, 0, len(faltantes))
	for _, f := range faltantes {
		out = append(out, dto.FaltanteInsumoResponse{
			InsumoID:  f.InsumoID,
			Nombre:    f.Nombre,
			Requerido: f.Requerido,
			Stock:     f.Stock,
		})
	}
	return out
}
