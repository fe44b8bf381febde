package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/gestion-pos/internal/application/dto"
	"github.com/tu-usuario/gestion-pos/internal/application/usecase"
	"github.com/tu-usuario/gestion-pos/internal/domain"
	"github.com/tu-usuario/gestion-pos/pkg/validator"
)

// PerdidaHandler maneja pérdidas/mermas de productos e insumos.
type PerdidaHandler struct {
	uc *usecase.PerdidaUseCase
}

// NewPerdidaHandler construye el handler.
func NewPerdidaHandler(uc *usecase.PerdidaUseCase) *PerdidaHandler {
	return &PerdidaHandler{uc: uc}
}

// Registrar registra una pérdida y descuenta el stock del recurso afectado.
func (h *PerdidaHandler) Registrar(c *fiber.Ctx) error {
	var in dto.RegistrarPerdidaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validator.ValidateStruct(in); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validator.Resumen(errs)})
	}
	out, err := h.uc.Registrar(in, GetUserID(c))
	if err != nil {
		return mapErrorStock(c, err, "producto o insumo no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Actualizar edita una pérdida; la diferencia de cantidad emite el
// movimiento compensatorio correspondiente.
func (h *PerdidaHandler) Actualizar(c *fiber.Ctx) error {
	var in dto.ActualizarPerdidaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Actualizar(c.Params("id"), in, GetUserID(c))
	if err != nil {
		return mapErrorStock(c, err, "pérdida no encontrada")
	}
	return c.JSON(out)
}

// Eliminar borra la pérdida y devuelve el stock descontado.
func (h *PerdidaHandler) Eliminar(c *fiber.Ctx) error {
	if err := h.uc.Eliminar(c.Params("id"), GetUserID(c)); err != nil {
		return mapErrorStock(c, err, "pérdida no encontrada")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID obtiene una pérdida por ID.
func (h *PerdidaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pérdida no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pérdida no encontrada"})
	}
	return c.JSON(out)
}

// List lista pérdidas. ?tipo=producto|insumo filtra por recurso.
func (h *PerdidaHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	items, err := h.uc.List(c.Query("tipo"), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(items), "perdidas": items})
}
