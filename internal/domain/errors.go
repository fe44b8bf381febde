package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUsuarioNotFound   = errors.New("usuario no encontrado")
	ErrEmailYaRegistrado = errors.New("el email ya está registrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicado         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrStockInsuficiente = errors.New("stock insuficiente")
	ErrSinReceta         = errors.New("el producto no tiene receta definida")
)
