package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorCampo describe una violación de validación sobre un campo del request.
type ErrorCampo struct {
	Campo string `json:"campo"`
	Regla string `json:"regla"`
	Valor string `json:"valor,omitempty"`
}

var validate = validator.New()

// ValidateStruct valida los tags `validate` de un struct y devuelve la lista
// de violaciones (nil si todo es válido).
func ValidateStruct(data interface{}) []ErrorCampo {
	var errores []ErrorCampo
	if err := validate.Struct(data); err != nil {
		for _, ve := range err.(validator.ValidationErrors) {
			errores = append(errores, ErrorCampo{
				Campo: ve.StructNamespace(),
				Regla: ve.Tag(),
				Valor: ve.Param(),
			})
		}
	}
	return errores
}

// Resumen aplana las violaciones en un mensaje legible para respuestas HTTP.
func Resumen(errores []ErrorCampo) string {
	partes := make([]string, 0, len(errores))
	for _, e := range errores {
		if e.Valor != "" {
			partes = append(partes, fmt.Sprintf("%s: %s=%s", e.Campo, e.Regla, e.Valor))
		} else {
			partes = append(partes, fmt.Sprintf("%s: %s", e.Campo, e.Regla))
		}
	}
	return strings.Join(partes, "; ")
}
