package repository

import "github.com/tu-usuario/gestion-pos/internal/domain/entity"

// RecetaRepository define el puerto de persistencia para las líneas de
// receta de un producto. ListByProducto devuelve las líneas enriquecidas con
// nombre y stock actual del insumo (el catálogo y los motores las consumen
// así).
type RecetaRepository interface {
	ListByProducto(productoID string) ([]entity.RecetaLinea, error)
	Upsert(linea *entity.RecetaLinea) error
	Delete(id string) error
	DeleteByProducto(productoID string) error
}
