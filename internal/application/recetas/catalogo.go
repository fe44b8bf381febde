package recetas

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pos/internal/domain/entity"
	"github.com/tu-usuario/gestion-pos/internal/domain/inventario"
	"github.com/tu-usuario/gestion-pos/internal/domain/repository"
)

// CatalogoRecetas expone la lista de materiales de cada producto y la
// derivación "unidades producibles con el stock actual de insumos". Los
// motores de reserva y producción solo leen recetas; la edición es CRUD
// plano (RecetaUseCase).
type CatalogoRecetas struct {
	recetaRepo repository.RecetaRepository
}

// NewCatalogoRecetas construye el catálogo.
func NewCatalogoRecetas(recetaRepo repository.RecetaRepository) *CatalogoRecetas {
	return &CatalogoRecetas{recetaRepo: recetaRepo}
}

// PorProducto devuelve las líneas de receta del producto, enriquecidas con
// nombre y stock actual de cada insumo. Sin receta devuelve lista vacía, no
// error.
func (c *CatalogoRecetas) PorProducto(productoID string) ([]entity.RecetaLinea, error) {
	return c.recetaRepo.ListByProducto(productoID)
}

// UnidadesProducibles calcula cuántas unidades enteras del producto alcanza
// a producir el stock actual de insumos. Producto sin receta produce cero.
func (c *CatalogoRecetas) UnidadesProducibles(productoID string) (decimal.Decimal, error) {
	lineas, err := c.recetaRepo.ListByProducto(productoID)
	if err != nil {
		return decimal.Zero, err
	}
	return inventario.UnidadesProducibles(lineas), nil
}
