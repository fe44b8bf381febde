package memory

import (
	"sync"

	"github.com/tu-usuario/gestion-pos/internal/domain"
	"github.com/tu-usuario/gestion-pos/internal/domain/entity"
)

// RecetaRepository guarda líneas de receta en memoria. ListByProducto
// enriquece cada línea con nombre y stock actual del insumo, igual que el
// JOIN de la implementación Postgres.
type RecetaRepository struct {
	mu      sync.Mutex
	lineas  []*entity.RecetaLinea
	insumos *InsumoRepository
}

// NewRecetaRepository construye el repositorio. Necesita el repositorio de
// insumos para enriquecer las lecturas.
func NewRecetaRepository(insumos *InsumoRepository) *RecetaRepository {
	return &RecetaRepository{insumos: insumos}
}

func (r *RecetaRepository) ListByProducto(productoID string) ([]entity.RecetaLinea, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]entity.RecetaLinea, 0)
	for _, l := range r.lineas {
		if l.ProductoID != productoID {
			continue
		}
		clone := *l
		if insumo, err := r.insumos.GetByID(l.InsumoID); err == nil && insumo != nil {
			clone.InsumoNombre = insumo.Nombre
			clone.InsumoStock = insumo.Stock
		}
		items = append(items, clone)
	}
	return items, nil
}

func (r *RecetaRepository) Upsert(linea *entity.RecetaLinea) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.lineas {
		if l.ProductoID == linea.ProductoID && l.InsumoID == linea.InsumoID {
			l.CantidadPorUnidad = linea.CantidadPorUnidad
			l.Obligatorio = linea.Obligatorio
			l.UpdatedAt = linea.UpdatedAt
			linea.ID = l.ID
			return nil
		}
	}
	clone := *linea
	r.lineas = append(r.lineas, &clone)
	return nil
}

func (r *RecetaRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.lineas {
		if l.ID == id {
			r.lineas = append(r.lineas[:i], r.lineas[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *RecetaRepository) DeleteByProducto(productoID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	restantes := r.lineas[:0]
	for _, l := range r.lineas {
		if l.ProductoID != productoID {
			restantes = append(restantes, l)
		}
	}
	r.lineas = restantes
	return nil
}
