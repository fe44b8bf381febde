package memory

import (
	"sync"

	"github.com/tu-usuario/gestion-pos/internal/domain"
	"github.com/tu-usuario/gestion-pos/internal/domain/entity"
)

// ProduccionRepository guarda corridas de producción en memoria.
type ProduccionRepository struct {
	mu       sync.Mutex
	corridas map[string]*entity.Produccion
	orden    []string
	detalles []*entity.ProduccionInsumo
}

// NewProduccionRepository construye el repositorio vacío.
func NewProduccionRepository() *ProduccionRepository {
	return &ProduccionRepository{corridas: make(map[string]*entity.Produccion)}
}

func (r *ProduccionRepository) Create(produccion *entity.Produccion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.corridas[produccion.ID]; ok {
		return domain.ErrDuplicado
	}
	clone := *produccion
	clone.Insumos = nil
	r.corridas[produccion.ID] = &clone
	r.orden = append(r.orden, produccion.ID)
	return nil
}

func (r *ProduccionRepository) CreateInsumo(detalle *entity.ProduccionInsumo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *detalle
	r.detalles = append(r.detalles, &clone)
	return nil
}

func (r *ProduccionRepository) GetByID(id string) (*entity.Produccion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.corridas[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	clone.Insumos = r.detallesDe(id)
	return &clone, nil
}

func (r *ProduccionRepository) List(limit, offset int) ([]*entity.Produccion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]*entity.Produccion, 0, len(r.orden))
	for _, id := range r.orden {
		clone := *r.corridas[id]
		clone.Insumos = r.detallesDe(id)
		items = append(items, &clone)
	}
	return paginar(items, limit, offset), nil
}

// detallesDe se llama con el lock tomado.
func (r *ProduccionRepository) detallesDe(produccionID string) []entity.ProduccionInsumo {
	items := make([]entity.ProduccionInsumo, 0)
	for _, d := range r.detalles {
		if d.ProduccionID == produccionID {
			items = append(items, *d)
		}
	}
	return items
}
