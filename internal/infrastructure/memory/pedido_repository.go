package memory

import (
	"sync"

	"github.com/tu-usuario/gestion-pos/internal/domain"
	"github.com/tu-usuario/gestion-pos/internal/domain/entity"
)

// PedidoRepository guarda pedidos y sus líneas en memoria.
type PedidoRepository struct {
	mu      sync.Mutex
	pedidos map[string]*entity.Pedido
	orden   []string
	lineas  []*entity.PedidoLinea
}

// NewPedidoRepository construye el repositorio vacío.
func NewPedidoRepository() *PedidoRepository {
	return &PedidoRepository{pedidos: make(map[string]*entity.Pedido)}
}

func (r *PedidoRepository) Create(pedido *entity.Pedido) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pedidos[pedido.ID]; ok {
		return domain.ErrDuplicado
	}
	clone := *pedido
	clone.Lineas = nil
	r.pedidos[pedido.ID] = &clone
	r.orden = append(r.orden, pedido.ID)
	return nil
}

func (r *PedidoRepository) GetByID(id string) (*entity.Pedido, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pedidos[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	clone.Lineas = r.lineasDe(id)
	return &clone, nil
}

func (r *PedidoRepository) List(estadoClave string, limit, offset int) ([]*entity.Pedido, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]*entity.Pedido, 0, len(r.orden))
	for _, id := range r.orden {
		p := r.pedidos[id]
		if estadoClave != "" && p.EstadoClave != estadoClave {
			continue
		}
		clone := *p
		clone.Lineas = r.lineasDe(id)
		items = append(items, &clone)
	}
	return paginar(items, limit, offset), nil
}

func (r *PedidoRepository) UpdateEstado(id, estadoClave string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pedidos[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.EstadoClave = estadoClave
	return nil
}

func (r *PedidoRepository) CreateLinea(linea *entity.PedidoLinea) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *linea
	r.lineas = append(r.lineas, &clone)
	return nil
}

func (r *PedidoRepository) ListLineas(pedidoID string) ([]entity.PedidoLinea, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lineasDe(pedidoID), nil
}

func (r *PedidoRepository) DeleteLineas(pedidoID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	restantes := r.lineas[:0]
	for _, l := range r.lineas {
		if l.PedidoID != pedidoID {
			restantes = append(restantes, l)
		}
	}
	r.lineas = restantes
	return nil
}

// lineasDe se llama con el lock tomado.
func (r *PedidoRepository) lineasDe(pedidoID string) []entity.PedidoLinea {
	items := make([]entity.PedidoLinea, 0)
	for _, l := range r.lineas {
		if l.PedidoID == pedidoID {
			items = append(items, *l)
		}
	}
	return items
}
