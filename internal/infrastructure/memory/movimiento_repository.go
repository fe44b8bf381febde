package memory

import (
	"sync"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pos/internal/domain/entity"
)

// MovimientoInventarioRepository guarda el libro de movimientos de productos
// en memoria (filas inmutables, en orden de inserción).
type MovimientoInventarioRepository struct {
	mu   sync.Mutex
	movs []*entity.MovimientoInventario
}

// NewMovimientoInventarioRepository construye el libro vacío.
func NewMovimientoInventarioRepository() *MovimientoInventarioRepository {
	return &MovimientoInventarioRepository{}
}

func (r *MovimientoInventarioRepository) Create(mov *entity.MovimientoInventario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *mov
	r.movs = append(r.movs, &clone)
	return nil
}

func (r *MovimientoInventarioRepository) ListByProducto(productoID string, limit, offset int) ([]*entity.MovimientoInventario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]*entity.MovimientoInventario, 0)
	// Más recientes primero, como el ORDER BY created_at DESC de Postgres.
	for i := len(r.movs) - 1; i >= 0; i-- {
		if r.movs[i].ProductoID == productoID {
			clone := *r.movs[i]
			items = append(items, &clone)
		}
	}
	return paginar(items, limit, offset), nil
}

func (r *MovimientoInventarioRepository) ListByReferencia(referenciaID, referenciaTipo string) ([]*entity.MovimientoInventario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]*entity.MovimientoInventario, 0)
	for _, m := range r.movs {
		if m.ReferenciaID == referenciaID && m.ReferenciaTipo == referenciaTipo {
			clone := *m
			items = append(items, &clone)
		}
	}
	return items, nil
}

func (r *MovimientoInventarioRepository) SumPorReferencia(referenciaID, referenciaTipo, productoID string) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	suma := decimal.Zero
	for _, m := range r.movs {
		if m.ReferenciaID != referenciaID || m.ReferenciaTipo != referenciaTipo || m.ProductoID != productoID {
			continue
		}
		suma = suma.Add(conSigno(m.TipoClave, m.Cantidad))
	}
	return suma, nil
}

func (r *MovimientoInventarioRepository) SumPorReferenciaAgrupado(referenciaID, referenciaTipo string) (map[string]decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sumas := make(map[string]decimal.Decimal)
	for _, m := range r.movs {
		if m.ReferenciaID != referenciaID || m.ReferenciaTipo != referenciaTipo {
			continue
		}
		sumas[m.ProductoID] = sumas[m.ProductoID].Add(conSigno(m.TipoClave, m.Cantidad))
	}
	return sumas, nil
}

// MovimientoInsumoRepository es el libro equivalente para insumos.
type MovimientoInsumoRepository struct {
	mu   sync.Mutex
	movs []*entity.MovimientoInsumo
}

// NewMovimientoInsumoRepository construye el libro vacío.
func NewMovimientoInsumoRepository() *MovimientoInsumoRepository {
	return &MovimientoInsumoRepository{}
}

func (r *MovimientoInsumoRepository) Create(mov *entity.MovimientoInsumo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *mov
	r.movs = append(r.movs, &clone)
	return nil
}

func (r *MovimientoInsumoRepository) ListByInsumo(insumoID string, limit, offset int) ([]*entity.MovimientoInsumo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]*entity.MovimientoInsumo, 0)
	for i := len(r.movs) - 1; i >= 0; i-- {
		if r.movs[i].InsumoID == insumoID {
			clone := *r.movs[i]
			items = append(items, &clone)
		}
	}
	return paginar(items, limit, offset), nil
}

func (r *MovimientoInsumoRepository) ListByReferencia(referenciaID, referenciaTipo string) ([]*entity.MovimientoInsumo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]*entity.MovimientoInsumo, 0)
	for _, m := range r.movs {
		if m.ReferenciaID == referenciaID && m.ReferenciaTipo == referenciaTipo {
			clone := *m
			items = append(items, &clone)
		}
	}
	return items, nil
}

func (r *MovimientoInsumoRepository) SumPorReferencia(referenciaID, referenciaTipo, insumoID string) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	suma := decimal.Zero
	for _, m := range r.movs {
		if m.ReferenciaID != referenciaID || m.ReferenciaTipo != referenciaTipo || m.InsumoID != insumoID {
			continue
		}
		suma = suma.Add(conSigno(m.TipoClave, m.Cantidad))
	}
	return suma, nil
}

func (r *MovimientoInsumoRepository) SumPorReferenciaAgrupado(referenciaID, referenciaTipo string) (map[string]decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sumas := make(map[string]decimal.Decimal)
	for _, m := range r.movs {
		if m.ReferenciaID != referenciaID || m.ReferenciaTipo != referenciaTipo {
			continue
		}
		sumas[m.InsumoID] = sumas[m.InsumoID].Add(conSigno(m.TipoClave, m.Cantidad))
	}
	return sumas, nil
}

func conSigno(tipoClave string, cantidad decimal.Decimal) decimal.Decimal {
	if entity.DireccionDeClave(tipoClave) < 0 {
		return cantidad.Neg()
	}
	return cantidad
}
