package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/gestion-pos/internal/domain"
	"github.com/tu-usuario/gestion-pos/internal/domain/repository"
)

var _ repository.ReferenciaRepository = (*ReferenciaRepo)(nil)

// ReferenciaRepo resuelve claves semánticas contra las tablas de catálogo
// (tipos de movimiento y estados de pedido). Los motores lo usan para
// validar una clave antes de operar.
type ReferenciaRepo struct {
	q Querier
}

// NewReferenciaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReferenciaRepository(q Querier) *ReferenciaRepo {
	return &ReferenciaRepo{q: q}
}

// TipoMovimientoInventarioID devuelve el id del tipo de movimiento de
// producto para la clave dada.
func (r *ReferenciaRepo) TipoMovimientoInventarioID(clave string) (string, error) {
	return r.idPorClave("tipos_movimiento_inventario", clave)
}

// TipoMovimientoInsumoID devuelve el id del tipo de movimiento de insumo
// para la clave dada.
func (r *ReferenciaRepo) TipoMovimientoInsumoID(clave string) (string, error) {
	return r.idPorClave("tipos_movimiento_insumo", clave)
}

// EstadoPedidoID devuelve el id del estado de pedido para la clave dada.
func (r *ReferenciaRepo) EstadoPedidoID(clave string) (string, error) {
	return r.idPorClave("estados_pedido", clave)
}

func (r *ReferenciaRepo) idPorClave(tabla, clave string) (string, error) {
	// tabla viene de los tres métodos de arriba, nunca de input externo
	query := fmt.Sprintf(`SELECT id FROM %s WHERE clave = $1`, tabla)
	var id string
	err := r.q.QueryRow(context.Background(), query, clave).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("clave %q: %w", clave, domain.ErrNotFound)
		}
		return "", fmt.Errorf("resolver clave %q: %w", clave, err)
	}
	return id, nil
}
