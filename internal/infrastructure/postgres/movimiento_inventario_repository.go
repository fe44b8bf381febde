package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pos/internal/domain/entity"
	"github.com/tu-usuario/gestion-pos/internal/domain/repository"
)

var _ repository.MovimientoInventarioRepository = (*MovimientoInventarioRepo)(nil)

// MovimientoInventarioRepo implementación sobre PostgreSQL del libro de
// movimientos de productos terminados. Las filas se insertan con el tipo
// resuelto por clave contra la tabla de referencia y nunca se modifican.
type MovimientoInventarioRepo struct {
	q Querier
}

// NewMovimientoInventarioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovimientoInventarioRepository(q Querier) *MovimientoInventarioRepo {
	return &MovimientoInventarioRepo{q: q}
}

// Create persiste un movimiento de inventario. El tipo se resuelve por clave
// vía subquery; una clave inexistente viola el NOT NULL de tipo_id.
func (r *MovimientoInventarioRepo) Create(mov *entity.MovimientoInventario) error {
	query := `
		INSERT INTO movimientos_inventario (id, producto_id, tipo_id, cantidad, referencia_id, referencia_tipo, notas, creado_por, created_at)
		VALUES ($1, $2, (SELECT id FROM tipos_movimiento_inventario WHERE clave = $3), $4, NULLIF($5, ''), NULLIF($6, ''), $7, NULLIF($8, ''), $9)`
	_, err := r.q.Exec(context.Background(), query,
		mov.ID, mov.ProductoID, mov.TipoClave, mov.Cantidad,
		mov.ReferenciaID, mov.ReferenciaTipo, mov.Notas, mov.CreadoPor, mov.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movimiento inventario: %w", err)
	}
	return nil
}

const movInventarioSelect = `
	SELECT m.id, m.producto_id, t.clave, m.cantidad,
	       COALESCE(m.referencia_id::text, ''), COALESCE(m.referencia_tipo, ''),
	       m.notas, COALESCE(m.creado_por::text, ''), m.created_at
	FROM movimientos_inventario m
	JOIN tipos_movimiento_inventario t ON t.id = m.tipo_id`

// ListByProducto lista los movimientos de un producto, más recientes primero.
func (r *MovimientoInventarioRepo) ListByProducto(productoID string, limit, offset int) ([]*entity.MovimientoInventario, error) {
	query := movInventarioSelect + `
	WHERE m.producto_id = $1 ORDER BY m.created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productoID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movimientos producto: %w", err)
	}
	return scanMovimientosInventario(rows)
}

// ListByReferencia lista los movimientos anclados a una referencia de negocio.
func (r *MovimientoInventarioRepo) ListByReferencia(referenciaID, referenciaTipo string) ([]*entity.MovimientoInventario, error) {
	query := movInventarioSelect + `
	WHERE m.referencia_id = $1 AND m.referencia_tipo = $2 ORDER BY m.created_at`
	rows, err := r.q.Query(context.Background(), query, referenciaID, referenciaTipo)
	if err != nil {
		return nil, fmt.Errorf("list movimientos por referencia: %w", err)
	}
	return scanMovimientosInventario(rows)
}

// SumPorReferencia devuelve la suma con signo (entradas positivas, salidas
// negativas) de los movimientos del producto anclados a la referencia.
func (r *MovimientoInventarioRepo) SumPorReferencia(referenciaID, referenciaTipo, productoID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN t.clave = 'entrada' THEN m.cantidad ELSE -m.cantidad END), 0)
		FROM movimientos_inventario m
		JOIN tipos_movimiento_inventario t ON t.id = m.tipo_id
		WHERE m.referencia_id = $1 AND m.referencia_tipo = $2 AND m.producto_id = $3`
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, referenciaID, referenciaTipo, productoID).Scan(&sum)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("sum movimientos por referencia: %w", err)
	}
	return sum, nil
}

// SumPorReferenciaAgrupado devuelve la suma con signo por producto de todos
// los movimientos anclados a la referencia.
func (r *MovimientoInventarioRepo) SumPorReferenciaAgrupado(referenciaID, referenciaTipo string) (map[string]decimal.Decimal, error) {
	query := `
		SELECT m.producto_id,
		       COALESCE(SUM(CASE WHEN t.clave = 'entrada' THEN m.cantidad ELSE -m.cantidad END), 0)
		FROM movimientos_inventario m
		JOIN tipos_movimiento_inventario t ON t.id = m.tipo_id
		WHERE m.referencia_id = $1 AND m.referencia_tipo = $2
		GROUP BY m.producto_id`
	rows, err := r.q.Query(context.Background(), query, referenciaID, referenciaTipo)
	if err != nil {
		return nil, fmt.Errorf("sum agrupado por referencia: %w", err)
	}
	defer rows.Close()
	sumas := make(map[string]decimal.Decimal)
	for rows.Next() {
		var productoID string
		var sum decimal.Decimal
		if err := rows.Scan(&productoID, &sum); err != nil {
			return nil, fmt.Errorf("scan suma: %w", err)
		}
		sumas[productoID] = sum
	}
	return sumas, rows.Err()
}

func scanMovimientosInventario(rows pgx.Rows) ([]*entity.MovimientoInventario, error) {
	defer rows.Close()
	var list []*entity.MovimientoInventario
	for rows.Next() {
		var m entity.MovimientoInventario
		if err := rows.Scan(&m.ID, &m.ProductoID, &m.TipoClave, &m.Cantidad,
			&m.ReferenciaID, &m.ReferenciaTipo, &m.Notas, &m.CreadoPor, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movimiento inventario: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
