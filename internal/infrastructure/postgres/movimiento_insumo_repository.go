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

var _ repository.MovimientoInsumoRepository = (*MovimientoInsumoRepo)(nil)

// MovimientoInsumoRepo implementación sobre PostgreSQL del libro de
// movimientos de insumos. Mismo esquema que el de productos pero con más
// tipos (consumo, perdida, ajuste).
type MovimientoInsumoRepo struct {
	q Querier
}

// NewMovimientoInsumoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovimientoInsumoRepository(q Querier) *MovimientoInsumoRepo {
	return &MovimientoInsumoRepo{q: q}
}

// Create persiste un movimiento de insumo.
func (r *MovimientoInsumoRepo) Create(mov *entity.MovimientoInsumo) error {
	query := `
		INSERT INTO movimientos_insumo (id, insumo_id, tipo_id, cantidad, referencia_id, referencia_tipo, notas, creado_por, created_at)
		VALUES ($1, $2, (SELECT id FROM tipos_movimiento_insumo WHERE clave = $3), $4, NULLIF($5, ''), NULLIF($6, ''), $7, NULLIF($8, ''), $9)`
	_, err := r.q.Exec(context.Background(), query,
		mov.ID, mov.InsumoID, mov.TipoClave, mov.Cantidad,
		mov.ReferenciaID, mov.ReferenciaTipo, mov.Notas, mov.CreadoPor, mov.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movimiento insumo: %w", err)
	}
	return nil
}

const movInsumoSelect = `
	SELECT m.id, m.insumo_id, t.clave, m.cantidad,
	       COALESCE(m.referencia_id::text, ''), COALESCE(m.referencia_tipo, ''),
	       m.notas, COALESCE(m.creado_por::text, ''), m.created_at
	FROM movimientos_insumo m
	JOIN tipos_movimiento_insumo t ON t.id = m.tipo_id`

// ListByInsumo lista los movimientos de un insumo, más recientes primero.
func (r *MovimientoInsumoRepo) ListByInsumo(insumoID string, limit, offset int) ([]*entity.MovimientoInsumo, error) {
	query := movInsumoSelect + `
	WHERE m.insumo_id = $1 ORDER BY m.created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, insumoID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movimientos insumo: %w", err)
	}
	return scanMovimientosInsumo(rows)
}

// ListByReferencia lista los movimientos anclados a una referencia de negocio.
func (r *MovimientoInsumoRepo) ListByReferencia(referenciaID, referenciaTipo string) ([]*entity.MovimientoInsumo, error) {
	query := movInsumoSelect + `
	WHERE m.referencia_id = $1 AND m.referencia_tipo = $2 ORDER BY m.created_at`
	rows, err := r.q.Query(context.Background(), query, referenciaID, referenciaTipo)
	if err != nil {
		return nil, fmt.Errorf("list movimientos por referencia: %w", err)
	}
	return scanMovimientosInsumo(rows)
}

// SumPorReferencia devuelve la suma con signo de los movimientos del insumo
// anclados a la referencia (entrada y ajuste suman, el resto resta).
func (r *MovimientoInsumoRepo) SumPorReferencia(referenciaID, referenciaTipo, insumoID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN t.clave IN ('entrada', 'ajuste') THEN m.cantidad ELSE -m.cantidad END), 0)
		FROM movimientos_insumo m
		JOIN tipos_movimiento_insumo t ON t.id = m.tipo_id
		WHERE m.referencia_id = $1 AND m.referencia_tipo = $2 AND m.insumo_id = $3`
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, referenciaID, referenciaTipo, insumoID).Scan(&sum)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("sum movimientos por referencia: %w", err)
	}
	return sum, nil
}

// SumPorReferenciaAgrupado devuelve la suma con signo por insumo de todos
// los movimientos anclados a la referencia.
func (r *MovimientoInsumoRepo) SumPorReferenciaAgrupado(referenciaID, referenciaTipo string) (map[string]decimal.Decimal, error) {
	query := `
		SELECT m.insumo_id,
		       COALESCE(SUM(CASE WHEN t.clave IN ('entrada', 'ajuste') THEN m.cantidad ELSE -m.cantidad END), 0)
		FROM movimientos_insumo m
		JOIN tipos_movimiento_insumo t ON t.id = m.tipo_id
		WHERE m.referencia_id = $1 AND m.referencia_tipo = $2
		GROUP BY m.insumo_id`
	rows, err := r.q.Query(context.Background(), query, referenciaID, referenciaTipo)
	if err != nil {
		return nil, fmt.Errorf("sum agrupado por referencia: %w", err)
	}
	defer rows.Close()
	sumas := make(map[string]decimal.Decimal)
	for rows.Next() {
		var insumoID string
		var sum decimal.Decimal
		if err := rows.Scan(&insumoID, &sum); err != nil {
			return nil, fmt.Errorf("scan suma: %w", err)
		}
		sumas[insumoID] = sum
	}
	return sumas, rows.Err()
}

func scanMovimientosInsumo(rows pgx.Rows) ([]*entity.MovimientoInsumo, error) {
	defer rows.Close()
	var list []*entity.MovimientoInsumo
	for rows.Next() {
		var m entity.MovimientoInsumo
		if err := rows.Scan(&m.ID, &m.InsumoID, &m.TipoClave, &m.Cantidad,
			&m.ReferenciaID, &m.ReferenciaTipo, &m.Notas, &m.CreadoPor, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movimiento insumo: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
