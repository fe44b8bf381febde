package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/gestion-pos/internal/domain"
	"github.com/tu-usuario/gestion-pos/internal/domain/entity"
	"github.com/tu-usuario/gestion-pos/internal/domain/repository"
)

var _ repository.PerdidaRepository = (*PerdidaRepo)(nil)

// PerdidaRepo implementación del puerto PerdidaRepository sobre PostgreSQL.
type PerdidaRepo struct {
	q Querier
}

// NewPerdidaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPerdidaRepository(q Querier) *PerdidaRepo {
	return &PerdidaRepo{q: q}
}

// Create persiste una nueva pérdida.
func (r *PerdidaRepo) Create(perdida *entity.Perdida) error {
	query := `
		INSERT INTO perdidas (id, tipo, producto_id, insumo_id, cantidad, valor_unitario, valor_total, motivo, usuario, fecha, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7, $8, NULLIF($9, ''), $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		perdida.ID, perdida.Tipo, perdida.ProductoID, perdida.InsumoID,
		perdida.Cantidad, perdida.ValorUnitario, perdida.ValorTotal,
		perdida.Motivo, perdida.Usuario, perdida.Fecha, perdida.CreatedAt, perdida.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert perdida: %w", err)
	}
	return nil
}

const perdidaSelect = `
	SELECT id, tipo, COALESCE(producto_id::text, ''), COALESCE(insumo_id::text, ''),
	       cantidad, valor_unitario, valor_total, motivo, COALESCE(usuario::text, ''),
	       fecha, created_at, updated_at
	FROM perdidas`

// GetByID obtiene una pérdida por ID (nil si no existe).
func (r *PerdidaRepo) GetByID(id string) (*entity.Perdida, error) {
	var p entity.Perdida
	err := r.q.QueryRow(context.Background(), perdidaSelect+` WHERE id = $1`, id).Scan(
		&p.ID, &p.Tipo, &p.ProductoID, &p.InsumoID, &p.Cantidad, &p.ValorUnitario,
		&p.ValorTotal, &p.Motivo, &p.Usuario, &p.Fecha, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get perdida: %w", err)
	}
	return &p, nil
}

// List lista pérdidas, más recientes primero. Con tipo no vacío filtra por
// producto o insumo.
func (r *PerdidaRepo) List(tipo string, limit, offset int) ([]*entity.Perdida, error) {
	query := perdidaSelect + `
	WHERE ($1 = '' OR tipo = $1)
	ORDER BY fecha DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, tipo, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list perdidas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Perdida
	for rows.Next() {
		var p entity.Perdida
		if err := rows.Scan(&p.ID, &p.Tipo, &p.ProductoID, &p.InsumoID, &p.Cantidad,
			&p.ValorUnitario, &p.ValorTotal, &p.Motivo, &p.Usuario, &p.Fecha,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan perdida: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza una pérdida existente. Tipo y recurso no cambian.
func (r *PerdidaRepo) Update(perdida *entity.Perdida) error {
	query := `
		UPDATE perdidas SET cantidad = $2, valor_unitario = $3, valor_total = $4, motivo = $5, fecha = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		perdida.ID, perdida.Cantidad, perdida.ValorUnitario, perdida.ValorTotal,
		perdida.Motivo, perdida.Fecha, perdida.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update perdida: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una pérdida por ID.
func (r *PerdidaRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM perdidas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete perdida: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
