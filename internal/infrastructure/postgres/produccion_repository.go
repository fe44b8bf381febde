package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/gestion-pos/internal/domain/entity"
	"github.com/tu-usuario/gestion-pos/internal/domain/repository"
)

var _ repository.ProduccionRepository = (*ProduccionRepo)(nil)

// ProduccionRepo implementación del puerto ProduccionRepository sobre PostgreSQL.
type ProduccionRepo struct {
	q Querier
}

// NewProduccionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProduccionRepository(q Querier) *ProduccionRepo {
	return &ProduccionRepo{q: q}
}

// Create persiste la cabecera de la corrida de producción.
func (r *ProduccionRepo) Create(produccion *entity.Produccion) error {
	query := `
		INSERT INTO producciones (id, producto_id, cantidad, usuario, notas, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		produccion.ID, produccion.ProductoID, produccion.Cantidad,
		produccion.Usuario, produccion.Notas, produccion.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert produccion: %w", err)
	}
	return nil
}

// CreateInsumo persiste una fila del detalle de insumos consumidos.
func (r *ProduccionRepo) CreateInsumo(detalle *entity.ProduccionInsumo) error {
	query := `
		INSERT INTO produccion_insumos (id, produccion_id, insumo_id, cantidad)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		detalle.ID, detalle.ProduccionID, detalle.InsumoID, detalle.Cantidad,
	)
	if err != nil {
		return fmt.Errorf("insert produccion insumo: %w", err)
	}
	return nil
}

// GetByID obtiene una producción con su detalle de insumos (nil si no existe).
func (r *ProduccionRepo) GetByID(id string) (*entity.Produccion, error) {
	query := `
		SELECT id, producto_id, cantidad, COALESCE(usuario::text, ''), notas, created_at
		FROM producciones WHERE id = $1`
	var p entity.Produccion
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.ProductoID, &p.Cantidad, &p.Usuario, &p.Notas, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get produccion: %w", err)
	}
	detalle := `
		SELECT id, produccion_id, insumo_id, cantidad
		FROM produccion_insumos WHERE produccion_id = $1`
	rows, err := r.q.Query(context.Background(), detalle, id)
	if err != nil {
		return nil, fmt.Errorf("list produccion insumos: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d entity.ProduccionInsumo
		if err := rows.Scan(&d.ID, &d.ProduccionID, &d.InsumoID, &d.Cantidad); err != nil {
			return nil, fmt.Errorf("scan produccion insumo: %w", err)
		}
		p.Insumos = append(p.Insumos, d)
	}
	return &p, rows.Err()
}

// List lista corridas de producción, más recientes primero.
func (r *ProduccionRepo) List(limit, offset int) ([]*entity.Produccion, error) {
	query := `
		SELECT id, producto_id, cantidad, COALESCE(usuario::text, ''), notas, created_at
		FROM producciones ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list producciones: %w", err)
	}
	defer rows.Close()
	var list []*entity.Produccion
	for rows.Next() {
		var p entity.Produccion
		if err := rows.Scan(&p.ID, &p.ProductoID, &p.Cantidad, &p.Usuario, &p.Notas, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan produccion: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
