package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pos/internal/domain"
	"github.com/tu-usuario/gestion-pos/internal/domain/entity"
	"github.com/tu-usuario/gestion-pos/internal/domain/repository"
)

var _ repository.InsumoRepository = (*InsumoRepo)(nil)

// InsumoRepo implementación del puerto InsumoRepository sobre PostgreSQL.
type InsumoRepo struct {
	q Querier
}

// NewInsumoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInsumoRepository(q Querier) *InsumoRepo {
	return &InsumoRepo{q: q}
}

// Create persiste un nuevo insumo. proveedor_id se guarda NULL si viene vacío.
func (r *InsumoRepo) Create(insumo *entity.Insumo) error {
	query := `
		INSERT INTO insumos (id, nombre, stock, stock_minimo, unidad_medida, costo_unitario, proveedor_id, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		insumo.ID, insumo.Nombre, insumo.Stock, insumo.StockMinimo, insumo.UnidadMedida,
		insumo.CostoUnitario, insumo.ProveedorID, insumo.Activo, insumo.CreatedAt, insumo.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert insumo: %w", err)
	}
	return nil
}

// GetByID obtiene un insumo por ID (nil si no existe).
func (r *InsumoRepo) GetByID(id string) (*entity.Insumo, error) {
	query := `
		SELECT id, nombre, stock, stock_minimo, unidad_medida, costo_unitario, COALESCE(proveedor_id::text, ''), activo, created_at, updated_at
		FROM insumos WHERE id = $1`
	var i entity.Insumo
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&i.ID, &i.Nombre, &i.Stock, &i.StockMinimo, &i.UnidadMedida,
		&i.CostoUnitario, &i.ProveedorID, &i.Activo, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get insumo: %w", err)
	}
	return &i, nil
}

// List lista insumos con paginación. Con soloActivos filtra bajas lógicas.
func (r *InsumoRepo) List(soloActivos bool, limit, offset int) ([]*entity.Insumo, error) {
	query := `
		SELECT id, nombre, stock, stock_minimo, unidad_medida, costo_unitario, COALESCE(proveedor_id::text, ''), activo, created_at, updated_at
		FROM insumos WHERE ($1 = false OR activo = true)
		ORDER BY nombre LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, soloActivos, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list insumos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Insumo
	for rows.Next() {
		var i entity.Insumo
		if err := rows.Scan(&i.ID, &i.Nombre, &i.Stock, &i.StockMinimo, &i.UnidadMedida,
			&i.CostoUnitario, &i.ProveedorID, &i.Activo, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan insumo: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

// Update actualiza un insumo existente. No toca Stock (se maneja vía movimientos).
func (r *InsumoRepo) Update(insumo *entity.Insumo) error {
	query := `
		UPDATE insumos SET nombre = $2, stock_minimo = $3, unidad_medida = $4, costo_unitario = $5, proveedor_id = NULLIF($6, ''), updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		insumo.ID, insumo.Nombre, insumo.StockMinimo, insumo.UnidadMedida,
		insumo.CostoUnitario, insumo.ProveedorID, insumo.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update insumo: %w", err)
	}
	return nil
}

// UpdateStock actualiza solo el contador de stock (usado por el libro de movimientos).
func (r *InsumoRepo) UpdateStock(id string, stock decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE insumos SET stock = $2, updated_at = now() WHERE id = $1`,
		id, stock,
	)
	if err != nil {
		return fmt.Errorf("update stock insumo: %w", err)
	}
	return nil
}

// Desactivar marca el insumo como inactivo (baja lógica).
func (r *InsumoRepo) Desactivar(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE insumos SET activo = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("desactivar insumo: %w", err)
	}
	return nil
}
