package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/gestion-pos/internal/domain"
	"github.com/tu-usuario/gestion-pos/internal/domain/entity"
	"github.com/tu-usuario/gestion-pos/internal/domain/repository"
)

var _ repository.RecetaRepository = (*RecetaRepo)(nil)

// RecetaRepo implementación del puerto RecetaRepository sobre PostgreSQL.
type RecetaRepo struct {
	q Querier
}

// NewRecetaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecetaRepository(q Querier) *RecetaRepo {
	return &RecetaRepo{q: q}
}

// ListByProducto devuelve las líneas de receta del producto enriquecidas con
// nombre y stock actual del insumo (JOIN con insumos).
func (r *RecetaRepo) ListByProducto(productoID string) ([]entity.RecetaLinea, error) {
	query := `
		SELECT r.id, r.producto_id, r.insumo_id, r.cantidad_por_unidad, r.obligatorio,
		       r.created_at, r.updated_at, i.nombre, i.stock
		FROM recetas r
		JOIN insumos i ON i.id = r.insumo_id
		WHERE r.producto_id = $1
		ORDER BY i.nombre`
	rows, err := r.q.Query(context.Background(), query, productoID)
	if err != nil {
		return nil, fmt.Errorf("list receta: %w", err)
	}
	defer rows.Close()
	var lineas []entity.RecetaLinea
	for rows.Next() {
		var l entity.RecetaLinea
		if err := rows.Scan(&l.ID, &l.ProductoID, &l.InsumoID, &l.CantidadPorUnidad,
			&l.Obligatorio, &l.CreatedAt, &l.UpdatedAt, &l.InsumoNombre, &l.InsumoStock); err != nil {
			return nil, fmt.Errorf("scan linea receta: %w", err)
		}
		lineas = append(lineas, l)
	}
	return lineas, rows.Err()
}

// Upsert inserta o actualiza la línea (producto, insumo) con la nueva
// cantidad y obligatoriedad.
func (r *RecetaRepo) Upsert(linea *entity.RecetaLinea) error {
	query := `
		INSERT INTO recetas (id, producto_id, insumo_id, cantidad_por_unidad, obligatorio, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (producto_id, insumo_id)
		DO UPDATE SET cantidad_por_unidad = EXCLUDED.cantidad_por_unidad,
		              obligatorio = EXCLUDED.obligatorio,
		              updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		linea.ID, linea.ProductoID, linea.InsumoID, linea.CantidadPorUnidad,
		linea.Obligatorio, linea.CreatedAt, linea.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert linea receta: %w", err)
	}
	return nil
}

// Delete elimina una línea de receta por ID.
func (r *RecetaRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM recetas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete linea receta: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByProducto elimina la receta completa de un producto.
func (r *RecetaRepo) DeleteByProducto(productoID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM recetas WHERE producto_id = $1`, productoID)
	if err != nil {
		return fmt.Errorf("delete receta: %w", err)
	}
	return nil
}
