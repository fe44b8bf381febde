package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/gestion-pos/internal/domain/entity"
	"github.com/tu-usuario/gestion-pos/internal/domain/repository"
)

var _ repository.VentaRepository = (*VentaRepo)(nil)

// VentaRepo implementación del puerto VentaRepository sobre PostgreSQL.
type VentaRepo struct {
	q Querier
}

// NewVentaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVentaRepository(q Querier) *VentaRepo {
	return &VentaRepo{q: q}
}

// Create persiste la cabecera de la venta.
func (r *VentaRepo) Create(venta *entity.Venta) error {
	query := `
		INSERT INTO ventas (id, cliente_id, total, metodo_pago, usuario, fecha, created_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, NULLIF($5, ''), $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		venta.ID, venta.ClienteID, venta.Total, venta.MetodoPago,
		venta.Usuario, venta.Fecha, venta.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert venta: %w", err)
	}
	return nil
}

// CreateDetalle persiste una línea del carrito.
func (r *VentaRepo) CreateDetalle(detalle *entity.VentaDetalle) error {
	query := `
		INSERT INTO venta_detalles (id, venta_id, producto_id, cantidad, precio_unitario, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		detalle.ID, detalle.VentaID, detalle.ProductoID, detalle.Cantidad,
		detalle.PrecioUnitario, detalle.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert detalle venta: %w", err)
	}
	return nil
}

// GetByID obtiene una venta con su detalle (nil si no existe).
func (r *VentaRepo) GetByID(id string) (*entity.Venta, error) {
	query := `
		SELECT id, COALESCE(cliente_id::text, ''), total, metodo_pago, COALESCE(usuario::text, ''), fecha, created_at
		FROM ventas WHERE id = $1`
	var v entity.Venta
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&v.ID, &v.ClienteID, &v.Total, &v.MetodoPago, &v.Usuario, &v.Fecha, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venta: %w", err)
	}
	detalle := `
		SELECT id, venta_id, producto_id, cantidad, precio_unitario, subtotal
		FROM venta_detalles WHERE venta_id = $1`
	rows, err := r.q.Query(context.Background(), detalle, id)
	if err != nil {
		return nil, fmt.Errorf("list detalles venta: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d entity.VentaDetalle
		if err := rows.Scan(&d.ID, &d.VentaID, &d.ProductoID, &d.Cantidad,
			&d.PrecioUnitario, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("scan detalle venta: %w", err)
		}
		v.Detalles = append(v.Detalles, d)
	}
	return &v, rows.Err()
}

// List lista ventas, más recientes primero.
func (r *VentaRepo) List(limit, offset int) ([]*entity.Venta, error) {
	query := `
		SELECT id, COALESCE(cliente_id::text, ''), total, metodo_pago, COALESCE(usuario::text, ''), fecha, created_at
		FROM ventas ORDER BY fecha DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ventas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Venta
	for rows.Next() {
		var v entity.Venta
		if err := rows.Scan(&v.ID, &v.ClienteID, &v.Total, &v.MetodoPago, &v.Usuario,
			&v.Fecha, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan venta: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
