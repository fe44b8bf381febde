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

var _ repository.PedidoRepository = (*PedidoRepo)(nil)

// PedidoRepo implementación del puerto PedidoRepository sobre PostgreSQL.
// El estado se persiste como FK a estados_pedido y se expone por clave.
type PedidoRepo struct {
	q Querier
}

// NewPedidoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPedidoRepository(q Querier) *PedidoRepo {
	return &PedidoRepo{q: q}
}

// Create persiste el pedido (solo la cabecera; las líneas van por CreateLinea).
func (r *PedidoRepo) Create(pedido *entity.Pedido) error {
	query := `
		INSERT INTO pedidos (id, cliente_id, estado_id, fecha_pedido, fecha_entrega, notas, created_at, updated_at)
		VALUES ($1, NULLIF($2, ''), (SELECT id FROM estados_pedido WHERE clave = $3), $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		pedido.ID, pedido.ClienteID, pedido.EstadoClave, pedido.FechaPedido,
		pedido.FechaEntrega, pedido.Notas, pedido.CreatedAt, pedido.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pedido: %w", err)
	}
	return nil
}

const pedidoSelect = `
	SELECT p.id, COALESCE(p.cliente_id::text, ''), e.clave, p.fecha_pedido, p.fecha_entrega,
	       p.notas, p.created_at, p.updated_at
	FROM pedidos p
	JOIN estados_pedido e ON e.id = p.estado_id`

// GetByID obtiene un pedido con sus líneas (nil si no existe).
func (r *PedidoRepo) GetByID(id string) (*entity.Pedido, error) {
	var p entity.Pedido
	err := r.q.QueryRow(context.Background(), pedidoSelect+` WHERE p.id = $1`, id).Scan(
		&p.ID, &p.ClienteID, &p.EstadoClave, &p.FechaPedido, &p.FechaEntrega,
		&p.Notas, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pedido: %w", err)
	}
	lineas, err := r.ListLineas(p.ID)
	if err != nil {
		return nil, err
	}
	p.Lineas = lineas
	return &p, nil
}

// List lista pedidos con paginación. Con estadoClave no vacío filtra por estado.
func (r *PedidoRepo) List(estadoClave string, limit, offset int) ([]*entity.Pedido, error) {
	query := pedidoSelect + `
	WHERE ($1 = '' OR e.clave = $1)
	ORDER BY p.fecha_pedido DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, estadoClave, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list pedidos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Pedido
	for rows.Next() {
		var p entity.Pedido
		if err := rows.Scan(&p.ID, &p.ClienteID, &p.EstadoClave, &p.FechaPedido,
			&p.FechaEntrega, &p.Notas, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan pedido: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// UpdateEstado transiciona el estado del pedido por clave.
func (r *PedidoRepo) UpdateEstado(id, estadoClave string) error {
	query := `
		UPDATE pedidos SET estado_id = (SELECT id FROM estados_pedido WHERE clave = $2), updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, id, estadoClave)
	if err != nil {
		return fmt.Errorf("update estado pedido: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreateLinea persiste una línea del pedido.
func (r *PedidoRepo) CreateLinea(linea *entity.PedidoLinea) error {
	query := `
		INSERT INTO pedido_lineas (id, pedido_id, producto_id, cantidad, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		linea.ID, linea.PedidoID, linea.ProductoID, linea.Cantidad, linea.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert linea pedido: %w", err)
	}
	return nil
}

// ListLineas devuelve las líneas del pedido.
func (r *PedidoRepo) ListLineas(pedidoID string) ([]entity.PedidoLinea, error) {
	query := `
		SELECT id, pedido_id, producto_id, cantidad, created_at
		FROM pedido_lineas WHERE pedido_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, pedidoID)
	if err != nil {
		return nil, fmt.Errorf("list lineas pedido: %w", err)
	}
	defer rows.Close()
	var lineas []entity.PedidoLinea
	for rows.Next() {
		var l entity.PedidoLinea
		if err := rows.Scan(&l.ID, &l.PedidoID, &l.ProductoID, &l.Cantidad, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan linea pedido: %w", err)
		}
		lineas = append(lineas, l)
	}
	return lineas, rows.Err()
}

// DeleteLineas elimina todas las líneas del pedido (el ajuste las reemplaza
// al por mayor).
func (r *PedidoRepo) DeleteLineas(pedidoID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM pedido_lineas WHERE pedido_id = $1`, pedidoID)
	if err != nil {
		return fmt.Errorf("delete lineas pedido: %w", err)
	}
	return nil
}
