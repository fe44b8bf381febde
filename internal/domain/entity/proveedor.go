package entity

import "time"

// Proveedor representa un proveedor de insumos o mercadería.
type Proveedor struct {
	ID        string
	Nombre    string
	Contacto  string
	Telefono  string
	Email     string
	Direccion string
	Notas     string
	Activo    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
