package entity

// Nombres canónicos de rol. La comparación es exacta y sensible a mayúsculas.
const (
	RoleAdministrador = "administrador"
	RoleEmpleado      = "empleado"

	// RoleSystemAdmin rol sintético asignado a todos los almacenes de un administrador del sistema.
	RoleSystemAdmin = "Administrador Sistema"
	// RoleSystemAdminID id centinela: no corresponde a ninguna fila de rol.
	RoleSystemAdminID ID = -1
)

// Role nivel de permiso con nombre; solo tiene sentido junto a un almacén.
type Role struct {
	ID   ID
	Name string
}
