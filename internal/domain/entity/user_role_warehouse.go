package entity

import "time"

// UserRoleWarehouse asociación ternaria usuario ↔ rol ↔ almacén.
// Un usuario tiene como máximo un rol por almacén (UNIQUE usuario_id, almacen_id).
type UserRoleWarehouse struct {
	ID          ID
	UserID      ID
	WarehouseID ID
	RoleID      ID
}

// SystemAdministrator marca de administrador del sistema (a lo sumo una por usuario).
type SystemAdministrator struct {
	ID        ID
	UserID    ID
	CreatedAt time.Time
}

// AccessRow fila de la consulta usuario_rol_almacen LEFT JOIN almacen, rol.
// WarehouseName/RoleName nil indican una relación colgante (FK huérfana).
type AccessRow struct {
	JoinID           ID
	WarehouseID      ID
	WarehouseName    *string
	WarehouseAddress *string
	RoleID           ID
	RoleName         *string
}
