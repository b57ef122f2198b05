package entity

import "time"

// User usuario del sistema. Sus permisos no viven aquí: se derivan de UserRoleWarehouse
// y SystemAdministrator en cada petición.
type User struct {
	ID           ID
	Name         string // nombre
	Surname      string // apellido
	Email        string
	PasswordHash string // bcrypt; nunca se expone fuera del repositorio de identidad
	Phone        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Sanitized devuelve una copia sin el hash de contraseña.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}
