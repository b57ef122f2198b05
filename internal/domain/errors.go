package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInternal           = errors.New("error interno")
)

// Errores de autenticación. ErrUserNotFound también pertenece a esta familia:
// el token es válido pero la cuenta ya no existe.
var (
	ErrMissingToken = errors.New("token de autorización ausente")
	ErrInvalidToken = errors.New("token inválido")
	ErrExpiredToken = errors.New("token expirado")
)

// ErrPermissionResolution indica un fallo de infraestructura al calcular los permisos.
// No es una denegación de seguridad: el handler responde 503, no 401/403.
var ErrPermissionResolution = errors.New("no se pudieron obtener los permisos del usuario")

// IsAuthenticationError indica si err pertenece a la familia de errores de autenticación (401).
func IsAuthenticationError(err error) bool {
	return errors.Is(err, ErrMissingToken) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrExpiredToken) ||
		errors.Is(err, ErrUserNotFound)
}
