package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/negocify-api/internal/domain/entity"
	"github.com/jhoicas/negocify-api/pkg/metrics"
)

// LocalPrincipal clave de c.Locals donde queda el principal autenticado.
const LocalPrincipal = "principal"

// authenticator lo implementa *auth.Authenticator.
type authenticator interface {
	Authenticate(ctx context.Context, header string) (*entity.Principal, error)
}

// AuthMiddleware autentica la cabecera Authorization y deja el principal en c.Locals.
// 401 si el token falta, es inválido, expiró o el usuario ya no existe; 503 si no se pudieron
// calcular los permisos; 500 ante cualquier otro fallo.
func AuthMiddleware(gate authenticator, m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := gate.Authenticate(c.UserContext(), c.Get(fiber.HeaderAuthorization))
		m.ObserveAuth(err)
		if err != nil {
			return writeError(c, err)
		}
		c.Locals(LocalPrincipal, p)
		return c.Next()
	}
}

// GetPrincipal devuelve el principal del contexto (después de AuthMiddleware) o nil.
func GetPrincipal(c *fiber.Ctx) *entity.Principal {
	p, _ := c.Locals(LocalPrincipal).(*entity.Principal)
	return p
}
