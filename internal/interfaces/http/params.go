package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/negocify-api/internal/domain/entity"
	"github.com/jhoicas/negocify-api/pkg/validation"
)

// paramID id canónico del parámetro de ruta name.
func paramID(c *fiber.Ctx, name string) (entity.ID, bool) {
	id, err := entity.ParseID(c.Params(name))
	return id, err == nil
}

// queryID id opcional de query; 0 si no viene. ok=false si viene pero no es válido.
func queryID(c *fiber.Ctx, name string) (entity.ID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	id, err := entity.ParseID(raw)
	return id, err == nil
}

// parseBody decodifica y valida el cuerpo; si falla ya escribió la respuesta 400.
func parseBody(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, invalidBody(c)
	}
	if msg, ok := validation.Struct(out); !ok {
		return false, badRequest(c, "VALIDATION", msg)
	}
	return true, nil
}
