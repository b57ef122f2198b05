package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/negocify-api/internal/application/dto"
	"github.com/jhoicas/negocify-api/internal/application/sales"
	"github.com/jhoicas/negocify-api/internal/domain"
)

// LocalError error no controlado de la petición; RequestLogger lo registra con el logger inyectado.
const LocalError = "error"

// writeError traduce los errores de dominio a status HTTP y cuerpo dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	status, code, msg := classify(err)
	if status == fiber.StatusInternalServerError {
		c.Locals(LocalError, err)
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, domain.ErrInternal):
		return fiber.StatusInternalServerError, "INTERNAL", "error interno del servidor"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN", "Sin permiso"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas"
	case errors.Is(err, domain.ErrMissingToken):
		return fiber.StatusUnauthorized, "MISSING_TOKEN", err.Error()
	case errors.Is(err, domain.ErrExpiredToken):
		return fiber.StatusUnauthorized, "EXPIRED_TOKEN", err.Error()
	case errors.Is(err, domain.ErrInvalidToken):
		return fiber.StatusUnauthorized, "INVALID_TOKEN", err.Error()
	case errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusUnauthorized, "USER_NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrPermissionResolution):
		return fiber.StatusServiceUnavailable, "PERMISSIONS_UNAVAILABLE", domain.ErrPermissionResolution.Error()
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, "EMAIL_EXISTS", err.Error()
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE", err.Error()
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT", err.Error()
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusBadRequest, "INSUFFICIENT_STOCK", err.Error()
	case errors.Is(err, sales.ErrNegativeNet):
		return fiber.StatusBadRequest, "NEGATIVE_NET", err.Error()
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION", err.Error()
	default:
		return fiber.StatusInternalServerError, "INTERNAL", "error interno del servidor"
	}
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func invalidBody(c *fiber.Ctx) error {
	return badRequest(c, "INVALID_BODY", "cuerpo inválido")
}
