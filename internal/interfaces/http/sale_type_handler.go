package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/negocify-api/internal/application/dto"
	"github.com/jhoicas/negocify-api/internal/application/usecase"
)

// SaleTypeHandler tipos de venta / métodos de pago.
type SaleTypeHandler struct {
	uc *usecase.SaleTypeUseCase
}

// NewSaleTypeHandler construye el handler.
func NewSaleTypeHandler(uc *usecase.SaleTypeUseCase) *SaleTypeHandler {
	return &SaleTypeHandler{uc: uc}
}

// List godoc
// @Summary      Listar tipos de venta
// @Tags         sale-types
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SaleTypeResponse
// @Router       /api/tipos-venta [get]
func (h *SaleTypeHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener tipo de venta
// @Tags         sale-types
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del tipo de venta"
// @Success      200  {object}  dto.SaleTypeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tipos-venta/{id} [get]
func (h *SaleTypeHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "MISSING_ID", "id inválido")
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear tipo de venta
// @Tags         sale-types
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaleTypeRequest  true  "nombre y comisión"
// @Success      201   {object}  dto.SaleTypeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/tipos-venta [post]
func (h *SaleTypeHandler) Create(c *fiber.Ctx) error {
	var in dto.SaleTypeRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar tipo de venta
// @Tags         sale-types
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del tipo de venta"
// @Param        body  body  dto.SaleTypeRequest  true  "nombre y comisión"
// @Success      200   {object}  dto.SaleTypeResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/tipos-venta/{id} [put]
func (h *SaleTypeHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "MISSING_ID", "id inválido")
	}
	var in dto.SaleTypeRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetPrincipal(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar tipo de venta
// @Tags         sale-types
// @Security     Bearer
// @Param        id  path  int  true  "ID del tipo de venta"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/tipos-venta/{id} [delete]
func (h *SaleTypeHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "MISSING_ID", "id inválido")
	}
	if err := h.uc.Delete(c.UserContext(), GetPrincipal(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
