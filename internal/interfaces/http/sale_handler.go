package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/negocify-api/internal/application/dto"
	"github.com/jhoicas/negocify-api/internal/application/sales"
)

// SaleHandler ventas y reportes de ventas (protegido).
type SaleHandler struct {
	uc *sales.UseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.UseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar venta y descontar stock
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "monto_bruto, almacen_id, tipo_venta_id, productos"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ventas [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByWarehouse godoc
// @Summary      Ventas de un almacén
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        almacenId  path  int  true  "ID del almacén"
// @Success      200  {array}   dto.SaleResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/ventas/almacen/{almacenId} [get]
func (h *SaleHandler) ListByWarehouse(c *fiber.Ctx) error {
	warehouseID, ok := paramID(c, "almacenId")
	if !ok {
		return badRequest(c, "MISSING_ID", "almacenId inválido")
	}
	out, err := h.uc.ListByWarehouse(c.UserContext(), GetPrincipal(c), warehouseID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "MISSING_ID", "id inválido")
	}
	out, err := h.uc.GetByID(c.UserContext(), GetPrincipal(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Cambiar tipo de venta o fecha
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la venta"
// @Param        body  body  dto.UpdateSaleRequest  true  "tipo_venta_id, fecha"
// @Success      200   {object}  dto.SaleResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ventas/{id} [put]
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "MISSING_ID", "id inválido")
	}
	var in dto.UpdateSaleRequest
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
// @Summary      Eliminar venta (no repone stock)
// @Tags         sales
// @Security     Bearer
// @Param        id  path  int  true  "ID de la venta"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id} [delete]
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "MISSING_ID", "id inválido")
	}
	if err := h.uc.Delete(c.UserContext(), GetPrincipal(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Chart godoc
// @Summary      Serie de ventas por año, mes o día de la semana
// @Tags         sales-reports
// @Security     Bearer
// @Produce      json
// @Param        periodo    query  string  false  "anual | mensual | semanal"  default(mensual)
// @Param        anio       query  int     false  "Año (por defecto el actual)"
// @Param        almacenId  query  int     false  "Almacén; omitir solo administrador del sistema"
// @Success      200  {object}  dto.ChartResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/ventas/reportes/grafico [get]
func (h *SaleHandler) Chart(c *fiber.Ctx) error {
	f, ok := reportFilter(c)
	if !ok {
		return badRequest(c, "VALIDATION", "parámetros de reporte inválidos")
	}
	out, err := h.uc.Chart(c.UserContext(), GetPrincipal(c), c.Query("periodo", sales.PeriodMonthly), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Total, promedio, máximo y mínimo de ventas
// @Tags         sales-reports
// @Security     Bearer
// @Produce      json
// @Param        anio       query  int  false  "Año (por defecto el actual)"
// @Param        mes        query  int  false  "Mes 0-11; omitir para el año completo"
// @Param        almacenId  query  int  false  "Almacén; omitir solo administrador del sistema"
// @Success      200  {object}  dto.StatsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/ventas/reportes/estadisticas [get]
func (h *SaleHandler) Stats(c *fiber.Ctx) error {
	f, ok := reportFilter(c)
	if !ok {
		return badRequest(c, "VALIDATION", "parámetros de reporte inválidos")
	}
	out, err := h.uc.Stats(c.UserContext(), GetPrincipal(c), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PaymentMethods godoc
// @Summary      Ventas agrupadas por tipo de venta
// @Tags         sales-reports
// @Security     Bearer
// @Produce      json
// @Param        anio       query  int  false  "Año (por defecto el actual)"
// @Param        mes        query  int  false  "Mes 0-11; omitir para el año completo"
// @Param        almacenId  query  int  false  "Almacén; omitir solo administrador del sistema"
// @Success      200  {array}   dto.PaymentMethodTotal
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/ventas/reportes/metodos-pago [get]
func (h *SaleHandler) PaymentMethods(c *fiber.Ctx) error {
	f, ok := reportFilter(c)
	if !ok {
		return badRequest(c, "VALIDATION", "parámetros de reporte inválidos")
	}
	out, err := h.uc.PaymentMethods(c.UserContext(), GetPrincipal(c), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func reportFilter(c *fiber.Ctx) (sales.ReportFilter, bool) {
	var f sales.ReportFilter
	warehouseID, ok := queryID(c, "almacenId")
	if !ok {
		return f, false
	}
	f.WarehouseID = warehouseID
	if raw := c.Query("anio"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return f, false
		}
		f.Year = year
	}
	if raw := c.Query("mes"); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil {
			return f, false
		}
		f.Month = &month
	}
	return f, true
}
