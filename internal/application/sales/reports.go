package sales

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/negocify-api/internal/application/authz"
	"github.com/jhoicas/negocify-api/internal/application/dto"
	"github.com/jhoicas/negocify-api/internal/domain"
	"github.com/jhoicas/negocify-api/internal/domain/entity"
)

// Periodos del gráfico de ventas.
const (
	PeriodYearly  = "anual"
	PeriodMonthly = "mensual"
	PeriodWeekly  = "semanal"
)

var (
	monthNames = []string{"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio", "Julio",
		"Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre"}
	weekdayNames = []string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}
)

// ReportFilter alcance de un reporte. WarehouseID 0 = todos los almacenes (solo administrador
// del sistema). Month es 0-based (0 = enero); nil abarca el año completo.
type ReportFilter struct {
	WarehouseID entity.ID
	Year        int
	Month       *int
}

func (f ReportFilter) window() (time.Time, time.Time, error) {
	if f.Month == nil {
		from := time.Date(f.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return from, from.AddDate(1, 0, 0).Add(-time.Nanosecond), nil
	}
	if *f.Month < 0 || *f.Month > 11 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: mes fuera de rango", domain.ErrInvalidInput)
	}
	from := time.Date(f.Year, time.Month(*f.Month+1), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0).Add(-time.Nanosecond), nil
}

func (uc *UseCase) reportSales(ctx context.Context, p *entity.Principal, f ReportFilter) ([]*entity.Sale, error) {
	var scope *entity.ID
	if f.WarehouseID == 0 {
		if p == nil || !p.Profile.IsSystemAdmin {
			return nil, domain.ErrForbidden
		}
	} else {
		if err := authz.Require(p, f.WarehouseID); err != nil {
			return nil, err
		}
		scope = &f.WarehouseID
	}
	if f.Year <= 0 {
		f.Year = uc.now().UTC().Year()
	}
	from, to, err := f.window()
	if err != nil {
		return nil, err
	}
	return uc.sales.ListInRange(ctx, scope, from, to)
}

// Chart serie de ventas brutas del año agrupada por año, mes o día de la semana.
func (uc *UseCase) Chart(ctx context.Context, p *entity.Principal, period string, f ReportFilter) (*dto.ChartResponse, error) {
	if period == "" {
		period = PeriodMonthly
	}
	if period != PeriodYearly && period != PeriodMonthly && period != PeriodWeekly {
		return nil, fmt.Errorf("%w: periodo no válido", domain.ErrInvalidInput)
	}
	f.Month = nil
	if f.Year <= 0 {
		f.Year = uc.now().UTC().Year()
	}
	list, err := uc.reportSales(ctx, p, f)
	if err != nil {
		return nil, err
	}

	out := &dto.ChartResponse{Period: period, Year: f.Year}
	switch period {
	case PeriodYearly:
		total := decimal.Zero
		for _, s := range list {
			total = total.Add(s.GrossAmount)
		}
		out.Points = []dto.ChartPoint{}
		if len(list) > 0 {
			out.Points = append(out.Points, dto.ChartPoint{Name: strconv.Itoa(f.Year), Sales: total})
		}
	case PeriodMonthly:
		out.Points = buckets(monthNames, list, func(t time.Time) int { return int(t.Month()) - 1 })
	case PeriodWeekly:
		out.Points = buckets(weekdayNames, list, func(t time.Time) int { return int(t.Weekday()) })
	}
	return out, nil
}

func buckets(names []string, list []*entity.Sale, index func(time.Time) int) []dto.ChartPoint {
	points := make([]dto.ChartPoint, len(names))
	for i, n := range names {
		points[i] = dto.ChartPoint{Name: n, Sales: decimal.Zero, Order: i}
	}
	for _, s := range list {
		i := index(s.Date.UTC())
		points[i].Sales = points[i].Sales.Add(s.GrossAmount)
	}
	return points
}

// Stats total, promedio, máximo y mínimo de las ventas brutas del periodo.
func (uc *UseCase) Stats(ctx context.Context, p *entity.Principal, f ReportFilter) (*dto.StatsResponse, error) {
	list, err := uc.reportSales(ctx, p, f)
	if err != nil {
		return nil, err
	}
	out := &dto.StatsResponse{Total: decimal.Zero, Average: decimal.Zero, Max: decimal.Zero, Min: decimal.Zero}
	for i, s := range list {
		out.Total = out.Total.Add(s.GrossAmount)
		if i == 0 || s.GrossAmount.GreaterThan(out.Max) {
			out.Max = s.GrossAmount
		}
		if i == 0 || s.GrossAmount.LessThan(out.Min) {
			out.Min = s.GrossAmount
		}
	}
	out.Count = len(list)
	if out.Count > 0 {
		out.Average = out.Total.Div(decimal.NewFromInt(int64(out.Count))).Round(2)
	}
	return out, nil
}

// PaymentMethods cantidad y total bruto por tipo de venta; las ventas sin tipo se omiten.
func (uc *UseCase) PaymentMethods(ctx context.Context, p *entity.Principal, f ReportFilter) ([]dto.PaymentMethodTotal, error) {
	list, err := uc.reportSales(ctx, p, f)
	if err != nil {
		return nil, err
	}
	out := []dto.PaymentMethodTotal{}
	index := map[string]int{}
	for _, s := range list {
		if s.SaleType == nil || s.SaleType.Name == "" {
			continue
		}
		i, ok := index[s.SaleType.Name]
		if !ok {
			i = len(out)
			index[s.SaleType.Name] = i
			out = append(out, dto.PaymentMethodTotal{Name: s.SaleType.Name, Total: decimal.Zero})
		}
		out[i].Count++
		out[i].Total = out[i].Total.Add(s.GrossAmount)
	}
	return out, nil
}
