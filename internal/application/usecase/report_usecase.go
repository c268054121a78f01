package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

const (
	moversCount = 5  // productos en cada lista de rotación
	moversDays  = 30 // ventana de la rotación, en días
)

// ReportUseCase arma el reporte financiero de la tienda: totales de hoy,
// de la semana en curso (lunes como inicio) y del mes calendario, más la
// rotación de productos de los últimos 30 días.
type ReportUseCase struct {
	reportsRepo repository.ReportsRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(reportsRepo repository.ReportsRepository) *ReportUseCase {
	return &ReportUseCase{reportsRepo: reportsRepo}
}

// GetReport construye el ReportResponse de la tienda.
//
// Cuatro consultas en paralelo: totales de hoy, de la semana, del mes y la
// rotación de productos.
func (uc *ReportUseCase) GetReport(ctx context.Context, storeID string) (*dto.ReportResponse, error) {
	now := time.Now()
	end := dayStart(now).Add(24 * time.Hour)

	type totalsResult struct {
		totals dto.PeriodTotals
		err    error
	}
	type performanceResult struct {
		rows []repository.ProductPerformance
		err  error
	}

	todayCh := make(chan totalsResult, 1)
	weekCh := make(chan totalsResult, 1)
	monthCh := make(chan totalsResult, 1)
	perfCh := make(chan performanceResult, 1)

	go func() {
		t, err := uc.periodTotals(ctx, storeID, dayStart(now), end)
		todayCh <- totalsResult{t, err}
	}()
	go func() {
		t, err := uc.periodTotals(ctx, storeID, weekStart(now), end)
		weekCh <- totalsResult{t, err}
	}()
	go func() {
		t, err := uc.periodTotals(ctx, storeID, monthStart(now), end)
		monthCh <- totalsResult{t, err}
	}()
	go func() {
		rows, err := uc.reportsRepo.GetProductPerformance(ctx, storeID, now.AddDate(0, 0, -moversDays), now)
		perfCh <- performanceResult{rows, err}
	}()

	today := <-todayCh
	week := <-weekCh
	month := <-monthCh
	perf := <-perfCh

	if today.err != nil {
		return nil, fmt.Errorf("reporte: totales de hoy: %w", today.err)
	}
	if week.err != nil {
		return nil, fmt.Errorf("reporte: totales de la semana: %w", week.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("reporte: totales del mes: %w", month.err)
	}
	if perf.err != nil {
		return nil, fmt.Errorf("reporte: rotación de productos: %w", perf.err)
	}

	fast, slow := splitMovers(perf.rows, moversCount)
	return &dto.ReportResponse{
		Today:      today.totals,
		Week:       week.totals,
		Month:      month.totals,
		FastMoving: fast,
		SlowMoving: slow,
	}, nil
}

// periodTotals suma ventas, compras y gastos en [from, to) y deriva la
// ganancia.
func (uc *ReportUseCase) periodTotals(ctx context.Context, storeID string, from, to time.Time) (dto.PeriodTotals, error) {
	var t dto.PeriodTotals
	var err error

	if t.Sales, err = uc.reportsRepo.SumSales(ctx, storeID, from, to); err != nil {
		return t, err
	}
	if t.Purchases, err = uc.reportsRepo.SumPurchases(ctx, storeID, from, to); err != nil {
		return t, err
	}
	if t.Expenses, err = uc.reportsRepo.SumExpenses(ctx, storeID, from, to); err != nil {
		return t, err
	}
	t.Profit = t.Sales.Sub(t.Purchases).Sub(t.Expenses)
	return t, nil
}

// dayStart devuelve las 00:00 del día de t, en su zona horaria.
func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// weekStart devuelve las 00:00 del lunes de la semana de t. El domingo
// pertenece a la semana que empezó el lunes anterior.
func weekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // lunes=0 ... domingo=6
	return dayStart(t).AddDate(0, 0, -offset)
}

// monthStart devuelve las 00:00 del día 1 del mes de t.
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// splitMovers separa la rotación (que viene ordenada por cantidad
// descendente) en los n de mayor y los n de menor movimiento. Los lentos
// se devuelven de menor a mayor. Con pocas filas ambas listas pueden
// compartir productos.
func splitMovers(rows []repository.ProductPerformance, n int) (fast, slow []dto.ProductPerformanceDTO) {
	toDTO := func(r repository.ProductPerformance) dto.ProductPerformanceDTO {
		return dto.ProductPerformanceDTO{
			ProductID:     r.ProductID,
			Name:          r.Name,
			TotalQuantity: r.TotalQuantity,
			SalesCount:    r.SalesCount,
		}
	}

	fast = make([]dto.ProductPerformanceDTO, 0, n)
	for i := 0; i < len(rows) && i < n; i++ {
		fast = append(fast, toDTO(rows[i]))
	}

	slow = make([]dto.ProductPerformanceDTO, 0, n)
	for i := len(rows) - 1; i >= 0 && len(slow) < n; i-- {
		slow = append(slow, toDTO(rows[i]))
	}
	return fast, slow
}
