package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Límites de periodos
// ──────────────────────────────────────────────────────────────────────────────

func TestWeekStart_LunesComoInicio(t *testing.T) {
	loc := time.UTC
	monday := time.Date(2026, 3, 9, 0, 0, 0, 0, loc) // lunes

	cases := []struct {
		name string
		in   time.Time
	}{
		{"lunes a medianoche", monday},
		{"miércoles", time.Date(2026, 3, 11, 15, 30, 0, 0, loc)},
		{"sábado", time.Date(2026, 3, 14, 23, 59, 59, 0, loc)},
		{"domingo pertenece a la semana del lunes anterior", time.Date(2026, 3, 15, 10, 0, 0, 0, loc)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, monday, weekStart(tc.in))
		})
	}
}

func TestMonthStart(t *testing.T) {
	in := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), monthStart(in))
}

func TestDayStart_ConservaZonaHoraria(t *testing.T) {
	bogota := time.FixedZone("America/Bogota", -5*3600)
	in := time.Date(2026, 3, 14, 23, 50, 0, 0, bogota)
	out := dayStart(in)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, bogota), out)
	assert.Equal(t, bogota, out.Location())
}

// ──────────────────────────────────────────────────────────────────────────────
// Rotación de productos
// ──────────────────────────────────────────────────────────────────────────────

func perfRows(n int) []repository.ProductPerformance {
	rows := make([]repository.ProductPerformance, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, repository.ProductPerformance{
			ProductID:     string(rune('a' + i)),
			TotalQuantity: 100 - i, // orden descendente, como lo entrega el repo
			SalesCount:    10,
		})
	}
	return rows
}

func TestSplitMovers(t *testing.T) {
	fast, slow := splitMovers(perfRows(8), 5)
	require.Len(t, fast, 5)
	require.Len(t, slow, 5)
	assert.Equal(t, "a", fast[0].ProductID)  // el que más vende primero
	assert.Equal(t, "h", slow[0].ProductID)  // el que menos vende primero
	assert.Equal(t, 93, slow[0].TotalQuantity)
}

func TestSplitMovers_PocasFilas(t *testing.T) {
	fast, slow := splitMovers(perfRows(3), 5)
	assert.Len(t, fast, 3)
	assert.Len(t, slow, 3)

	fast, slow = splitMovers(nil, 5)
	assert.Empty(t, fast)
	assert.Empty(t, slow)
}

// ──────────────────────────────────────────────────────────────────────────────
// GetReport
// ──────────────────────────────────────────────────────────────────────────────

type fakeReportsRepo struct {
	sales     decimal.Decimal
	purchases decimal.Decimal
	expenses  decimal.Decimal
	perf      []repository.ProductPerformance
}

func (f *fakeReportsRepo) SumSales(_ context.Context, _ string, _, _ time.Time) (decimal.Decimal, error) {
	return f.sales, nil
}
func (f *fakeReportsRepo) SumPurchases(_ context.Context, _ string, _, _ time.Time) (decimal.Decimal, error) {
	return f.purchases, nil
}
func (f *fakeReportsRepo) SumExpenses(_ context.Context, _ string, _, _ time.Time) (decimal.Decimal, error) {
	return f.expenses, nil
}
func (f *fakeReportsRepo) GetProductPerformance(_ context.Context, _ string, _, _ time.Time) ([]repository.ProductPerformance, error) {
	return f.perf, nil
}

func TestGetReport_DerivaGanancia(t *testing.T) {
	repo := &fakeReportsRepo{
		sales:     dec("1000.00"),
		purchases: dec("400.00"),
		expenses:  dec("150.00"),
		perf:      perfRows(2),
	}
	uc := NewReportUseCase(repo)

	out, err := uc.GetReport(context.Background(), "st-1")
	require.NoError(t, err)
	assert.True(t, out.Today.Profit.Equal(dec("450.00")), "profit %s", out.Today.Profit)
	assert.True(t, out.Week.Sales.Equal(dec("1000.00")))
	assert.Len(t, out.FastMoving, 2)
	assert.Len(t, out.SlowMoving, 2)
}

func TestGetSummary_Dashboard(t *testing.T) {
	reports := &fakeReportsRepo{
		sales:     dec("300.00"),
		purchases: dec("100.00"),
		expenses:  dec("50.00"),
	}
	products := &fakeProductRepo{products: map[string]*entity.Product{}}
	low := seedProduct(products, "p1", "st-1", "Café 500g", "12.50", 1) // reorder 2
	seedProduct(products, "p2", "st-1", "Azúcar 1kg", "3.00", 100)

	uc := NewDashboardUseCase(reports, products)
	out, err := uc.GetSummary(context.Background(), "st-1")
	require.NoError(t, err)
	assert.True(t, out.TodayProfit.Equal(dec("150.00")))
	require.Len(t, out.LowStock, 1)
	assert.Equal(t, low.ID, out.LowStock[0].ID)
	assert.True(t, out.LowStock[0].LowStock)
}
