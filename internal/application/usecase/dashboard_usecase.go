package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

const dashboardLowStock = 5 // productos en el widget de stock bajo

// DashboardUseCase genera el resumen del día para la pantalla principal:
// totales de hoy más los productos con stock bajo.
type DashboardUseCase struct {
	reportsRepo repository.ReportsRepository
	productRepo repository.ProductRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	reportsRepo repository.ReportsRepository,
	productRepo repository.ProductRepository,
) *DashboardUseCase {
	return &DashboardUseCase{reportsRepo: reportsRepo, productRepo: productRepo}
}

// GetSummary construye el DashboardResponse de la tienda.
//
// Cuatro consultas en paralelo: ventas, compras y gastos de hoy, más el
// widget de stock bajo.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, storeID string) (*dto.DashboardResponse, error) {
	now := time.Now()
	from := dayStart(now)
	to := from.Add(24 * time.Hour)

	type sumResult struct {
		value decimal.Decimal
		err   error
	}
	type lowStockResult struct {
		list []*entity.Product
		err  error
	}

	salesCh := make(chan sumResult, 1)
	purchasesCh := make(chan sumResult, 1)
	expensesCh := make(chan sumResult, 1)
	lowStockCh := make(chan lowStockResult, 1)

	go func() {
		v, err := uc.reportsRepo.SumSales(ctx, storeID, from, to)
		salesCh <- sumResult{v, err}
	}()
	go func() {
		v, err := uc.reportsRepo.SumPurchases(ctx, storeID, from, to)
		purchasesCh <- sumResult{v, err}
	}()
	go func() {
		v, err := uc.reportsRepo.SumExpenses(ctx, storeID, from, to)
		expensesCh <- sumResult{v, err}
	}()
	go func() {
		list, err := uc.productRepo.ListLowStock(ctx, storeID, dashboardLowStock)
		lowStockCh <- lowStockResult{list, err}
	}()

	sales := <-salesCh
	purchases := <-purchasesCh
	expenses := <-expensesCh
	lowStock := <-lowStockCh

	if sales.err != nil {
		return nil, fmt.Errorf("dashboard: ventas de hoy: %w", sales.err)
	}
	if purchases.err != nil {
		return nil, fmt.Errorf("dashboard: compras de hoy: %w", purchases.err)
	}
	if expenses.err != nil {
		return nil, fmt.Errorf("dashboard: gastos de hoy: %w", expenses.err)
	}
	if lowStock.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", lowStock.err)
	}

	products := make([]dto.ProductResponse, 0, len(lowStock.list))
	for _, p := range lowStock.list {
		products = append(products, *toProductResponse(p))
	}

	return &dto.DashboardResponse{
		TodaySales:     sales.value,
		TodayPurchases: purchases.value,
		TodayExpenses:  expenses.value,
		TodayProfit:    sales.value.Sub(purchases.value).Sub(expenses.value),
		LowStock:       products,
	}, nil
}
