package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ProductPerformance es la rotación de un producto en un rango de fechas.
type ProductPerformance struct {
	ProductID     string
	Name          string
	TotalQuantity int
	SalesCount    int
}

// ReportsRepository define las consultas read-only de reportes (agregados
// por tienda y rango de fechas). No accede a entidades completas; devuelve
// los totales que el dashboard y los reportes necesitan.
type ReportsRepository interface {
	SumSales(ctx context.Context, storeID string, from, to time.Time) (decimal.Decimal, error)
	SumPurchases(ctx context.Context, storeID string, from, to time.Time) (decimal.Decimal, error)
	SumExpenses(ctx context.Context, storeID string, from, to time.Time) (decimal.Decimal, error)
	// GetProductPerformance agrega cantidad vendida y número de ventas por
	// producto en [from, to), ordenado por cantidad descendente.
	GetProductPerformance(ctx context.Context, storeID string, from, to time.Time) ([]ProductPerformance, error)
}
