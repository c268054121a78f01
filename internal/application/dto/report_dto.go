package dto

import "github.com/shopspring/decimal"

// PeriodTotals totales financieros de un periodo (hoy / semana / mes).
type PeriodTotals struct {
	Sales     decimal.Decimal `json:"sales"`
	Purchases decimal.Decimal `json:"purchases"`
	Expenses  decimal.Decimal `json:"expenses"`
	Profit    decimal.Decimal `json:"profit"` // ventas - compras - gastos
}

// ProductPerformanceDTO rotación de un producto en los últimos 30 días.
type ProductPerformanceDTO struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	TotalQuantity int    `json:"total_quantity"`
	SalesCount    int    `json:"sales_count"`
}

// ReportResponse reporte financiero por periodos más rotación de productos.
type ReportResponse struct {
	Today      PeriodTotals            `json:"today"`
	Week       PeriodTotals            `json:"week"`  // semana en curso, lunes como inicio
	Month      PeriodTotals            `json:"month"` // mes calendario en curso
	FastMoving []ProductPerformanceDTO `json:"fast_moving"`
	SlowMoving []ProductPerformanceDTO `json:"slow_moving"`
}

// DashboardResponse resumen del día para la pantalla principal.
type DashboardResponse struct {
	TodaySales     decimal.Decimal   `json:"today_sales"`
	TodayPurchases decimal.Decimal   `json:"today_purchases"`
	TodayExpenses  decimal.Decimal   `json:"today_expenses"`
	TodayProfit    decimal.Decimal   `json:"today_profit"`
	LowStock       []ProductResponse `json:"low_stock"`
}
