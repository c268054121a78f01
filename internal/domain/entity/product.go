package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario de una tienda.
type Product struct {
	ID            string
	StoreID       string
	Name          string
	Description   string
	Category      string
	SKU           string
	CostPrice     decimal.Decimal
	SellingPrice  decimal.Decimal
	StockQuantity int
	ReorderLevel  int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LowStock indica si el producto está en o por debajo del nivel de reorden.
func (p *Product) LowStock() bool {
	return p.StockQuantity <= p.ReorderLevel
}
