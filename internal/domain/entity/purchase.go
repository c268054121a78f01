package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase es una línea de compra a proveedor. Igual que Sale, una compra
// de varios productos se persiste como varias filas con el mismo
// PurchaseDate/Supplier.
type Purchase struct {
	ID           string
	StoreID      string
	ProductID    string
	ProductName  string // denormalizado en lecturas
	Quantity     int
	CostPrice    decimal.Decimal
	TotalAmount  decimal.Decimal
	Supplier     string
	Notes        string
	PurchaseDate time.Time
}
