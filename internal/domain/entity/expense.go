package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense representa un gasto operativo de la tienda (arriendo, servicios, etc.).
type Expense struct {
	ID          string
	StoreID     string
	Category    string
	Amount      decimal.Decimal
	Description string
	ExpenseDate time.Time
}
