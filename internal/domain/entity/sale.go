package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago válidos para una venta.
const (
	PaymentCash         = "cash"
	PaymentCard         = "card"
	PaymentBankTransfer = "bank_transfer"
)

// ValidPaymentMethod devuelve true si el método de pago es conocido.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentBankTransfer:
		return true
	}
	return false
}

// Sale es una línea de venta. Una venta de varios productos se persiste
// como varias filas con el mismo SaleDate/CustomerName/PaymentMethod; la
// capa de aplicación las reagrupa en "órdenes" para mostrarlas.
type Sale struct {
	ID            string
	StoreID       string
	ProductID     string
	ProductName   string // denormalizado en lecturas (JOIN con products)
	Quantity      int
	SellingPrice  decimal.Decimal
	TotalAmount   decimal.Decimal
	CustomerName  string // vacío = venta sin cliente
	PaymentMethod string
	SaleDate      time.Time
}
