package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest un ítem del carrito de venta. El precio se toma del
// producto en el momento de la venta, no lo manda el cliente.
type SaleItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// RecordSaleRequest entrada para registrar una venta (carrito completo).
type RecordSaleRequest struct {
	CustomerName  string            `json:"customer_name" validate:"omitempty,max=200"`
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=cash card bank_transfer"`
	Items         []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// OrderItemResponse una línea dentro de una orden agrupada.
type OrderItemResponse struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

// OrderResponse una "orden": filas de venta agrupadas por fecha (redondeada
// al segundo), cliente y método de pago.
type OrderResponse struct {
	SaleDate      time.Time           `json:"sale_date"`
	CustomerName  string              `json:"customer_name,omitempty"`
	PaymentMethod string              `json:"payment_method"`
	Items         []OrderItemResponse `json:"items"`
	Total         decimal.Decimal     `json:"total"`
}

// PurchaseItemRequest un ítem del carrito de compra. A diferencia de la
// venta, el costo sí lo indica quien registra la compra.
type PurchaseItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int             `json:"quantity" validate:"required,min=1"`
	CostPrice decimal.Decimal `json:"cost_price"`
}

// RecordPurchaseRequest entrada para registrar una compra a proveedor.
type RecordPurchaseRequest struct {
	Supplier string                `json:"supplier" validate:"omitempty,max=200"`
	Notes    string                `json:"notes" validate:"omitempty,max=2000"`
	Items    []PurchaseItemRequest `json:"items" validate:"required,min=1,dive"`
}

// PurchaseResponse salida de una línea de compra.
type PurchaseResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Supplier     string          `json:"supplier,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	PurchaseDate time.Time       `json:"purchase_date"`
}
