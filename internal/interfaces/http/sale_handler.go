package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/usecase"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// ReceiptGenerator genera el PDF del recibo de una orden.
type ReceiptGenerator interface {
	GenerateReceiptPDF(ctx context.Context, store *entity.Store, order *dto.OrderResponse) ([]byte, error)
}

// SaleHandler maneja ventas, órdenes recientes y recibos.
type SaleHandler struct {
	uc        *usecase.SaleUseCase
	storeRepo repository.StoreRepository
	pdfGen    ReceiptGenerator
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *usecase.SaleUseCase, storeRepo repository.StoreRepository, pdfGen ReceiptGenerator) *SaleHandler {
	return &SaleHandler{uc: uc, storeRepo: storeRepo, pdfGen: pdfGen}
}

// Record godoc
// @Summary      Registrar una venta (carrito completo, descuenta stock)
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordSaleRequest  true  "Carrito de venta"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RecordSale(c.UserContext(), GetSession(c).StoreID, in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "carrito inválido: ítems y método de pago válidos son requeridos"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: "producto no encontrado en esta tienda"})
		case errors.Is(err, domain.ErrInsufficientStock):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: domain.ErrInsufficientStock.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Recent godoc
// @Summary      Últimas órdenes de la tienda (filas agrupadas)
// @Tags         sales
// @Produce      json
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/sales/recent [get]
func (h *SaleHandler) Recent(c *fiber.Ctx) error {
	out, err := h.uc.RecentOrders(c.UserContext(), GetSession(c).StoreID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Recibo PDF de una orden (identificada por fecha + cliente + método)
// @Tags         sales
// @Produce      application/pdf
// @Param        sale_date       query  string  true   "Fecha de la venta (RFC3339)"
// @Param        customer_name   query  string  false  "Nombre del cliente"
// @Param        payment_method  query  string  true   "Método de pago"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	saleDate, err := time.Parse(time.RFC3339, c.Query("sale_date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sale_date debe ser RFC3339"})
	}
	paymentMethod := c.Query("payment_method")
	if !entity.ValidPaymentMethod(paymentMethod) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "payment_method inválido"})
	}

	storeID := GetSession(c).StoreID
	order, err := h.uc.FindOrder(c.UserContext(), storeID, saleDate, c.Query("customer_name"), paymentMethod)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if order == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
	}

	store, err := h.storeRepo.GetByID(c.UserContext(), storeID)
	if err != nil || store == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo resolver la tienda"})
	}

	pdfBytes, err := h.pdfGen.GenerateReceiptPDF(c.UserContext(), store, order)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF_FAILED", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="recibo.pdf"`)
	return c.Send(pdfBytes)
}
