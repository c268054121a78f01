package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeSaleRepo struct {
	rows []*entity.Sale
}

func (f *fakeSaleRepo) Create(_ context.Context, s *entity.Sale) error {
	f.rows = append(f.rows, s)
	return nil
}
func (f *fakeSaleRepo) ListRecent(_ context.Context, storeID string, limit int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	// rows se guardan en orden de inserción; recientes primero.
	for i := len(f.rows) - 1; i >= 0 && len(out) < limit; i-- {
		if f.rows[i].StoreID == storeID {
			out = append(out, f.rows[i])
		}
	}
	return out, nil
}
func (f *fakeSaleRepo) ListBetween(_ context.Context, storeID string, from, to time.Time) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, r := range f.rows {
		if r.StoreID == storeID && !r.SaleDate.Before(from) && r.SaleDate.Before(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (f *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	f.products[p.ID] = p
	return nil
}
func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return f.products[id], nil
}
func (f *fakeProductRepo) GetForUpdate(_ context.Context, id string) (*entity.Product, error) {
	return f.products[id], nil
}
func (f *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	f.products[p.ID] = p
	return nil
}
func (f *fakeProductRepo) UpdateStock(_ context.Context, id string, quantity int) error {
	f.products[id].StockQuantity = quantity
	return nil
}
func (f *fakeProductRepo) ListByStore(_ context.Context, storeID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.products {
		if p.StoreID == storeID {
			out = append(out, p)
		}
	}
	return out, nil
}
func (f *fakeProductRepo) ListLowStock(_ context.Context, storeID string, limit int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.products {
		if p.StoreID == storeID && p.LowStock() && len(out) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}
func (f *fakeProductRepo) Delete(_ context.Context, id string) error {
	delete(f.products, id)
	return nil
}

// fakeInventoryTx ejecuta el callback contra los fakes y registra si la
// "transacción" habría hecho commit (fn sin error).
type fakeInventoryTx struct {
	sales     *fakeSaleRepo
	purchases *fakePurchaseRepo
	products  *fakeProductRepo
	committed bool
}

func (f *fakeInventoryTx) RunSale(ctx context.Context, fn func(
	repository.SaleRepository, repository.ProductRepository,
) error) error {
	err := fn(f.sales, f.products)
	f.committed = err == nil
	return err
}

func (f *fakeInventoryTx) RunPurchase(ctx context.Context, fn func(
	repository.PurchaseRepository, repository.ProductRepository,
) error) error {
	err := fn(f.purchases, f.products)
	f.committed = err == nil
	return err
}

type fakePurchaseRepo struct {
	rows []*entity.Purchase
}

func (f *fakePurchaseRepo) Create(_ context.Context, p *entity.Purchase) error {
	f.rows = append(f.rows, p)
	return nil
}
func (f *fakePurchaseRepo) ListRecent(_ context.Context, storeID string, limit int) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	for i := len(f.rows) - 1; i >= 0 && len(out) < limit; i-- {
		if f.rows[i].StoreID == storeID {
			out = append(out, f.rows[i])
		}
	}
	return out, nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seedProduct(pr *fakeProductRepo, id, storeID, name string, price string, stock int) *entity.Product {
	p := &entity.Product{
		ID: id, StoreID: storeID, Name: name,
		CostPrice: dec("1.00"), SellingPrice: dec(price),
		StockQuantity: stock, ReorderLevel: 2,
	}
	pr.products[id] = p
	return p
}

func newSaleFixture() (*SaleUseCase, *fakeInventoryTx, *fakeProductRepo, *fakeSaleRepo) {
	products := &fakeProductRepo{products: map[string]*entity.Product{}}
	sales := &fakeSaleRepo{}
	tx := &fakeInventoryTx{sales: sales, purchases: &fakePurchaseRepo{}, products: products}
	return NewSaleUseCase(tx, sales), tx, products, sales
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordSale
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordSale_DescuentaStockYUsaPrecioDelProducto(t *testing.T) {
	uc, tx, products, sales := newSaleFixture()
	seedProduct(products, "p1", "st-1", "Café 500g", "12.50", 10)
	seedProduct(products, "p2", "st-1", "Azúcar 1kg", "3.00", 8)

	order, err := uc.RecordSale(context.Background(), "st-1", dto.RecordSaleRequest{
		CustomerName:  "Ana",
		PaymentMethod: entity.PaymentCash,
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 3},
		},
	})
	require.NoError(t, err)
	require.True(t, tx.committed)

	assert.Equal(t, 8, products.products["p1"].StockQuantity)
	assert.Equal(t, 5, products.products["p2"].StockQuantity)

	// Una fila por producto, todas con la misma fecha.
	require.Len(t, sales.rows, 2)
	assert.Equal(t, sales.rows[0].SaleDate, sales.rows[1].SaleDate)

	// El precio sale del producto, no del request.
	require.Len(t, order.Items, 2)
	assert.True(t, order.Items[0].SellingPrice.Equal(dec("12.50")))
	assert.True(t, order.Items[0].TotalAmount.Equal(dec("25.00")))
	assert.True(t, order.Total.Equal(dec("34.00")), "total %s", order.Total)
}

func TestRecordSale_StockInsuficienteNoConfirma(t *testing.T) {
	uc, tx, products, _ := newSaleFixture()
	seedProduct(products, "p1", "st-1", "Café 500g", "12.50", 5)
	seedProduct(products, "p2", "st-1", "Azúcar 1kg", "3.00", 1)

	_, err := uc.RecordSale(context.Background(), "st-1", dto.RecordSaleRequest{
		PaymentMethod: entity.PaymentCard,
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 2}, // solo hay 1
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.False(t, tx.committed, "la transacción no debe confirmarse")
}

func TestRecordSale_ProductoDeOtraTienda(t *testing.T) {
	uc, _, products, _ := newSaleFixture()
	seedProduct(products, "p1", "st-OTRA", "Café 500g", "12.50", 5)

	_, err := uc.RecordSale(context.Background(), "st-1", dto.RecordSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordSale_EntradaInvalida(t *testing.T) {
	uc, _, products, _ := newSaleFixture()
	seedProduct(products, "p1", "st-1", "Café 500g", "12.50", 5)

	cases := []dto.RecordSaleRequest{
		{PaymentMethod: "tarjeta-magica", Items: []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}}},
		{PaymentMethod: entity.PaymentCash}, // carrito vacío
		{PaymentMethod: entity.PaymentCash, Items: []dto.SaleItemRequest{{ProductID: "p1", Quantity: 0}}},
	}
	for _, in := range cases {
		_, err := uc.RecordSale(context.Background(), "st-1", in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Agrupación de órdenes
// ──────────────────────────────────────────────────────────────────────────────

func saleRow(ts time.Time, customer, method, productID string, qty int, total string) *entity.Sale {
	return &entity.Sale{
		ID: productID + ts.String(), StoreID: "st-1",
		ProductID: productID, ProductName: productID,
		Quantity: qty, SellingPrice: dec(total), TotalAmount: dec(total),
		CustomerName: customer, PaymentMethod: method, SaleDate: ts,
	}
}

func TestGroupOrders_AgrupaPorFechaClienteYMetodo(t *testing.T) {
	base := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

	// Dos filas del mismo carrito (mismo segundo, mismo cliente/método),
	// una venta distinta en el mismo segundo pero con otro método, y una
	// venta anterior.
	rows := []*entity.Sale{
		saleRow(base.Add(30*time.Minute), "Ana", entity.PaymentCash, "p3", 1, "5.00"),
		saleRow(base.Add(500*time.Millisecond), "Ana", entity.PaymentCash, "p1", 2, "25.00"),
		saleRow(base, "Ana", entity.PaymentCash, "p2", 1, "3.00"),
		saleRow(base, "Ana", entity.PaymentCard, "p2", 1, "3.00"),
		saleRow(base.Add(-time.Hour), "", entity.PaymentCash, "p1", 1, "12.50"),
	}

	orders := groupOrders(rows, 10)
	require.Len(t, orders, 4)

	// El carrito de dos filas quedó junto: mismo segundo tras truncar.
	assert.Len(t, orders[1].Items, 2)
	assert.True(t, orders[1].Total.Equal(dec("28.00")))
	assert.Equal(t, base, orders[1].SaleDate)

	// Mismo segundo pero método distinto = otra orden.
	assert.Len(t, orders[2].Items, 1)
	assert.Equal(t, entity.PaymentCard, orders[2].PaymentMethod)

	// La venta sin cliente es su propia orden.
	assert.Empty(t, orders[3].CustomerName)
}

func TestGroupOrders_CortaEnElLimite(t *testing.T) {
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	var rows []*entity.Sale
	for i := 0; i < 15; i++ {
		rows = append(rows, saleRow(base.Add(-time.Duration(i)*time.Minute), "", entity.PaymentCash, "p1", 1, "1.00"))
	}

	orders := groupOrders(rows, 10)
	assert.Len(t, orders, 10)
	// Las 10 conservadas son las más recientes.
	assert.Equal(t, base, orders[0].SaleDate)
	assert.Equal(t, base.Add(-9*time.Minute), orders[9].SaleDate)
}

func TestRecentOrders_MasRecientesPrimero(t *testing.T) {
	uc, _, _, sales := newSaleFixture()
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	sales.rows = []*entity.Sale{
		saleRow(base.Add(-time.Hour), "Ana", entity.PaymentCash, "p1", 1, "1.00"),
		saleRow(base, "Beto", entity.PaymentCard, "p2", 1, "2.00"),
	}

	orders, err := uc.RecentOrders(context.Background(), "st-1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "Beto", orders[0].CustomerName)
	assert.Equal(t, "Ana", orders[1].CustomerName)
}

// ──────────────────────────────────────────────────────────────────────────────
// FindOrder (recibo)
// ──────────────────────────────────────────────────────────────────────────────

func TestFindOrder_ResuelvePorTripleta(t *testing.T) {
	uc, _, _, sales := newSaleFixture()
	base := time.Date(2026, 3, 14, 12, 0, 0, 250_000_000, time.UTC)
	sales.rows = []*entity.Sale{
		saleRow(base, "Ana", entity.PaymentCash, "p1", 2, "25.00"),
		saleRow(base, "Ana", entity.PaymentCash, "p2", 1, "3.00"),
		saleRow(base, "Beto", entity.PaymentCash, "p1", 1, "12.50"),
	}

	// La fecha se pide truncada al segundo, como la muestra el listado.
	order, err := uc.FindOrder(context.Background(), "st-1", base.Truncate(time.Second), "Ana", entity.PaymentCash)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Len(t, order.Items, 2)
	assert.True(t, order.Total.Equal(dec("28.00")))

	missing, err := uc.FindOrder(context.Background(), "st-1", base, "Caro", entity.PaymentCash)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
