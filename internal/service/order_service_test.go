package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"tireshop/internal/domain"
	"tireshop/internal/repository"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Mock repositories for testing

type mockOrderRepository struct {
	orders    map[uuid.UUID]*domain.Order
	createErr error
	updateErr error
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{orders: make(map[uuid.UUID]*domain.Order)}
}

func (m *mockOrderRepository) List(ctx context.Context, orderType domain.OrderType) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range m.orders {
		if orderType == "" || o.Type == orderType {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	copied := *o
	return &copied, nil
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.orders[order.ID] = order
	return nil
}

func (m *mockOrderRepository) Update(ctx context.Context, order *domain.Order) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.orders[order.ID]; !ok {
		return repository.ErrOrderNotFound
	}
	m.orders[order.ID] = order
	return nil
}

type mockProductRepository struct {
	products map[uuid.UUID]domain.Product
}

func newMockProductRepository(products ...domain.Product) *mockProductRepository {
	m := &mockProductRepository{products: make(map[uuid.UUID]domain.Product)}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *mockProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockProductRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Product, error) {
	out := make(map[uuid.UUID]domain.Product)
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return &p, nil
}

func (m *mockProductRepository) Insert(ctx context.Context, id uuid.UUID, input *domain.ProductInput) error {
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, id uuid.UUID, input *domain.ProductInput) error {
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

type mockCounterpartyRepository struct {
	counterparties map[uuid.UUID]domain.Counterparty
}

func newMockCounterpartyRepository(cps ...domain.Counterparty) *mockCounterpartyRepository {
	m := &mockCounterpartyRepository{counterparties: make(map[uuid.UUID]domain.Counterparty)}
	for _, cp := range cps {
		m.counterparties[cp.ID] = cp
	}
	return m
}

func (m *mockCounterpartyRepository) List(ctx context.Context, filter domain.CounterpartyFilter) ([]domain.Counterparty, error) {
	var out []domain.Counterparty
	for _, cp := range m.counterparties {
		out = append(out, cp)
	}
	return out, nil
}

func (m *mockCounterpartyRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Counterparty, error) {
	cp, ok := m.counterparties[id]
	if !ok {
		return nil, repository.ErrCounterpartyNotFound
	}
	return &cp, nil
}

func (m *mockCounterpartyRepository) Create(ctx context.Context, cp *domain.Counterparty) error {
	m.counterparties[cp.ID] = *cp
	return nil
}

func (m *mockCounterpartyRepository) Update(ctx context.Context, cp *domain.Counterparty) error {
	m.counterparties[cp.ID] = *cp
	return nil
}

func (m *mockCounterpartyRepository) SetStatus(ctx context.Context, id uuid.UUID, active bool) error {
	cp, ok := m.counterparties[id]
	if !ok {
		return repository.ErrCounterpartyNotFound
	}
	cp.IsActive = active
	m.counterparties[id] = cp
	return nil
}

// fixtures

func testProduct(name string) domain.Product {
	return domain.Product{
		ID:       uuid.New(),
		Name:     name,
		Category: domain.Category{ID: uuid.New(), Name: "Auto parts"},
		Auto: &domain.AutoDetails{
			ID:          uuid.New(),
			Subcategory: domain.AutoSubcategory{ID: uuid.New(), Name: "Filters"},
			Brand:       "Mann",
			Model:       name,
		},
	}
}

func testCustomer() domain.Counterparty {
	return domain.Counterparty{
		ID:       uuid.New(),
		Type:     domain.CounterpartyCustomer,
		Name:     "Test Garage",
		Phone:    "+1-555-0100",
		IsActive: true,
	}
}

func TestCreateOrderComputesTotalServerSide(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("total is the sum of quantity times price over all items", prop.ForAll(
		func(quantities []int, prices []int64) bool {
			n := len(quantities)
			if len(prices) < n {
				n = len(prices)
			}
			if n == 0 {
				return true
			}

			customer := testCustomer()
			var products []domain.Product
			var items []domain.OrderItemInput
			var want int64
			for i := 0; i < n; i++ {
				p := testProduct(uuid.NewString())
				products = append(products, p)
				items = append(items, domain.OrderItemInput{
					ProductID:  p.ID,
					Quantity:   quantities[i],
					PriceCents: prices[i],
				})
				want += int64(quantities[i]) * prices[i]
			}

			svc := NewOrderService(
				newMockOrderRepository(),
				newMockProductRepository(products...),
				newMockCounterpartyRepository(customer),
			)
			order, err := svc.Create(context.Background(), &domain.OrderInput{
				Type:           domain.OrderSale,
				CounterpartyID: customer.ID,
				Items:          items,
			})
			if err != nil {
				return false
			}
			return order.TotalCents == want && order.Status == domain.StatusConfirmed
		},
		gen.SliceOfN(4, gen.IntRange(1, 50)),
		gen.SliceOfN(4, gen.Int64Range(0, 500000)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestCreateOrderValidation(t *testing.T) {
	customer := testCustomer()
	product := testProduct("validation-filter")
	svc := NewOrderService(
		newMockOrderRepository(),
		newMockProductRepository(product),
		newMockCounterpartyRepository(customer),
	)
	ctx := context.Background()

	cases := []struct {
		name    string
		input   domain.OrderInput
		wantErr error
	}{
		{
			name:    "unknown type",
			input:   domain.OrderInput{Type: "TRANSFER", CounterpartyID: customer.ID, Items: []domain.OrderItemInput{{ProductID: product.ID, Quantity: 1}}},
			wantErr: ErrInvalidOrderType,
		},
		{
			name:    "no items",
			input:   domain.OrderInput{Type: domain.OrderSale, CounterpartyID: customer.ID},
			wantErr: ErrNoItems,
		},
		{
			name:    "zero quantity",
			input:   domain.OrderInput{Type: domain.OrderSale, CounterpartyID: customer.ID, Items: []domain.OrderItemInput{{ProductID: product.ID, Quantity: 0, PriceCents: 100}}},
			wantErr: ErrInvalidQuantity,
		},
		{
			name:    "negative price",
			input:   domain.OrderInput{Type: domain.OrderSale, CounterpartyID: customer.ID, Items: []domain.OrderItemInput{{ProductID: product.ID, Quantity: 1, PriceCents: -1}}},
			wantErr: ErrNegativePrice,
		},
		{
			name:    "unknown product",
			input:   domain.OrderInput{Type: domain.OrderSale, CounterpartyID: customer.ID, Items: []domain.OrderItemInput{{ProductID: uuid.New(), Quantity: 1, PriceCents: 100}}},
			wantErr: ErrUnknownProduct,
		},
		{
			name:    "unknown counterparty",
			input:   domain.OrderInput{Type: domain.OrderSale, CounterpartyID: uuid.New(), Items: []domain.OrderItemInput{{ProductID: product.ID, Quantity: 1, PriceCents: 100}}},
			wantErr: repository.ErrCounterpartyNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, &tc.input)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestCreateOrderPropagatesInsufficientStock(t *testing.T) {
	customer := testCustomer()
	product := testProduct("conflict-filter")
	orders := newMockOrderRepository()
	orders.createErr = repository.ErrInsufficientStock

	svc := NewOrderService(orders, newMockProductRepository(product), newMockCounterpartyRepository(customer))
	_, err := svc.Create(context.Background(), &domain.OrderInput{
		Type:           domain.OrderSale,
		CounterpartyID: customer.ID,
		Items:          []domain.OrderItemInput{{ProductID: product.ID, Quantity: 5, PriceCents: 1000}},
	})
	if !errors.Is(err, repository.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
}

func TestUpdateOrderKeepsTypeAndDate(t *testing.T) {
	customer := testCustomer()
	product := testProduct("update-filter")
	orders := newMockOrderRepository()
	svc := NewOrderService(orders, newMockProductRepository(product), newMockCounterpartyRepository(customer))
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.OrderInput{
		Type:           domain.OrderPurchase,
		CounterpartyID: customer.ID,
		Items:          []domain.OrderItemInput{{ProductID: product.ID, Quantity: 3, PriceCents: 2500}},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// switching the document type on edit is refused
	_, err = svc.Update(ctx, created.ID, &domain.OrderInput{
		Type:           domain.OrderSale,
		CounterpartyID: customer.ID,
		Items:          []domain.OrderItemInput{{ProductID: product.ID, Quantity: 3, PriceCents: 2500}},
	})
	if !errors.Is(err, ErrOrderTypeImmutable) {
		t.Fatalf("expected ErrOrderTypeImmutable, got %v", err)
	}

	// an edit without an explicit date keeps the original one
	updated, err := svc.Update(ctx, created.ID, &domain.OrderInput{
		Type:           domain.OrderPurchase,
		CounterpartyID: customer.ID,
		Items:          []domain.OrderItemInput{{ProductID: product.ID, Quantity: 1, PriceCents: 2500}},
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if !updated.OrderDate.Equal(created.OrderDate) {
		t.Errorf("order date drifted on edit: %v vs %v", updated.OrderDate, created.OrderDate)
	}
	if updated.TotalCents != 2500 {
		t.Errorf("total not recomputed on edit: %d", updated.TotalCents)
	}
}

func TestGetOrderHydratesProducts(t *testing.T) {
	customer := testCustomer()
	product := testProduct("hydrate-filter")
	orders := newMockOrderRepository()
	orderID := uuid.New()
	orders.orders[orderID] = &domain.Order{
		ID:           orderID,
		Type:         domain.OrderSale,
		Status:       domain.StatusConfirmed,
		OrderDate:    time.Now().UTC(),
		TotalCents:   1000,
		Counterparty: &customer,
		Items: []domain.OrderItem{
			{ID: uuid.New(), Quantity: 1, PriceCents: 1000, Product: domain.Product{ID: product.ID}},
		},
	}

	svc := NewOrderService(orders, newMockProductRepository(product), newMockCounterpartyRepository(customer))
	got, err := svc.Get(context.Background(), orderID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Items[0].Product.Name != product.Name || got.Items[0].Product.Auto == nil {
		t.Errorf("items not hydrated with full products: %+v", got.Items[0].Product)
	}
}
