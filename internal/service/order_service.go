package service

import (
	"context"
	"errors"
	"time"

	"tireshop/internal/domain"
	"tireshop/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidOrderType   = errors.New("order type must be PURCHASE or SALE")
	ErrNoItems            = errors.New("order must contain at least one item")
	ErrInvalidQuantity    = errors.New("item quantity must be positive")
	ErrNegativePrice      = errors.New("item price must not be negative")
	ErrUnknownProduct     = errors.New("order references an unknown product")
	ErrOrderTypeImmutable = errors.New("order type cannot change after creation")
)

// OrderService defines the business logic for purchase and sale documents
type OrderService interface {
	List(ctx context.Context, orderType domain.OrderType) ([]domain.Order, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	Create(ctx context.Context, input *domain.OrderInput) (*domain.Order, error)
	Update(ctx context.Context, id uuid.UUID, input *domain.OrderInput) (*domain.Order, error)
}

type orderService struct {
	orders         repository.OrderRepository
	products       repository.ProductRepository
	counterparties repository.CounterpartyRepository
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	counterparties repository.CounterpartyRepository,
) OrderService {
	return &orderService{
		orders:         orders,
		products:       products,
		counterparties: counterparties,
	}
}

func (s *orderService) List(ctx context.Context, orderType domain.OrderType) ([]domain.Order, error) {
	if orderType != "" && orderType != domain.OrderPurchase && orderType != domain.OrderSale {
		return nil, ErrInvalidOrderType
	}
	return s.orders.List(ctx, orderType)
}

func (s *orderService) Get(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.hydrateItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// hydrateItems replaces the bare product ids on loaded items with full
// product records so a document round-trips with everything a client needs
func (s *orderService) hydrateItems(ctx context.Context, order *domain.Order) error {
	if len(order.Items) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(order.Items))
	for _, item := range order.Items {
		ids = append(ids, item.Product.ID)
	}
	products, err := s.products.ListByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for i := range order.Items {
		if p, ok := products[order.Items[i].Product.ID]; ok {
			order.Items[i].Product = p
		}
	}
	return nil
}

func (s *orderService) buildOrder(ctx context.Context, input *domain.OrderInput) (*domain.Order, error) {
	if input.Type != domain.OrderPurchase && input.Type != domain.OrderSale {
		return nil, ErrInvalidOrderType
	}
	if len(input.Items) == 0 {
		return nil, ErrNoItems
	}

	cp, err := s.counterparties.FindByID(ctx, input.CounterpartyID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if item.PriceCents < 0 {
			return nil, ErrNegativePrice
		}
		ids = append(ids, item.ProductID)
	}
	products, err := s.products.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		DocumentNumber: input.DocumentNumber,
		Type:           input.Type,
		Status:         domain.StatusConfirmed,
		OrderDate:      time.Now().UTC(),
		Counterparty:   cp,
	}
	if input.OrderDate != nil {
		order.OrderDate = *input.OrderDate
	}
	for _, item := range input.Items {
		product, ok := products[item.ProductID]
		if !ok {
			return nil, ErrUnknownProduct
		}
		order.Items = append(order.Items, domain.OrderItem{
			Quantity:   item.Quantity,
			PriceCents: item.PriceCents,
			Product:    product,
		})
		order.TotalCents += int64(item.Quantity) * item.PriceCents
	}
	return order, nil
}

func (s *orderService) Create(ctx context.Context, input *domain.OrderInput) (*domain.Order, error) {
	order, err := s.buildOrder(ctx, input)
	if err != nil {
		return nil, err
	}
	order.ID = uuid.New()
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) Update(ctx context.Context, id uuid.UUID, input *domain.OrderInput) (*domain.Order, error) {
	existing, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Type != existing.Type {
		return nil, ErrOrderTypeImmutable
	}

	order, err := s.buildOrder(ctx, input)
	if err != nil {
		return nil, err
	}
	order.ID = id
	if input.OrderDate == nil {
		order.OrderDate = existing.OrderDate
	}
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}
