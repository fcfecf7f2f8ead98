package service

import (
	"context"

	"tireshop/internal/domain"
	"tireshop/internal/repository"
)

// StockService exposes current availability for every product
type StockService interface {
	List(ctx context.Context) ([]domain.StockItem, error)
}

type stockService struct {
	stock    repository.StockRepository
	products repository.ProductRepository
}

// NewStockService creates a new instance of StockService
func NewStockService(stock repository.StockRepository, products repository.ProductRepository) StockService {
	return &stockService{stock: stock, products: products}
}

func (s *stockService) List(ctx context.Context) ([]domain.StockItem, error) {
	quantities, err := s.stock.List(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]domain.StockItem, 0, len(products))
	for _, p := range products {
		items = append(items, domain.StockItem{
			Product:      p,
			AvailableQty: quantities[p.ID],
		})
	}
	return items, nil
}
