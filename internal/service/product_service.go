package service

import (
	"context"
	"errors"
	"strings"

	"tireshop/internal/domain"
	"tireshop/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrMissingDetails   = errors.New("product must carry exactly one of tire or auto details")
	ErrIncompleteTire   = errors.New("tire details are incomplete")
	ErrIncompleteAuto   = errors.New("auto details are incomplete")
	ErrEmptyProductName = errors.New("product name must not be empty")
)

// ProductService defines the business logic for products
type ProductService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Create(ctx context.Context, input *domain.ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, input *domain.ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	repo repository.ProductRepository
}

// NewProductService creates a new instance of ProductService
func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

func validateProductInput(input *domain.ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrEmptyProductName
	}
	if (input.Tire == nil) == (input.Auto == nil) {
		return ErrMissingDetails
	}
	if input.Tire != nil {
		t := input.Tire
		if t.BrandID == uuid.Nil || t.ModelID == uuid.Nil || strings.TrimSpace(t.Size) == "" ||
			t.SpeedIndexID == uuid.Nil || t.LoadIndexID == uuid.Nil {
			return ErrIncompleteTire
		}
	}
	if input.Auto != nil {
		a := input.Auto
		if a.SubcategoryID == uuid.Nil || strings.TrimSpace(a.Brand) == "" || strings.TrimSpace(a.Model) == "" {
			return ErrIncompleteAuto
		}
	}
	return nil
}

func (s *productService) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *productService) Create(ctx context.Context, input *domain.ProductInput) (*domain.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}
	id := uuid.New()
	if err := s.repo.Insert(ctx, id, input); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, input *domain.ProductInput) (*domain.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, input); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
