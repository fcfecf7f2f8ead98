package service

import (
	"context"
	"errors"
	"strings"

	"tireshop/internal/domain"
	"tireshop/internal/repository"

	"github.com/google/uuid"
)

var ErrEmptyName = errors.New("name must not be empty")

// CatalogService defines the business logic for the reference collections
type CatalogService interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)
	ListUnits(ctx context.Context) ([]domain.Unit, error)
	CreateUnit(ctx context.Context, name string) (*domain.Unit, error)
	ListTireBrands(ctx context.Context) ([]domain.TireBrand, error)
	CreateTireBrand(ctx context.Context, name string) (*domain.TireBrand, error)
	CreateTireModel(ctx context.Context, brandID uuid.UUID, name string) (*domain.TireModel, error)
	ListSpeedIndices(ctx context.Context) ([]domain.TireSpeedIndex, error)
	ListLoadIndices(ctx context.Context) ([]domain.TireLoadIndex, error)
	ListAutoSubcategories(ctx context.Context) ([]domain.AutoSubcategory, error)
	CreateAutoSubcategory(ctx context.Context, name string) (*domain.AutoSubcategory, error)
}

type catalogService struct {
	repo repository.CatalogRepository
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(repo repository.CatalogRepository) CatalogService {
	return &catalogService{repo: repo}
}

func (s *catalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *catalogService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	category := &domain.Category{ID: uuid.New(), Name: name}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *catalogService) ListUnits(ctx context.Context) ([]domain.Unit, error) {
	return s.repo.ListUnits(ctx)
}

func (s *catalogService) CreateUnit(ctx context.Context, name string) (*domain.Unit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	unit := &domain.Unit{ID: uuid.New(), Name: name}
	if err := s.repo.CreateUnit(ctx, unit); err != nil {
		return nil, err
	}
	return unit, nil
}

func (s *catalogService) ListTireBrands(ctx context.Context) ([]domain.TireBrand, error) {
	return s.repo.ListTireBrands(ctx)
}

func (s *catalogService) CreateTireBrand(ctx context.Context, name string) (*domain.TireBrand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	brand := &domain.TireBrand{ID: uuid.New(), Name: name, Models: []domain.TireModel{}}
	if err := s.repo.CreateTireBrand(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *catalogService) CreateTireModel(ctx context.Context, brandID uuid.UUID, name string) (*domain.TireModel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	model := &domain.TireModel{ID: uuid.New(), BrandID: brandID, Name: name}
	if err := s.repo.CreateTireModel(ctx, model); err != nil {
		return nil, err
	}
	return model, nil
}

func (s *catalogService) ListSpeedIndices(ctx context.Context) ([]domain.TireSpeedIndex, error) {
	return s.repo.ListSpeedIndices(ctx)
}

func (s *catalogService) ListLoadIndices(ctx context.Context) ([]domain.TireLoadIndex, error) {
	return s.repo.ListLoadIndices(ctx)
}

func (s *catalogService) ListAutoSubcategories(ctx context.Context) ([]domain.AutoSubcategory, error) {
	return s.repo.ListAutoSubcategories(ctx)
}

func (s *catalogService) CreateAutoSubcategory(ctx context.Context, name string) (*domain.AutoSubcategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	sub := &domain.AutoSubcategory{ID: uuid.New(), Name: name}
	if err := s.repo.CreateAutoSubcategory(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}
