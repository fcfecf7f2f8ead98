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
	ErrInvalidCounterpartyType = errors.New("counterparty type must be CUSTOMER or SUPPLIER")
	ErrMissingContact          = errors.New("counterparty name and phone are required")
)

// CounterpartyInput carries the mutable counterparty fields
type CounterpartyInput struct {
	Type    domain.CounterpartyType `json:"type"`
	Name    string                  `json:"name"`
	Phone   string                  `json:"phone"`
	Email   string                  `json:"email"`
	TaxID   string                  `json:"taxId"`
	Address string                  `json:"address"`
	Note    string                  `json:"note"`
}

// CounterpartyService defines the business logic for customers and suppliers
type CounterpartyService interface {
	List(ctx context.Context, filter domain.CounterpartyFilter) ([]domain.Counterparty, error)
	Create(ctx context.Context, input *CounterpartyInput) (*domain.Counterparty, error)
	Update(ctx context.Context, id uuid.UUID, input *CounterpartyInput) (*domain.Counterparty, error)
	SetStatus(ctx context.Context, id uuid.UUID, active bool) (*domain.Counterparty, error)
}

type counterpartyService struct {
	repo repository.CounterpartyRepository
}

// NewCounterpartyService creates a new instance of CounterpartyService
func NewCounterpartyService(repo repository.CounterpartyRepository) CounterpartyService {
	return &counterpartyService{repo: repo}
}

func (s *counterpartyService) List(ctx context.Context, filter domain.CounterpartyFilter) ([]domain.Counterparty, error) {
	return s.repo.List(ctx, filter)
}

func validateCounterpartyInput(input *CounterpartyInput) error {
	if input.Type != domain.CounterpartyCustomer && input.Type != domain.CounterpartySupplier {
		return ErrInvalidCounterpartyType
	}
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Phone) == "" {
		return ErrMissingContact
	}
	return nil
}

func (s *counterpartyService) Create(ctx context.Context, input *CounterpartyInput) (*domain.Counterparty, error) {
	if err := validateCounterpartyInput(input); err != nil {
		return nil, err
	}
	cp := &domain.Counterparty{
		ID:      uuid.New(),
		Type:    input.Type,
		Name:    strings.TrimSpace(input.Name),
		Phone:   strings.TrimSpace(input.Phone),
		Email:   strings.TrimSpace(input.Email),
		TaxID:   strings.TrimSpace(input.TaxID),
		Address: strings.TrimSpace(input.Address),
		Note:    strings.TrimSpace(input.Note),
	}
	if err := s.repo.Create(ctx, cp); err != nil {
		return nil, err
	}
	return cp, nil
}

func (s *counterpartyService) Update(ctx context.Context, id uuid.UUID, input *CounterpartyInput) (*domain.Counterparty, error) {
	if err := validateCounterpartyInput(input); err != nil {
		return nil, err
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// type is immutable once created; an order history for a customer must
	// not silently become a supplier's
	existing.Name = strings.TrimSpace(input.Name)
	existing.Phone = strings.TrimSpace(input.Phone)
	existing.Email = strings.TrimSpace(input.Email)
	existing.TaxID = strings.TrimSpace(input.TaxID)
	existing.Address = strings.TrimSpace(input.Address)
	existing.Note = strings.TrimSpace(input.Note)
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *counterpartyService) SetStatus(ctx context.Context, id uuid.UUID, active bool) (*domain.Counterparty, error) {
	if err := s.repo.SetStatus(ctx, id, active); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}
