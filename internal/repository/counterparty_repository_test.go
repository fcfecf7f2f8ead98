package repository

import (
	"context"
	"testing"

	"tireshop/internal/domain"

	"github.com/google/uuid"
)

func containsCounterparty(list []domain.Counterparty, id uuid.UUID) bool {
	for _, cp := range list {
		if cp.ID == id {
			return true
		}
	}
	return false
}

func TestCounterpartySoftDeleteAndFilter(t *testing.T) {
	ctx := context.Background()
	repo := NewCounterpartyRepository(testDB)

	customer := mustCreateCounterparty(t, domain.CounterpartyCustomer, "Filter Garage Kft")
	mustCreateCounterparty(t, domain.CounterpartySupplier, "Filter Tire Import")

	if err := repo.SetStatus(ctx, customer.ID, false); err != nil {
		t.Fatalf("failed to deactivate: %v", err)
	}

	// inactive entries are hidden from the default listing
	active, err := repo.List(ctx, domain.CounterpartyFilter{})
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	for _, cp := range active {
		if cp.ID == customer.ID {
			t.Error("deactivated counterparty in default listing")
		}
	}

	// but stay reachable when asked for
	all, err := repo.List(ctx, domain.CounterpartyFilter{IncludeInactive: true})
	if err != nil {
		t.Fatalf("failed to list inactive: %v", err)
	}
	found := false
	for _, cp := range all {
		if cp.ID == customer.ID {
			found = true
			if cp.IsActive {
				t.Error("deactivated counterparty reported active")
			}
		}
	}
	if !found {
		t.Error("deactivated counterparty missing from inclusive listing")
	}

	// the type filter separates customers from suppliers
	suppliers, err := repo.List(ctx, domain.CounterpartyFilter{Type: domain.CounterpartySupplier})
	if err != nil {
		t.Fatalf("failed to list suppliers: %v", err)
	}
	for _, cp := range suppliers {
		if cp.Type != domain.CounterpartySupplier {
			t.Errorf("supplier listing contains %s %s", cp.Type, cp.Name)
		}
	}

	// restore works
	if err := repo.SetStatus(ctx, customer.ID, true); err != nil {
		t.Fatalf("failed to restore: %v", err)
	}
	restored, err := repo.FindByID(ctx, customer.ID)
	if err != nil {
		t.Fatalf("failed to load restored: %v", err)
	}
	if !restored.IsActive {
		t.Error("restored counterparty still inactive")
	}
}

func TestCounterpartySearchMatchesNameAndPhone(t *testing.T) {
	ctx := context.Background()
	repo := NewCounterpartyRepository(testDB)

	cp := domain.Counterparty{
		ID:    uuid.New(),
		Type:  domain.CounterpartyCustomer,
		Name:  "Searchable Motors",
		Phone: "+36-20-555-7788",
	}
	if err := repo.Create(ctx, &cp); err != nil {
		t.Fatalf("failed to create: %v", err)
	}

	byName, err := repo.List(ctx, domain.CounterpartyFilter{Query: "searchable"})
	if err != nil {
		t.Fatalf("search by name failed: %v", err)
	}
	if !containsCounterparty(byName, cp.ID) {
		t.Error("case-insensitive name search missed the entry")
	}

	byPhone, err := repo.List(ctx, domain.CounterpartyFilter{Query: "555-7788"})
	if err != nil {
		t.Fatalf("search by phone failed: %v", err)
	}
	if !containsCounterparty(byPhone, cp.ID) {
		t.Error("phone search missed the entry")
	}
}
