package domain

import (
	"time"

	"github.com/google/uuid"
)

// CounterpartyType distinguishes customers from suppliers
type CounterpartyType string

const (
	CounterpartyCustomer CounterpartyType = "CUSTOMER"
	CounterpartySupplier CounterpartyType = "SUPPLIER"
)

// Counterparty represents a customer or supplier. Deactivation is a soft
// delete: IsActive=false hides it from selection but keeps it restorable.
type Counterparty struct {
	ID        uuid.UUID        `json:"id"`
	Type      CounterpartyType `json:"type"`
	Name      string           `json:"name"`
	Phone     string           `json:"phone"`
	Email     string           `json:"email,omitempty"`
	TaxID     string           `json:"taxId,omitempty"`
	Address   string           `json:"address,omitempty"`
	Note      string           `json:"note,omitempty"`
	IsActive  bool             `json:"isActive"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// CounterpartyFilter narrows counterparty listings
type CounterpartyFilter struct {
	Type            CounterpartyType
	Query           string
	IncludeInactive bool
}
