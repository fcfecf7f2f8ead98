package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderType distinguishes purchase documents from sale documents
type OrderType string

const (
	OrderPurchase OrderType = "PURCHASE"
	OrderSale     OrderType = "SALE"
)

// OrderStatus is the document lifecycle state. Orders commit as CONFIRMED
// and only confirmed orders contribute to stock.
type OrderStatus string

const (
	StatusDraft     OrderStatus = "DRAFT"
	StatusConfirmed OrderStatus = "CONFIRMED"
	StatusCompleted OrderStatus = "COMPLETED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// OrderItem is one line of a document. Money is integer minor units only;
// no floating-point currency exists anywhere in the contract.
type OrderItem struct {
	ID         uuid.UUID `json:"id"`
	Quantity   int       `json:"quantity"`
	PriceCents int64     `json:"priceCents"`
	Product    Product   `json:"product"`
}

// Order is a purchase or sale document. TotalCents is server-computed from
// the items and never trusted from client input.
type Order struct {
	ID             uuid.UUID     `json:"id"`
	DocumentNumber string        `json:"documentNumber,omitempty"`
	Type           OrderType     `json:"type"`
	Status         OrderStatus   `json:"status"`
	OrderDate      time.Time     `json:"orderDate"`
	TotalCents     int64         `json:"totalCents"`
	Counterparty   *Counterparty `json:"counterparty,omitempty"`
	Items          []OrderItem   `json:"items,omitempty"`
}

// OrderItemInput is the wire shape of a line item on create/update
type OrderItemInput struct {
	ProductID  uuid.UUID `json:"productId"`
	Quantity   int       `json:"quantity"`
	PriceCents int64     `json:"priceCents"`
}

// OrderInput is the wire shape of an order create; update carries the same
// payload plus the target id and replaces the entire item list.
type OrderInput struct {
	Type           OrderType        `json:"type"`
	DocumentNumber string           `json:"documentNumber,omitempty"`
	CounterpartyID uuid.UUID        `json:"counterpartyId"`
	OrderDate      *time.Time       `json:"orderDate,omitempty"`
	Items          []OrderItemInput `json:"items"`
}
