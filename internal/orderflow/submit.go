package orderflow

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"tireshop/internal/catalog"
	"tireshop/internal/client"
	"tireshop/internal/domain"
	"tireshop/internal/draft"
	"tireshop/internal/stockview"
	"tireshop/internal/variant"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrSubmitInFlight is returned when a submission is attempted while a
// previous one has not completed. The caller should keep the submit action
// disabled for the duration.
var ErrSubmitInFlight = errors.New("a submission is already in flight")

// Outcome is the terminal state of one submission attempt. Every outcome
// except Committed leaves the draft intact for correction.
type Outcome string

const (
	// Committed: the server accepted the document; orders and stock were
	// invalidated for refetch
	Committed Outcome = "COMMITTED"
	// Invalid: local validation failed; no request was sent
	Invalid Outcome = "INVALID"
	// ConflictRejected: the server refused due to insufficient stock
	ConflictRejected Outcome = "CONFLICT_REJECTED"
	// FailedRejected: generic network/server failure
	FailedRejected Outcome = "FAILED_REJECTED"
	// StaleCatalog: a fully specified row matched no product; the catalog
	// was invalidated and must be refetched before retrying
	StaleCatalog Outcome = "STALE_CATALOG"
)

// Result reports how a submission ended
type Result struct {
	Outcome Outcome
	Order   *domain.Order // set when Outcome == Committed
	Message string        // recoverable user-facing message otherwise
}

// API is the slice of the HTTP client the submitter needs
type API interface {
	CreateOrder(ctx context.Context, input domain.OrderInput) (*domain.Order, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, input domain.OrderInput) (*domain.Order, error)
}

// Submitter turns drafts into order create/update requests and interprets
// the responses. One submission at a time: the in-flight guard rejects a
// second attempt until the first completes.
type Submitter struct {
	api      API
	index    *catalog.Index
	stock    *stockview.View
	log      *zap.Logger
	inFlight atomic.Bool
}

// NewSubmitter wires the submitter to its collaborators
func NewSubmitter(api API, index *catalog.Index, stock *stockview.View, log *zap.Logger) *Submitter {
	return &Submitter{api: api, index: index, stock: stock, log: log}
}

// Submitting reports whether a submission is currently in flight
func (s *Submitter) Submitting() bool {
	return s.inFlight.Load()
}

// Submit validates the draft, builds the wire payload and sends it. Local
// validation failures never issue a request. On success the stock view and
// product-independent caches are invalidated; on any rejection the draft is
// untouched and the outcome says how to recover.
func (s *Submitter) Submit(ctx context.Context, d *draft.Draft) (*Result, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmitInFlight
	}
	defer s.inFlight.Store(false)

	if d.CounterpartyID == uuid.Nil {
		return &Result{Outcome: Invalid, Message: "select a counterparty"}, nil
	}

	items, err := s.buildItems(ctx, d)
	if err != nil {
		if errors.Is(err, variant.ErrStaleCatalog) {
			// the snapshot no longer reflects the server; refetch, never
			// silently create or submit a nil product reference
			s.index.Invalidate(catalog.Products)
			s.index.Invalidate(catalog.TireBrands)
			s.log.Warn("catalog snapshot stale during submit", zap.Error(err))
			return &Result{Outcome: StaleCatalog, Message: "catalog changed, refresh and retry"}, nil
		}
		return nil, err
	}
	if len(items) == 0 {
		return &Result{Outcome: Invalid, Message: "add at least one item"}, nil
	}

	input := domain.OrderInput{
		Type:           d.Type,
		CounterpartyID: d.CounterpartyID,
		Items:          items,
	}
	if d.OrderDate != "" {
		if date, err := time.Parse(time.DateOnly, d.OrderDate); err == nil {
			input.OrderDate = &date
		}
	}

	var order *domain.Order
	if d.OrderID != uuid.Nil {
		order, err = s.api.UpdateOrder(ctx, d.OrderID, input)
	} else {
		order, err = s.api.CreateOrder(ctx, input)
	}
	if err != nil {
		if errors.Is(err, client.ErrConflict) {
			s.log.Info("order rejected, insufficient stock",
				zap.String("type", string(d.Type)),
				zap.Error(err),
			)
			return &Result{Outcome: ConflictRejected, Message: "insufficient stock"}, nil
		}
		s.log.Error("order submission failed", zap.Error(err))
		return &Result{Outcome: FailedRejected, Message: "request failed, try again"}, nil
	}

	// the server is the arbiter of stock; re-derive instead of adjusting
	s.stock.Invalidate()

	s.log.Info("order committed",
		zap.String("order_id", order.ID.String()),
		zap.String("type", string(order.Type)),
		zap.Int64("total_cents", order.TotalCents),
	)
	return &Result{Outcome: Committed, Order: order}, nil
}

// buildItems resolves every filled row. Blank or partially selected rows
// are skipped (they contribute nothing and block nothing, matching the row
// filter on submit); a fully specified row that resolves to no product
// surfaces ErrStaleCatalog.
func (s *Submitter) buildItems(ctx context.Context, d *draft.Draft) ([]domain.OrderItemInput, error) {
	products := s.index.Products(ctx)

	var items []domain.OrderItemInput
	for _, row := range d.Rows() {
		qty := draft.ParseQuantity(row.Quantity)
		if qty == 0 || !row.Selection.Complete() {
			continue
		}
		productID, err := variant.Resolve(products, row.Selection)
		if err != nil {
			return nil, err
		}
		items = append(items, domain.OrderItemInput{
			ProductID:  productID,
			Quantity:   qty,
			PriceCents: draft.ParseMoney(row.Price),
		})
	}
	return items, nil
}
