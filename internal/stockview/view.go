package stockview

import (
	"context"
	"strings"
	"sync"

	"tireshop/internal/domain"
	"tireshop/internal/variant"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Fetcher is the slice of the API client the view needs
type Fetcher interface {
	Stock(ctx context.Context) ([]domain.StockItem, error)
}

// Option is one sellable product offered to a sale line
type Option struct {
	ProductID    uuid.UUID
	Label        string
	AvailableQty int
}

// View is the read-only product -> available quantity mapping. It never
// performs optimistic arithmetic: a commit invalidates it and the next read
// re-derives everything from a full refetch.
type View struct {
	fetcher Fetcher
	log     *zap.Logger

	mu    sync.Mutex
	items []domain.StockItem
	byID  map[uuid.UUID]int
	stale bool
	err   error
}

// New creates a stale view; the first read fetches
func New(fetcher Fetcher, log *zap.Logger) *View {
	return &View{fetcher: fetcher, log: log, stale: true}
}

// Invalidate marks the view stale, typically after an order commit
func (v *View) Invalidate() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stale = true
}

// Err reports the degraded-state flag from the most recent refresh
func (v *View) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

func (v *View) refresh(ctx context.Context) {
	if !v.stale {
		return
	}
	items, err := v.fetcher.Stock(ctx)
	if err != nil {
		v.err = err
		v.log.Warn("stock fetch failed, view degraded to empty", zap.Error(err))
		return
	}
	v.items = items
	v.byID = make(map[uuid.UUID]int, len(items))
	for i := range items {
		v.byID[items[i].Product.ID] = items[i].AvailableQty
	}
	v.err = nil
	v.stale = false
}

// Items returns the full stock view
func (v *View) Items(ctx context.Context) []domain.StockItem {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.refresh(ctx)
	return v.items
}

// Available reports the available quantity for a product; unknown products
// report zero.
func (v *View) Available(ctx context.Context, productID uuid.UUID) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.refresh(ctx)
	return v.byID[productID]
}

// SellableOptions lists the products offerable on a new sale line: those
// with positive availability, plus any product in keepVisible (the lines of
// an order under edit) even if its stock has since dropped to zero, so that
// editing never loses sight of the original selection.
func (v *View) SellableOptions(ctx context.Context, keepVisible []uuid.UUID) []Option {
	items := v.Items(ctx)

	pinned := make(map[uuid.UUID]bool, len(keepVisible))
	for _, id := range keepVisible {
		pinned[id] = true
	}

	var options []Option
	for i := range items {
		item := &items[i]
		if item.AvailableQty <= 0 && !pinned[item.Product.ID] {
			continue
		}
		options = append(options, Option{
			ProductID:    item.Product.ID,
			Label:        optionLabel(&item.Product),
			AvailableQty: item.AvailableQty,
		})
	}
	return options
}

func optionLabel(p *domain.Product) string {
	if p.Tire != nil {
		return strings.TrimSpace(p.Name + " " + variant.DetailLabel(p.Tire))
	}
	if p.Auto != nil {
		return strings.TrimSpace(strings.Join([]string{p.Name, p.Auto.Subcategory.Name, p.Auto.Brand, p.Auto.Model}, " "))
	}
	return p.Name
}
