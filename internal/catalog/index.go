package catalog

import (
	"context"
	"sync"

	"tireshop/internal/domain"
	"tireshop/internal/variant"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CategoryTires is the display name of the tire category
const CategoryTires = "Tires"

// Collection identifies one cached reference collection for invalidation
type Collection string

const (
	Categories    Collection = "categories"
	Units         Collection = "units"
	TireBrands    Collection = "tire-brands"
	SpeedIndices  Collection = "speed-indices"
	LoadIndices   Collection = "load-indices"
	Subcategories Collection = "auto-subcategories"
	Products      Collection = "products"
)

var allCollections = []Collection{
	Categories, Units, TireBrands, SpeedIndices, LoadIndices, Subcategories, Products,
}

// Fetcher is the slice of the API client the index needs
type Fetcher interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	Units(ctx context.Context) ([]domain.Unit, error)
	TireBrands(ctx context.Context) ([]domain.TireBrand, error)
	SpeedIndices(ctx context.Context) ([]domain.TireSpeedIndex, error)
	LoadIndices(ctx context.Context) ([]domain.TireLoadIndex, error)
	AutoSubcategories(ctx context.Context) ([]domain.AutoSubcategory, error)
	Products(ctx context.Context) ([]domain.Product, error)
}

// DetailOption is one entry of the tire detail-key dropdown
type DetailOption struct {
	Key   string
	Label string
}

// Index caches the reference collections and the product snapshot, and
// derives the narrowing option lists for cascading selection. Invalidation
// is per collection; a stale collection is lazily refetched on next read.
// On fetch failure the index degrades to empty collections with the error
// flag set, so narrowing results read as "no match available".
type Index struct {
	fetcher Fetcher
	log     *zap.Logger

	mu            sync.Mutex
	categories    []domain.Category
	units         []domain.Unit
	tireBrands    []domain.TireBrand
	speedIndices  []domain.TireSpeedIndex
	loadIndices   []domain.TireLoadIndex
	subcategories []domain.AutoSubcategory
	products      []domain.Product
	stale         map[Collection]bool
	err           error
}

// NewIndex creates an index with every collection stale, so the first read
// of each collection hits the server.
func NewIndex(fetcher Fetcher, log *zap.Logger) *Index {
	stale := make(map[Collection]bool, len(allCollections))
	for _, col := range allCollections {
		stale[col] = true
	}
	return &Index{fetcher: fetcher, log: log, stale: stale}
}

// Invalidate marks a single collection stale without touching the others,
// bounding refetch cost to what a mutation actually affected.
func (ix *Index) Invalidate(col Collection) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.stale[col] = true
}

// InvalidateAll marks every collection stale
func (ix *Index) InvalidateAll() {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	for _, col := range allCollections {
		ix.stale[col] = true
	}
}

// Err reports the degraded-state flag from the most recent refresh
func (ix *Index) Err() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.err
}

// refresh refetches a collection if stale. Holding the lock across the
// fetch keeps read-refresh sequences atomic; contention is not a concern
// for a read-mostly client cache.
func (ix *Index) refresh(ctx context.Context, col Collection) {
	if !ix.stale[col] {
		return
	}

	var err error
	switch col {
	case Categories:
		ix.categories, err = ix.fetcher.Categories(ctx)
	case Units:
		ix.units, err = ix.fetcher.Units(ctx)
	case TireBrands:
		ix.tireBrands, err = ix.fetcher.TireBrands(ctx)
	case SpeedIndices:
		ix.speedIndices, err = ix.fetcher.SpeedIndices(ctx)
	case LoadIndices:
		ix.loadIndices, err = ix.fetcher.LoadIndices(ctx)
	case Subcategories:
		ix.subcategories, err = ix.fetcher.AutoSubcategories(ctx)
	case Products:
		ix.products, err = ix.fetcher.Products(ctx)
	}

	if err != nil {
		ix.err = err
		ix.log.Warn("catalog fetch failed, collection degraded to empty",
			zap.String("collection", string(col)),
			zap.Error(err),
		)
		// stays stale so the next read retries
		return
	}
	ix.err = nil
	ix.stale[col] = false
}

// GetCategories returns the cached categories
func (ix *Index) GetCategories(ctx context.Context) []domain.Category {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.refresh(ctx, Categories)
	return ix.categories
}

// IsTireCategory reports whether the category displays as the tire family.
// Display only: product behaviour branches on the populated variant, never
// on this name.
func IsTireCategory(c domain.Category) bool {
	return c.Name == CategoryTires
}

// GetUnits returns the cached units
func (ix *Index) GetUnits(ctx context.Context) []domain.Unit {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.refresh(ctx, Units)
	return ix.units
}

// GetTireBrands returns the cached tire brands with nested models
func (ix *Index) GetTireBrands(ctx context.Context) []domain.TireBrand {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.refresh(ctx, TireBrands)
	return ix.tireBrands
}

// GetSpeedIndices returns the cached speed indices
func (ix *Index) GetSpeedIndices(ctx context.Context) []domain.TireSpeedIndex {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.refresh(ctx, SpeedIndices)
	return ix.speedIndices
}

// GetLoadIndices returns the cached load indices
func (ix *Index) GetLoadIndices(ctx context.Context) []domain.TireLoadIndex {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.refresh(ctx, LoadIndices)
	return ix.loadIndices
}

// Products returns the cached product snapshot
func (ix *Index) Products(ctx context.Context) []domain.Product {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.refresh(ctx, Products)
	return ix.products
}

// TireDetailOptions enumerates the distinct detail keys present among
// existing tire products, in first-seen order.
func (ix *Index) TireDetailOptions(ctx context.Context) []DetailOption {
	products := ix.Products(ctx)

	seen := make(map[string]bool)
	var options []DetailOption
	for i := range products {
		d := products[i].Tire
		if d == nil {
			continue
		}
		key := variant.DetailKey(d)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		options = append(options, DetailOption{Key: key, Label: variant.DetailLabel(d)})
	}
	return options
}

// BrandsForDetail returns the brands that appear in at least one existing
// product with the given detail key. This progressively narrows selection;
// it is not a generic catalog browse.
func (ix *Index) BrandsForDetail(ctx context.Context, detailKey string) []domain.TireBrand {
	products := ix.Products(ctx)

	seen := make(map[uuid.UUID]bool)
	var brands []domain.TireBrand
	for i := range products {
		d := products[i].Tire
		if d == nil || variant.DetailKey(d) != detailKey {
			continue
		}
		if seen[d.Brand.ID] {
			continue
		}
		seen[d.Brand.ID] = true
		brands = append(brands, domain.TireBrand{ID: d.Brand.ID, Name: d.Brand.Name})
	}
	return brands
}

// ModelsForDetailBrand narrows further to the models of one brand within
// one detail-key family
func (ix *Index) ModelsForDetailBrand(ctx context.Context, detailKey string, brandID uuid.UUID) []domain.TireModel {
	products := ix.Products(ctx)

	seen := make(map[uuid.UUID]bool)
	var models []domain.TireModel
	for i := range products {
		d := products[i].Tire
		if d == nil || variant.DetailKey(d) != detailKey || d.Brand.ID != brandID {
			continue
		}
		if seen[d.Model.ID] {
			continue
		}
		seen[d.Model.ID] = true
		models = append(models, d.Model)
	}
	return models
}

// SubcategoryOptions enumerates the subcategories present among existing
// auto-part products
func (ix *Index) SubcategoryOptions(ctx context.Context) []domain.AutoSubcategory {
	products := ix.Products(ctx)

	seen := make(map[uuid.UUID]bool)
	var subs []domain.AutoSubcategory
	for i := range products {
		a := products[i].Auto
		if a == nil || seen[a.Subcategory.ID] {
			continue
		}
		seen[a.Subcategory.ID] = true
		subs = append(subs, a.Subcategory)
	}
	return subs
}

// BrandsForSubcategory returns the free-form brand names present within a
// subcategory
func (ix *Index) BrandsForSubcategory(ctx context.Context, subcategoryID uuid.UUID) []string {
	products := ix.Products(ctx)

	seen := make(map[string]bool)
	var brands []string
	for i := range products {
		a := products[i].Auto
		if a == nil || a.Subcategory.ID != subcategoryID || a.Brand == "" {
			continue
		}
		if seen[a.Brand] {
			continue
		}
		seen[a.Brand] = true
		brands = append(brands, a.Brand)
	}
	return brands
}

// ModelsForSubcategoryBrand narrows to the model names of one brand within
// one subcategory
func (ix *Index) ModelsForSubcategoryBrand(ctx context.Context, subcategoryID uuid.UUID, brand string) []string {
	products := ix.Products(ctx)

	seen := make(map[string]bool)
	var models []string
	for i := range products {
		a := products[i].Auto
		if a == nil || a.Subcategory.ID != subcategoryID || a.Brand != brand || a.Model == "" {
			continue
		}
		if seen[a.Model] {
			continue
		}
		seen[a.Model] = true
		models = append(models, a.Model)
	}
	return models
}
