package variant

import (
	"errors"

	"tireshop/internal/domain"

	"github.com/google/uuid"
)

// ErrStaleCatalog is returned when a fully specified selection matches no
// product. The UI only offers combinations enumerated from the catalog, so
// a miss means the cached snapshot no longer reflects the server; callers
// must refresh the catalog rather than proceed with a nil product.
var ErrStaleCatalog = errors.New("selection matches no product in catalog snapshot")

// ErrIncompleteSelection is returned when the selection is missing fields
// and cannot identify a single product yet.
var ErrIncompleteSelection = errors.New("selection is incomplete")

// Selection is the user-facing state of a cascading product choice.
// For tires detail key, brand and model narrow to one product; for auto
// parts subcategory, brand and model do.
type Selection struct {
	Kind domain.ProductKind

	TireDetailKey string
	TireBrandID   uuid.UUID
	TireModelID   uuid.UUID

	AutoSubcategoryID uuid.UUID
	AutoBrand         string
	AutoModel         string
}

// Complete reports whether every field needed for resolution is set
func (s Selection) Complete() bool {
	switch s.Kind {
	case domain.KindTire:
		return s.TireDetailKey != "" && s.TireBrandID != uuid.Nil && s.TireModelID != uuid.Nil
	case domain.KindAuto:
		return s.AutoSubcategoryID != uuid.Nil && s.AutoBrand != "" && s.AutoModel != ""
	}
	return false
}

// Resolve scans the product snapshot for the product identified by the
// selection. String fields compare case-sensitively, exactly as stored.
// Products are never created here; creation is a catalog operation that
// happens before resolution.
func Resolve(products []domain.Product, sel Selection) (uuid.UUID, error) {
	if !sel.Complete() {
		return uuid.Nil, ErrIncompleteSelection
	}

	for i := range products {
		p := &products[i]
		if matches(p, sel) {
			return p.ID, nil
		}
	}
	return uuid.Nil, ErrStaleCatalog
}

func matches(p *domain.Product, sel Selection) bool {
	switch sel.Kind {
	case domain.KindTire:
		if p.Tire == nil {
			return false
		}
		return DetailKey(p.Tire) == sel.TireDetailKey &&
			p.Tire.Brand.ID == sel.TireBrandID &&
			p.Tire.Model.ID == sel.TireModelID
	case domain.KindAuto:
		if p.Auto == nil {
			return false
		}
		return p.Auto.Subcategory.ID == sel.AutoSubcategoryID &&
			p.Auto.Brand == sel.AutoBrand &&
			p.Auto.Model == sel.AutoModel
	}
	return false
}

// SelectionFromProduct is the reverse mapping: it regenerates the selection
// state an existing product would have been chosen through, so that editing
// an order can repopulate its rows. Resolving the result against a snapshot
// containing the product yields the same product id.
func SelectionFromProduct(p *domain.Product) Selection {
	if p.Tire != nil {
		return Selection{
			Kind:          domain.KindTire,
			TireDetailKey: DetailKey(p.Tire),
			TireBrandID:   p.Tire.Brand.ID,
			TireModelID:   p.Tire.Model.ID,
		}
	}
	sel := Selection{Kind: domain.KindAuto}
	if p.Auto != nil {
		sel.AutoSubcategoryID = p.Auto.Subcategory.ID
		sel.AutoBrand = p.Auto.Brand
		sel.AutoModel = p.Auto.Model
	}
	return sel
}
