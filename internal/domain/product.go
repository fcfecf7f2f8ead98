package domain

import "github.com/google/uuid"

// ProductKind tags the two product variants
type ProductKind string

const (
	KindTire ProductKind = "TIRE"
	KindAuto ProductKind = "AUTO"
)

// TireDetails holds the technical attributes identifying a tire product.
// The tuple (brand, model, size, speed index, load index, XL, RunFlat) is
// unique among products.
type TireDetails struct {
	ID         uuid.UUID      `json:"id"`
	Brand      TireBrand      `json:"brand"`
	Model      TireModel      `json:"model"`
	Size       string         `json:"size"`
	SpeedIndex TireSpeedIndex `json:"speedIndex"`
	LoadIndex  TireLoadIndex  `json:"loadIndex"`
	IsXL       bool           `json:"isXL"`
	IsRunFlat  bool           `json:"isRunFlat"`
}

// AutoDetails identifies a generic auto-parts product. Brand and model are
// free-form strings; (subcategory, brand, model) is unique among products.
type AutoDetails struct {
	ID          uuid.UUID       `json:"id"`
	Subcategory AutoSubcategory `json:"subcategory"`
	Brand       string          `json:"brand"`
	Model       string          `json:"model"`
}

// Product is a tagged variant: exactly one of Tire/Auto is populated.
// Category is carried for display only and never drives branching.
type Product struct {
	ID       uuid.UUID    `json:"id"`
	Name     string       `json:"name"`
	Unit     *Unit        `json:"unit,omitempty"`
	Category Category     `json:"category"`
	Tire     *TireDetails `json:"tireDetails,omitempty"`
	Auto     *AutoDetails `json:"autoDetails,omitempty"`
}

// Kind reports which variant is populated
func (p *Product) Kind() ProductKind {
	if p.Tire != nil {
		return KindTire
	}
	return KindAuto
}

// TireDetailsInput is the wire shape of tire attributes on product create/update
type TireDetailsInput struct {
	BrandID      uuid.UUID `json:"brandId"`
	ModelID      uuid.UUID `json:"modelId"`
	Size         string    `json:"size"`
	SpeedIndexID uuid.UUID `json:"speedIndexId"`
	LoadIndexID  uuid.UUID `json:"loadIndexId"`
	IsXL         bool      `json:"isXL"`
	IsRunFlat    bool      `json:"isRunFlat"`
}

// AutoDetailsInput is the wire shape of auto-part attributes
type AutoDetailsInput struct {
	SubcategoryID uuid.UUID `json:"subcategoryId"`
	Brand         string    `json:"brand"`
	Model         string    `json:"model"`
}

// ProductInput is the wire shape of a product create/update. Exactly one of
// Tire/Auto must be set.
type ProductInput struct {
	Name       string            `json:"name"`
	CategoryID uuid.UUID         `json:"categoryId"`
	UnitID     *uuid.UUID        `json:"unitId,omitempty"`
	Tire       *TireDetailsInput `json:"tire,omitempty"`
	Auto       *AutoDetailsInput `json:"auto,omitempty"`
}
