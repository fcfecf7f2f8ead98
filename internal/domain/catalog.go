package domain

import "github.com/google/uuid"

// Category is a display attribute on products. The two seeded values are
// "Tires" and "Auto parts"; product behaviour never branches on the name,
// only on which variant details are populated.
type Category struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Unit is a measurement unit shared by many products
type Unit struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// TireBrand owns its models; a model's lifetime is bound to the brand
type TireBrand struct {
	ID     uuid.UUID   `json:"id"`
	Name   string      `json:"name"`
	Models []TireModel `json:"models,omitempty"`
}

// TireModel carries a weak reference back to its brand
type TireModel struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	BrandID uuid.UUID `json:"brandId"`
}

// TireSpeedIndex is static reference data (e.g. "Y" -> 300 km/h)
type TireSpeedIndex struct {
	ID     uuid.UUID `json:"id"`
	Code   string    `json:"code"`
	MaxKph int       `json:"maxKph"`
}

// TireLoadIndex is static reference data (e.g. "100" -> 800 kg)
type TireLoadIndex struct {
	ID    uuid.UUID `json:"id"`
	Code  string    `json:"code"`
	MaxKg int       `json:"maxKg"`
}

// AutoSubcategory classifies non-tire products
type AutoSubcategory struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
