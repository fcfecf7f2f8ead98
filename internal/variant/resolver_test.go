package variant

import (
	"errors"
	"testing"

	"tireshop/internal/domain"

	"github.com/google/uuid"
)

var (
	tireCategory = domain.Category{ID: uuid.New(), Name: "Tires"}
	autoCategory = domain.Category{ID: uuid.New(), Name: "Auto parts"}
)

func tireProduct(name, size, load, speed string, xl, rf bool) domain.Product {
	return domain.Product{
		ID:       uuid.New(),
		Name:     name,
		Category: tireCategory,
		Tire: &domain.TireDetails{
			ID:         uuid.New(),
			Brand:      domain.TireBrand{ID: uuid.New(), Name: name + " brand"},
			Model:      domain.TireModel{ID: uuid.New(), Name: name + " model"},
			Size:       size,
			SpeedIndex: domain.TireSpeedIndex{ID: uuid.New(), Code: speed},
			LoadIndex:  domain.TireLoadIndex{ID: uuid.New(), Code: load},
			IsXL:       xl,
			IsRunFlat:  rf,
		},
	}
}

func autoProduct(name, subcategory, brand, model string) domain.Product {
	return domain.Product{
		ID:       uuid.New(),
		Name:     name,
		Category: autoCategory,
		Auto: &domain.AutoDetails{
			ID:          uuid.New(),
			Subcategory: domain.AutoSubcategory{ID: uuid.New(), Name: subcategory},
			Brand:       brand,
			Model:       model,
		},
	}
}

func TestResolveTireExactMatch(t *testing.T) {
	products := []domain.Product{
		tireProduct("a", "205/55R16", "91", "V", false, false),
		tireProduct("b", "275/35R19", "100", "Y", true, false),
	}

	sel := SelectionFromProduct(&products[1])
	got, err := Resolve(products, sel)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got != products[1].ID {
		t.Errorf("Resolve = %s, want %s", got, products[1].ID)
	}
}

func TestResolveAutoCaseSensitive(t *testing.T) {
	products := []domain.Product{autoProduct("wiper", "Wipers", "Bosch", "Aerotwin")}

	sel := SelectionFromProduct(&products[0])
	if _, err := Resolve(products, sel); err != nil {
		t.Fatalf("exact selection should resolve: %v", err)
	}

	// string fields compare exactly as stored
	sel.AutoBrand = "bosch"
	if _, err := Resolve(products, sel); !errors.Is(err, ErrStaleCatalog) {
		t.Errorf("case-mismatched brand resolved, want ErrStaleCatalog, got %v", err)
	}
}

func TestResolveNoMatchIsStaleCatalog(t *testing.T) {
	products := []domain.Product{tireProduct("a", "205/55R16", "91", "V", false, false)}

	sel := SelectionFromProduct(&products[0])
	sel.TireBrandID = uuid.New() // brand no longer in the family
	if _, err := Resolve(products, sel); !errors.Is(err, ErrStaleCatalog) {
		t.Errorf("want ErrStaleCatalog, got %v", err)
	}
}

func TestResolveIncompleteSelection(t *testing.T) {
	products := []domain.Product{tireProduct("a", "205/55R16", "91", "V", false, false)}

	sel := Selection{Kind: domain.KindTire, TireDetailKey: DetailKey(products[0].Tire)}
	if _, err := Resolve(products, sel); !errors.Is(err, ErrIncompleteSelection) {
		t.Errorf("want ErrIncompleteSelection, got %v", err)
	}
}

// Product -> selection -> same product, for both variants
func TestSelectionRoundTrip(t *testing.T) {
	products := []domain.Product{
		tireProduct("t1", "205/55R16", "91", "V", false, false),
		tireProduct("t2", "205/55R16", "91", "V", true, false),
		tireProduct("t3", "275/35R19", "100", "Y", true, true),
		autoProduct("a1", "Wipers", "Bosch", "Aerotwin"),
		autoProduct("a2", "Filters", "Mann", "W 712"),
	}

	for i := range products {
		sel := SelectionFromProduct(&products[i])
		got, err := Resolve(products, sel)
		if err != nil {
			t.Fatalf("product %q: round-trip resolve failed: %v", products[i].Name, err)
		}
		if got != products[i].ID {
			t.Errorf("product %q: round-trip resolved to %s, want %s", products[i].Name, got, products[i].ID)
		}
	}
}

func TestResolveDistinguishesFlagTwins(t *testing.T) {
	// same size/indices, same brand+model ids except flags
	base := tireProduct("base", "225/45R17", "94", "W", false, false)
	twin := base
	twin.ID = uuid.New()
	td := *base.Tire
	td.ID = uuid.New()
	td.IsXL = true
	twin.Tire = &td

	products := []domain.Product{base, twin}

	for i := range products {
		sel := SelectionFromProduct(&products[i])
		got, err := Resolve(products, sel)
		if err != nil {
			t.Fatalf("resolve failed: %v", err)
		}
		if got != products[i].ID {
			t.Errorf("flag twin resolved to wrong product")
		}
	}
}
