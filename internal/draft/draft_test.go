package draft

import (
	"fmt"
	"testing"
	"time"

	"tireshop/internal/domain"
	"tireshop/internal/variant"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func tireProduct(size, load, speed string, xl bool) domain.Product {
	return domain.Product{
		ID:       uuid.New(),
		Name:     "tire " + size,
		Category: domain.Category{ID: uuid.New(), Name: "Tires"},
		Tire: &domain.TireDetails{
			ID:         uuid.New(),
			Brand:      domain.TireBrand{ID: uuid.New(), Name: "brand"},
			Model:      domain.TireModel{ID: uuid.New(), Name: "model"},
			Size:       size,
			SpeedIndex: domain.TireSpeedIndex{ID: uuid.New(), Code: speed},
			LoadIndex:  domain.TireLoadIndex{ID: uuid.New(), Code: load},
			IsXL:       xl,
		},
	}
}

func selectProduct(d *Draft, rowID string, p *domain.Product) {
	sel := variant.SelectionFromProduct(p)
	d.UpdateRow(rowID, RowPatch{
		TireDetailKey: &sel.TireDetailKey,
		TireBrandID:   &sel.TireBrandID,
		TireModelID:   &sel.TireModelID,
	})
}

func TestNewDraftHasOneDefaultRow(t *testing.T) {
	d := New(domain.OrderSale)
	rows := d.Rows()
	if len(rows) != 1 {
		t.Fatalf("new draft has %d rows, want 1", len(rows))
	}
	if rows[0].Quantity != "1" {
		t.Errorf("default quantity = %q, want \"1\"", rows[0].Quantity)
	}
}

func TestRemoveLastRowIsNoOp(t *testing.T) {
	d := New(domain.OrderSale)
	rowID := d.Rows()[0].RowID

	if d.RemoveRow(rowID) {
		t.Error("removing the only row reported success")
	}
	if len(d.Rows()) != 1 {
		t.Fatalf("row count = %d, want 1", len(d.Rows()))
	}
}

func TestRowCountNeverDropsBelowOne(t *testing.T) {
	d := New(domain.OrderPurchase)
	for i := 0; i < 5; i++ {
		d.AddRow()
	}
	// remove more rows than exist
	for i := 0; i < 20; i++ {
		rows := d.Rows()
		d.RemoveRow(rows[0].RowID)
	}
	if got := len(d.Rows()); got != 1 {
		t.Errorf("row count = %d, want 1", got)
	}
}

func TestUpdateRowCascadingResets(t *testing.T) {
	d := New(domain.OrderSale)
	rowID := d.Rows()[0].RowID

	brandID, modelID := uuid.New(), uuid.New()
	key := "205/55R16|91|V|0|0"
	d.UpdateRow(rowID, RowPatch{TireDetailKey: &key})
	d.UpdateRow(rowID, RowPatch{TireBrandID: &brandID})
	d.UpdateRow(rowID, RowPatch{TireModelID: &modelID})

	// changing the detail key must clear brand and model
	newKey := "275/35R19|100|Y|1|0"
	d.UpdateRow(rowID, RowPatch{TireDetailKey: &newKey})
	sel := d.Rows()[0].Selection
	if sel.TireBrandID != uuid.Nil || sel.TireModelID != uuid.Nil {
		t.Error("detail key change did not clear brand/model")
	}

	// changing the brand must clear the model
	d.UpdateRow(rowID, RowPatch{TireBrandID: &brandID})
	d.UpdateRow(rowID, RowPatch{TireModelID: &modelID})
	otherBrand := uuid.New()
	d.UpdateRow(rowID, RowPatch{TireBrandID: &otherBrand})
	if sel = d.Rows()[0].Selection; sel.TireModelID != uuid.Nil {
		t.Error("brand change did not clear model")
	}

	// switching the kind must clear the whole selection
	kind := domain.KindAuto
	d.UpdateRow(rowID, RowPatch{Kind: &kind})
	sel = d.Rows()[0].Selection
	if sel.TireDetailKey != "" || sel.TireBrandID != uuid.Nil {
		t.Error("kind switch did not reset tire selection")
	}

	subID := uuid.New()
	brand, model := "Bosch", "Aerotwin"
	d.UpdateRow(rowID, RowPatch{AutoSubcategoryID: &subID})
	d.UpdateRow(rowID, RowPatch{AutoBrand: &brand})
	d.UpdateRow(rowID, RowPatch{AutoModel: &model})

	// changing the subcategory must clear auto brand and model
	otherSub := uuid.New()
	d.UpdateRow(rowID, RowPatch{AutoSubcategoryID: &otherSub})
	sel = d.Rows()[0].Selection
	if sel.AutoBrand != "" || sel.AutoModel != "" {
		t.Error("subcategory change did not clear auto brand/model")
	}
}

func TestTotalCountsOnlyResolvedPositiveRows(t *testing.T) {
	products := []domain.Product{
		tireProduct("205/55R16", "91", "V", false),
		tireProduct("275/35R19", "100", "Y", true),
	}

	d := New(domain.OrderSale)
	first := d.Rows()[0].RowID
	selectProduct(d, first, &products[0])
	qty, price := "2", "10,00"
	d.UpdateRow(first, RowPatch{Quantity: &qty, Price: &price})

	// an unresolved row with a price contributes nothing
	d.AddRow()
	second := d.Rows()[1].RowID
	junkPrice := "99.99"
	d.UpdateRow(second, RowPatch{Price: &junkPrice})

	// a resolved row with invalid quantity contributes nothing
	d.AddRow()
	third := d.Rows()[2].RowID
	selectProduct(d, third, &products[1])
	badQty := "zero"
	d.UpdateRow(third, RowPatch{Quantity: &badQty, Price: &junkPrice})

	if got := d.Total(products); got != 2000 {
		t.Errorf("Total = %d cents, want 2000", got)
	}
}

// The document total is invariant to row order
func TestProperty_TotalReorderInvariant(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("total is the same for reversed row order", prop.ForAll(
		func(quantities []int, prices []int) bool {
			n := len(quantities)
			if len(prices) < n {
				n = len(prices)
			}
			if n == 0 {
				return true
			}

			products := make([]domain.Product, n)
			for i := 0; i < n; i++ {
				products[i] = tireProduct(fmt.Sprintf("2%02d/55R16", i), "91", "V", false)
			}

			forward := New(domain.OrderSale)
			backward := New(domain.OrderSale)
			fill := func(d *Draft, order []int) {
				for idx, i := range order {
					if idx > 0 {
						d.AddRow()
					}
					rows := d.Rows()
					rowID := rows[len(rows)-1].RowID
					selectProduct(d, rowID, &products[i])
					qty := fmt.Sprintf("%d", quantities[i])
					price := fmt.Sprintf("%d", prices[i])
					d.UpdateRow(rowID, RowPatch{Quantity: &qty, Price: &price})
				}
			}

			forwardOrder := make([]int, n)
			backwardOrder := make([]int, n)
			for i := 0; i < n; i++ {
				forwardOrder[i] = i
				backwardOrder[i] = n - 1 - i
			}
			fill(forward, forwardOrder)
			fill(backward, backwardOrder)

			return forward.Total(products) == backward.Total(products)
		},
		gen.SliceOf(gen.IntRange(1, 50)),
		gen.SliceOf(gen.IntRange(0, 10000)),
	))

	properties.TestingRun(t)
}

func TestFromOrderRegeneratesRows(t *testing.T) {
	p := tireProduct("205/55R16", "91", "V", false)
	counterparty := &domain.Counterparty{ID: uuid.New(), Type: domain.CounterpartyCustomer, Name: "ACME"}
	order := &domain.Order{
		ID:           uuid.New(),
		Type:         domain.OrderSale,
		Status:       domain.StatusConfirmed,
		OrderDate:    time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		Counterparty: counterparty,
		Items: []domain.OrderItem{
			{ID: uuid.New(), Quantity: 4, PriceCents: 1250, Product: p},
		},
	}

	d := FromOrder(order)
	if d.OrderID != order.ID {
		t.Errorf("OrderID = %s, want %s", d.OrderID, order.ID)
	}
	if d.CounterpartyID != counterparty.ID {
		t.Errorf("CounterpartyID not carried over")
	}
	if d.OrderDate != "2025-03-14" {
		t.Errorf("OrderDate = %q, want 2025-03-14", d.OrderDate)
	}

	rows := d.Rows()
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].Quantity != "4" || rows[0].Price != "12.50" {
		t.Errorf("row inputs = (%q, %q), want (\"4\", \"12.50\")", rows[0].Quantity, rows[0].Price)
	}

	// the regenerated selection must resolve back to the same product
	got, err := variant.Resolve([]domain.Product{p}, rows[0].Selection)
	if err != nil || got != p.ID {
		t.Errorf("regenerated selection resolves to (%s, %v), want %s", got, err, p.ID)
	}
}

func TestFromOrderEmptyItemsGetsBlankRow(t *testing.T) {
	order := &domain.Order{ID: uuid.New(), Type: domain.OrderPurchase}
	d := FromOrder(order)
	if len(d.Rows()) != 1 {
		t.Fatalf("rows = %d, want 1", len(d.Rows()))
	}
}
