package draft

import (
	"fmt"
	"time"

	"tireshop/internal/domain"
	"tireshop/internal/variant"

	"github.com/google/uuid"
)

// Row is one editable line of a document under composition. RowID is
// client-local and stable across edits; it has no relation to persisted ids.
// Quantity and Price hold raw user input and are parsed on demand.
type Row struct {
	RowID     string
	Selection variant.Selection
	Quantity  string
	Price     string
}

// RowPatch carries partial changes to a row. Nil fields leave the current
// value untouched. Changing an upstream selector resets everything
// downstream of it, forcing re-resolution.
type RowPatch struct {
	Kind              *domain.ProductKind
	TireDetailKey     *string
	TireBrandID       *uuid.UUID
	TireModelID       *uuid.UUID
	AutoSubcategoryID *uuid.UUID
	AutoBrand         *string
	AutoModel         *string
	Quantity          *string
	Price             *string
}

// Draft is the client-local, uncommitted representation of an order being
// composed or edited. It always holds at least one row.
type Draft struct {
	OrderID        uuid.UUID // set when editing an existing order
	Type           domain.OrderType
	CounterpartyID uuid.UUID
	OrderDate      string // "2006-01-02" or empty for "today"

	rows    []Row
	nextRow int
}

// New creates a draft with a single blank row
func New(orderType domain.OrderType) *Draft {
	d := &Draft{Type: orderType}
	d.AddRow()
	return d
}

// FromOrder loads a committed order into an editable draft, regenerating
// each row's selection state from its product via the reverse mapping.
func FromOrder(order *domain.Order) *Draft {
	d := &Draft{OrderID: order.ID, Type: order.Type}
	if order.Counterparty != nil {
		d.CounterpartyID = order.Counterparty.ID
	}
	if !order.OrderDate.IsZero() {
		d.OrderDate = order.OrderDate.Format(time.DateOnly)
	}
	for _, item := range order.Items {
		d.rows = append(d.rows, Row{
			RowID:     item.ID.String(),
			Selection: variant.SelectionFromProduct(&item.Product),
			Quantity:  fmt.Sprintf("%d", item.Quantity),
			Price:     FormatMoney(item.PriceCents),
		})
	}
	if len(d.rows) == 0 {
		d.AddRow()
	}
	return d
}

// Rows returns a copy of the current rows in order
func (d *Draft) Rows() []Row {
	out := make([]Row, len(d.rows))
	copy(out, d.rows)
	return out
}

// AddRow appends a blank row with the default quantity of one
func (d *Draft) AddRow() {
	d.nextRow++
	d.rows = append(d.rows, Row{
		RowID:     fmt.Sprintf("row-%d", d.nextRow),
		Selection: variant.Selection{Kind: domain.KindTire},
		Quantity:  "1",
	})
}

// RemoveRow deletes the identified row. The document always retains at
// least one row, so removing the last remaining row is a no-op.
func (d *Draft) RemoveRow(rowID string) bool {
	if len(d.rows) <= 1 {
		return false
	}
	for i := range d.rows {
		if d.rows[i].RowID == rowID {
			d.rows = append(d.rows[:i], d.rows[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateRow merges the patch into the identified row, applying the
// cascading reset rules in one place
func (d *Draft) UpdateRow(rowID string, patch RowPatch) bool {
	for i := range d.rows {
		if d.rows[i].RowID == rowID {
			applyPatch(&d.rows[i], patch)
			return true
		}
	}
	return false
}

// applyPatch centralizes the dependent-select cascade: a change to any
// upstream selector clears everything below it so a stale brand/model can
// never survive a family change.
func applyPatch(row *Row, patch RowPatch) {
	sel := &row.Selection

	if patch.Kind != nil && *patch.Kind != sel.Kind {
		*sel = variant.Selection{Kind: *patch.Kind}
	}
	if patch.TireDetailKey != nil && *patch.TireDetailKey != sel.TireDetailKey {
		sel.TireDetailKey = *patch.TireDetailKey
		sel.TireBrandID = uuid.Nil
		sel.TireModelID = uuid.Nil
	}
	if patch.TireBrandID != nil && *patch.TireBrandID != sel.TireBrandID {
		sel.TireBrandID = *patch.TireBrandID
		sel.TireModelID = uuid.Nil
	}
	if patch.TireModelID != nil {
		sel.TireModelID = *patch.TireModelID
	}
	if patch.AutoSubcategoryID != nil && *patch.AutoSubcategoryID != sel.AutoSubcategoryID {
		sel.AutoSubcategoryID = *patch.AutoSubcategoryID
		sel.AutoBrand = ""
		sel.AutoModel = ""
	}
	if patch.AutoBrand != nil && *patch.AutoBrand != sel.AutoBrand {
		sel.AutoBrand = *patch.AutoBrand
		sel.AutoModel = ""
	}
	if patch.AutoModel != nil {
		sel.AutoModel = *patch.AutoModel
	}
	if patch.Quantity != nil {
		row.Quantity = *patch.Quantity
	}
	if patch.Price != nil {
		row.Price = *patch.Price
	}
}

// LineTotal computes the row's contribution in cents. Rows without a
// resolvable product or a positive integer quantity contribute zero; they
// still block submission, but they never distort the running total.
func LineTotal(products []domain.Product, row Row) int64 {
	qty := ParseQuantity(row.Quantity)
	if qty == 0 {
		return 0
	}
	if _, err := variant.Resolve(products, row.Selection); err != nil {
		return 0
	}
	return int64(qty) * ParseMoney(row.Price)
}

// Total is the document total in cents, recomputed from scratch on every
// call so it is always consistent with the rows.
func (d *Draft) Total(products []domain.Product) int64 {
	var sum int64
	for _, row := range d.rows {
		sum += LineTotal(products, row)
	}
	return sum
}
