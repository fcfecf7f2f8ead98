package domain

// StockItem is a row of the derived stock view:
// availableQty = sum of purchase quantities - sum of sale quantities
// over confirmed orders referencing the product. Read-only; the server is
// the sole arbiter of stock arithmetic.
type StockItem struct {
	Product      Product `json:"product"`
	AvailableQty int     `json:"availableQty"`
}
