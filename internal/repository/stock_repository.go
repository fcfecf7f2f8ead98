package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// StockRepository reads the derived availability view
type StockRepository interface {
	List(ctx context.Context) (map[uuid.UUID]int, error)
}

type stockRepository struct {
	db *sql.DB
}

// NewStockRepository creates a new instance of StockRepository
func NewStockRepository(db *sql.DB) StockRepository {
	return &stockRepository{db: db}
}

func (r *stockRepository) List(ctx context.Context) (map[uuid.UUID]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT product_id, available_qty FROM stock_view`)
	if err != nil {
		return nil, fmt.Errorf("failed to read stock view: %w", err)
	}
	defer rows.Close()

	stock := map[uuid.UUID]int{}
	for rows.Next() {
		var id uuid.UUID
		var qty int
		if err := rows.Scan(&id, &qty); err != nil {
			return nil, fmt.Errorf("failed to scan stock row: %w", err)
		}
		stock[id] = qty
	}
	return stock, rows.Err()
}
