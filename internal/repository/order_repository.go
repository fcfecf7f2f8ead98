package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"tireshop/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInsufficientStock = errors.New("insufficient stock to commit order")
)

// OrderRepository defines data access for purchase and sale documents.
// Create and Update commit atomically: the document lands as CONFIRMED or
// not at all, and stock can never go negative.
type OrderRepository interface {
	List(ctx context.Context, orderType domain.OrderType) ([]domain.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	Create(ctx context.Context, order *domain.Order) error
	Update(ctx context.Context, order *domain.Order) error
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) List(ctx context.Context, orderType domain.OrderType) ([]domain.Order, error) {
	query := `
		SELECT o.id, COALESCE(o.document_number, ''), o.type, o.status, o.order_date, o.total_cents,
		       c.id, c.type, c.name, c.phone, c.is_active
		FROM orders o
		JOIN counterparties c ON c.id = o.counterparty_id`
	args := []any{}
	if orderType != "" {
		query += ` WHERE o.type = $1`
		args = append(args, orderType)
	}
	query += ` ORDER BY o.order_date DESC, o.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var o domain.Order
		var cp domain.Counterparty
		err := rows.Scan(
			&o.ID, &o.DocumentNumber, &o.Type, &o.Status, &o.OrderDate, &o.TotalCents,
			&cp.ID, &cp.Type, &cp.Name, &cp.Phone, &cp.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		o.Counterparty = &cp
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	var o domain.Order
	var cp domain.Counterparty
	err := r.db.QueryRowContext(ctx, `
		SELECT o.id, COALESCE(o.document_number, ''), o.type, o.status, o.order_date, o.total_cents,
		       c.id, c.type, c.name, c.phone, c.is_active
		FROM orders o
		JOIN counterparties c ON c.id = o.counterparty_id
		WHERE o.id = $1`, id,
	).Scan(
		&o.ID, &o.DocumentNumber, &o.Type, &o.Status, &o.OrderDate, &o.TotalCents,
		&cp.ID, &cp.Type, &cp.Name, &cp.Phone, &cp.IsActive,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	o.Counterparty = &cp

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, quantity, price_cents
		FROM order_items WHERE order_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.Product.ID, &item.Quantity, &item.PriceCents); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, document_number, type, status, order_date, total_cents, counterparty_id)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7)`,
		order.ID, order.DocumentNumber, order.Type, order.Status,
		order.OrderDate, order.TotalCents, order.Counterparty.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	if err := writeItemsAndCheck(ctx, tx, order); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *orderRepository) Update(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET document_number = NULLIF($1, ''), type = $2, status = $3, order_date = $4,
		    total_cents = $5, counterparty_id = $6, updated_at = NOW()
		WHERE id = $7`,
		order.DocumentNumber, order.Type, order.Status, order.OrderDate,
		order.TotalCents, order.Counterparty.ID, order.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if affected == 0 {
		return ErrOrderNotFound
	}

	// the item list is replaced wholesale; the stock check below then sees
	// the edited document, not the old one plus the new one
	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, order.ID); err != nil {
		return fmt.Errorf("failed to clear order items: %w", err)
	}

	if err := writeItemsAndCheck(ctx, tx, order); err != nil {
		return err
	}
	return tx.Commit()
}

// writeItemsAndCheck inserts the line items, then verifies under row locks
// that no affected product's confirmed balance went negative. Products are
// locked in a stable order to avoid deadlocks between concurrent commits.
func writeItemsAndCheck(ctx context.Context, tx *sql.Tx, order *domain.Order) error {
	productIDs := make([]uuid.UUID, 0, len(order.Items))
	seen := map[uuid.UUID]bool{}
	for i := range order.Items {
		item := &order.Items[i]
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, product_id, quantity, price_cents)
			VALUES ($1, $2, $3, $4, $5)`,
			item.ID, order.ID, item.Product.ID, item.Quantity, item.PriceCents,
		)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
		if !seen[item.Product.ID] {
			seen[item.Product.ID] = true
			productIDs = append(productIDs, item.Product.ID)
		}
	}

	sort.Slice(productIDs, func(i, j int) bool {
		return productIDs[i].String() < productIDs[j].String()
	})

	for _, pid := range productIDs {
		if _, err := tx.ExecContext(ctx, `SELECT id FROM products WHERE id = $1 FOR UPDATE`, pid); err != nil {
			return fmt.Errorf("failed to lock product: %w", err)
		}
		var available int
		err := tx.QueryRowContext(ctx,
			`SELECT available_qty FROM stock_view WHERE product_id = $1`, pid,
		).Scan(&available)
		if err != nil {
			return fmt.Errorf("failed to check stock: %w", err)
		}
		if available < 0 {
			return ErrInsufficientStock
		}
	}
	return nil
}
