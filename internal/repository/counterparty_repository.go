package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tireshop/internal/domain"

	"github.com/google/uuid"
)

var ErrCounterpartyNotFound = errors.New("counterparty not found")

// CounterpartyRepository defines data access for customers and suppliers
type CounterpartyRepository interface {
	List(ctx context.Context, filter domain.CounterpartyFilter) ([]domain.Counterparty, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Counterparty, error)
	Create(ctx context.Context, cp *domain.Counterparty) error
	Update(ctx context.Context, cp *domain.Counterparty) error
	SetStatus(ctx context.Context, id uuid.UUID, active bool) error
}

type counterpartyRepository struct {
	db *sql.DB
}

// NewCounterpartyRepository creates a new instance of CounterpartyRepository
func NewCounterpartyRepository(db *sql.DB) CounterpartyRepository {
	return &counterpartyRepository{db: db}
}

const counterpartyColumns = `id, type, name, phone,
	COALESCE(email, ''), COALESCE(tax_id, ''), COALESCE(address, ''), COALESCE(note, ''),
	is_active, created_at, updated_at`

func scanCounterparty(row interface{ Scan(...any) error }) (domain.Counterparty, error) {
	var cp domain.Counterparty
	err := row.Scan(
		&cp.ID, &cp.Type, &cp.Name, &cp.Phone,
		&cp.Email, &cp.TaxID, &cp.Address, &cp.Note,
		&cp.IsActive, &cp.CreatedAt, &cp.UpdatedAt,
	)
	return cp, err
}

func (r *counterpartyRepository) List(ctx context.Context, filter domain.CounterpartyFilter) ([]domain.Counterparty, error) {
	query := `SELECT ` + counterpartyColumns + ` FROM counterparties WHERE 1=1`
	args := []any{}

	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		query += fmt.Sprintf(" AND (name ILIKE $%d OR phone ILIKE $%d)", len(args), len(args))
	}
	if !filter.IncludeInactive {
		query += " AND is_active = TRUE"
	}
	query += " ORDER BY name ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list counterparties: %w", err)
	}
	defer rows.Close()

	counterparties := []domain.Counterparty{}
	for rows.Next() {
		cp, err := scanCounterparty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan counterparty: %w", err)
		}
		counterparties = append(counterparties, cp)
	}
	return counterparties, rows.Err()
}

func (r *counterpartyRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Counterparty, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+counterpartyColumns+` FROM counterparties WHERE id = $1`, id)
	cp, err := scanCounterparty(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCounterpartyNotFound
		}
		return nil, fmt.Errorf("failed to find counterparty: %w", err)
	}
	return &cp, nil
}

func (r *counterpartyRepository) Create(ctx context.Context, cp *domain.Counterparty) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO counterparties (id, type, name, phone, email, tax_id, address, note, is_active)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), TRUE)
		RETURNING created_at, updated_at`,
		cp.ID, cp.Type, cp.Name, cp.Phone, cp.Email, cp.TaxID, cp.Address, cp.Note,
	).Scan(&cp.CreatedAt, &cp.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create counterparty: %w", err)
	}
	cp.IsActive = true
	return nil
}

func (r *counterpartyRepository) Update(ctx context.Context, cp *domain.Counterparty) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE counterparties
		SET name = $1, phone = $2, email = NULLIF($3, ''), tax_id = NULLIF($4, ''),
		    address = NULLIF($5, ''), note = NULLIF($6, ''), updated_at = NOW()
		WHERE id = $7`,
		cp.Name, cp.Phone, cp.Email, cp.TaxID, cp.Address, cp.Note, cp.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update counterparty: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update counterparty: %w", err)
	}
	if affected == 0 {
		return ErrCounterpartyNotFound
	}
	return nil
}

func (r *counterpartyRepository) SetStatus(ctx context.Context, id uuid.UUID, active bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE counterparties SET is_active = $1, updated_at = NOW() WHERE id = $2`,
		active, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set counterparty status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to set counterparty status: %w", err)
	}
	if affected == 0 {
		return ErrCounterpartyNotFound
	}
	return nil
}
