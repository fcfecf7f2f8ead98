package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tireshop/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrDuplicateName = errors.New("an entry with this name already exists")
	ErrBrandNotFound = errors.New("tire brand not found")
)

// CatalogRepository defines data access for the reference collections
type CatalogRepository interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, category *domain.Category) error
	ListUnits(ctx context.Context) ([]domain.Unit, error)
	CreateUnit(ctx context.Context, unit *domain.Unit) error
	ListTireBrands(ctx context.Context) ([]domain.TireBrand, error)
	CreateTireBrand(ctx context.Context, brand *domain.TireBrand) error
	CreateTireModel(ctx context.Context, model *domain.TireModel) error
	ListSpeedIndices(ctx context.Context) ([]domain.TireSpeedIndex, error)
	ListLoadIndices(ctx context.Context) ([]domain.TireLoadIndex, error)
	ListAutoSubcategories(ctx context.Context) ([]domain.AutoSubcategory, error)
	CreateAutoSubcategory(ctx context.Context, sub *domain.AutoSubcategory) error
}

type catalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new instance of CatalogRepository
func NewCatalogRepository(db *sql.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *catalogRepository) CreateCategory(ctx context.Context, category *domain.Category) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, name) VALUES ($1, $2)`,
		category.ID, category.Name,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateName
		}
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *catalogRepository) ListUnits(ctx context.Context) ([]domain.Unit, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM units ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	defer rows.Close()

	units := []domain.Unit{}
	for rows.Next() {
		var u domain.Unit
		if err := rows.Scan(&u.ID, &u.Name); err != nil {
			return nil, fmt.Errorf("failed to scan unit: %w", err)
		}
		units = append(units, u)
	}
	return units, rows.Err()
}

func (r *catalogRepository) CreateUnit(ctx context.Context, unit *domain.Unit) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO units (id, name) VALUES ($1, $2)`,
		unit.ID, unit.Name,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateName
		}
		return fmt.Errorf("failed to create unit: %w", err)
	}
	return nil
}

// ListTireBrands returns all brands with their models nested, the shape the
// contract exposes on /tire-brands
func (r *catalogRepository) ListTireBrands(ctx context.Context) ([]domain.TireBrand, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT b.id, b.name, m.id, m.name, m.brand_id
		FROM tire_brands b
		LEFT JOIN tire_models m ON m.brand_id = b.id
		ORDER BY b.name ASC, m.name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tire brands: %w", err)
	}
	defer rows.Close()

	brands := []domain.TireBrand{}
	index := map[uuid.UUID]int{}
	for rows.Next() {
		var (
			brandID      uuid.UUID
			brandName    string
			modelID      sql.Null[uuid.UUID]
			modelName    sql.NullString
			modelBrandID sql.Null[uuid.UUID]
		)
		if err := rows.Scan(&brandID, &brandName, &modelID, &modelName, &modelBrandID); err != nil {
			return nil, fmt.Errorf("failed to scan tire brand: %w", err)
		}
		i, ok := index[brandID]
		if !ok {
			brands = append(brands, domain.TireBrand{ID: brandID, Name: brandName})
			i = len(brands) - 1
			index[brandID] = i
		}
		if modelID.Valid {
			brands[i].Models = append(brands[i].Models, domain.TireModel{
				ID:      modelID.V,
				Name:    modelName.String,
				BrandID: modelBrandID.V,
			})
		}
	}
	return brands, rows.Err()
}

func (r *catalogRepository) CreateTireBrand(ctx context.Context, brand *domain.TireBrand) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tire_brands (id, name) VALUES ($1, $2)`,
		brand.ID, brand.Name,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateName
		}
		return fmt.Errorf("failed to create tire brand: %w", err)
	}
	return nil
}

func (r *catalogRepository) CreateTireModel(ctx context.Context, model *domain.TireModel) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tire_models (id, brand_id, name) VALUES ($1, $2, $3)`,
		model.ID, model.BrandID, model.Name,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateName
		}
		if isForeignKeyViolation(err) {
			return ErrBrandNotFound
		}
		return fmt.Errorf("failed to create tire model: %w", err)
	}
	return nil
}

func (r *catalogRepository) ListSpeedIndices(ctx context.Context) ([]domain.TireSpeedIndex, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, code, max_kph FROM tire_speed_indices ORDER BY max_kph ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list speed indices: %w", err)
	}
	defer rows.Close()

	indices := []domain.TireSpeedIndex{}
	for rows.Next() {
		var idx domain.TireSpeedIndex
		if err := rows.Scan(&idx.ID, &idx.Code, &idx.MaxKph); err != nil {
			return nil, fmt.Errorf("failed to scan speed index: %w", err)
		}
		indices = append(indices, idx)
	}
	return indices, rows.Err()
}

func (r *catalogRepository) ListLoadIndices(ctx context.Context) ([]domain.TireLoadIndex, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, code, max_kg FROM tire_load_indices ORDER BY max_kg ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list load indices: %w", err)
	}
	defer rows.Close()

	indices := []domain.TireLoadIndex{}
	for rows.Next() {
		var idx domain.TireLoadIndex
		if err := rows.Scan(&idx.ID, &idx.Code, &idx.MaxKg); err != nil {
			return nil, fmt.Errorf("failed to scan load index: %w", err)
		}
		indices = append(indices, idx)
	}
	return indices, rows.Err()
}

func (r *catalogRepository) ListAutoSubcategories(ctx context.Context) ([]domain.AutoSubcategory, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name FROM auto_subcategories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list auto subcategories: %w", err)
	}
	defer rows.Close()

	subs := []domain.AutoSubcategory{}
	for rows.Next() {
		var s domain.AutoSubcategory
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("failed to scan auto subcategory: %w", err)
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

func (r *catalogRepository) CreateAutoSubcategory(ctx context.Context, sub *domain.AutoSubcategory) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO auto_subcategories (id, name) VALUES ($1, $2)`,
		sub.ID, sub.Name,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateName
		}
		return fmt.Errorf("failed to create auto subcategory: %w", err)
	}
	return nil
}
