package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"tireshop/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrVariantExists     = errors.New("a product with these attributes already exists")
	ErrProductReferenced = errors.New("product is referenced by order lines")
)

// ProductRepository defines data access for products and their detail rows
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Insert(ctx context.Context, id uuid.UUID, input *domain.ProductInput) error
	Update(ctx context.Context, id uuid.UUID, input *domain.ProductInput) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

const productSelect = `
	SELECT p.id, p.name,
	       u.id, u.name,
	       c.id, c.name,
	       td.id, td.size, td.is_xl, td.is_run_flat,
	       tb.id, tb.name,
	       tm.id, tm.name, tm.brand_id,
	       tsi.id, tsi.code, tsi.max_kph,
	       tli.id, tli.code, tli.max_kg,
	       ad.id, ad.brand, ad.model,
	       asc_.id, asc_.name
	FROM products p
	JOIN categories c ON c.id = p.category_id
	LEFT JOIN units u ON u.id = p.unit_id
	LEFT JOIN tire_details td ON td.product_id = p.id
	LEFT JOIN tire_brands tb ON tb.id = td.brand_id
	LEFT JOIN tire_models tm ON tm.id = td.model_id
	LEFT JOIN tire_speed_indices tsi ON tsi.id = td.speed_index_id
	LEFT JOIN tire_load_indices tli ON tli.id = td.load_index_id
	LEFT JOIN auto_details ad ON ad.product_id = p.id
	LEFT JOIN auto_subcategories asc_ ON asc_.id = ad.subcategory_id
`

func scanProduct(rows *sql.Rows) (domain.Product, error) {
	var (
		p        domain.Product
		unitID   sql.Null[uuid.UUID]
		unitName sql.NullString

		tdID     sql.Null[uuid.UUID]
		tdSize   sql.NullString
		tdXL     sql.NullBool
		tdRF     sql.NullBool
		tbID     sql.Null[uuid.UUID]
		tbName   sql.NullString
		tmID     sql.Null[uuid.UUID]
		tmName   sql.NullString
		tmBrand  sql.Null[uuid.UUID]
		siID     sql.Null[uuid.UUID]
		siCode   sql.NullString
		siMaxKph sql.NullInt64
		liID     sql.Null[uuid.UUID]
		liCode   sql.NullString
		liMaxKg  sql.NullInt64

		adID     sql.Null[uuid.UUID]
		adBrand  sql.NullString
		adModel  sql.NullString
		subID    sql.Null[uuid.UUID]
		subName  sql.NullString
	)

	err := rows.Scan(
		&p.ID, &p.Name,
		&unitID, &unitName,
		&p.Category.ID, &p.Category.Name,
		&tdID, &tdSize, &tdXL, &tdRF,
		&tbID, &tbName,
		&tmID, &tmName, &tmBrand,
		&siID, &siCode, &siMaxKph,
		&liID, &liCode, &liMaxKg,
		&adID, &adBrand, &adModel,
		&subID, &subName,
	)
	if err != nil {
		return p, fmt.Errorf("failed to scan product: %w", err)
	}

	if unitID.Valid {
		p.Unit = &domain.Unit{ID: unitID.V, Name: unitName.String}
	}
	if tdID.Valid {
		p.Tire = &domain.TireDetails{
			ID:         tdID.V,
			Brand:      domain.TireBrand{ID: tbID.V, Name: tbName.String},
			Model:      domain.TireModel{ID: tmID.V, Name: tmName.String, BrandID: tmBrand.V},
			Size:       tdSize.String,
			SpeedIndex: domain.TireSpeedIndex{ID: siID.V, Code: siCode.String, MaxKph: int(siMaxKph.Int64)},
			LoadIndex:  domain.TireLoadIndex{ID: liID.V, Code: liCode.String, MaxKg: int(liMaxKg.Int64)},
			IsXL:       tdXL.Bool,
			IsRunFlat:  tdRF.Bool,
		}
	} else if adID.Valid {
		p.Auto = &domain.AutoDetails{
			ID:          adID.V,
			Subcategory: domain.AutoSubcategory{ID: subID.V, Name: subName.String},
			Brand:       adBrand.String,
			Model:       adModel.String,
		}
	}
	return p, nil
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, productSelect+` ORDER BY p.name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *productRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Product, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]domain.Product{}, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := productSelect + ` WHERE p.id IN (` + strings.Join(placeholders, ", ") + `)`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products by ids: %w", err)
	}
	defer rows.Close()

	products := map[uuid.UUID]domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products[p.ID] = p
	}
	return products, rows.Err()
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, productSelect+` WHERE p.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to find product: %w", err)
		}
		return nil, ErrProductNotFound
	}
	p, err := scanProduct(rows)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) Insert(ctx context.Context, id uuid.UUID, input *domain.ProductInput) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO products (id, name, category_id, unit_id) VALUES ($1, $2, $3, $4)`,
		id, input.Name, input.CategoryID, input.UnitID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	if err := insertDetails(ctx, tx, id, input); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *productRepository) Update(ctx context.Context, id uuid.UUID, input *domain.ProductInput) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE products SET name = $1, category_id = $2, unit_id = $3 WHERE id = $4`,
		input.Name, input.CategoryID, input.UnitID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if affected == 0 {
		return ErrProductNotFound
	}

	// detail rows are replaced wholesale, which also handles a kind switch
	if _, err := tx.ExecContext(ctx, `DELETE FROM tire_details WHERE product_id = $1`, id); err != nil {
		return fmt.Errorf("failed to clear tire details: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM auto_details WHERE product_id = $1`, id); err != nil {
		return fmt.Errorf("failed to clear auto details: %w", err)
	}

	if err := insertDetails(ctx, tx, id, input); err != nil {
		return err
	}
	return tx.Commit()
}

func insertDetails(ctx context.Context, tx *sql.Tx, productID uuid.UUID, input *domain.ProductInput) error {
	switch {
	case input.Tire != nil:
		_, err := tx.ExecContext(ctx, `
			INSERT INTO tire_details
				(id, product_id, brand_id, model_id, size, speed_index_id, load_index_id, is_xl, is_run_flat)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			uuid.New(), productID,
			input.Tire.BrandID, input.Tire.ModelID, input.Tire.Size,
			input.Tire.SpeedIndexID, input.Tire.LoadIndexID,
			input.Tire.IsXL, input.Tire.IsRunFlat,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrVariantExists
			}
			return fmt.Errorf("failed to insert tire details: %w", err)
		}
	case input.Auto != nil:
		_, err := tx.ExecContext(ctx, `
			INSERT INTO auto_details (id, product_id, subcategory_id, brand, model)
			VALUES ($1, $2, $3, $4, $5)`,
			uuid.New(), productID,
			input.Auto.SubcategoryID, input.Auto.Brand, input.Auto.Model,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrVariantExists
			}
			return fmt.Errorf("failed to insert auto details: %w", err)
		}
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrProductReferenced
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}
