package supabase

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"claynova-backend/internal/models"
)

const productColumns = `id, name, price, original_price, image_url, description, category,
		is_featured, is_customizable, is_visible, priority, created_at, updated_at`

// Storefront ordering: explicit priority first (lower is earlier,
// NULL after every explicit value), newest first within ties.
const productOrder = `ORDER BY priority ASC NULLS LAST, created_at DESC`

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

// NewDatabaseClientFromDB wraps an already-open connection.
func NewDatabaseClientFromDB(db *sql.DB) *DatabaseClient {
	return &DatabaseClient{db: db}
}

func (d *DatabaseClient) scanProduct(row *sql.Row) (*models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Price, &p.OriginalPrice, &p.ImageURL, &p.Description,
		&p.Category, &p.IsFeatured, &p.IsCustomizable, &p.IsVisible, &p.Priority,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (d *DatabaseClient) queryProducts(query string, args ...interface{}) ([]models.Product, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, &models.RepositoryError{Op: "list", Err: err}
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		err := rows.Scan(
			&p.ID, &p.Name, &p.Price, &p.OriginalPrice, &p.ImageURL, &p.Description,
			&p.Category, &p.IsFeatured, &p.IsCustomizable, &p.IsVisible, &p.Priority,
			&p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, &models.RepositoryError{Op: "scan", Err: err}
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.RepositoryError{Op: "list", Err: err}
	}

	return products, nil
}

// ListVisibleProducts returns the storefront catalog.
func (d *DatabaseClient) ListVisibleProducts() ([]models.Product, error) {
	return d.queryProducts(fmt.Sprintf(`
		SELECT %s FROM products
		WHERE is_visible = TRUE
		%s
	`, productColumns, productOrder))
}

// ListFeaturedProducts returns visible products flagged for
// promotional placement.
func (d *DatabaseClient) ListFeaturedProducts() ([]models.Product, error) {
	return d.queryProducts(fmt.Sprintf(`
		SELECT %s FROM products
		WHERE is_visible = TRUE AND is_featured = TRUE
		%s
	`, productColumns, productOrder))
}

// ListProductsByCategory filters visible products by category. The
// "all" sentinel bypasses the category filter.
func (d *DatabaseClient) ListProductsByCategory(category string) ([]models.Product, error) {
	if category == models.CategoryAll {
		return d.ListVisibleProducts()
	}
	return d.queryProducts(fmt.Sprintf(`
		SELECT %s FROM products
		WHERE is_visible = TRUE AND category = $1
		%s
	`, productColumns, productOrder), category)
}

// ListAllProducts returns every row regardless of visibility, for
// the admin panel.
func (d *DatabaseClient) ListAllProducts() ([]models.Product, error) {
	return d.queryProducts(fmt.Sprintf(`
		SELECT %s FROM products
		%s
	`, productColumns, productOrder))
}

// GetProduct returns (nil, nil) when no row matches: a miss is a
// valid empty result, not an error.
func (d *DatabaseClient) GetProduct(id uuid.UUID) (*models.Product, error) {
	product, err := d.scanProduct(d.db.QueryRow(fmt.Sprintf(`
		SELECT %s FROM products
		WHERE id = $1
	`, productColumns), id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, &models.RepositoryError{Op: "get", Err: err}
	}
	return product, nil
}

// ListCategories returns the distinct categories among visible rows.
// On query failure or an empty result it falls back to the fixed
// closed set so the storefront filter bar never goes blank.
func (d *DatabaseClient) ListCategories() ([]string, error) {
	rows, err := d.db.Query(`
		SELECT DISTINCT category FROM products
		WHERE is_visible = TRUE
		ORDER BY category ASC
	`)
	if err != nil {
		return models.Categories, nil
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return models.Categories, nil
		}
		categories = append(categories, c)
	}
	if len(categories) == 0 {
		return models.Categories, nil
	}

	return categories, nil
}

// CreateProduct inserts a row; id and timestamps are assigned by the
// database, never by the caller.
func (d *DatabaseClient) CreateProduct(p *models.Product) (*models.Product, error) {
	created, err := d.scanProduct(d.db.QueryRow(fmt.Sprintf(`
		INSERT INTO products (name, price, original_price, image_url, description,
			category, is_featured, is_customizable, is_visible, priority)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s
	`, productColumns),
		p.Name, p.Price, p.OriginalPrice, p.ImageURL, p.Description,
		p.Category, p.IsFeatured, p.IsCustomizable, p.IsVisible, p.Priority,
	))
	if err != nil {
		return nil, &models.RepositoryError{Op: "create", Err: err}
	}
	return created, nil
}

// UpdateProduct applies only the fields present in the patch. An
// empty patch still touches updated_at so the call round-trips the
// row and reports a missing id correctly.
func (d *DatabaseClient) UpdateProduct(id uuid.UUID, patch models.ProductPatch) (*models.Product, error) {
	columns, values := patch.Assignments()

	setClauses := make([]string, 0, len(columns)+1)
	for i, column := range columns {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, i+1))
	}
	setClauses = append(setClauses, "updated_at = NOW()")
	values = append(values, id)

	query := fmt.Sprintf(`
		UPDATE products
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), len(values), productColumns)

	updated, err := d.scanProduct(d.db.QueryRow(query, values...))
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{ID: id.String()}
	}
	if err != nil {
		return nil, &models.RepositoryError{Op: "update", Err: err}
	}
	return updated, nil
}

// DeleteProduct removes the row only; the stored image is left in
// place.
func (d *DatabaseClient) DeleteProduct(id uuid.UUID) error {
	result, err := d.db.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return &models.RepositoryError{Op: "delete", Err: err}
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return &models.RepositoryError{Op: "delete", Err: err}
	}
	if affected == 0 {
		return &models.NotFoundError{ID: id.String()}
	}

	return nil
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}
