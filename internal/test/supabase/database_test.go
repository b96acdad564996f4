package supabase_test

import (
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claynova-backend/internal/supabase"
)

// Every storefront read must order by explicit priority first (lower
// earlier, NULLs after all explicit values), newest first within ties.
const orderClause = `ORDER BY priority ASC NULLS LAST, created_at DESC`

var productColumns = []string{
	"id", "name", "price", "original_price", "image_url", "description",
	"category", "is_featured", "is_customizable", "is_visible", "priority",
	"created_at", "updated_at",
}

func newMockClient(t *testing.T) (*supabase.DatabaseClient, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return supabase.NewDatabaseClientFromDB(db), mock
}

func addProductRow(rows *sqlmock.Rows, name string, price float64, priority interface{}, createdAt time.Time) {
	rows.AddRow(uuid.New().String(), name, price, price+100,
		"https://store.test/img.jpg", "d", "kawaii",
		false, false, true, priority, createdAt, createdAt)
}

func TestListVisibleProducts_EmbedsOrderingClause(t *testing.T) {
	client, mock := newMockClient(t)

	now := time.Now()
	rows := sqlmock.NewRows(productColumns)
	addProductRow(rows, "First", 100, int64(1), now.Add(-time.Hour))
	addProductRow(rows, "Second", 100, int64(2), now)
	addProductRow(rows, "Last", 100, nil, now)

	mock.ExpectQuery(`(?s)WHERE is_visible = TRUE\s+` + orderClause).WillReturnRows(rows)

	products, err := client.ListVisibleProducts()
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "First", products[0].Name)
	assert.False(t, products[2].Priority.Valid)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReadQueries_EmbedOrderingClause(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectQuery(`(?s)is_visible = TRUE AND is_featured = TRUE\s+` + orderClause).
		WillReturnRows(sqlmock.NewRows(productColumns))
	_, err := client.ListFeaturedProducts()
	require.NoError(t, err)

	mock.ExpectQuery(`(?s)is_visible = TRUE AND category = \$1\s+` + orderClause).
		WithArgs("sea").
		WillReturnRows(sqlmock.NewRows(productColumns))
	_, err = client.ListProductsByCategory("sea")
	require.NoError(t, err)

	mock.ExpectQuery(`(?s)FROM products\s+` + orderClause).
		WillReturnRows(sqlmock.NewRows(productColumns))
	_, err = client.ListAllProducts()
	require.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListProductsByCategory_AllUsesVisibleQuery(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectQuery(`(?s)WHERE is_visible = TRUE\s+` + orderClause).
		WillReturnRows(sqlmock.NewRows(productColumns))

	_, err := client.ListProductsByCategory("all")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProduct_NoRowsIsNotAnError(t *testing.T) {
	client, mock := newMockClient(t)
	id := uuid.New()

	mock.ExpectQuery(`(?s)FROM products\s+WHERE id = \$1`).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	product, err := client.GetProduct(id)
	require.NoError(t, err)
	assert.Nil(t, product)
}

func TestScan_PreservesPriceExactly(t *testing.T) {
	client, mock := newMockClient(t)

	rows := sqlmock.NewRows(productColumns)
	addProductRow(rows, "Precise", 123.456789, nil, time.Now())
	mock.ExpectQuery(`(?s)WHERE is_visible = TRUE`).WillReturnRows(rows)

	products, err := client.ListVisibleProducts()
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 123.456789, products[0].Price)
}
