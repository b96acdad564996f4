package models_test

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claynova-backend/internal/models"
)

func TestProductPatch_AssignmentsOnlyPresentFields(t *testing.T) {
	name := "Coral Charm"
	visible := false
	patch := models.ProductPatch{Name: &name, IsVisible: &visible}

	columns, values := patch.Assignments()

	require.Equal(t, []string{"name", "is_visible"}, columns)
	require.Len(t, values, 2)
	assert.Equal(t, "Coral Charm", values[0])
	assert.Equal(t, false, values[1])
}

func TestProductPatch_Empty(t *testing.T) {
	patch := models.ProductPatch{}

	columns, values := patch.Assignments()

	assert.Empty(t, columns)
	assert.Empty(t, values)
	assert.True(t, patch.IsEmpty())
}

func TestProductPatch_PriorityNullVsAbsent(t *testing.T) {
	// Absent: priority untouched.
	assert.True(t, models.ProductPatch{}.IsEmpty())

	// Present but invalid: priority set to NULL.
	patch := models.ProductPatch{Priority: &sql.NullInt64{}}
	columns, values := patch.Assignments()
	require.Equal(t, []string{"priority"}, columns)
	assert.Equal(t, sql.NullInt64{}, values[0])
	assert.False(t, patch.IsEmpty())
}

func TestIsValidCategory(t *testing.T) {
	for _, category := range models.Categories {
		assert.True(t, models.IsValidCategory(category), category)
	}
	assert.False(t, models.IsValidCategory("galaxy"))
	assert.False(t, models.IsValidCategory(models.CategoryAll), "the all sentinel is not a stored category")
}

func TestToProductResponse_NullPriority(t *testing.T) {
	response := models.ToProductResponse(&models.Product{Name: "Snow Pal"})

	assert.Nil(t, response.Priority)
}

func TestToProductResponse_FieldMapping(t *testing.T) {
	product := &models.Product{
		Name:          "Coral Charm",
		Price:         299,
		OriginalPrice: 399,
		ImageURL:      "https://example.test/products/x.jpg",
		Category:      "sea",
		IsVisible:     true,
		Priority:      sql.NullInt64{Int64: 3, Valid: true},
	}

	response := models.ToProductResponse(product)

	assert.Equal(t, "https://example.test/products/x.jpg", response.Image)
	require.NotNil(t, response.Priority)
	assert.Equal(t, int64(3), *response.Priority)
	assert.Equal(t, 299.0, response.Price)
	assert.Equal(t, 399.0, response.OriginalPrice)
}
