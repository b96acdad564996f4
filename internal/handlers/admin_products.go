package handlers

import (
	"database/sql"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"claynova-backend/internal/models"
	"claynova-backend/internal/services"
	"claynova-backend/internal/supabase"
)

// AdminProductsHandler serves the admin panel CRUD endpoints. The
// routes are deliberately unprotected.
type AdminProductsHandler struct {
	service *services.ProductService
}

func NewAdminProductsHandler(service *services.ProductService) *AdminProductsHandler {
	return &AdminProductsHandler{
		service: service,
	}
}

// readImageFile validates the declared type and size before reading
// a single byte of the body, so an oversized file is rejected
// without any network call.
func readImageFile(header *multipart.FileHeader) (*services.ImageFile, error) {
	contentType := header.Header.Get("Content-Type")
	if err := supabase.ValidateImage(header.Filename, contentType, header.Size); err != nil {
		return nil, err
	}

	src, err := header.Open()
	if err != nil {
		return nil, &models.ValidationError{Field: "image", Message: "failed to open uploaded file"}
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, &models.ValidationError{Field: "image", Message: "failed to read uploaded file"}
	}

	return &services.ImageFile{
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}

// ListProducts godoc
// @Summary     List all products for the admin panel
// @Description Returns every product regardless of visibility
// @Tags        admin
// @Produce     json
// @Success     200 {object} models.ProductListResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /admin/products [get]
func (h *AdminProductsHandler) ListProducts(c *gin.Context) {
	products, err := h.service.AllProductsForAdmin()
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ProductListResponse{Products: models.ToProductResponses(products)})
}

// CreateProduct godoc
// @Summary     Create a product with an image
// @Description Uploads the image, fills missing fields with AI-generated content, and persists the product
// @Tags        admin
// @Accept      multipart/form-data
// @Produce     json
// @Param       image formData file true "Product image (JPEG, PNG, or WebP, max 5MB)"
// @Param       price formData number true "Discounted price"
// @Param       original_price formData number true "Original price (must exceed price)"
// @Param       priority formData integer false "Manual sort key (lower displays earlier)"
// @Param       is_visible formData boolean false "Visible on the storefront (default true)"
// @Param       is_featured formData boolean false "Featured placement"
// @Param       is_customizable formData boolean false "Accepts customization"
// @Param       name formData string false "Manual title (AI fills it when absent)"
// @Param       description formData string false "Manual description (AI fills it when absent)"
// @Param       category formData string false "Manual category (AI fills it when absent)"
// @Success     200 {object} models.SaveProductResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /admin/products [post]
func (h *AdminProductsHandler) CreateProduct(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation failed",
			Field:   "image",
			Message: "Product image is required",
		})
		return
	}

	image, err := readImageFile(header)
	if err != nil {
		writeError(c, err)
		return
	}

	form := &productForm{c: c}
	input := services.CreateProductInput{
		Image:             *image,
		Price:             form.requiredFloat("price"),
		OriginalPrice:     form.requiredFloat("original_price"),
		Priority:          form.optionalInt("priority"),
		IsVisible:         form.boolOr("is_visible", true),
		IsFeatured:        form.boolOr("is_featured", false),
		IsCustomizable:    form.boolOr("is_customizable", false),
		ManualTitle:       c.PostForm("name"),
		ManualDescription: c.PostForm("description"),
		ManualCategory:    c.PostForm("category"),
	}
	if form.err != nil {
		writeError(c, form.err)
		return
	}

	result, err := h.service.CreateProductWithImage(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, saveResponse(result))
}

// UpdateProduct godoc
// @Summary     Update a product
// @Description Applies a partial update; only supplied fields change. A new image replaces the stored one.
// @Tags        admin
// @Accept      multipart/form-data
// @Produce     json
// @Param       product_id path string true "Product ID (UUID)"
// @Param       image formData file false "Replacement image"
// @Param       regenerate_ai formData boolean false "Regenerate title/description/category with AI"
// @Param       price formData number false "Discounted price"
// @Param       original_price formData number false "Original price"
// @Param       priority formData integer false "Manual sort key; empty value clears it"
// @Param       is_visible formData boolean false "Visible on the storefront"
// @Param       is_featured formData boolean false "Featured placement"
// @Param       is_customizable formData boolean false "Accepts customization"
// @Param       name formData string false "Title"
// @Param       description formData string false "Description"
// @Param       category formData string false "Category"
// @Success     200 {object} models.SaveProductResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /admin/products/{product_id} [patch]
func (h *AdminProductsHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid product id"})
		return
	}

	form := &productForm{c: c}
	input := services.UpdateProductInput{
		ID:             id,
		RegenerateAI:   form.boolOr("regenerate_ai", false),
		Name:           form.optionalString("name"),
		Description:    form.optionalString("description"),
		Category:       form.optionalString("category"),
		Price:          form.optionalFloat("price"),
		OriginalPrice:  form.optionalFloat("original_price"),
		Priority:       form.optionalPriority(),
		IsVisible:      form.optionalBool("is_visible"),
		IsFeatured:     form.optionalBool("is_featured"),
		IsCustomizable: form.optionalBool("is_customizable"),
	}
	if form.err != nil {
		writeError(c, form.err)
		return
	}

	if header, err := c.FormFile("image"); err == nil {
		image, err := readImageFile(header)
		if err != nil {
			writeError(c, err)
			return
		}
		input.Image = image
	}

	result, err := h.service.UpdateProductWithImage(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, saveResponse(result))
}

// DeleteProduct godoc
// @Summary     Delete a product
// @Description Removes the product row. The stored image is left in place.
// @Tags        admin
// @Produce     json
// @Param       product_id path string true "Product ID (UUID)"
// @Success     204 "No Content"
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /admin/products/{product_id} [delete]
func (h *AdminProductsHandler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid product id"})
		return
	}

	if err := h.service.DeleteProduct(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func saveResponse(result *services.ProductResult) models.SaveProductResponse {
	response := models.SaveProductResponse{
		Product: models.ToProductResponse(result.Product),
	}
	if result.Upload != nil {
		response.Upload = &models.UploadInfo{URL: result.Upload.URL, Path: result.Upload.Path}
	}
	if result.AI != nil {
		response.AI = &models.AIGenerationInfo{
			Title:       result.AI.Title,
			Description: result.AI.Description,
			Category:    result.AI.Category,
			Success:     result.AI.Success,
			Error:       result.AI.Error,
		}
	}
	return response
}

// productForm reads multipart form fields, distinguishing "absent"
// from "present but empty" so patches only touch supplied fields. A
// malformed value records a ValidationError and fails the request.
type productForm struct {
	c   *gin.Context
	err error
}

func (f *productForm) fail(field, message string) {
	if f.err == nil {
		f.err = &models.ValidationError{Field: field, Message: message}
	}
}

func (f *productForm) requiredFloat(field string) float64 {
	raw, ok := f.c.GetPostForm(field)
	if !ok || raw == "" {
		f.fail(field, field+" is required")
		return 0
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		f.fail(field, "must be a number")
		return 0
	}
	return value
}

func (f *productForm) optionalFloat(field string) *float64 {
	raw, ok := f.c.GetPostForm(field)
	if !ok || raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		f.fail(field, "must be a number")
		return nil
	}
	return &value
}

func (f *productForm) optionalInt(field string) *int64 {
	raw, ok := f.c.GetPostForm(field)
	if !ok || raw == "" {
		return nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		f.fail(field, "must be an integer")
		return nil
	}
	return &value
}

func (f *productForm) optionalString(field string) *string {
	raw, ok := f.c.GetPostForm(field)
	if !ok || raw == "" {
		return nil
	}
	return &raw
}

func (f *productForm) optionalBool(field string) *bool {
	raw, ok := f.c.GetPostForm(field)
	if !ok || raw == "" {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		f.fail(field, "must be a boolean")
		return nil
	}
	return &value
}

func (f *productForm) boolOr(field string, defaultValue bool) bool {
	if v := f.optionalBool(field); v != nil {
		return *v
	}
	return defaultValue
}

// optionalPriority maps a supplied-but-empty priority to NULL, and
// an absent one to "leave untouched".
func (f *productForm) optionalPriority() *sql.NullInt64 {
	raw, ok := f.c.GetPostForm("priority")
	if !ok {
		return nil
	}
	if raw == "" {
		return &sql.NullInt64{}
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		f.fail("priority", "must be an integer")
		return nil
	}
	return &sql.NullInt64{Int64: value, Valid: true}
}
