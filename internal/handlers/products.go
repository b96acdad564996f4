package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"claynova-backend/internal/checkout"
	"claynova-backend/internal/models"
	"claynova-backend/internal/services"
)

// ProductsHandler serves the public storefront reads and the
// checkout link endpoints.
type ProductsHandler struct {
	service        *services.ProductService
	whatsappNumber string
}

func NewProductsHandler(service *services.ProductService, whatsappNumber string) *ProductsHandler {
	return &ProductsHandler{
		service:        service,
		whatsappNumber: whatsappNumber,
	}
}

// ListProducts godoc
// @Summary     List visible products
// @Description Returns all storefront-visible products, ordered by priority then recency
// @Tags        products
// @Produce     json
// @Success     200 {object} models.ProductListResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /products [get]
func (h *ProductsHandler) ListProducts(c *gin.Context) {
	products, err := h.service.VisibleProducts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ProductListResponse{Products: models.ToProductResponses(products)})
}

// ListFeatured godoc
// @Summary     List featured products
// @Description Returns visible products flagged for promotional placement
// @Tags        products
// @Produce     json
// @Success     200 {object} models.ProductListResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /products/featured [get]
func (h *ProductsHandler) ListFeatured(c *gin.Context) {
	products, err := h.service.FeaturedProducts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ProductListResponse{Products: models.ToProductResponses(products)})
}

// ListByCategory godoc
// @Summary     List products by category
// @Description Returns visible products in a category; "all" returns every visible product
// @Tags        products
// @Produce     json
// @Param       category path string true "Category name or all"
// @Success     200 {object} models.ProductListResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /products/category/{category} [get]
func (h *ProductsHandler) ListByCategory(c *gin.Context) {
	products, err := h.service.ProductsByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ProductListResponse{Products: models.ToProductResponses(products)})
}

// ListCategories godoc
// @Summary     List product categories
// @Description Returns the distinct categories among visible products
// @Tags        products
// @Produce     json
// @Success     200 {object} models.CategoriesResponse
// @Router      /products/categories [get]
func (h *ProductsHandler) ListCategories(c *gin.Context) {
	categories, err := h.service.Categories()
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.CategoriesResponse{Categories: categories})
}

// GetProduct godoc
// @Summary     Get a product
// @Tags        products
// @Produce     json
// @Param       product_id path string true "Product ID (UUID)"
// @Success     200 {object} models.ProductResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /products/{product_id} [get]
func (h *ProductsHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid product id"})
		return
	}

	product, err := h.service.ProductByID(id)
	if err != nil {
		writeError(c, err)
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "product not found"})
		return
	}

	c.JSON(http.StatusOK, models.ToProductResponse(product))
}

// CheckoutLink godoc
// @Summary     Build a WhatsApp checkout link
// @Description Returns a wa.me deep link with a prefilled buy-now message, including any customization
// @Tags        checkout
// @Produce     json
// @Param       product_id path string true "Product ID (UUID)"
// @Param       initial query string false "Custom initial for personalized keychains"
// @Param       color_theme query string false "Color theme id (default, pink, blue, green, orange)"
// @Success     200 {object} models.CheckoutLinkResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /products/{product_id}/checkout-link [get]
func (h *ProductsHandler) CheckoutLink(c *gin.Context) {
	id, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid product id"})
		return
	}

	product, err := h.service.ProductByID(id)
	if err != nil {
		writeError(c, err)
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "product not found"})
		return
	}

	message := checkout.BuildProductMessage(product, checkout.Customization{
		Initial:    c.Query("initial"),
		ColorTheme: c.Query("color_theme"),
	})

	c.JSON(http.StatusOK, models.CheckoutLinkResponse{
		URL:     checkout.BuildLink(h.whatsappNumber, message),
		Message: message,
	})
}

// ContactLink godoc
// @Summary     Build a WhatsApp contact link
// @Description Returns a wa.me deep link with a prefilled contact-form message
// @Tags        checkout
// @Accept      json
// @Produce     json
// @Param       request body models.ContactLinkRequest true "Contact details"
// @Success     200 {object} models.CheckoutLinkResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /contact/link [post]
func (h *ProductsHandler) ContactLink(c *gin.Context) {
	var req models.ContactLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request",
			Message: err.Error(),
		})
		return
	}

	message := checkout.BuildContactMessage(req.Name, req.Email, req.Message)

	c.JSON(http.StatusOK, models.CheckoutLinkResponse{
		URL:     checkout.BuildLink(h.whatsappNumber, message),
		Message: message,
	})
}
