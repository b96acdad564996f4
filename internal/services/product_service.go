package services

import (
	"context"
	"database/sql"
	"log"

	"github.com/google/uuid"

	"claynova-backend/internal/cache"
	"claynova-backend/internal/genai"
	"claynova-backend/internal/models"
)

// ProductStore is the persistence boundary for products.
type ProductStore interface {
	ListVisibleProducts() ([]models.Product, error)
	ListFeaturedProducts() ([]models.Product, error)
	ListProductsByCategory(category string) ([]models.Product, error)
	ListAllProducts() ([]models.Product, error)
	GetProduct(id uuid.UUID) (*models.Product, error)
	ListCategories() ([]string, error)
	CreateProduct(p *models.Product) (*models.Product, error)
	UpdateProduct(id uuid.UUID, patch models.ProductPatch) (*models.Product, error)
	DeleteProduct(id uuid.UUID) error
}

// ImageStore is the binary storage boundary for product images.
type ImageStore interface {
	UploadProductImage(filename, contentType string, data []byte) (*models.ImageUpload, error)
	RemoveProductImage(storagePath string) bool
	DownloadProductImage(storagePath string) ([]byte, error)
	PathFromPublicURL(publicURL string) string
}

// ContentGenerator is the generative-model boundary.
type ContentGenerator interface {
	Available() bool
	GenerateWithFallback(image []byte, mimeType string, price, originalPrice float64) models.AIContent
}

// EventPublisher notifies listeners of catalog changes.
type EventPublisher interface {
	PublishProductEvent(productID uuid.UUID, event string, payload map[string]interface{}) error
}

// ProductService composes the repository, image store, and content
// generator into the create/update workflows. All collaborators are
// injected at construction so tests can substitute fakes.
type ProductService struct {
	store     ProductStore
	images    ImageStore
	generator ContentGenerator
	events    EventPublisher
	cache     *cache.ProductCache
}

func NewProductService(
	store ProductStore,
	images ImageStore,
	generator ContentGenerator,
	events EventPublisher,
	productCache *cache.ProductCache,
) *ProductService {
	return &ProductService{
		store:     store,
		images:    images,
		generator: generator,
		events:    events,
		cache:     productCache,
	}
}

// ImageFile is an in-memory uploaded file with its declared type.
type ImageFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type CreateProductInput struct {
	Image          ImageFile
	Price          float64
	OriginalPrice  float64
	Priority       *int64
	IsVisible      bool
	IsFeatured     bool
	IsCustomizable bool

	// Manual values win over AI-generated ones; empty means absent.
	ManualTitle       string
	ManualDescription string
	ManualCategory    string
}

type UpdateProductInput struct {
	ID           uuid.UUID
	Image        *ImageFile
	RegenerateAI bool

	Name           *string
	Description    *string
	Category       *string
	Price          *float64
	OriginalPrice  *float64
	Priority       *sql.NullInt64
	IsVisible      *bool
	IsFeatured     *bool
	IsCustomizable *bool
}

// ProductResult carries the persisted product plus the intermediate
// upload and AI sub-results for caller diagnostics.
type ProductResult struct {
	Product *models.Product
	Upload  *models.ImageUpload
	AI      *models.AIContent
}

// resolveContent applies the fixed priority order: manual value,
// then AI-generated value, then the fixed fallback. Used uniformly
// for each of the three AI-produced fields.
func resolveContent(manual, generated, fallback string) string {
	if manual != "" {
		return manual
	}
	if generated != "" {
		return generated
	}
	return fallback
}

func validatePrices(price, originalPrice float64) error {
	if price <= 0 {
		return &models.ValidationError{Field: "price", Message: "Price must be greater than 0"}
	}
	if originalPrice <= 0 {
		return &models.ValidationError{Field: "originalPrice", Message: "Original price must be greater than 0"}
	}
	if price >= originalPrice {
		return &models.ValidationError{Field: "price", Message: "Discounted price must be less than original price"}
	}
	return nil
}

// CreateProductWithImage runs the create workflow: upload the image,
// generate content for any missing manual field, persist. A product
// row is never created without a successfully stored image, and the
// create never fails solely because generation failed.
func (s *ProductService) CreateProductWithImage(ctx context.Context, input CreateProductInput) (*ProductResult, error) {
	if err := validatePrices(input.Price, input.OriginalPrice); err != nil {
		return nil, err
	}
	if input.ManualCategory != "" && !models.IsValidCategory(input.ManualCategory) {
		return nil, &models.ValidationError{Field: "category", Message: "Unknown category"}
	}

	upload, err := s.images.UploadProductImage(input.Image.Filename, input.Image.ContentType, input.Image.Data)
	if err != nil {
		return nil, err
	}

	var aiContent *models.AIContent
	needsAI := input.ManualTitle == "" || input.ManualDescription == "" || input.ManualCategory == ""
	if needsAI {
		result := s.generator.GenerateWithFallback(input.Image.Data, input.Image.ContentType, input.Price, input.OriginalPrice)
		aiContent = &result
		if err := result.Err(); err != nil {
			log.Printf("content generation failed, using fallbacks: %v", err)
		}
	}

	generated := models.AIContent{}
	if aiContent != nil && aiContent.Success {
		generated = *aiContent
	}

	var priority sql.NullInt64
	if input.Priority != nil {
		priority = sql.NullInt64{Int64: *input.Priority, Valid: true}
	}

	product := &models.Product{
		Name:           resolveContent(input.ManualTitle, generated.Title, genai.FallbackTitle),
		Price:          input.Price,
		OriginalPrice:  input.OriginalPrice,
		ImageURL:       upload.URL,
		Description:    resolveContent(input.ManualDescription, generated.Description, genai.FallbackDescription),
		Category:       resolveContent(input.ManualCategory, generated.Category, models.DefaultCategory),
		IsFeatured:     input.IsFeatured,
		IsCustomizable: input.IsCustomizable,
		IsVisible:      input.IsVisible,
		Priority:       priority,
	}

	created, err := s.store.CreateProduct(product)
	if err != nil {
		return nil, err
	}

	if err := s.events.PublishProductEvent(created.ID, "product_created", map[string]interface{}{
		"product_id": created.ID.String(),
		"name":       created.Name,
		"category":   created.Category,
	}); err != nil {
		log.Printf("failed to publish product_created for %s: %v", created.ID, err)
	}
	s.cache.Invalidate(ctx)

	return &ProductResult{Product: created, Upload: upload, AI: aiContent}, nil
}

// UpdateProductWithImage runs the update workflow. A replaced image
// is deleted from storage best-effort; a failed delete never fails
// the update. Explicitly supplied fields always win over
// AI-produced values.
func (s *ProductService) UpdateProductWithImage(ctx context.Context, input UpdateProductInput) (*ProductResult, error) {
	current, err := s.store.GetProduct(input.ID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, &models.NotFoundError{ID: input.ID.String()}
	}

	if input.Category != nil && !models.IsValidCategory(*input.Category) {
		return nil, &models.ValidationError{Field: "category", Message: "Unknown category"}
	}

	// The price ordering invariant is checked against the merged
	// row, so an update touching either price cannot break it.
	effectivePrice := current.Price
	if input.Price != nil {
		effectivePrice = *input.Price
	}
	effectiveOriginal := current.OriginalPrice
	if input.OriginalPrice != nil {
		effectiveOriginal = *input.OriginalPrice
	}
	if input.Price != nil || input.OriginalPrice != nil {
		if err := validatePrices(effectivePrice, effectiveOriginal); err != nil {
			return nil, err
		}
	}

	var upload *models.ImageUpload
	if input.Image != nil {
		upload, err = s.images.UploadProductImage(input.Image.Filename, input.Image.ContentType, input.Image.Data)
		if err != nil {
			return nil, err
		}

		// Clean up the replaced object. Non-critical: the row update
		// proceeds whether or not the old object goes away.
		if oldPath := s.images.PathFromPublicURL(current.ImageURL); oldPath != "" && oldPath != upload.Path {
			if !s.images.RemoveProductImage(oldPath) {
				log.Printf("failed to remove replaced image %s for product %s", oldPath, input.ID)
			}
		}
	}

	var aiContent *models.AIContent
	if input.RegenerateAI {
		imageData, mimeType := s.imageForRegeneration(input, current)
		if imageData != nil {
			result := s.generator.GenerateWithFallback(imageData, mimeType, effectivePrice, effectiveOriginal)
			aiContent = &result
			if err := result.Err(); err != nil {
				log.Printf("content regeneration failed for product %s: %v", input.ID, err)
			}
		}
	}

	patch := models.ProductPatch{
		Name:           input.Name,
		Description:    input.Description,
		Category:       input.Category,
		Price:          input.Price,
		OriginalPrice:  input.OriginalPrice,
		Priority:       input.Priority,
		IsVisible:      input.IsVisible,
		IsFeatured:     input.IsFeatured,
		IsCustomizable: input.IsCustomizable,
	}
	if upload != nil {
		patch.ImageURL = &upload.URL
	}

	// AI values fill only the fields the request left unspecified.
	if aiContent != nil && aiContent.Success {
		if patch.Name == nil && aiContent.Title != "" {
			patch.Name = &aiContent.Title
		}
		if patch.Description == nil && aiContent.Description != "" {
			patch.Description = &aiContent.Description
		}
		if patch.Category == nil && aiContent.Category != "" {
			patch.Category = &aiContent.Category
		}
	}

	updated, err := s.store.UpdateProduct(input.ID, patch)
	if err != nil {
		return nil, err
	}

	if err := s.events.PublishProductEvent(updated.ID, "product_updated", map[string]interface{}{
		"product_id": updated.ID.String(),
		"name":       updated.Name,
	}); err != nil {
		log.Printf("failed to publish product_updated for %s: %v", updated.ID, err)
	}
	s.cache.Invalidate(ctx)

	return &ProductResult{Product: updated, Upload: upload, AI: aiContent}, nil
}

// imageForRegeneration picks the bytes to send to the model: the
// new upload when present, otherwise the currently stored object.
func (s *ProductService) imageForRegeneration(input UpdateProductInput, current *models.Product) ([]byte, string) {
	if input.Image != nil {
		return input.Image.Data, input.Image.ContentType
	}

	storagePath := s.images.PathFromPublicURL(current.ImageURL)
	if storagePath == "" {
		return nil, ""
	}
	data, err := s.images.DownloadProductImage(storagePath)
	if err != nil {
		log.Printf("failed to download image for regeneration, product %s: %v", current.ID, err)
		return nil, ""
	}
	return data, "image/jpeg"
}

// DeleteProduct removes the row. The stored image is deliberately
// left behind; orphaned objects are not garbage-collected here.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteProduct(id); err != nil {
		return err
	}

	if err := s.events.PublishProductEvent(id, "product_deleted", map[string]interface{}{
		"product_id": id.String(),
	}); err != nil {
		log.Printf("failed to publish product_deleted for %s: %v", id, err)
	}
	s.cache.Invalidate(ctx)

	return nil
}

func (s *ProductService) cachedList(ctx context.Context, key string, load func() ([]models.Product, error)) ([]models.Product, error) {
	if products, ok := s.cache.GetProducts(ctx, key); ok {
		return products, nil
	}

	products, err := load()
	if err != nil {
		return nil, err
	}

	s.cache.SetProducts(ctx, key, products)
	return products, nil
}

func (s *ProductService) VisibleProducts(ctx context.Context) ([]models.Product, error) {
	return s.cachedList(ctx, cache.KeyVisible, s.store.ListVisibleProducts)
}

func (s *ProductService) FeaturedProducts(ctx context.Context) ([]models.Product, error) {
	return s.cachedList(ctx, cache.KeyFeatured, s.store.ListFeaturedProducts)
}

func (s *ProductService) ProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return s.cachedList(ctx, cache.CategoryKey(category), func() ([]models.Product, error) {
		return s.store.ListProductsByCategory(category)
	})
}

// AllProductsForAdmin bypasses both the visibility filter and the
// cache: the admin panel always sees fresh rows.
func (s *ProductService) AllProductsForAdmin() ([]models.Product, error) {
	return s.store.ListAllProducts()
}

func (s *ProductService) ProductByID(id uuid.UUID) (*models.Product, error) {
	return s.store.GetProduct(id)
}

func (s *ProductService) Categories() ([]string, error) {
	return s.store.ListCategories()
}
