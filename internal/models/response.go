package models

import "time"

// ProductResponse uses the field names the storefront frontend
// expects (camelCase, image instead of image_url).
type ProductResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Price          float64   `json:"price"`
	OriginalPrice  float64   `json:"originalPrice"`
	Image          string    `json:"image"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`
	IsFeatured     bool      `json:"isFeatured"`
	IsCustomizable bool      `json:"isCustomizable"`
	IsVisible      bool      `json:"isVisible"`
	Priority       *int64    `json:"priority"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func ToProductResponse(p *Product) ProductResponse {
	var priority *int64
	if p.Priority.Valid {
		v := p.Priority.Int64
		priority = &v
	}
	return ProductResponse{
		ID:             p.ID.String(),
		Name:           p.Name,
		Price:          p.Price,
		OriginalPrice:  p.OriginalPrice,
		Image:          p.ImageURL,
		Description:    p.Description,
		Category:       p.Category,
		IsFeatured:     p.IsFeatured,
		IsCustomizable: p.IsCustomizable,
		IsVisible:      p.IsVisible,
		Priority:       priority,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func ToProductResponses(products []Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i]))
	}
	return responses
}

type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// SaveProductResponse carries the created/updated product plus the
// intermediate upload and AI sub-results for caller diagnostics.
type SaveProductResponse struct {
	Product ProductResponse   `json:"product"`
	Upload  *UploadInfo       `json:"upload,omitempty"`
	AI      *AIGenerationInfo `json:"ai,omitempty"`
}

type UploadInfo struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

type AIGenerationInfo struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Success     bool   `json:"success"`
	Error       string `json:"error,omitempty"`
}

type CheckoutLinkResponse struct {
	URL     string `json:"url"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
