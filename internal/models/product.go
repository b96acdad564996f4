package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Product categories form a closed set; anything else is coerced to
// DefaultCategory before it reaches the database.
const (
	CategoryPersonalized = "personalized"
	CategoryKawaii       = "kawaii"
	CategorySea          = "sea"
	CategoryWinter       = "winter"

	// CategoryAll is a filter sentinel, never a stored value.
	CategoryAll = "all"

	DefaultCategory = CategoryKawaii
)

// Categories lists the valid stored categories in display order.
var Categories = []string{CategoryPersonalized, CategoryKawaii, CategorySea, CategoryWinter}

func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

type Product struct {
	ID             uuid.UUID
	Name           string
	Price          float64
	OriginalPrice  float64
	ImageURL       string
	Description    string
	Category       string
	IsFeatured     bool
	IsCustomizable bool
	IsVisible      bool
	Priority       sql.NullInt64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ProductPatch is a partial update: nil fields are left untouched.
// Priority distinguishes "not supplied" (nil) from "set to NULL"
// (non-nil with Valid=false).
type ProductPatch struct {
	Name           *string
	Price          *float64
	OriginalPrice  *float64
	ImageURL       *string
	Description    *string
	Category       *string
	IsFeatured     *bool
	IsCustomizable *bool
	IsVisible      *bool
	Priority       *sql.NullInt64
}

// IsEmpty reports whether the patch carries no field at all.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Price == nil && p.OriginalPrice == nil &&
		p.ImageURL == nil && p.Description == nil && p.Category == nil &&
		p.IsFeatured == nil && p.IsCustomizable == nil && p.IsVisible == nil &&
		p.Priority == nil
}

// Assignments returns the column names and values for the supplied
// fields, in a stable order. Callers turn these into a SQL SET clause.
func (p ProductPatch) Assignments() ([]string, []interface{}) {
	var columns []string
	var values []interface{}

	add := func(column string, value interface{}) {
		columns = append(columns, column)
		values = append(values, value)
	}

	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Price != nil {
		add("price", *p.Price)
	}
	if p.OriginalPrice != nil {
		add("original_price", *p.OriginalPrice)
	}
	if p.ImageURL != nil {
		add("image_url", *p.ImageURL)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.Category != nil {
		add("category", *p.Category)
	}
	if p.IsFeatured != nil {
		add("is_featured", *p.IsFeatured)
	}
	if p.IsCustomizable != nil {
		add("is_customizable", *p.IsCustomizable)
	}
	if p.IsVisible != nil {
		add("is_visible", *p.IsVisible)
	}
	if p.Priority != nil {
		add("priority", *p.Priority)
	}

	return columns, values
}

// AIContent is the ephemeral result of one generation call. It is
// never persisted; the workflow only reads it to seed product fields
// that were not supplied manually.
type AIContent struct {
	Title       string
	Description string
	Category    string
	Success     bool
	Error       string
}

// Err converts a failed result into a typed error, nil on success.
func (c AIContent) Err() error {
	if c.Success {
		return nil
	}
	return &GenerationError{Reason: c.Error}
}

// ImageUpload is the result of storing one product image.
type ImageUpload struct {
	URL  string
	Path string
}
