// Package checkout builds the WhatsApp deep links the storefront
// uses instead of a payment flow. No confirmation or delivery is
// tracked; the link hands the conversation off to the messaging app.
package checkout

import (
	"fmt"
	"net/url"

	"claynova-backend/internal/models"
)

// ColorTheme is a customization option for customizable keychains.
type ColorTheme struct {
	ID   string
	Name string
}

var colorThemes = []ColorTheme{
	{ID: "default", Name: "Original"},
	{ID: "pink", Name: "Pink Blush"},
	{ID: "blue", Name: "Sky Blue"},
	{ID: "green", Name: "Mint Green"},
	{ID: "orange", Name: "Peach"},
}

// ThemeName resolves a theme id to its display name, defaulting to
// "Original" for unknown ids.
func ThemeName(id string) string {
	for _, t := range colorThemes {
		if t.ID == id {
			return t.Name
		}
	}
	return colorThemes[0].Name
}

// Customization captures the buyer's choices from the product
// detail modal.
type Customization struct {
	Initial    string
	ColorTheme string
}

// HasAny reports whether the buyer picked anything to customize.
func (c Customization) HasAny() bool {
	return c.Initial != "" || (c.ColorTheme != "" && c.ColorTheme != "default")
}

// BuildProductMessage renders the prefilled buy-now message for a
// product, including the customization block for customizable items.
func BuildProductMessage(product *models.Product, custom Customization) string {
	customText := ""
	if product.IsCustomizable && custom.HasAny() {
		initial := custom.Initial
		if initial == "" {
			initial = "None"
		}
		customText = fmt.Sprintf("\n\nCustomization:\n- Initial: %s\n- Color Theme: %s",
			initial, ThemeName(custom.ColorTheme))
	}

	return fmt.Sprintf("Hi! I'm interested in buying the %q keychain (Rs.%.0f).%s",
		product.Name, product.Price, customText)
}

// BuildContactMessage renders the prefilled contact-form message.
func BuildContactMessage(name, email, message string) string {
	return fmt.Sprintf("Hi! I'm contacting you from your website.\n\nName: %s\nEmail: %s\n\nMessage:\n%s",
		name, email, message)
}

// BuildLink returns the wa.me deep link with the message prefilled.
func BuildLink(number, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", number, url.QueryEscape(message))
}
