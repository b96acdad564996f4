package supabase

import (
	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"
)

// CatalogEvents publishes product change notifications so connected
// storefront sessions can refresh their catalog.
type CatalogEvents struct {
	client *supabase.Client
}

func NewCatalogEvents(client *supabase.Client) *CatalogEvents {
	return &CatalogEvents{
		client: client,
	}
}

func (e *CatalogEvents) PublishEvent(channel string, event string, payload map[string]interface{}) error {
	// The Go client has no direct Realtime publish; row changes on
	// the products table trigger Realtime automatically. This is a
	// hook for explicit event publishing via the Realtime REST API.
	return nil
}

func (e *CatalogEvents) PublishProductEvent(productID uuid.UUID, event string, payload map[string]interface{}) error {
	return e.PublishEvent("catalog", event, payload)
}
