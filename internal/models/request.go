package models

// ContactLinkRequest is the payload for building a prefilled
// WhatsApp contact message.
type ContactLinkRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Message string `json:"message" binding:"required"`
}
