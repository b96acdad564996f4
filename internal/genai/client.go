package genai

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"claynova-backend/internal/models"
)

// Fixed fallback content, used when both generation attempts fail
// and no manual value was supplied.
const (
	FallbackTitle       = "Handcrafted Keychain"
	FallbackDescription = "Beautiful handcrafted clay keychain made with love."
)

type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Available reports whether a credential is configured. When it is
// not, every generation call short-circuits without network I/O.
func (c *Client) Available() bool {
	return c.apiKey != ""
}

func fullPrompt(price, originalPrice float64) string {
	return fmt.Sprintf(`
You are a product content creator for "Claynova", a brand that sells handcrafted clay keychains made with love in India.

Analyze this product image and generate:
1. A creative, appealing product title (2-4 words, catchy and memorable)
2. A warm, engaging product description (8-10 words, that says a unique story about the keychain)
3. A category from these options: "personalized", "kawaii", "sea", "winter"

The product is priced at Rs.%.0f (original price Rs.%.0f).

Guidelines:
- Keep the tone warm, friendly, and artisanal
- Emphasize the handcrafted quality and unique charm
- Make it feel personal and special
- Use descriptive, sensory language
- Categories: "personalized" for custom/initial items, "kawaii" for cute/adorable items, "sea" for ocean/marine themes, "winter" for cold weather/cozy themes

Return your response in this exact JSON format:
{
  "title": "Your creative title here",
  "description": "Your warm, engaging description here",
  "category": "one of: personalized, kawaii, sea, winter"
}
`, price, originalPrice)
}

const simplePrompt = `
Look at this handcrafted clay keychain image. Create a JSON response with:
- title: 2-3 word product name
- description: 1-2 sentences about this cute keychain
- category: choose from "personalized", "kawaii", "sea", "winter"

Format: {"title": "...", "description": "...", "category": "..."}
`

// GenerateProductContent makes a single multimodal request and
// parses the constrained JSON reply. Failures are returned inside
// the AIContent result, never as a raised error, so callers can
// always fall back.
func (c *Client) GenerateProductContent(image []byte, mimeType string, price, originalPrice float64) models.AIContent {
	return c.generate(fullPrompt(price, originalPrice), image, mimeType, false)
}

// GenerateWithFallback wraps GenerateProductContent with exactly one
// extra attempt using the simpler prompt. No backoff: this is an
// interactive, admin-triggered call. When both attempts fail the
// overall result is the second failure.
func (c *Client) GenerateWithFallback(image []byte, mimeType string, price, originalPrice float64) models.AIContent {
	result := c.GenerateProductContent(image, mimeType, price, originalPrice)
	if result.Success || !c.Available() {
		return result
	}

	return c.generate(simplePrompt, image, mimeType, true)
}

func (c *Client) generate(prompt string, image []byte, mimeType string, lenient bool) models.AIContent {
	if !c.Available() {
		return failedContent("AI service is not configured. Please set GEMINI_API_KEY environment variable.")
	}

	text, err := c.generateText(prompt, image, mimeType)
	if err != nil {
		return failedContent(fmt.Sprintf("failed to generate content: %v", err))
	}

	return parseAIContent(text, lenient)
}

func (c *Client) generateText(prompt string, image []byte, mimeType string) (string, error) {
	requestBody := generateContentRequest{
		Contents: []content{{
			Parts: []part{
				{Text: prompt},
				{InlineData: &inlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(image),
				}},
			},
		}},
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%smodels/%s:generateContent?key=%s",
		ensureTrailingSlash(c.baseURL), c.model, c.apiKey)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result generateContentResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response, body: %s", string(body))
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}

// parseAIContent extracts the first top-level JSON object from the
// raw model reply. Strict mode requires all three keys; lenient mode
// (the simpler-prompt retry) fills missing fields with the fixed
// fallbacks, matching the retry contract.
func parseAIContent(text string, lenient bool) models.AIContent {
	jsonBlock := extractJSON(text)
	if jsonBlock == "" {
		return failedContent("Failed to parse AI response. Please try again.")
	}

	var parsed struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Category    string `json:"category"`
	}
	if err := json.Unmarshal([]byte(jsonBlock), &parsed); err != nil {
		return failedContent("Failed to parse AI response. Please try again.")
	}

	if lenient {
		if parsed.Title == "" {
			parsed.Title = FallbackTitle
		}
		if parsed.Description == "" {
			parsed.Description = FallbackDescription
		}
		if parsed.Category == "" {
			parsed.Category = models.DefaultCategory
		}
	} else if parsed.Title == "" || parsed.Description == "" || parsed.Category == "" {
		return failedContent("Failed to parse AI response. Please try again.")
	}

	// An out-of-set category is coerced, not rejected.
	if !models.IsValidCategory(parsed.Category) {
		parsed.Category = models.DefaultCategory
	}

	return models.AIContent{
		Title:       strings.TrimSpace(parsed.Title),
		Description: strings.TrimSpace(parsed.Description),
		Category:    parsed.Category,
		Success:     true,
	}
}

// extractJSON returns the first balanced top-level {...} substring.
func extractJSON(text string) string {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			escaped = inString
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return text[start : i+1]
				}
			}
		}
	}

	return ""
}

func failedContent(reason string) models.AIContent {
	return models.AIContent{
		Category: models.DefaultCategory,
		Success:  false,
		Error:    reason,
	}
}

func ensureTrailingSlash(url string) string {
	if strings.HasSuffix(url, "/") {
		return url
	}
	return url + "/"
}
