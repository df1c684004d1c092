package aimistral

// ============================================================================
// OCR API Types
// ============================================================================

// OCRRequest represents a request to the Mistral OCR API
type OCRRequest struct {
	Model              string        `json:"model"`
	Document           DocumentInput `json:"document"`
	IncludeImageBase64 bool          `json:"include_image_base64,omitempty"`
	Pages              []int         `json:"pages,omitempty"`
}

// DocumentInput represents different ways to provide a document
type DocumentInput struct {
	Type        string `json:"type"` // "document_url" or "image_url"
	DocumentURL string `json:"document_url,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// OCRResponse represents the response from Mistral OCR API. Depending on the
// service version the content arrives either as per-page markdown or as a
// flat list of content blocks.
type OCRResponse struct {
	Pages     []PageData  `json:"pages,omitempty"`
	Blocks    []BlockData `json:"blocks,omitempty"`
	Model     string      `json:"model"`
	UsageInfo UsageInfo   `json:"usage_info"`
}

// PageData represents a single page in the OCR response
type PageData struct {
	Index    int         `json:"index"`
	Markdown string      `json:"markdown"`
	Images   []ImageData `json:"images"`
}

// ImageData represents an extracted image
type ImageData struct {
	ID           string `json:"id"`
	TopLeftX     int    `json:"top_left_x"`
	TopLeftY     int    `json:"top_left_y"`
	BottomRightX int    `json:"bottom_right_x"`
	BottomRightY int    `json:"bottom_right_y"`
	ImageBase64  string `json:"image_base64,omitempty"`
}

// BlockData is one entry of a flat content-block response. Types other than
// "text" and "image" are passed through and left for the consumer to skip.
type BlockData struct {
	Type        string `json:"type"`
	Text        string `json:"text,omitempty"`
	ID          string `json:"id,omitempty"`
	ImageBase64 string `json:"image_base64,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// UsageInfo represents API usage information
type UsageInfo struct {
	PagesProcessed int `json:"pages_processed"`
	DocSizeBytes   int `json:"doc_size_bytes"`
}

// ============================================================================
// Chat Completion API Types
// ============================================================================

// ChatRequest represents a chat completion request
type ChatRequest struct {
	Model          string          `json:"model"`
	Messages       []ChatMessage   `json:"messages"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
	Temperature    *float64        `json:"temperature,omitempty"`
}

// ChatMessage represents a message in the conversation
type ChatMessage struct {
	Role    string        `json:"role"`
	Content []ContentPart `json:"content"`
}

// ContentPart represents a part of message content
type ContentPart struct {
	Type        string `json:"type"`
	Text        string `json:"text,omitempty"`
	DocumentURL string `json:"document_url,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// ResponseFormat constrains the shape of the completion output
type ResponseFormat struct {
	Type       string         `json:"type"` // "json_object" or "json_schema"
	JSONSchema map[string]any `json:"json_schema,omitempty"`
}

// NewJSONObjectFormat requests free-form JSON output
func NewJSONObjectFormat() *ResponseFormat {
	return &ResponseFormat{Type: "json_object"}
}

// NewJSONSchemaFormat requests output constrained to a JSON schema
func NewJSONSchemaFormat(name string, schema map[string]any, strict bool) *ResponseFormat {
	return &ResponseFormat{
		Type: "json_schema",
		JSONSchema: map[string]any{
			"name":   name,
			"schema": schema,
			"strict": strict,
		},
	}
}

// ChatResponse represents a chat completion response
type ChatResponse struct {
	ID      string `json:"id"`
	Created int64  `json:"created"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int    `json:"index"`
		FinishReason string `json:"finish_reason"`
		Message      struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// ============================================================================
// Files API Types
// ============================================================================

// UploadResponse represents a file created through the files endpoint
type UploadResponse struct {
	ID        string `json:"id"`
	Object    string `json:"object"`
	Filename  string `json:"filename"`
	Purpose   string `json:"purpose"`
	SizeBytes int    `json:"size_bytes"`
	CreatedAt int64  `json:"created_at"`
}

// SignedURLResponse represents a time-limited retrieval URL
type SignedURLResponse struct {
	URL string `json:"url"`
}
