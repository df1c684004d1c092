package aimistral

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/Abraxas-365/docmd/pkg/ai/ocr"
	"github.com/Abraxas-365/docmd/pkg/errx"
)

// MistralProvider implements OCR capabilities for Mistral AI
type MistralProvider struct {
	apiKey            string
	baseURL           string
	httpClient        *http.Client
	client            *HTTPClient
	maxRetries        int
	defaultModel      string
	defaultChatModel  string
	defaultParseModel string
}

// NewMistralProvider creates a new Mistral OCR provider
func NewMistralProvider(apiKey string, opts ...ProviderOption) (*MistralProvider, *errx.Error) {
	if apiKey == "" {
		apiKey = os.Getenv("MISTRAL_API_KEY")
	}

	if apiKey == "" {
		return nil, errorRegistry.New(ErrMissingAPIKey)
	}

	provider := &MistralProvider{
		apiKey:            apiKey,
		baseURL:           DefaultBaseURL,
		maxRetries:        MaxRetries,
		defaultModel:      DefaultModel,
		defaultChatModel:  DefaultChatModel,
		defaultParseModel: DefaultParseModel,
	}

	// Apply options
	for _, opt := range opts {
		opt(provider)
	}

	// Create HTTP client
	provider.client = NewHTTPClient(provider.apiKey, provider.baseURL, provider.httpClient)
	provider.client.maxRetries = provider.maxRetries

	return provider, nil
}

// ============================================================================
// TextRecognizer Implementation
// ============================================================================

// RecognizeText implements the core OCR functionality
func (m *MistralProvider) RecognizeText(ctx context.Context, input ocr.Input, opts ...ocr.Option) (*ocr.Result, error) {
	options := ocr.ApplyOptions(opts...)

	if options.Model == "" {
		options.Model = m.defaultModel
	}

	// Validate input
	if err := m.validateInput(input); err != nil {
		return nil, err
	}

	// Build request
	req := m.buildOCRRequest(input, options)

	// Call API
	respBody, err := m.client.Post(ctx, "/ocr", req)
	if err != nil {
		return nil, err
	}

	// Parse response
	var resp OCRResponse
	if parseErr := json.Unmarshal(respBody, &resp); parseErr != nil {
		return nil, WrapError(parseErr, ErrAPIResponse).
			WithDetail("error", "failed to parse OCR response")
	}

	// Convert to unified format
	return m.convertToResult(&resp), nil
}

// RecognizeURL is a convenience method for URL inputs
func (m *MistralProvider) RecognizeURL(ctx context.Context, url string, opts ...ocr.Option) (*ocr.Result, error) {
	return m.RecognizeText(ctx, ocr.FromURL(url), opts...)
}

// ConvertToMarkdown implements MarkdownConverter. Pages are joined with blank
// lines; flat block responses are not rendered here.
func (m *MistralProvider) ConvertToMarkdown(ctx context.Context, input ocr.Input, opts ...ocr.Option) (string, error) {
	result, err := m.RecognizeText(ctx, input, opts...)
	if err != nil {
		return "", err
	}

	var md strings.Builder
	for i, page := range result.Pages() {
		if i > 0 {
			md.WriteString("\n\n")
		}
		md.WriteString(page.Markdown)
	}
	return md.String(), nil
}

// ============================================================================
// Request Building
// ============================================================================

func (m *MistralProvider) buildOCRRequest(input ocr.Input, options *ocr.Options) *OCRRequest {
	req := &OCRRequest{
		Model:              options.Model,
		Document:           m.convertInputToDocument(input),
		IncludeImageBase64: options.IncludeImageBase64,
	}

	// Provider-specific options
	if pages, ok := options.ProviderOptions["pages"].([]int); ok {
		req.Pages = pages
	}

	return req
}

func (m *MistralProvider) convertInputToDocument(input ocr.Input) DocumentInput {
	switch input.Type {
	case ocr.InputTypeImageURL:
		return DocumentInput{
			Type:     "image_url",
			ImageURL: input.URL,
		}
	case ocr.InputTypeBase64:
		mimeType := input.MimeType
		if mimeType == "" {
			mimeType = "application/pdf"
		}
		dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, string(input.Data))
		if strings.HasPrefix(mimeType, "image/") {
			return DocumentInput{
				Type:     "image_url",
				ImageURL: dataURL,
			}
		}
		return DocumentInput{
			Type:        "document_url",
			DocumentURL: dataURL,
		}
	default:
		return DocumentInput{
			Type:        "document_url",
			DocumentURL: input.URL,
		}
	}
}

// ============================================================================
// Response Conversion
// ============================================================================

func (m *MistralProvider) convertToResult(resp *OCRResponse) *ocr.Result {
	builder := ocr.NewResultBuilder()

	if len(resp.Pages) > 0 {
		pages := make([]ocr.Page, len(resp.Pages))
		for i, p := range resp.Pages {
			pages[i] = ocr.Page{
				Index:    p.Index,
				Markdown: p.Markdown,
				Images:   m.convertImages(p.Images),
			}
		}
		builder.WithPages(pages)
	}

	if len(resp.Blocks) > 0 {
		blocks := make([]ocr.Block, len(resp.Blocks))
		for i, b := range resp.Blocks {
			blocks[i] = ocr.Block{
				Kind: ocr.BlockKind(b.Type),
				Text: b.Text,
				Image: ocr.ImageRef{
					ID:     b.ID,
					Base64: b.ImageBase64,
					URL:    b.ImageURL,
				},
			}
		}
		builder.WithBlocks(blocks)
	}

	builder.WithUsage(ocr.Usage{
		PagesProcessed: resp.UsageInfo.PagesProcessed,
		DocSizeBytes:   resp.UsageInfo.DocSizeBytes,
	}).WithMetadata("model", resp.Model)

	return builder.Build()
}

func (m *MistralProvider) convertImages(images []ImageData) []ocr.ImageRef {
	if len(images) == 0 {
		return nil
	}
	refs := make([]ocr.ImageRef, len(images))
	for i, img := range images {
		refs[i] = ocr.ImageRef{
			ID:     img.ID,
			Base64: img.ImageBase64,
		}
	}
	return refs
}

// ============================================================================
// Validation
// ============================================================================

func (m *MistralProvider) validateInput(input ocr.Input) *errx.Error {
	switch input.Type {
	case ocr.InputTypeDocumentURL, ocr.InputTypeImageURL:
		if input.URL == "" {
			return errorRegistry.New(ErrInvalidInput).
				WithDetail("error", "URL cannot be empty")
		}
	case ocr.InputTypeBase64:
		if len(input.Data) == 0 {
			return errorRegistry.New(ErrInvalidInput).
				WithDetail("error", "base64 data cannot be empty")
		}
		// 50MB API limit
		if len(input.Data) > 50*1024*1024 {
			return errorRegistry.New(ErrDocumentTooLarge)
		}
	default:
		return errorRegistry.New(ErrInvalidInput).
			WithDetail("error", "unsupported input type").
			WithDetail("type", string(input.Type))
	}

	return nil
}
