package ocr

import (
	"context"
	"time"
)

// ============================================================================
// Core Capabilities (Single Responsibility Interfaces)
// ============================================================================

// TextRecognizer is the minimal OCR interface - all providers must implement this
type TextRecognizer interface {
	RecognizeText(ctx context.Context, input Input, opts ...Option) (*Result, error)
}

// MarkdownConverter converts documents to markdown
type MarkdownConverter interface {
	ConvertToMarkdown(ctx context.Context, input Input, opts ...Option) (string, error)
}

// ImageDescriber generates a textual description of a standalone image.
// The reply is the model's raw text; callers decide how to interpret it.
type ImageDescriber interface {
	DescribeImage(ctx context.Context, imageBase64 string, opts ...Option) (string, error)
}

// StructuredExtractor runs a schema-constrained parse over a document and
// returns the model's raw JSON text.
type StructuredExtractor interface {
	ExtractStructured(ctx context.Context, input Input, schema Schema, opts ...Option) (string, error)
}

// FileStore uploads documents to the remote service and issues time-limited
// retrieval URLs for them.
type FileStore interface {
	Upload(ctx context.Context, filename string, content []byte) (FileHandle, error)
	SignedURL(ctx context.Context, fileID string, expiry time.Duration) (string, error)
}

// Schema represents a JSON schema for structured extraction
type Schema struct {
	// Name of the schema
	Name string

	// Schema definition (JSON Schema format)
	Schema map[string]any

	// Whether to enforce strict schema adherence
	Strict bool
}

// FileHandle identifies an uploaded file on the remote service
type FileHandle struct {
	ID       string
	Filename string
}

// ============================================================================
// Input Abstraction
// ============================================================================

// Input represents various input sources
type Input struct {
	// Source type
	Type InputType

	// Data based on type
	URL  string // For URLs
	Data []byte // For raw bytes

	// Metadata
	MimeType string
}

type InputType string

const (
	InputTypeDocumentURL InputType = "document_url"
	InputTypeImageURL    InputType = "image_url"
	InputTypeBase64      InputType = "base64"
)

// Input builders for convenience

func FromURL(url string) Input {
	return Input{Type: InputTypeDocumentURL, URL: url}
}

func FromImageURL(url string) Input {
	return Input{Type: InputTypeImageURL, URL: url}
}

func FromBase64(data []byte, mimeType string) Input {
	return Input{Type: InputTypeBase64, Data: data, MimeType: mimeType}
}

// ============================================================================
// Content Model
// ============================================================================

// BlockKind tags the variant of a content block.
type BlockKind string

const (
	BlockKindText  BlockKind = "text"
	BlockKindImage BlockKind = "image"
)

// Block is the minimal unit of extracted document content. Kind values other
// than the two known ones are preserved so consumers can skip them.
type Block struct {
	Kind  BlockKind
	Text  string
	Image ImageRef
}

// ImageRef is an image extracted from a document.
type ImageRef struct {
	ID     string
	Base64 string
	URL    string
}

// Page represents a single page of an OCR result.
type Page struct {
	Index    int
	Markdown string
	Images   []ImageRef
}

// Usage represents processing usage
type Usage struct {
	PagesProcessed int
	DocSizeBytes   int
}

// ============================================================================
// Result Model (Immutable, Builder-Based)
// ============================================================================

// Result is the unified OCR result. A provider fills pages when the service
// returned pre-rendered per-page markdown, blocks when it returned a flat
// content-block list; both may be present.
type Result struct {
	pages    []Page
	blocks   []Block
	usage    Usage
	metadata map[string]any
}

// Getters (immutable access)
func (r *Result) Pages() []Page            { return r.pages }
func (r *Result) Blocks() []Block          { return r.blocks }
func (r *Result) Usage() Usage             { return r.usage }
func (r *Result) Metadata() map[string]any { return r.metadata }

// Capability checks
func (r *Result) HasPages() bool  { return len(r.pages) > 0 }
func (r *Result) HasBlocks() bool { return len(r.blocks) > 0 }

// FirstPageMarkdown returns the pre-rendered markdown of the first page, or
// "" when the result has no pages.
func (r *Result) FirstPageMarkdown() string {
	if len(r.pages) == 0 {
		return ""
	}
	return r.pages[0].Markdown
}

// ============================================================================
// Result Builder (Fluent Construction)
// ============================================================================

// ResultBuilder constructs Results with fluent API
type ResultBuilder struct {
	result Result
}

func NewResultBuilder() *ResultBuilder {
	return &ResultBuilder{
		result: Result{
			metadata: make(map[string]any),
		},
	}
}

func (b *ResultBuilder) WithPages(pages []Page) *ResultBuilder {
	b.result.pages = pages
	return b
}

func (b *ResultBuilder) WithBlocks(blocks []Block) *ResultBuilder {
	b.result.blocks = blocks
	return b
}

func (b *ResultBuilder) WithUsage(usage Usage) *ResultBuilder {
	b.result.usage = usage
	return b
}

func (b *ResultBuilder) WithMetadata(key string, value any) *ResultBuilder {
	b.result.metadata[key] = value
	return b
}

func (b *ResultBuilder) Build() *Result {
	return &b.result
}
