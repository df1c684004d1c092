package ocr

import (
	"context"
	"fmt"
	"time"
)

// Client provides unified access to OCR capabilities
type Client struct {
	recognizer TextRecognizer

	// Optional capabilities
	markdownConverter   MarkdownConverter
	imageDescriber      ImageDescriber
	structuredExtractor StructuredExtractor
	fileStore           FileStore
}

// NewClient creates a client from a provider
func NewClient(recognizer TextRecognizer) *Client {
	client := &Client{
		recognizer: recognizer,
	}

	// Detect optional capabilities via type assertions
	if mc, ok := recognizer.(MarkdownConverter); ok {
		client.markdownConverter = mc
	}
	if id, ok := recognizer.(ImageDescriber); ok {
		client.imageDescriber = id
	}
	if se, ok := recognizer.(StructuredExtractor); ok {
		client.structuredExtractor = se
	}
	if fs, ok := recognizer.(FileStore); ok {
		client.fileStore = fs
	}

	return client
}

// RecognizeText runs OCR on the input
func (c *Client) RecognizeText(ctx context.Context, input Input, opts ...Option) (*Result, error) {
	return c.recognizer.RecognizeText(ctx, input, opts...)
}

// ConvertToMarkdown converts a document to markdown
func (c *Client) ConvertToMarkdown(ctx context.Context, input Input, opts ...Option) (string, error) {
	if c.markdownConverter == nil {
		return "", fmt.Errorf("markdown conversion not supported by this provider")
	}
	return c.markdownConverter.ConvertToMarkdown(ctx, input, opts...)
}

// DescribeImage describes a standalone image
func (c *Client) DescribeImage(ctx context.Context, imageBase64 string, opts ...Option) (string, error) {
	if c.imageDescriber == nil {
		return "", fmt.Errorf("image description not supported by this provider")
	}
	return c.imageDescriber.DescribeImage(ctx, imageBase64, opts...)
}

// ExtractStructured runs a schema-constrained parse
func (c *Client) ExtractStructured(ctx context.Context, input Input, schema Schema, opts ...Option) (string, error) {
	if c.structuredExtractor == nil {
		return "", fmt.Errorf("structured extraction not supported by this provider")
	}
	return c.structuredExtractor.ExtractStructured(ctx, input, schema, opts...)
}

// Upload uploads a file to the remote service
func (c *Client) Upload(ctx context.Context, filename string, content []byte) (FileHandle, error) {
	if c.fileStore == nil {
		return FileHandle{}, fmt.Errorf("file upload not supported by this provider")
	}
	return c.fileStore.Upload(ctx, filename, content)
}

// SignedURL issues a time-limited retrieval URL for an uploaded file
func (c *Client) SignedURL(ctx context.Context, fileID string, expiry time.Duration) (string, error) {
	if c.fileStore == nil {
		return "", fmt.Errorf("signed URLs not supported by this provider")
	}
	return c.fileStore.SignedURL(ctx, fileID, expiry)
}

// CanDescribeImages reports whether the provider supports image description
func (c *Client) CanDescribeImages() bool { return c.imageDescriber != nil }

// CanUpload reports whether the provider supports file upload
func (c *Client) CanUpload() bool { return c.fileStore != nil }
