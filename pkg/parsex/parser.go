package parsex

import (
	"context"
	"encoding/base64"
	"path/filepath"
	"strings"
	"time"

	"github.com/Abraxas-365/docmd/pkg/ai/ocr"
	"github.com/Abraxas-365/docmd/pkg/fsx"
	"github.com/Abraxas-365/docmd/pkg/logx"
)

const DefaultSignedURLExpiry = time.Hour

// Parser runs the document pipeline: read a file, upload it, obtain a
// signed retrieval URL, run OCR and render the result as markdown. The
// describer implementation is fixed at construction.
type Parser struct {
	store      ocr.FileStore
	recognizer ocr.TextRecognizer
	describer  ocr.ImageDescriber
	extractor  ocr.StructuredExtractor
	fs         fsx.FileSystem

	signedURLExpiry time.Duration
	ocrOpts         []ocr.Option
}

// Option configures the parser
type Option func(*Parser)

// WithStructuredExtractor enables structured OCR output
func WithStructuredExtractor(extractor ocr.StructuredExtractor) Option {
	return func(p *Parser) { p.extractor = extractor }
}

// WithSignedURLExpiry sets the lifetime requested for signed URLs
func WithSignedURLExpiry(expiry time.Duration) Option {
	return func(p *Parser) { p.signedURLExpiry = expiry }
}

// WithOCROptions sets options forwarded to every OCR call
func WithOCROptions(opts ...ocr.Option) Option {
	return func(p *Parser) { p.ocrOpts = opts }
}

// NewParser creates a document parser
func NewParser(store ocr.FileStore, recognizer ocr.TextRecognizer, describer ocr.ImageDescriber, fs fsx.FileSystem, opts ...Option) *Parser {
	parser := &Parser{
		store:           store,
		recognizer:      recognizer,
		describer:       describer,
		fs:              fs,
		signedURLExpiry: DefaultSignedURLExpiry,
	}

	for _, opt := range opts {
		opt(parser)
	}

	return parser
}

// ParseDocument runs the pipeline for one file on disk. When outputPath is
// non-empty the markdown is also written there. Returns the markdown.
func (p *Parser) ParseDocument(ctx context.Context, inputPath, outputPath string) (string, error) {
	exists, err := p.fs.Exists(ctx, inputPath)
	if err != nil {
		return "", wrapError(err, ErrReadFailed)
	}
	if !exists {
		return "", errorRegistry.New(ErrFileNotFound).
			WithDetail("path", inputPath)
	}

	data, err := p.fs.ReadFile(ctx, inputPath)
	if err != nil {
		return "", wrapError(err, ErrReadFailed).
			WithDetail("path", inputPath)
	}

	markdown, err := p.ParseBytes(ctx, filepath.Base(inputPath), data)
	if err != nil {
		return "", err
	}

	if outputPath != "" {
		if err := p.writeOutput(ctx, outputPath, []byte(markdown)); err != nil {
			return "", err
		}
	}

	return markdown, nil
}

// ParseBytes runs the pipeline for an in-memory document
func (p *Parser) ParseBytes(ctx context.Context, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errorRegistry.New(ErrEmptyDocument)
	}

	handle, err := p.store.Upload(ctx, filename, data)
	if err != nil {
		return "", err
	}

	signedURL, err := p.store.SignedURL(ctx, handle.ID, p.signedURLExpiry)
	if err != nil {
		return "", err
	}

	logx.WithFields(logx.Fields{
		"file_id":  handle.ID,
		"filename": filename,
	}).Debug("document uploaded, running OCR")

	input := ocr.FromURL(signedURL)
	if strings.HasPrefix(detectMimeType(filename), "image/") {
		input = ocr.FromImageURL(signedURL)
	}

	opts := append([]ocr.Option{ocr.WithImageBase64()}, p.ocrOpts...)
	result, err := p.recognizer.RecognizeText(ctx, input, opts...)
	if err != nil {
		return "", err
	}

	return renderMarkdown(ctx, p.describer, result, p.ocrOpts...), nil
}

// ImageOCR runs OCR directly over a single image file and returns the raw
// result, bypassing upload and markdown rendering. The image travels inline
// as a base64 data URL.
func (p *Parser) ImageOCR(ctx context.Context, path string) (*ocr.Result, error) {
	data, err := p.fs.ReadFile(ctx, path)
	if err != nil {
		return nil, wrapError(err, ErrReadFailed).
			WithDetail("path", path)
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	input := ocr.FromBase64([]byte(encoded), detectMimeType(path))

	opts := append([]ocr.Option{ocr.WithImageBase64()}, p.ocrOpts...)
	return p.recognizer.RecognizeText(ctx, input, opts...)
}

func (p *Parser) writeOutput(ctx context.Context, path string, data []byte) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "/" {
		if err := p.fs.CreateDir(ctx, dir); err != nil {
			return wrapError(err, ErrWriteFailed).
				WithDetail("path", dir)
		}
	}

	if err := p.fs.WriteFile(ctx, path, data); err != nil {
		return wrapError(err, ErrWriteFailed).
			WithDetail("path", path)
	}
	return nil
}

func detectMimeType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".bmp":
		return "image/bmp"
	case ".tif", ".tiff":
		return "image/tiff"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
