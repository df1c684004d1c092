package main

import (
	"context"
	"encoding/base64"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/Abraxas-365/docmd/pkg/ai/ocr"
	"github.com/Abraxas-365/docmd/pkg/errx"
	"github.com/Abraxas-365/docmd/pkg/parsex"
)

// documentService is the slice of the parser the handlers need
type documentService interface {
	ParseBytes(ctx context.Context, filename string, data []byte) (string, error)
	StructuredOCRBytes(ctx context.Context, fileName string, data []byte) parsex.StructuredDocument
}

// Handlers exposes the document pipeline over HTTP
type Handlers struct {
	service   documentService
	describer ocr.ImageDescriber
}

func NewHandlers(service documentService, describer ocr.ImageDescriber) *Handlers {
	return &Handlers{service: service, describer: describer}
}

// RegisterRoutes mounts the API routes
func (h *Handlers) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api/v1")
	api.Post("/documents/parse", h.ParseDocument)
	api.Post("/images/describe", h.DescribeImage)
	api.Post("/images/structured", h.StructuredOCR)
}

// ParseDocument converts an uploaded PDF or image to markdown. With
// ?format=html the markdown is additionally rendered to HTML.
func (h *Handlers) ParseDocument(c *fiber.Ctx) error {
	filename, data, err := readUpload(c)
	if err != nil {
		return err
	}

	markdown, err := h.service.ParseBytes(c.Context(), filename, data)
	if err != nil {
		return err
	}

	response := fiber.Map{
		"filename": filename,
		"markdown": markdown,
	}

	if c.Query("format") == "html" {
		html, renderErr := parsex.MarkdownToHTML(markdown)
		if renderErr != nil {
			return renderErr
		}
		response["html"] = html
	}

	return c.JSON(response)
}

// DescribeImage returns a structured description for an uploaded image
func (h *Handlers) DescribeImage(c *fiber.Ctx) error {
	filename, data, err := readUpload(c)
	if err != nil {
		return err
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	description := parsex.DescribeImage(c.Context(), h.describer, encoded)

	return c.JSON(fiber.Map{
		"filename":    filename,
		"description": description.Description,
		"metadata":    description.Metadata,
	})
}

// StructuredOCR runs schema-constrained extraction over an uploaded image
func (h *Handlers) StructuredOCR(c *fiber.Ctx) error {
	filename, data, err := readUpload(c)
	if err != nil {
		return err
	}

	doc := h.service.StructuredOCRBytes(c.Context(), filename, data)
	return c.JSON(doc)
}

// readUpload extracts the "file" multipart part from the request
func readUpload(c *fiber.Ctx) (string, []byte, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return "", nil, errx.Validation("missing 'file' form field")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", nil, errx.Internal("failed to open uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, errx.Internal("failed to read uploaded file")
	}
	if len(data) == 0 {
		return "", nil, errx.Validation("uploaded file is empty")
	}

	return fileHeader.Filename, data, nil
}
