package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/Abraxas-365/docmd/pkg/ai/ocr"
	"github.com/Abraxas-365/docmd/pkg/parsex"
)

type fakeService struct {
	markdown string
	err      error
	doc      parsex.StructuredDocument
}

func (s *fakeService) ParseBytes(ctx context.Context, filename string, data []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.markdown, nil
}

func (s *fakeService) StructuredOCRBytes(ctx context.Context, fileName string, data []byte) parsex.StructuredDocument {
	return s.doc
}

type fakeDescriber struct {
	reply string
}

func (d *fakeDescriber) DescribeImage(ctx context.Context, imageBase64 string, opts ...ocr.Option) (string, error) {
	return d.reply, nil
}

func newTestApp(svc documentService, describer ocr.ImageDescriber) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          globalErrorHandler,
	})
	NewHandlers(svc, describer).RegisterRoutes(app)
	return app
}

func multipartRequest(t *testing.T, url, filename string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write(content)
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, url, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestParseDocumentHandler(t *testing.T) {
	app := newTestApp(&fakeService{markdown: "# Parsed"}, &fakeDescriber{})

	req := multipartRequest(t, "/api/v1/documents/parse", "doc.pdf", []byte("%PDF-1.4"))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var body map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	if body["markdown"] != "# Parsed" || body["filename"] != "doc.pdf" {
		t.Errorf("body = %v", body)
	}
}

func TestParseDocumentHandlerHTMLFormat(t *testing.T) {
	app := newTestApp(&fakeService{markdown: "# Parsed"}, &fakeDescriber{})

	req := multipartRequest(t, "/api/v1/documents/parse?format=html", "doc.pdf", []byte("%PDF-1.4"))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}

	var body map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	html, _ := body["html"].(string)
	if !strings.Contains(html, "<h1") {
		t.Errorf("html = %q", html)
	}
}

func TestParseDocumentHandlerMissingFile(t *testing.T) {
	app := newTestApp(&fakeService{}, &fakeDescriber{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/parse", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestParseDocumentHandlerServiceError(t *testing.T) {
	app := newTestApp(&fakeService{err: errors.New("pipeline down")}, &fakeDescriber{})

	req := multipartRequest(t, "/api/v1/documents/parse", "doc.pdf", []byte("%PDF-1.4"))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
}

func TestDescribeImageHandler(t *testing.T) {
	describer := &fakeDescriber{reply: `{"description":"a chart","metadata":{"type":"chart"}}`}
	app := newTestApp(&fakeService{}, describer)

	req := multipartRequest(t, "/api/v1/images/describe", "chart.png", []byte("png bytes"))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	raw, _ := io.ReadAll(resp.Body)
	var body map[string]any
	json.Unmarshal(raw, &body)
	if body["description"] != "a chart" {
		t.Errorf("body = %s", raw)
	}
}

func TestStructuredOCRHandler(t *testing.T) {
	svc := &fakeService{doc: parsex.StructuredDocument{
		FileName:    "scan.png",
		Topics:      []string{"finance"},
		Languages:   []string{"English"},
		OCRContents: map[string]any{"total": "42"},
	}}
	app := newTestApp(svc, &fakeDescriber{})

	req := multipartRequest(t, "/api/v1/images/structured", "scan.png", []byte("png bytes"))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}

	var doc parsex.StructuredDocument
	json.NewDecoder(resp.Body).Decode(&doc)
	if doc.FileName != "scan.png" || doc.Topics[0] != "finance" {
		t.Errorf("doc = %+v", doc)
	}
}
