package parsex

import (
	"context"
	"errors"
	"testing"

	"github.com/Abraxas-365/docmd/pkg/ai/ocr"
	"github.com/Abraxas-365/docmd/pkg/errx"
)

func TestParseDocumentMissingFile(t *testing.T) {
	parser := NewParser(&fakeStore{}, &fakeRecognizer{}, &fakeDescriber{}, newMemFS())

	_, err := parser.ParseDocument(context.Background(), "nope.pdf", "")
	if err == nil {
		t.Fatal("expected error for missing file")
	}

	var xerr *errx.Error
	if !errx.As(err, &xerr) || xerr.Code != ErrFileNotFound.Code {
		t.Errorf("unexpected error %v", err)
	}
}

func TestParseDocumentWritesOutput(t *testing.T) {
	fs := newMemFS()
	fs.files["docs/report.pdf"] = []byte("%PDF-1.4")

	recognizer := &fakeRecognizer{
		result: ocr.NewResultBuilder().
			WithPages([]ocr.Page{{Markdown: "# Report"}}).
			Build(),
	}
	parser := NewParser(&fakeStore{}, recognizer, &fakeDescriber{}, fs)

	markdown, err := parser.ParseDocument(context.Background(), "docs/report.pdf", "out/report.md")
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if markdown != "# Report" {
		t.Errorf("markdown = %q", markdown)
	}
	if string(fs.files["out/report.md"]) != "# Report" {
		t.Errorf("output file = %q", fs.files["out/report.md"])
	}
}

func TestParseBytesEmptyInput(t *testing.T) {
	parser := NewParser(&fakeStore{}, &fakeRecognizer{}, &fakeDescriber{}, newMemFS())

	if _, err := parser.ParseBytes(context.Background(), "doc.pdf", nil); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestParseBytesPropagatesOCRError(t *testing.T) {
	recognizer := &fakeRecognizer{err: errors.New("ocr down")}
	parser := NewParser(&fakeStore{}, recognizer, &fakeDescriber{}, newMemFS())

	if _, err := parser.ParseBytes(context.Background(), "doc.pdf", []byte("data")); err == nil {
		t.Fatal("expected OCR error to propagate")
	}
}

func TestStructuredOCRDefaultsOnFailure(t *testing.T) {
	fs := newMemFS()
	fs.files["scan.png"] = []byte("png bytes")

	tests := []struct {
		name      string
		extractor *fakeExtractor
	}{
		{"extractor error", &fakeExtractor{err: errors.New("down")}},
		{"malformed reply", &fakeExtractor{reply: "not json"}},
	}

	for _, tt := range tests {
		parser := NewParser(&fakeStore{}, &fakeRecognizer{}, &fakeDescriber{}, fs,
			WithStructuredExtractor(tt.extractor))

		doc := parser.StructuredOCR(context.Background(), "scan.png")

		if doc.FileName != "scan.png" {
			t.Errorf("%s: file name = %q", tt.name, doc.FileName)
		}
		if len(doc.Topics) != 1 || doc.Topics[0] != "document" {
			t.Errorf("%s: topics = %v", tt.name, doc.Topics)
		}
		if len(doc.Languages) != 1 || doc.Languages[0] != "English" {
			t.Errorf("%s: languages = %v", tt.name, doc.Languages)
		}
		if doc.OCRContents["text"] != "OCR processing failed" {
			t.Errorf("%s: ocr_contents = %v", tt.name, doc.OCRContents)
		}
	}
}

func TestStructuredOCRSuccess(t *testing.T) {
	fs := newMemFS()
	fs.files["scan.png"] = []byte("png bytes")

	extractor := &fakeExtractor{
		reply: `{"file_name":"scan.png","topics":["finance"],"languages":["Spanish"],"ocr_contents":{"total":"42"}}`,
	}
	parser := NewParser(&fakeStore{}, &fakeRecognizer{}, &fakeDescriber{}, fs,
		WithStructuredExtractor(extractor))

	doc := parser.StructuredOCR(context.Background(), "scan.png")

	if doc.Topics[0] != "finance" || doc.Languages[0] != "Spanish" {
		t.Errorf("doc = %+v", doc)
	}
	if doc.OCRContents["total"] != "42" {
		t.Errorf("ocr_contents = %v", doc.OCRContents)
	}
}

func TestStructuredOCRMissingFile(t *testing.T) {
	parser := NewParser(&fakeStore{}, &fakeRecognizer{}, &fakeDescriber{}, newMemFS(),
		WithStructuredExtractor(&fakeExtractor{reply: "{}"}))

	doc := parser.StructuredOCR(context.Background(), "ghost.png")

	if doc.FileName != "ghost.png" || doc.OCRContents["text"] != "OCR processing failed" {
		t.Errorf("doc = %+v", doc)
	}
}
