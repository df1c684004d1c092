package parsex

import (
	"context"
	"testing"

	"github.com/Abraxas-365/docmd/pkg/ai/ocr"
)

func newBatchParser(fs *memFS, store *fakeStore) *Parser {
	recognizer := &fakeRecognizer{
		result: ocr.NewResultBuilder().
			WithPages([]ocr.Page{{Markdown: "content"}}).
			Build(),
	}
	return NewParser(store, recognizer, &fakeDescriber{}, fs)
}

func TestParseBatchSkipsFailures(t *testing.T) {
	fs := newMemFS()
	fs.files["in/a.pdf"] = []byte("pdf a")
	fs.files["in/b.pdf"] = []byte("pdf b")
	fs.files["in/c.pdf"] = []byte("pdf c")

	// Upload of the second file fails; the batch must continue.
	store := &fakeStore{failFor: "b.pdf"}
	parser := newBatchParser(fs, store)

	outputs, err := parser.ParseBatch(context.Background(), "in", "out", "*.pdf")
	if err != nil {
		t.Fatalf("ParseBatch: %v", err)
	}

	if len(outputs) != 2 {
		t.Fatalf("outputs = %v, want 2 entries", outputs)
	}
	if outputs[0] != "out/a.md" || outputs[1] != "out/c.md" {
		t.Errorf("outputs = %v", outputs)
	}
	if _, ok := fs.files["out/a.md"]; !ok {
		t.Error("out/a.md not written")
	}
	if _, ok := fs.files["out/b.md"]; ok {
		t.Error("out/b.md written for failed input")
	}
}

func TestParseBatchNoMatches(t *testing.T) {
	fs := newMemFS()
	fs.files["in/readme.txt"] = []byte("text")

	parser := newBatchParser(fs, &fakeStore{})

	outputs, err := parser.ParseBatch(context.Background(), "in", "out", "*.pdf")
	if err != nil {
		t.Fatalf("ParseBatch: %v", err)
	}

	if len(outputs) != 0 {
		t.Errorf("outputs = %v, want empty", outputs)
	}
	if !fs.dirs["out"] {
		t.Error("output directory should still be created")
	}
	if len(fs.files) != 1 {
		t.Errorf("no output files should be written, have %v", fs.files)
	}
}

func TestParseBatchPatternFilter(t *testing.T) {
	fs := newMemFS()
	fs.files["in/doc.pdf"] = []byte("pdf")
	fs.files["in/scan.png"] = []byte("png")

	store := &fakeStore{}
	parser := newBatchParser(fs, store)

	outputs, err := parser.ParseBatch(context.Background(), "in", "out", "*.png")
	if err != nil {
		t.Fatalf("ParseBatch: %v", err)
	}

	if len(outputs) != 1 || outputs[0] != "out/scan.md" {
		t.Errorf("outputs = %v", outputs)
	}
	if len(store.uploads) != 1 || store.uploads[0] != "scan.png" {
		t.Errorf("uploads = %v", store.uploads)
	}
}
