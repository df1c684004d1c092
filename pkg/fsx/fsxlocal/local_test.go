package fsxlocal

import (
	"context"
	"testing"
)

func TestReadWriteRoundTrip(t *testing.T) {
	fs, err := NewLocalFileSystem(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalFileSystem: %v", err)
	}
	ctx := context.Background()

	if err := fs.WriteFile(ctx, "docs/report.md", []byte("# Report")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := fs.ReadFile(ctx, "docs/report.md")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "# Report" {
		t.Errorf("data = %q", data)
	}

	exists, err := fs.Exists(ctx, "docs/report.md")
	if err != nil || !exists {
		t.Errorf("Exists = %v, %v", exists, err)
	}

	exists, err = fs.Exists(ctx, "docs/missing.md")
	if err != nil || exists {
		t.Errorf("Exists for missing file = %v, %v", exists, err)
	}
}

func TestListAndStat(t *testing.T) {
	fs, err := NewLocalFileSystem(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalFileSystem: %v", err)
	}
	ctx := context.Background()

	fs.WriteFile(ctx, "in/a.pdf", []byte("pdf"))
	fs.WriteFile(ctx, "in/b.png", []byte("png"))
	fs.CreateDir(ctx, "in/nested")

	infos, err := fs.List(ctx, "in")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 3 {
		t.Fatalf("List returned %d entries", len(infos))
	}

	info, err := fs.Stat(ctx, "in/a.pdf")
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.ContentType != "application/pdf" || info.Size != 3 {
		t.Errorf("info = %+v", info)
	}
}

func TestReadFileMissing(t *testing.T) {
	fs, err := NewLocalFileSystem(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalFileSystem: %v", err)
	}

	if _, err := fs.ReadFile(context.Background(), "nope.pdf"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
