package aimistral

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"
)

func TestUpload(t *testing.T) {
	provider, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/files" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("purpose"); got != "ocr" {
			t.Errorf("purpose = %q", got)
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()

		if header.Filename != "report.pdf" {
			t.Errorf("filename = %q", header.Filename)
		}
		content, _ := io.ReadAll(file)
		if string(content) != "%PDF-1.4" {
			t.Errorf("content = %q", content)
		}

		w.Write([]byte(`{"id":"file-abc","object":"file","filename":"report.pdf","purpose":"ocr","size_bytes":8}`))
	})

	handle, err := provider.Upload(context.Background(), "report.pdf", []byte("%PDF-1.4"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if handle.ID != "file-abc" || handle.Filename != "report.pdf" {
		t.Errorf("handle = %+v", handle)
	}
}

func TestUploadRejectsEmptyContent(t *testing.T) {
	provider, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the API")
	})

	if _, err := provider.Upload(context.Background(), "empty.pdf", nil); err == nil {
		t.Fatal("expected error for empty content")
	}
}

func TestSignedURL(t *testing.T) {
	provider, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/files/file-abc/url" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("expiry"); got != "1" {
			t.Errorf("expiry = %q", got)
		}
		w.Write([]byte(`{"url":"https://signed.example.com/file-abc"}`))
	})

	url, err := provider.SignedURL(context.Background(), "file-abc", time.Hour)
	if err != nil {
		t.Fatalf("SignedURL: %v", err)
	}
	if url != "https://signed.example.com/file-abc" {
		t.Errorf("url = %q", url)
	}
}

func TestSignedURLRoundsUpExpiry(t *testing.T) {
	provider, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("expiry"); got != "2" {
			t.Errorf("expiry = %q", got)
		}
		w.Write([]byte(`{"url":"https://signed.example.com/file-abc"}`))
	})

	if _, err := provider.SignedURL(context.Background(), "file-abc", 90*time.Minute); err != nil {
		t.Fatalf("SignedURL: %v", err)
	}
}
