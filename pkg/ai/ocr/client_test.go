package ocr

import (
	"context"
	"testing"
	"time"
)

// minimal recognizer without optional capabilities
type bareRecognizer struct{}

func (bareRecognizer) RecognizeText(ctx context.Context, input Input, opts ...Option) (*Result, error) {
	return NewResultBuilder().WithPages([]Page{{Markdown: "ok"}}).Build(), nil
}

// recognizer that also describes images
type describingRecognizer struct {
	bareRecognizer
}

func (describingRecognizer) DescribeImage(ctx context.Context, imageBase64 string, opts ...Option) (string, error) {
	return "described", nil
}

func TestClientCapabilityDetection(t *testing.T) {
	bare := NewClient(bareRecognizer{})
	if bare.CanDescribeImages() || bare.CanUpload() {
		t.Error("bare recognizer should expose no optional capabilities")
	}

	describing := NewClient(describingRecognizer{})
	if !describing.CanDescribeImages() {
		t.Error("describing recognizer capability not detected")
	}

	reply, err := describing.DescribeImage(context.Background(), "aWJt")
	if err != nil || reply != "described" {
		t.Errorf("DescribeImage = %q, %v", reply, err)
	}
}

func TestClientUnsupportedCapabilities(t *testing.T) {
	client := NewClient(bareRecognizer{})

	if _, err := client.DescribeImage(context.Background(), "aWJt"); err == nil {
		t.Error("expected error for unsupported DescribeImage")
	}
	if _, err := client.ConvertToMarkdown(context.Background(), FromURL("https://example.com/doc.pdf")); err == nil {
		t.Error("expected error for unsupported ConvertToMarkdown")
	}
	if _, err := client.Upload(context.Background(), "a.pdf", []byte("x")); err == nil {
		t.Error("expected error for unsupported Upload")
	}
	if _, err := client.SignedURL(context.Background(), "id", time.Hour); err == nil {
		t.Error("expected error for unsupported SignedURL")
	}
}

func TestResultAccessors(t *testing.T) {
	empty := NewResultBuilder().Build()
	if empty.HasPages() || empty.HasBlocks() {
		t.Error("empty result reports content")
	}
	if empty.FirstPageMarkdown() != "" {
		t.Error("empty result has first page markdown")
	}

	result := NewResultBuilder().
		WithPages([]Page{{Markdown: "first"}, {Markdown: "second"}}).
		WithMetadata("model", "m").
		Build()
	if result.FirstPageMarkdown() != "first" {
		t.Errorf("FirstPageMarkdown = %q", result.FirstPageMarkdown())
	}
	if result.Metadata()["model"] != "m" {
		t.Errorf("metadata = %v", result.Metadata())
	}
}
