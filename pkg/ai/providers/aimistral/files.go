package aimistral

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Abraxas-365/docmd/pkg/ai/ocr"
)

// Upload implements ocr.FileStore. The file is stored with purpose "ocr" so
// the service accepts it as OCR input.
func (m *MistralProvider) Upload(ctx context.Context, filename string, content []byte) (ocr.FileHandle, error) {
	if len(content) == 0 {
		return ocr.FileHandle{}, errorRegistry.New(ErrInvalidInput).
			WithDetail("error", "file content cannot be empty")
	}

	fields := map[string]string{"purpose": "ocr"}

	respBody, err := m.client.PostMultipart(ctx, "/files", fields, "file", filename, content)
	if err != nil {
		return ocr.FileHandle{}, err
	}

	var resp UploadResponse
	if parseErr := json.Unmarshal(respBody, &resp); parseErr != nil {
		return ocr.FileHandle{}, WrapError(parseErr, ErrUploadFailed).
			WithDetail("error", "failed to parse upload response")
	}

	if resp.ID == "" {
		return ocr.FileHandle{}, errorRegistry.New(ErrUploadFailed).
			WithDetail("error", "upload response missing file id")
	}

	return ocr.FileHandle{ID: resp.ID, Filename: resp.Filename}, nil
}

// SignedURL implements ocr.FileStore. The expiry is rounded up to whole
// hours, which is the granularity the API accepts.
func (m *MistralProvider) SignedURL(ctx context.Context, fileID string, expiry time.Duration) (string, error) {
	if fileID == "" {
		return "", errorRegistry.New(ErrInvalidInput).
			WithDetail("error", "file id cannot be empty")
	}

	hours := int(expiry.Hours())
	if time.Duration(hours)*time.Hour < expiry {
		hours++
	}
	if hours < 1 {
		hours = 1
	}

	endpoint := fmt.Sprintf("/files/%s/url?expiry=%d", fileID, hours)

	respBody, err := m.client.Get(ctx, endpoint)
	if err != nil {
		return "", err
	}

	var resp SignedURLResponse
	if parseErr := json.Unmarshal(respBody, &resp); parseErr != nil {
		return "", WrapError(parseErr, ErrSignedURLFailed).
			WithDetail("error", "failed to parse signed URL response")
	}

	if resp.URL == "" {
		return "", errorRegistry.New(ErrSignedURLFailed).
			WithDetail("error", "signed URL response missing url")
	}

	return resp.URL, nil
}
