package aimistral

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/Abraxas-365/docmd/pkg/errx"
)

const (
	DefaultBaseURL    = "https://api.mistral.ai/v1"
	DefaultTimeout    = 5 * time.Minute // OCR can take a while
	MaxRetries        = 3
	DefaultModel      = "mistral-ocr-latest"
	DefaultChatModel  = "mistral-large-latest"
	DefaultParseModel = "pixtral-12b-latest"
)

// HTTPClient handles all HTTP communication with Mistral API
type HTTPClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	maxRetries int
}

// NewHTTPClient creates a new HTTP client for Mistral API
func NewHTTPClient(apiKey, baseURL string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: DefaultTimeout,
		}
	}

	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &HTTPClient{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		maxRetries: MaxRetries,
	}
}

// Post makes a POST request to the Mistral API
func (c *HTTPClient) Post(ctx context.Context, endpoint string, payload any) ([]byte, *errx.Error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, WrapError(err, ErrInvalidInput).
			WithDetail("error", "failed to marshal request payload")
	}

	var lastErr *errx.Error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff
			backoff := time.Duration(attempt) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, WrapError(ctx.Err(), ErrAPIRequest).
					WithDetail("error", "context cancelled during retry")
			}
		}

		body, reqErr := c.doRequest(ctx, "POST", endpoint, "application/json", bytes.NewReader(jsonData))
		if reqErr == nil {
			return body, nil
		}

		lastErr = reqErr

		// Don't retry on certain errors
		if !c.shouldRetry(reqErr) {
			break
		}
	}

	return nil, lastErr
}

// Get makes a GET request to the Mistral API
func (c *HTTPClient) Get(ctx context.Context, endpoint string) ([]byte, *errx.Error) {
	var lastErr *errx.Error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, WrapError(ctx.Err(), ErrAPIRequest).
					WithDetail("error", "context cancelled during retry")
			}
		}

		body, reqErr := c.doRequest(ctx, "GET", endpoint, "", nil)
		if reqErr == nil {
			return body, nil
		}

		lastErr = reqErr

		if !c.shouldRetry(reqErr) {
			break
		}
	}

	return nil, lastErr
}

// PostMultipart uploads a file with multipart/form-data. Multipart bodies are
// not replayed, so uploads are never retried.
func (c *HTTPClient) PostMultipart(ctx context.Context, endpoint string, fields map[string]string, fileField, filename string, content []byte) ([]byte, *errx.Error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, WrapError(err, ErrInvalidInput).
				WithDetail("error", "failed to write multipart field").
				WithDetail("field", key)
		}
	}

	part, err := writer.CreateFormFile(fileField, filename)
	if err != nil {
		return nil, WrapError(err, ErrInvalidInput).
			WithDetail("error", "failed to create multipart file part")
	}
	if _, err := part.Write(content); err != nil {
		return nil, WrapError(err, ErrInvalidInput).
			WithDetail("error", "failed to write file content")
	}

	if err := writer.Close(); err != nil {
		return nil, WrapError(err, ErrInvalidInput).
			WithDetail("error", "failed to finalize multipart body")
	}

	return c.doRequest(ctx, "POST", endpoint, writer.FormDataContentType(), &buf)
}

// doRequest performs the actual HTTP request
func (c *HTTPClient) doRequest(ctx context.Context, method, endpoint, contentType string, body io.Reader) ([]byte, *errx.Error) {
	url := c.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, WrapError(err, ErrAPIRequest).
			WithDetail("error", "failed to create HTTP request")
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("User-Agent", "docmd/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, WrapError(err, ErrAPIRequest).
			WithDetail("error", "HTTP request failed").
			WithDetail("url", url)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, WrapError(err, ErrAPIResponse).
			WithDetail("error", "failed to read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, ParseAPIError(resp.StatusCode, respBody)
	}

	return respBody, nil
}

// shouldRetry determines if an error is retryable
func (c *HTTPClient) shouldRetry(err *errx.Error) bool {
	// Retry on rate limits and temporary failures
	if err.Code == ErrAPIRateLimit.Code {
		return true
	}

	// Don't retry on validation errors or auth errors
	if err.Type == errx.TypeValidation || err.Type == errx.TypeAuthorization {
		return false
	}

	// Retry on 5xx errors
	if statusCode, ok := err.Details["status_code"].(int); ok {
		return statusCode >= 500 && statusCode < 600
	}

	return false
}
