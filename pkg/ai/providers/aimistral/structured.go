package aimistral

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Abraxas-365/docmd/pkg/ai/ocr"
)

const structuredPrompt = "This is the document's OCR in markdown. Convert it into a structured JSON response with the content of the document."

// ExtractStructured implements ocr.StructuredExtractor. It runs OCR on the
// input first and then asks the parse model to map the markdown into the
// given schema at temperature zero. Image inputs are attached to the request
// alongside the markdown.
func (m *MistralProvider) ExtractStructured(ctx context.Context, input ocr.Input, schema ocr.Schema, opts ...ocr.Option) (string, error) {
	if schema.Name == "" || len(schema.Schema) == 0 {
		return "", errorRegistry.New(ErrSchemaInvalid)
	}

	options := ocr.ApplyOptions(opts...)

	markdown, err := m.ConvertToMarkdown(ctx, input, opts...)
	if err != nil {
		return "", err
	}

	model := options.ParseModel
	if model == "" {
		model = m.defaultParseModel
	}

	content := []ContentPart{
		{Type: "text", Text: fmt.Sprintf("%s\n\n<document>\n%s\n</document>", structuredPrompt, markdown)},
	}

	// Image inputs go to the parse model alongside their OCR markdown so it
	// can read the image directly.
	if imageURL := structuredImageURL(input); imageURL != "" {
		content = append(content, ContentPart{Type: "image_url", ImageURL: imageURL})
	}

	temperature := 0.0

	req := &ChatRequest{
		Model: model,
		Messages: []ChatMessage{
			{Role: "user", Content: content},
		},
		ResponseFormat: NewJSONSchemaFormat(schema.Name, schema.Schema, schema.Strict),
		Temperature:    &temperature,
	}

	respBody, reqErr := m.client.Post(ctx, "/chat/completions", req)
	if reqErr != nil {
		return "", reqErr
	}

	var resp ChatResponse
	if parseErr := json.Unmarshal(respBody, &resp); parseErr != nil {
		return "", WrapError(parseErr, ErrAPIResponse).
			WithDetail("error", "failed to parse chat response")
	}

	if len(resp.Choices) == 0 {
		return "", errorRegistry.New(ErrEmptyCompletion)
	}

	return resp.Choices[0].Message.Content, nil
}

// structuredImageURL returns a data URL (or plain URL) for image inputs.
// Document inputs return "" since their pages cannot be attached as a single
// image.
func structuredImageURL(input ocr.Input) string {
	switch input.Type {
	case ocr.InputTypeImageURL:
		return input.URL
	case ocr.InputTypeBase64:
		// Inputs without a mime type are treated as documents, matching
		// convertInputToDocument.
		if strings.HasPrefix(input.MimeType, "image/") {
			return fmt.Sprintf("data:%s;base64,%s", input.MimeType, string(input.Data))
		}
	}
	return ""
}
