package aimistral

import (
	"context"
	"encoding/json"

	"github.com/Abraxas-365/docmd/pkg/ai/ocr"
)

const describePrompt = `Describe this image in detail. Respond with a JSON object containing:
- "description": a concise natural-language description of the image
- "metadata": an object with "type" (chart, photo, diagram, table, logo, or other) and any other relevant attributes`

// DescribeImage implements ocr.ImageDescriber via the chat completions
// endpoint with JSON output mode. Bare base64 payloads are wrapped in a data
// URL with a sniffed media type.
func (m *MistralProvider) DescribeImage(ctx context.Context, imageBase64 string, opts ...ocr.Option) (string, error) {
	if imageBase64 == "" {
		return "", errorRegistry.New(ErrInvalidInput).
			WithDetail("error", "image data cannot be empty")
	}

	options := ocr.ApplyOptions(opts...)

	model := options.DescribeModel
	if model == "" {
		model = m.defaultChatModel
	}

	dataURL := ocr.ImageDataURL(imageBase64)

	req := &ChatRequest{
		Model: model,
		Messages: []ChatMessage{
			{
				Role: "user",
				Content: []ContentPart{
					{Type: "text", Text: describePrompt},
					{Type: "image_url", ImageURL: dataURL},
				},
			},
		},
		ResponseFormat: NewJSONObjectFormat(),
	}

	respBody, err := m.client.Post(ctx, "/chat/completions", req)
	if err != nil {
		return "", err
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
