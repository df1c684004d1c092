package aianthropic

import (
	"context"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/Abraxas-365/docmd/pkg/ai/ocr"
	"github.com/Abraxas-365/docmd/pkg/errx"
)

const (
	DefaultModel     = "claude-sonnet-4-20250514"
	defaultMaxTokens = 1024
)

// AnthropicDescriber implements ocr.ImageDescriber on top of the Anthropic
// messages API.
type AnthropicDescriber struct {
	client       anthropic.Client
	apiKey       string
	defaultModel string
}

// NewAnthropicDescriber creates a new Anthropic image describer
func NewAnthropicDescriber(apiKey string, opts ...option.RequestOption) (*AnthropicDescriber, *errx.Error) {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}

	if apiKey == "" {
		return nil, errorRegistry.New(ErrMissingAPIKey)
	}

	options := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	client := anthropic.NewClient(options...)

	return &AnthropicDescriber{
		client:       client,
		apiKey:       apiKey,
		defaultModel: DefaultModel,
	}, nil
}

// WithModel overrides the default model
func (p *AnthropicDescriber) WithModel(model string) *AnthropicDescriber {
	p.defaultModel = model
	return p
}

const describePrompt = `Describe this image in detail. Respond with only a JSON object containing:
- "description": a concise natural-language description of the image
- "metadata": an object with "type" (chart, photo, diagram, table, logo, or other) and any other relevant attributes`

// DescribeImage implements ocr.ImageDescriber. imageBase64 is a bare base64
// string; a data-URL prefix is stripped if present.
func (p *AnthropicDescriber) DescribeImage(ctx context.Context, imageBase64 string, opts ...ocr.Option) (string, error) {
	if imageBase64 == "" {
		return "", errorRegistry.New(ErrInvalidInput).
			WithDetail("error", "image data cannot be empty")
	}

	options := ocr.ApplyOptions(opts...)

	model := options.DescribeModel
	if model == "" {
		model = p.defaultModel
	}

	mediaType, data := splitDataURL(imageBase64)

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: defaultMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewImageBlockBase64(mediaType, data),
				anthropic.NewTextBlock(describePrompt),
			),
		},
	}

	message, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", WrapError(err, ErrAPIRequest)
	}

	var content strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			content.WriteString(block.Text)
		}
	}

	if content.Len() == 0 {
		return "", errorRegistry.New(ErrEmptyResponse)
	}

	return content.String(), nil
}

// splitDataURL separates an optional data-URL prefix from the base64
// payload. Bare payloads get their media type sniffed from the bytes.
func splitDataURL(s string) (mediaType, data string) {
	if !strings.HasPrefix(s, "data:") {
		return ocr.DetectImageMediaType(s), s
	}

	rest := strings.TrimPrefix(s, "data:")
	semi := strings.Index(rest, ";base64,")
	if semi < 0 {
		return ocr.DetectImageMediaType(s), s
	}
	return rest[:semi], rest[semi+len(";base64,"):]
}
