package aiopenai

import (
	"context"
	"os"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"github.com/Abraxas-365/docmd/pkg/ai/ocr"
	"github.com/Abraxas-365/docmd/pkg/errx"
)

const DefaultModel = "gpt-4o"

// OpenAIDescriber implements ocr.ImageDescriber on top of the OpenAI vision
// chat API. It only covers image description; OCR itself stays with the
// primary provider.
type OpenAIDescriber struct {
	client       openai.Client
	apiKey       string
	defaultModel string
}

// NewOpenAIDescriber creates a new OpenAI image describer
func NewOpenAIDescriber(apiKey string, opts ...option.RequestOption) (*OpenAIDescriber, *errx.Error) {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	if apiKey == "" {
		return nil, errorRegistry.New(ErrMissingAPIKey)
	}

	options := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	client := openai.NewClient(options...)

	return &OpenAIDescriber{
		client:       client,
		apiKey:       apiKey,
		defaultModel: DefaultModel,
	}, nil
}

// WithModel overrides the default vision model
func (p *OpenAIDescriber) WithModel(model string) *OpenAIDescriber {
	p.defaultModel = model
	return p
}

const describePrompt = `Describe this image in detail. Respond with a JSON object containing:
- "description": a concise natural-language description of the image
- "metadata": an object with "type" (chart, photo, diagram, table, logo, or other) and any other relevant attributes`

// DescribeImage implements ocr.ImageDescriber
func (p *OpenAIDescriber) DescribeImage(ctx context.Context, imageBase64 string, opts ...ocr.Option) (string, error) {
	if imageBase64 == "" {
		return "", errorRegistry.New(ErrInvalidInput).
			WithDetail("error", "image data cannot be empty")
	}

	options := ocr.ApplyOptions(opts...)

	model := options.DescribeModel
	if model == "" {
		model = p.defaultModel
	}

	dataURL := ocr.ImageDataURL(imageBase64)

	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(describePrompt),
		openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: dataURL,
		}),
	}

	params := openai.ChatCompletionNewParams{
		Model:    model,
		Messages: []openai.ChatCompletionMessageParamUnion{openai.UserMessage(parts)},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	}

	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", WrapError(err, ErrAPIRequest)
	}

	if len(completion.Choices) == 0 {
		return "", errorRegistry.New(ErrNoChoicesInResponse)
	}

	return completion.Choices[0].Message.Content, nil
}
