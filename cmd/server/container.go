// cmd/server/container.go
//
// Composition root. Owns infrastructure (file storage, API clients) and
// wires the document pipeline. This is the only place that knows about all
// providers.
package main

import (
	"context"

	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Abraxas-365/docmd/pkg/ai/ocr"
	"github.com/Abraxas-365/docmd/pkg/ai/providers/aianthropic"
	"github.com/Abraxas-365/docmd/pkg/ai/providers/aimistral"
	"github.com/Abraxas-365/docmd/pkg/ai/providers/aiopenai"
	"github.com/Abraxas-365/docmd/pkg/config"
	"github.com/Abraxas-365/docmd/pkg/fsx"
	"github.com/Abraxas-365/docmd/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/docmd/pkg/fsx/fsxs3"
	"github.com/Abraxas-365/docmd/pkg/logx"
	"github.com/Abraxas-365/docmd/pkg/parsex"
)

// Container holds shared infrastructure and the composed pipeline.
type Container struct {
	Config *config.Config

	FileSystem fsx.FileSystem
	S3Client   *s3.Client

	Provider  *aimistral.MistralProvider
	Describer ocr.ImageDescriber
	Parser    *parsex.Parser
}

func NewContainer(cfg *config.Config) *Container {
	logx.Info("Initializing application container...")

	c := &Container{Config: cfg}

	c.initFileStorage()
	c.initProviders()

	c.Parser = parsex.NewParser(c.Provider, c.Provider, c.Describer, c.FileSystem,
		parsex.WithStructuredExtractor(c.Provider),
	)

	logx.Info("Application container initialized")
	return c
}

func (c *Container) initFileStorage() {
	switch c.Config.Storage.Provider {
	case "s3":
		awsCfg, err := awsConfig.LoadDefaultConfig(context.TODO(),
			awsConfig.WithRegion(c.Config.Storage.S3Region))
		if err != nil {
			logx.Fatalf("Unable to load AWS SDK config: %v", err)
		}
		c.S3Client = s3.NewFromConfig(awsCfg)
		c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, c.Config.Storage.S3Bucket, c.Config.Storage.S3Prefix)
		logx.Infof("S3 file system configured (bucket: %s, region: %s)",
			c.Config.Storage.S3Bucket, c.Config.Storage.S3Region)

	case "local":
		localFS, err := fsxlocal.NewLocalFileSystem(c.Config.Storage.LocalBasePath)
		if err != nil {
			logx.Fatalf("Failed to initialize local file system: %v", err)
		}
		c.FileSystem = localFS
		logx.Infof("Local file system configured (path: %s)", c.Config.Storage.LocalBasePath)

	default:
		logx.Fatalf("Unknown storage provider: %s (use 'local' or 's3')", c.Config.Storage.Provider)
	}
}

func (c *Container) initProviders() {
	provider, err := aimistral.NewMistralProvider(c.Config.Mistral.APIKey,
		aimistral.WithBaseURL(c.Config.Mistral.BaseURL),
		aimistral.WithTimeout(c.Config.Mistral.Timeout),
		aimistral.WithMaxRetries(c.Config.Mistral.MaxRetries),
		aimistral.WithDefaultModel(c.Config.Mistral.OCRModel),
		aimistral.WithDefaultChatModel(c.Config.Mistral.ChatModel),
		aimistral.WithDefaultParseModel(c.Config.Mistral.ParseModel),
	)
	if err != nil {
		logx.Fatalf("Failed to initialize Mistral provider: %v", err)
	}
	c.Provider = provider

	// The describer implementation is fixed here; handlers never inspect the
	// client's capabilities at call time.
	switch c.Config.Describer.Provider {
	case "openai":
		describer, derr := aiopenai.NewOpenAIDescriber(c.Config.Describer.OpenAIAPIKey)
		if derr != nil {
			logx.Fatalf("Failed to initialize OpenAI describer: %v", derr)
		}
		c.Describer = describer.WithModel(c.Config.Describer.OpenAIModel)
		logx.Info("Image describer: openai")

	case "anthropic":
		describer, derr := aianthropic.NewAnthropicDescriber(c.Config.Describer.AnthropicAPIKey)
		if derr != nil {
			logx.Fatalf("Failed to initialize Anthropic describer: %v", derr)
		}
		c.Describer = describer.WithModel(c.Config.Describer.AnthropicModel)
		logx.Info("Image describer: anthropic")

	case "mistral":
		c.Describer = provider
		logx.Info("Image describer: mistral")

	default:
		logx.Fatalf("Unknown describer provider: %s (use 'mistral', 'openai' or 'anthropic')",
			c.Config.Describer.Provider)
	}
}

// Cleanup releases container resources
func (c *Container) Cleanup() {
	logx.Info("Container cleanup complete")
}
