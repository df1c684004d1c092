package ocr

// Options for OCR operations
type Options struct {
	// Model selection
	Model string

	// DescribeModel selects the model used for image description calls
	DescribeModel string

	// ParseModel selects the model used for structured extraction calls
	ParseModel string

	// Image options
	IncludeImageBase64 bool

	// Provider-specific
	ProviderOptions map[string]any
}

type Option func(*Options)

// WithModel sets the OCR model
func WithModel(model string) Option {
	return func(o *Options) { o.Model = model }
}

// WithDescribeModel sets the model used for image description
func WithDescribeModel(model string) Option {
	return func(o *Options) { o.DescribeModel = model }
}

// WithParseModel sets the model used for structured extraction
func WithParseModel(model string) Option {
	return func(o *Options) { o.ParseModel = model }
}

// WithImageBase64 requests base64 payloads for extracted images
func WithImageBase64() Option {
	return func(o *Options) { o.IncludeImageBase64 = true }
}

// WithProviderOption sets a provider-specific option
func WithProviderOption(key string, value any) Option {
	return func(o *Options) {
		if o.ProviderOptions == nil {
			o.ProviderOptions = make(map[string]any)
		}
		o.ProviderOptions[key] = value
	}
}

func DefaultOptions() *Options {
	return &Options{
		ProviderOptions: make(map[string]any),
	}
}

func ApplyOptions(opts ...Option) *Options {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return options
}
