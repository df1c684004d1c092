package parsex

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"strings"

	// Codecs registered for dimension probing
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/Abraxas-365/docmd/pkg/ai/ocr"
	"github.com/Abraxas-365/docmd/pkg/logx"
)

const (
	defaultDescription = "An image from the document"
	defaultImageType   = "Unknown"
)

// ImageDescription is the normalized output of the description composer.
// Metadata always carries at least a "type" entry.
type ImageDescription struct {
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata"`
}

// DescribeImage asks the describer about an image and guarantees a
// well-formed result. Remote failures, malformed replies and undecodable
// images all degrade to a fixed default; this function never returns an
// error. Dimensions are measured locally and injected when the reply does
// not carry them.
func DescribeImage(ctx context.Context, describer ocr.ImageDescriber, imageBase64 string, opts ...ocr.Option) ImageDescription {
	dimensions, haveDims := decodeDimensions(imageBase64)

	fallback := func() ImageDescription {
		desc := ImageDescription{
			Description: defaultDescription,
			Metadata:    map[string]any{"type": defaultImageType},
		}
		if haveDims {
			desc.Metadata["dimensions"] = dimensions
		}
		return desc
	}

	if describer == nil {
		return fallback()
	}

	reply, err := describer.DescribeImage(ctx, imageBase64, opts...)
	if err != nil {
		logx.WithError(err).Debug("image description call failed, using fallback")
		return fallback()
	}

	desc, ok := parseDescriptionReply(reply)
	if !ok {
		logx.WithField("reply_bytes", len(reply)).Debug("image description reply malformed, using fallback")
		return fallback()
	}

	if desc.Metadata == nil {
		desc.Metadata = map[string]any{}
	}
	if _, exists := desc.Metadata["type"]; !exists {
		desc.Metadata["type"] = defaultImageType
	}
	if _, exists := desc.Metadata["dimensions"]; !exists && haveDims {
		desc.Metadata["dimensions"] = dimensions
	}
	if desc.Description == "" {
		desc.Description = defaultDescription
	}

	return desc
}

// parseDescriptionReply parses the model's textual reply. ok is false when
// the reply is not valid JSON or not a JSON object; both composers treat
// that uniformly as "use the fallback".
func parseDescriptionReply(raw string) (ImageDescription, bool) {
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return ImageDescription{}, false
	}

	mapping, isObject := value.(map[string]any)
	if !isObject {
		return ImageDescription{}, false
	}

	desc := ImageDescription{}
	if s, ok := mapping["description"].(string); ok {
		desc.Description = s
	}
	if m, ok := mapping["metadata"].(map[string]any); ok {
		desc.Metadata = m
	}

	return desc, true
}

// decodeDimensions measures the pixel size of a base64 image without
// decoding the full bitmap
func decodeDimensions(imageBase64 string) (string, bool) {
	data := imageBase64
	if strings.HasPrefix(data, "data:") {
		if idx := strings.Index(data, ";base64,"); idx >= 0 {
			data = data[idx+len(";base64,"):]
		}
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(data)
		if err != nil {
			return "", false
		}
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return "", false
	}

	return fmt.Sprintf("%dx%d", cfg.Width, cfg.Height), true
}
