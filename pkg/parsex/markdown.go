package parsex

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Abraxas-365/docmd/pkg/ai/ocr"
)

// renderMarkdown turns an OCR result into one markdown document. Responses
// with pre-rendered pages pass the first page through verbatim; block
// responses are walked in order, with each embedded image run through the
// description composer. Unknown block kinds are skipped.
func renderMarkdown(ctx context.Context, describer ocr.ImageDescriber, result *ocr.Result, opts ...ocr.Option) string {
	if result == nil {
		return ""
	}

	if result.HasPages() {
		return result.FirstPageMarkdown()
	}

	var md strings.Builder
	for _, block := range result.Blocks() {
		switch block.Kind {
		case ocr.BlockKindText:
			md.WriteString(block.Text)
			md.WriteString("\n\n")

		case ocr.BlockKindImage:
			if block.Image.Base64 == "" {
				continue
			}
			desc := DescribeImage(ctx, describer, block.Image.Base64, opts...)
			md.WriteString(renderImageFragment(block.Image, desc))

		default:
			// unknown kind
		}
	}

	return md.String()
}

// renderImageFragment renders one image block: a reference line, the
// description in italics and a bulleted metadata list with sorted keys so
// output is deterministic.
func renderImageFragment(img ocr.ImageRef, desc ImageDescription) string {
	name := img.ID
	if name == "" {
		name = "Image"
	}
	target := img.URL
	if target == "" {
		target = img.ID
	}
	if target == "" {
		target = "image_placeholder.png"
	}

	var md strings.Builder
	md.WriteString(fmt.Sprintf("![%s](%s)\n", name, target))
	md.WriteString(fmt.Sprintf("*%s*\n", desc.Description))

	if len(desc.Metadata) > 0 {
		md.WriteString("\n")
		keys := make([]string, 0, len(desc.Metadata))
		for k := range desc.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			md.WriteString(fmt.Sprintf("- **%s**: %v\n", k, desc.Metadata[k]))
		}
	}

	md.WriteString("\n")
	return md.String()
}
