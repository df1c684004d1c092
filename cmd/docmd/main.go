// Command docmd converts PDF and image documents to markdown through the
// Mistral OCR API, either for a single file or for a whole directory.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Abraxas-365/docmd/pkg/ai/providers/aimistral"
	"github.com/Abraxas-365/docmd/pkg/config"
	"github.com/Abraxas-365/docmd/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/docmd/pkg/logx"
	"github.com/Abraxas-365/docmd/pkg/parsex"
)

func main() {
	var (
		input      = flag.String("input", "", "input PDF or image file")
		output     = flag.String("output", "", "output markdown file (default: input name with .md)")
		apiKey     = flag.String("api-key", "", "Mistral API key (default: MISTRAL_API_KEY)")
		dir        = flag.String("dir", "", "process every matching file in this directory")
		outDir     = flag.String("out-dir", "output", "output directory for batch mode")
		pattern    = flag.String("pattern", "*.pdf", "glob pattern for batch mode")
		structured = flag.Bool("structured", false, "emit a structured JSON record instead of markdown")
		html       = flag.Bool("html", false, "also render the markdown to HTML")
	)
	flag.Parse()

	if *input == "" && *dir == "" {
		fmt.Fprintln(os.Stderr, "docmd: either -input or -dir is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	if *apiKey != "" {
		cfg.Mistral.APIKey = *apiKey
	}

	parser, err := buildParser(cfg)
	if err != nil {
		logx.Fatalf("docmd: %v", err)
	}

	ctx := context.Background()

	if *dir != "" {
		runBatch(ctx, parser, *dir, *outDir, *pattern)
		return
	}

	runSingle(ctx, parser, *input, *output, *structured, *html)
}

func buildParser(cfg *config.Config) (*parsex.Parser, error) {
	provider, err := aimistral.NewMistralProvider(cfg.Mistral.APIKey,
		aimistral.WithBaseURL(cfg.Mistral.BaseURL),
		aimistral.WithTimeout(cfg.Mistral.Timeout),
		aimistral.WithMaxRetries(cfg.Mistral.MaxRetries),
		aimistral.WithDefaultModel(cfg.Mistral.OCRModel),
		aimistral.WithDefaultChatModel(cfg.Mistral.ChatModel),
		aimistral.WithDefaultParseModel(cfg.Mistral.ParseModel),
	)
	if err != nil {
		return nil, err
	}

	fs, fsErr := fsxlocal.NewLocalFileSystem(".")
	if fsErr != nil {
		return nil, fsErr
	}

	return parsex.NewParser(provider, provider, provider, fs,
		parsex.WithStructuredExtractor(provider),
	), nil
}

func runSingle(ctx context.Context, parser *parsex.Parser, input, output string, structured, html bool) {
	if structured {
		doc := parser.StructuredOCR(ctx, input)
		outPath := output
		if outPath == "" {
			outPath = replaceExt(input, ".json")
		}

		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			logx.Fatalf("docmd: encoding structured record: %v", err)
		}
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			logx.Fatalf("docmd: writing %s: %v", outPath, err)
		}
		fmt.Println(outPath)
		return
	}

	outPath := output
	if outPath == "" {
		outPath = replaceExt(input, ".md")
	}

	markdown, err := parser.ParseDocument(ctx, input, outPath)
	if err != nil {
		logx.Fatalf("docmd: %v", err)
	}
	fmt.Println(outPath)

	if html {
		rendered, renderErr := parsex.MarkdownToHTML(markdown)
		if renderErr != nil {
			logx.Fatalf("docmd: rendering HTML: %v", renderErr)
		}
		htmlPath := replaceExt(outPath, ".html")
		if err := os.WriteFile(htmlPath, []byte(rendered), 0o644); err != nil {
			logx.Fatalf("docmd: writing %s: %v", htmlPath, err)
		}
		fmt.Println(htmlPath)
	}
}

func runBatch(ctx context.Context, parser *parsex.Parser, dir, outDir, pattern string) {
	outputs, err := parser.ParseBatch(ctx, dir, outDir, pattern)
	if err != nil {
		logx.Fatalf("docmd: %v", err)
	}

	for _, path := range outputs {
		fmt.Println(path)
	}
	fmt.Fprintf(os.Stderr, "processed %d file(s)\n", len(outputs))
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
