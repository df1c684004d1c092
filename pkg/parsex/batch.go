package parsex

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Abraxas-365/docmd/pkg/logx"
)

// ParseBatch runs the pipeline over every file in inputDir whose base name
// matches pattern, writing one markdown file per input into outputDir.
// Files are processed one at a time; a failing file is logged and skipped,
// never aborting the batch. Returns the output paths that were written.
func (p *Parser) ParseBatch(ctx context.Context, inputDir, outputDir, pattern string) ([]string, error) {
	runID := uuid.NewString()
	log := logx.WithFields(logx.Fields{
		"run_id":    runID,
		"input_dir": inputDir,
		"pattern":   pattern,
	})

	infos, err := p.fs.List(ctx, inputDir)
	if err != nil {
		return nil, wrapError(err, ErrListFailed).
			WithDetail("path", inputDir)
	}

	if err := p.fs.CreateDir(ctx, outputDir); err != nil {
		return nil, wrapError(err, ErrWriteFailed).
			WithDetail("path", outputDir)
	}

	outputs := []string{}
	for _, info := range infos {
		if info.IsDir {
			continue
		}

		matched, matchErr := filepath.Match(pattern, info.Name)
		if matchErr != nil {
			return nil, wrapError(matchErr, ErrListFailed).
				WithDetail("pattern", pattern)
		}
		if !matched {
			continue
		}

		inputPath := p.fs.Join(inputDir, info.Name)
		outputPath := p.fs.Join(outputDir, outputName(info.Name))

		if _, parseErr := p.ParseDocument(ctx, inputPath, outputPath); parseErr != nil {
			log.WithError(parseErr).WithField("file", info.Name).Error("failed to process file, skipping")
			continue
		}

		log.WithField("file", info.Name).Info("processed file")
		outputs = append(outputs, outputPath)
	}

	log.WithField("processed", len(outputs)).Info("batch complete")
	return outputs, nil
}

// outputName swaps the input extension for .md
func outputName(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + ".md"
}
