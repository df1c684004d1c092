package parsex

import (
	"net/http"

	"github.com/Abraxas-365/docmd/pkg/errx"
)

var (
	// Error registry for the document pipeline
	errorRegistry = errx.NewRegistry("PARSE")

	ErrFileNotFound = errorRegistry.Register(
		"FILE_NOT_FOUND",
		errx.TypeNotFound,
		http.StatusNotFound,
		"Input file not found",
	)

	ErrReadFailed = errorRegistry.Register(
		"READ_FAILED",
		errx.TypeInternal,
		http.StatusInternalServerError,
		"Failed to read input file",
	)

	ErrWriteFailed = errorRegistry.Register(
		"WRITE_FAILED",
		errx.TypeInternal,
		http.StatusInternalServerError,
		"Failed to write output file",
	)

	ErrListFailed = errorRegistry.Register(
		"LIST_FAILED",
		errx.TypeInternal,
		http.StatusInternalServerError,
		"Failed to list input directory",
	)

	ErrEmptyDocument = errorRegistry.Register(
		"EMPTY_DOCUMENT",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Document content cannot be empty",
	)

	ErrHTMLRender = errorRegistry.Register(
		"HTML_RENDER_FAILED",
		errx.TypeInternal,
		http.StatusInternalServerError,
		"Failed to render markdown to HTML",
	)
)

// wrapError wraps an underlying error with a pipeline error code
func wrapError(err error, code *errx.ErrorCode) *errx.Error {
	if err == nil {
		return nil
	}

	var customErr *errx.Error
	if errx.As(err, &customErr) {
		return customErr
	}

	return errorRegistry.NewWithCause(code, err)
}
