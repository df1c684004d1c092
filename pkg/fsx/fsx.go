package fsx

import (
	"context"
	"time"
)

// FileInfo represents information about a file
type FileInfo struct {
	Name        string    // Base name of the file
	Size        int64     // File size in bytes
	ModTime     time.Time // Modification time
	IsDir       bool      // Is a directory
	ContentType string    // MIME type (when available)
}

// FileReader provides read-only operations
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	Stat(ctx context.Context, path string) (FileInfo, error)
	List(ctx context.Context, path string) ([]FileInfo, error)
	Exists(ctx context.Context, path string) (bool, error)
}

// FileWriter provides write operations
type FileWriter interface {
	WriteFile(ctx context.Context, path string, data []byte) error
	CreateDir(ctx context.Context, path string) error
}

// PathOperations provides path manipulation functionality
type PathOperations interface {
	Join(elem ...string) string
}

// FileSystem combines all file operations
type FileSystem interface {
	FileReader
	FileWriter
	PathOperations
}

// PresignedURLGenerator provides presigned URL generation. Backends that
// cannot issue time-limited URLs (local disk) simply don't implement it.
type PresignedURLGenerator interface {
	// GetPresignedDownloadURL generates a presigned URL for downloading a file
	GetPresignedDownloadURL(ctx context.Context, path string, expiration time.Duration) (string, error)
}
