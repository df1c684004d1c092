package parsex

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"time"

	"github.com/Abraxas-365/docmd/pkg/ai/ocr"
	"github.com/Abraxas-365/docmd/pkg/fsx"
)

// onePxPNG is a 1x1 transparent PNG
const onePxPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

// fakeStore implements ocr.FileStore in memory
type fakeStore struct {
	failFor string
	uploads []string
}

func (s *fakeStore) Upload(ctx context.Context, filename string, content []byte) (ocr.FileHandle, error) {
	if s.failFor != "" && filename == s.failFor {
		return ocr.FileHandle{}, errors.New("upload rejected")
	}
	s.uploads = append(s.uploads, filename)
	return ocr.FileHandle{ID: "file-" + filename, Filename: filename}, nil
}

func (s *fakeStore) SignedURL(ctx context.Context, fileID string, expiry time.Duration) (string, error) {
	return "https://signed.example.com/" + fileID, nil
}

// fakeRecognizer implements ocr.TextRecognizer
type fakeRecognizer struct {
	result *ocr.Result
	err    error
}

func (r *fakeRecognizer) RecognizeText(ctx context.Context, input ocr.Input, opts ...ocr.Option) (*ocr.Result, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.result, nil
}

// fakeDescriber implements ocr.ImageDescriber
type fakeDescriber struct {
	reply string
	err   error
	calls int
}

func (d *fakeDescriber) DescribeImage(ctx context.Context, imageBase64 string, opts ...ocr.Option) (string, error) {
	d.calls++
	if d.err != nil {
		return "", d.err
	}
	return d.reply, nil
}

// fakeExtractor implements ocr.StructuredExtractor
type fakeExtractor struct {
	reply string
	err   error
}

func (e *fakeExtractor) ExtractStructured(ctx context.Context, input ocr.Input, schema ocr.Schema, opts ...ocr.Option) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	return e.reply, nil
}

// memFS is an in-memory fsx.FileSystem
type memFS struct {
	files map[string][]byte
	dirs  map[string]bool
}

func newMemFS() *memFS {
	return &memFS{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

func (m *memFS) ReadFile(ctx context.Context, path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, errors.New("file not found: " + path)
	}
	return data, nil
}

func (m *memFS) Stat(ctx context.Context, path string) (fsx.FileInfo, error) {
	if data, ok := m.files[path]; ok {
		return fsx.FileInfo{Name: filepath.Base(path), Size: int64(len(data))}, nil
	}
	if m.dirs[path] {
		return fsx.FileInfo{Name: filepath.Base(path), IsDir: true}, nil
	}
	return fsx.FileInfo{}, errors.New("not found: " + path)
}

func (m *memFS) List(ctx context.Context, path string) ([]fsx.FileInfo, error) {
	var infos []fsx.FileInfo
	for name, data := range m.files {
		if filepath.Dir(name) == path {
			infos = append(infos, fsx.FileInfo{Name: filepath.Base(name), Size: int64(len(data))})
		}
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

func (m *memFS) Exists(ctx context.Context, path string) (bool, error) {
	_, ok := m.files[path]
	return ok || m.dirs[path], nil
}

func (m *memFS) WriteFile(ctx context.Context, path string, data []byte) error {
	m.files[path] = data
	return nil
}

func (m *memFS) CreateDir(ctx context.Context, path string) error {
	m.dirs[path] = true
	return nil
}

func (m *memFS) Join(elem ...string) string {
	return filepath.Join(elem...)
}
