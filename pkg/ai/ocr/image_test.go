package ocr

import "testing"

const pngPixel = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

func TestDetectImageMediaType(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"png", pngPixel, "image/png"},
		{"jpeg", "/9j/4AAQSkZJRg==", "image/jpeg"},
		{"gif", "R0lGODlh", "image/gif"},
		{"not an image", "aGVsbG8gd29ybGQ=", "image/png"},
		{"not base64", "!!!definitely not!!!", "image/png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectImageMediaType(tt.payload); got != tt.want {
				t.Errorf("DetectImageMediaType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestImageDataURL(t *testing.T) {
	if got := ImageDataURL("/9j/4AAQSkZJRg=="); got != "data:image/jpeg;base64,/9j/4AAQSkZJRg==" {
		t.Errorf("ImageDataURL() = %q", got)
	}

	existing := "data:image/png;base64," + pngPixel
	if got := ImageDataURL(existing); got != existing {
		t.Errorf("expected data URL to pass through, got %q", got)
	}
}
