package aianthropic

import "testing"

func TestSplitDataURL(t *testing.T) {
	tests := []struct {
		in        string
		mediaType string
		data      string
	}{
		{"/9j/4AAQSkZJRg==", "image/jpeg", "/9j/4AAQSkZJRg=="},
		{"iVBORw0KGgoAAAANSUhEUg==", "image/png", "iVBORw0KGgoAAAANSUhEUg=="},
		{"data:image/png;base64,aWJt", "image/png", "aWJt"},
		{"data:aWJt", "image/png", "data:aWJt"},
	}

	for _, tt := range tests {
		mediaType, data := splitDataURL(tt.in)
		if mediaType != tt.mediaType || data != tt.data {
			t.Errorf("splitDataURL(%q) = %q, %q; want %q, %q", tt.in, mediaType, data, tt.mediaType, tt.data)
		}
	}
}
