package ocr

import (
	"encoding/base64"
	"net/http"
	"strings"
)

// base64SniffLen covers the 512 bytes http.DetectContentType inspects.
const base64SniffLen = 512 * 4 / 3

// DetectImageMediaType sniffs the media type of a bare base64 image payload
// from its decoded leading bytes. Payloads that cannot be decoded or are not
// a recognized image format report image/png, the format OCR engines emit
// for extracted page images.
func DetectImageMediaType(imageBase64 string) string {
	sniff := imageBase64
	if len(sniff) > base64SniffLen {
		sniff = sniff[:base64SniffLen]
	}
	sniff = sniff[:len(sniff)-len(sniff)%4]

	raw, err := base64.StdEncoding.DecodeString(sniff)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(sniff, "="))
		if err != nil {
			return "image/png"
		}
	}

	if mediaType := http.DetectContentType(raw); strings.HasPrefix(mediaType, "image/") {
		return mediaType
	}
	return "image/png"
}

// ImageDataURL wraps a bare base64 image payload in a data URL, sniffing the
// media type from the payload itself. Inputs that already carry a data-URL
// prefix pass through unchanged.
func ImageDataURL(imageBase64 string) string {
	if strings.HasPrefix(imageBase64, "data:") {
		return imageBase64
	}
	return "data:" + DetectImageMediaType(imageBase64) + ";base64," + imageBase64
}
