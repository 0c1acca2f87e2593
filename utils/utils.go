package utils

import (
	"fmt"
	"image/color"
	"net/http"
	"strconv"
	"strings"
)

// DetectContentType sniffs the MIME type of generated output.
// Markup starting with an svg element is reported as image/svg+xml,
// which the generic sniffer reports as plain text.
func DetectContentType(data []byte) string {
	trimmed := strings.TrimSpace(string(data[:Min(len(data), 512)]))
	if strings.HasPrefix(trimmed, "<svg") {
		return "image/svg+xml"
	}
	// Always returns a valid content-type and "application/octet-stream" if no others seemed to match.
	return http.DetectContentType(data)
}

// HexToNRGBA converts a color given in hex notation (#rgb, #rgba, #rrggbb or #rrggbbaa,
// the leading # being optional) to color.NRGBA. A missing alpha means opaque.
func HexToNRGBA(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")

	switch len(hex) {
	case 3, 4:
		// Expand the short notation: "f0a" becomes "ff00aa".
		var sb strings.Builder
		for i := 0; i < len(hex); i++ {
			sb.WriteByte(hex[i])
			sb.WriteByte(hex[i])
		}
		hex = sb.String()
	case 6, 8:
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
