// Package listfield implements the encoding convention for list-valued
// listing attributes (images, amenities, building amenities) stored in
// scalar text columns: a JSON string array on write, with a lenient
// comma-split fallback on read so malformed rows are recovered rather
// than surfaced as errors.
package listfield

import (
	"encoding/json"
	"strings"
)

// Encode serializes values as a JSON string array. A nil slice encodes
// as "[]" so the stored column is never NULL after a write.
func Encode(values []string) string {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		// []string cannot fail to marshal; keep the column well-formed anyway.
		return "[]"
	}
	return string(data)
}

// Decode parses stored text back into a string slice. It never fails:
// empty or NULL input yields an empty slice, and text that is not a JSON
// string array is split on commas with entries trimmed and empties
// dropped. Callers that care about malformed rows can compare
// DecodedWithFallback.
func Decode(raw string) []string {
	values, _ := DecodeWithFallback(raw)
	return values
}

// DecodeWithFallback is Decode plus a flag reporting whether the
// comma-split recovery path was taken, so callers can log malformed rows.
func DecodeWithFallback(raw string) ([]string, bool) {
	if strings.TrimSpace(raw) == "" {
		return []string{}, false
	}

	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err == nil {
		if values == nil {
			values = []string{}
		}
		return values, false
	}

	// Legacy rows hold plain comma-separated text.
	parts := strings.Split(raw, ",")
	values = make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values, true
}

// NormalizeImageURLs cleans a decoded image list: empty entries are
// dropped, absolute http/https URLs pass through unchanged, and relative
// paths are prefixed with siteOrigin (a scheme+host with no trailing
// slash, e.g. "https://squareonerentals.com").
func NormalizeImageURLs(images []string, siteOrigin string) []string {
	normalized := make([]string, 0, len(images))
	for _, img := range images {
		img = strings.TrimSpace(img)
		if img == "" {
			continue
		}
		if strings.HasPrefix(img, "http://") || strings.HasPrefix(img, "https://") {
			normalized = append(normalized, img)
			continue
		}
		if !strings.HasPrefix(img, "/") {
			img = "/" + img
		}
		normalized = append(normalized, siteOrigin+img)
	}
	return normalized
}
