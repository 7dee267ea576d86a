package utils

import (
	"fmt"
	"strings"
)

// FormatFileSize renders a byte count the way the UI shows document sizes,
// e.g. "2.41 MB".
func FormatFileSize(bytes int64) string {
	const (
		kb = 1024
		mb = kb * 1024
	)
	switch {
	case bytes >= mb:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(mb))
	case bytes >= kb:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(kb))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// MimeClass collapses a content type to the coarse class stored on
// document metadata.
func MimeClass(contentType string) string {
	if strings.Contains(strings.ToLower(contentType), "pdf") {
		return "PDF"
	}
	return "Image"
}
