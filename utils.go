package renamed

import (
	"fmt"
	"path/filepath"
	"strings"
)

// mimeTypes maps supported file extensions to the Content-Type sent for the
// multipart file part. Anything else falls back to application/octet-stream.
var mimeTypes = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".tiff": "image/tiff",
	".tif":  "image/tiff",
}

func mimeTypeByExtension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if mt, ok := mimeTypes[ext]; ok {
		return mt
	}
	return "application/octet-stream"
}

// maskAPIKey renders an API key safe for log output.
// Keys of length <= 7 render as "***"; longer keys as first3 + "..." + last4.
func maskAPIKey(key string) string {
	if len(key) <= 7 {
		return "***"
	}
	return key[:3] + "..." + key[len(key)-4:]
}

// formatBytes renders a byte count in human-readable base-1024 units.
func formatBytes(n int64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)
	switch {
	case n >= gb:
		return fmt.Sprintf("%.1f GB", float64(n)/float64(gb))
	case n >= mb:
		return fmt.Sprintf("%.1f MB", float64(n)/float64(mb))
	case n >= kb:
		return fmt.Sprintf("%.1f KB", float64(n)/float64(kb))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// extractPath strips scheme and host from a URL so log lines stay short.
func extractPath(fullURL string) string {
	if idx := strings.Index(fullURL, "://"); idx != -1 {
		rest := fullURL[idx+3:]
		if pathIdx := strings.Index(rest, "/"); pathIdx != -1 {
			return rest[pathIdx:]
		}
		return "/"
	}
	if strings.HasPrefix(fullURL, "/") {
		return fullURL
	}
	return "/" + fullURL
}
