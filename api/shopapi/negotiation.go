package shopapi

import (
	"strings"
)

const mimeJSON = "application/json"

// acceptsJSON reports whether an Accept header allows a JSON response.
// Each comma separated entry is checked on its own; quality values are not
// evaluated.
func acceptsJSON(accept string) bool {
	for _, entry := range strings.Split(accept, ",") {
		if strings.Contains(entry, mimeJSON) || strings.Contains(entry, "*/*") {
			return true
		}
	}
	return false
}

// isJSONContentType reports whether a Content-Type header is exactly the
// JSON media type, without parameters
func isJSONContentType(contentType string) bool {
	return contentType == mimeJSON
}
