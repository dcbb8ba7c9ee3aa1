package middleware

import (
	"log/slog"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/badhon18478/Marketplace-sub000/internal/platform/logging"
)

const redacted = "[REDACTED]"

// RedactHeaders renders headers as log attributes sorted by name, with
// multiple values comma-joined and logging.SensitiveHeaders masked.
func RedactHeaders(headers http.Header) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(headers))
	for _, name := range slices.Sorted(maps.Keys(headers)) {
		value := strings.Join(headers[name], ",")
		if logging.SensitiveHeaders[strings.ToLower(name)] {
			value = redacted
		}
		attrs = append(attrs, slog.String(name, value))
	}
	return attrs
}

// RedactQuery encodes values for logging with logging.SensitiveParams
// masked. Browse filters such as search and category pass through.
func RedactQuery(values url.Values) string {
	masked := make(url.Values, len(values))
	for name, vals := range values {
		if logging.SensitiveParams[strings.ToLower(name)] {
			vals = []string{redacted}
		}
		masked[name] = vals
	}
	return masked.Encode()
}
