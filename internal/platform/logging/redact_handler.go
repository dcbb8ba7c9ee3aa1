package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// SensitiveHeaders lists lowercase header names whose values never reach the
// logs. The HTTP middleware's RedactHeaders uses the same set.
var SensitiveHeaders = map[string]bool{
	"authorization": true,
	"x-api-key":     true,
	"cookie":        true,
}

// SensitiveParams lists lowercase query parameter names masked by the HTTP
// middleware's RedactQuery. Posters are identified by email.
var SensitiveParams = map[string]bool{
	"token":        true,
	"access_token": true,
	"api_key":      true,
	"email":        true,
}

// Attribute keys masked wherever they appear, in addition to SensitiveHeaders.
var (
	sensitiveFields   = []string{"password", "secret", "token", "email", "posted_by"}
	sensitivePrefixes = []string{"secret_", "api_key"}
)

// Value patterns masked inside any string attribute.
var (
	bearerPattern = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-._~+/]+=*`)
	// Ten characters per segment keeps version strings like 1.2.3 intact.
	jwtPattern          = regexp.MustCompile(`[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}`)
	apiKeyInlinePattern = regexp.MustCompile(`(?i)(api[_\-]?key|apikey)\s*[:=]\s*\S+`)
	emailPattern        = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
)

// newRedactAttr builds the masq ReplaceAttr hook installed by New.
func newRedactAttr() func([]string, slog.Attr) slog.Attr {
	patterns := []*regexp.Regexp{bearerPattern, jwtPattern, apiKeyInlinePattern, emailPattern}
	opts := make([]masq.Option, 0, len(SensitiveHeaders)+len(sensitiveFields)+len(sensitivePrefixes)+len(patterns))

	for name := range SensitiveHeaders {
		opts = append(opts, masq.WithFieldName(name))
	}
	for _, name := range sensitiveFields {
		opts = append(opts, masq.WithFieldName(name))
	}
	for _, prefix := range sensitivePrefixes {
		opts = append(opts, masq.WithFieldPrefix(prefix))
	}
	for _, re := range patterns {
		opts = append(opts, masq.WithRegex(re))
	}

	return masq.New(opts...)
}
