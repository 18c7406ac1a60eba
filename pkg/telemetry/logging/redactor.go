package logging

import (
	"log/slog"
	"regexp"
	"strings"
)

// Redactor masks credentials in log output.
type Redactor struct {
	patterns []*redactPattern
	secrets  []string
}

// redactPattern contains a compiled regex and replacement string.
type redactPattern struct {
	name        string
	regex       *regexp.Regexp
	replacement string
}

// Built-in pattern names.
const (
	PatternAPIKey      = "api_key"
	PatternBearerToken = "bearer_token"
)

// redactedValue replaces credentials that are masked completely.
const redactedValue = "***"

var defaultPatterns = []*redactPattern{
	{
		// Bearer tokens, including inside Authorization header dumps
		name:        PatternBearerToken,
		regex:       regexp.MustCompile(`Bearer\s+[a-zA-Z0-9\-._~+/]+=*`),
		replacement: "Bearer " + redactedValue,
	},
	{
		// OpenAI and OpenRouter style keys (sk-..., sk-or-v1-...)
		name:        PatternAPIKey,
		regex:       regexp.MustCompile(`sk-[a-zA-Z0-9_\-]{8,}`),
		replacement: "sk-" + redactedValue,
	},
}

// sensitiveKeys are attribute keys whose values are always masked.
// Matching is exact so counters such as prompt_tokens stay readable.
var sensitiveKeys = map[string]bool{
	"api_key":       true,
	"apikey":        true,
	"authorization": true,
	"password":      true,
	"secret":        true,
	"token":         true,
	"access_token":  true,
}

// NewRedactor creates a Redactor. Each non-empty secret is masked literally
// wherever it appears, in addition to the built-in patterns.
func NewRedactor(secrets ...string) *Redactor {
	r := &Redactor{patterns: defaultPatterns}
	for _, s := range secrets {
		if s != "" {
			r.secrets = append(r.secrets, s)
		}
	}
	return r
}

// RedactString masks credentials in a string value.
func (r *Redactor) RedactString(value string) string {
	if value == "" {
		return value
	}

	redacted := value
	for _, secret := range r.secrets {
		redacted = strings.ReplaceAll(redacted, secret, redactedValue)
	}
	for _, pattern := range r.patterns {
		redacted = pattern.regex.ReplaceAllString(redacted, pattern.replacement)
	}

	return redacted
}

// RedactAttr masks an attribute. Values under sensitive keys are replaced
// entirely; other string-like values have credentials masked in place.
func (r *Redactor) RedactAttr(a slog.Attr) slog.Attr {
	v := a.Value.Resolve()

	if v.Kind() == slog.KindGroup {
		group := v.Group()
		redacted := make([]slog.Attr, len(group))
		for i, ga := range group {
			redacted[i] = r.RedactAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(redacted...)}
	}

	if isSensitiveKey(a.Key) {
		if v.Kind() == slog.KindString && v.String() == "" {
			return slog.String(a.Key, "")
		}
		return slog.String(a.Key, redactedValue)
	}

	switch v.Kind() {
	case slog.KindString:
		return slog.String(a.Key, r.RedactString(v.String()))
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return slog.String(a.Key, r.RedactString(err.Error()))
		}
	}

	return slog.Attr{Key: a.Key, Value: v}
}

// isSensitiveKey checks if a key name indicates sensitive data.
func isSensitiveKey(key string) bool {
	return sensitiveKeys[strings.ToLower(key)]
}
