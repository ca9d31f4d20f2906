package logging

import "strings"

// RedactedValue is the canonical placeholder used for sensitive fields in logs.
const RedactedValue = "[REDACTED]"

// Profile fields carry personal data and must never land in log output.
var sensitiveKeys = map[string]struct{}{
	"name":    {},
	"contact": {},
	"email":   {},
	"phone":   {},
}

// IsSensitive reports whether the provided key must be masked before logging.
func IsSensitive(key string) bool {
	normalized := strings.ToLower(strings.TrimSpace(key))
	_, ok := sensitiveKeys[normalized]
	return ok
}

// RedactAttrs returns a copy of attrs with every sensitive value replaced by
// the redaction placeholder. The input map is left untouched.
func RedactAttrs(attrs map[string]string) map[string]string {
	if attrs == nil {
		return nil
	}
	out := make(map[string]string, len(attrs))
	for key, value := range attrs {
		if IsSensitive(key) {
			out[key] = RedactedValue
			continue
		}
		out[key] = value
	}
	return out
}
