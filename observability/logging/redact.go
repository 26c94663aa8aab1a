package logging

import (
	"log/slog"
	"sort"
	"strings"
)

// RedactedValue is the canonical placeholder for sensitive fields in logs.
const RedactedValue = "[REDACTED]"

var redactionAllowlist = map[string]struct{}{
	"service":        {},
	"env":            {},
	"message":        {},
	"severity":       {},
	"timestamp":      {},
	"error":          {},
	"reason":         {},
	"component":      {},
	"family":         {},
	"command":        {},
	"public_key":     {},
	"wallet":         {},
	"prefix":         {},
	"batch_id":       {},
	"transaction_id": {},
}

// sensitiveKeys are masked by the Setup handler whatever the value.
var sensitiveKeys = map[string]struct{}{
	"private_key": {},
	"passphrase":  {},
	"secret":      {},
	"seed":        {},
}

// IsAllowlisted reports whether the provided key is exempt from automatic redaction.
func IsAllowlisted(key string) bool {
	_, ok := redactionAllowlist[normalize(key)]
	return ok
}

// IsSensitive reports whether values under key must never be logged.
func IsSensitive(key string) bool {
	_, ok := sensitiveKeys[normalize(key)]
	return ok
}

// RedactionAllowlist returns a sorted copy of the keys allowed through unmasked.
func RedactionAllowlist() []string {
	keys := make([]string, 0, len(redactionAllowlist))
	for key := range redactionAllowlist {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// MaskValue returns the canonical redacted placeholder for non-empty values. Empty values
// are returned unchanged to avoid introducing noise in logs.
func MaskValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return value
	}
	return RedactedValue
}

// MaskField returns a slog.Attr that redacts the supplied value unless the key is
// explicitly allowlisted. The original key casing is preserved for readability.
func MaskField(key, value string) slog.Attr {
	if strings.TrimSpace(value) == "" || IsAllowlisted(key) {
		return slog.String(key, value)
	}
	return slog.String(key, RedactedValue)
}

func normalize(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
