package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateSessionID creates a human-readable game session ID.
// Format: {shipNameSlug}-{8charHexUUID}
//
// Example:
//   - Input: shipName="Stellar Hauler"
//   - Output: "stellar-hauler-a3f8e2b1"
func GenerateSessionID(shipName string) string {
	slug := slugify(shipName)
	if slug == "" {
		slug = "session"
	}
	return slug + "-" + generateShortUUID()
}

// slugify lowercases and joins words with hyphens, dropping anything else
func slugify(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		default:
			pendingDash = true
		}
	}
	return b.String()
}

// generateShortUUID creates an 8-character hex string from a UUID.
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
