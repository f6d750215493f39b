package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSessionID(t *testing.T) {
	id := GenerateSessionID("Stellar Hauler")
	assert.Regexp(t, regexp.MustCompile(`^stellar-hauler-[0-9a-f]{8}$`), id)

	assert.NotEqual(t, id, GenerateSessionID("Stellar Hauler"))
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Stellar Hauler":   "stellar-hauler",
		"  Mk II -- Cargo": "mk-ii-cargo",
		"!!!":              "",
	}
	for in, want := range tests {
		assert.Equal(t, want, slugify(in), in)
	}

	assert.Regexp(t, `^session-[0-9a-f]{8}$`, GenerateSessionID("!!!"))
}
