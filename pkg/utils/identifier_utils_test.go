package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var businessNumberPattern = regexp.MustCompile(`^ORD-[0-9A-Z]+-[0-9A-Z]{3}$`)

func TestGenerateBusinessNumberFormat(t *testing.T) {
	number := GenerateBusinessNumber("ORD")
	assert.Regexp(t, businessNumberPattern, number)
}

func TestGenerateBusinessNumberUsesPrefix(t *testing.T) {
	for _, prefix := range []string{"ORD", "PAY", "INV", "RES"} {
		number := GenerateBusinessNumber(prefix)
		assert.Regexp(t, "^"+prefix+"-", number)
	}
}

func TestGenerateBusinessNumberVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		seen[GenerateBusinessNumber("ORD")] = true
	}
	// Same-millisecond calls differ only in the random suffix; collisions
	// across 100 draws should still be rare.
	assert.Greater(t, len(seen), 50)
}
