package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"jane@example.com",
		"jane.doe+tag@sub.example.co",
		"x_y%z@domain.io",
		"user@example.coffee",
	}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), "expected %q to be valid", email)
	}

	invalid := []string{
		"",
		"plainaddress",
		"@missing-local.com",
		"missing-domain@",
		"spaces in@example.com",
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), "expected %q to be invalid", email)
	}
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty(" x "))
}

func TestIsValidPasswordLength(t *testing.T) {
	assert.False(t, IsValidPasswordLength("abc", 6))
	assert.True(t, IsValidPasswordLength("abcdef", 6))
	assert.True(t, IsValidPasswordLength("longer-password", 6))
}
