package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNullString(t *testing.T) {
	assert.Nil(t, NewNullString(""))

	ptr := NewNullString("/uploads/menu/latte.jpg")
	require.NotNil(t, ptr)
	assert.Equal(t, "/uploads/menu/latte.jpg", *ptr)
}
