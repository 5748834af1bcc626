package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{7.548, 7.55},
		{7.544, 7.54},
		{2.5, 2.5},
		{-1.006, -1.01},
		{0, 0},
		{99.999, 100},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, Round2(tc.in), 1e-9, "Round2(%v)", tc.in)
	}
}

func TestInt64Conversions(t *testing.T) {
	assert.Equal(t, "42", Int64ToStr(42))

	n, err := StrToInt64("42")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), n)

	_, err = StrToInt64("not-a-number")
	assert.Error(t, err)
}
