package writer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendInt(t *testing.T) {
	testCases := []struct {
		value int
		want  string
	}{
		{0, "0"},
		{7, "7"},
		{10, "10"},
		{-1, "-1"},
		{-42, "-42"},
		{123456789, "123456789"},
		{-2147483648, "-2147483648"},
	}

	for _, tc := range testCases {
		got := appendInt(nil, tc.value)
		assert.Equal(t, tc.want, string(got), "value %d", tc.value)
	}
}

func TestAppendFixed(t *testing.T) {
	testCases := []struct {
		name  string
		value float64
		prec  int
		want  string
	}{
		{"half to even stays", 2.5, 0, "2"},
		{"half to even rounds up", 1.5, 0, "2"},
		{"half up at higher precision", 0.05, 1, "0.1"},
		{"plain half kept", 2.5, 6, "2.5"},
		{"trailing zeros stripped", 0.1, 6, "0.1"},
		{"no fractional part", 3.0, 6, "3"},
		{"exact fraction", 0.375, 3, "0.375"},
		{"negative", -1.25, 6, "-1.25"},
		{"rollover carries into whole", 0.99, 1, "1"},
		{"halfway rollover carries into whole", 0.99995, 4, "1"},
		{"halfway rollover keeps sign", -0.99995, 4, "-1"},
		{"rollover at higher precision", 0.99999995, 6, "1"},
		{"round down", 1.4, 0, "1"},
		{"round up", 1.6, 0, "2"},
		{"precision clamped high", 0.5, 12, "0.5"},
		{"precision clamped low", 1.25, -1, "1"},
		{"zero", 0, 6, "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := appendFixed(nil, tc.value, tc.prec)
			assert.Equal(t, tc.want, string(got))
		})
	}
}

func TestAppendFixedFallbacks(t *testing.T) {
	// Non-finite values all render as the nan literal.
	assert.Equal(t, "nan", string(appendFixed(nil, math.NaN(), 6)))
	assert.Equal(t, "nan", string(appendFixed(nil, math.Inf(1), 6)))
	assert.Equal(t, "nan", string(appendFixed(nil, math.Inf(-1), 6)))

	// Whole parts beyond 32 bits use the exponential rendering.
	assert.Equal(t, "1.000000e+10", string(appendFixed(nil, 1e10, 6)))
	assert.Equal(t, "-1.000000e+10", string(appendFixed(nil, -1e10, 6)))
}
