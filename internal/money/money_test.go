package money

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"10", 10},
		{"5.5", 5.5},
		{" 12.34 ", 12.34},
		{"12.345", 12.35},
		{"12.344", 12.34},
		{"0", 0},
		{"-5", -5},
		{"1e2", 100},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{"", "  ", "abc", "12,34", "1.2.3", "NaN", "Inf", "$5",
		"1e400", "-1e400", "1e308", "1e13", "1000000000001", "1e3000000", "1e-3000000",
		"0.0000000000000000000000001", "123456789012345678901234567890123"} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrInvalidAmount, "input %q", in)
	}
}

func TestParseHugeExponentIsCheap(t *testing.T) {
	start := time.Now()
	_, err := Parse("1e3000000")
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestParseMaxAmount(t *testing.T) {
	got, err := Parse("1e12")
	require.NoError(t, err)
	assert.Equal(t, 1e12, got)
}

func TestNonFiniteValuesDoNotPanic(t *testing.T) {
	inf := math.Inf(1)
	assert.NotPanics(t, func() {
		assert.True(t, math.IsInf(Round(inf), 1))
		assert.True(t, math.IsNaN(Round(math.NaN())))
		assert.True(t, math.IsInf(Sum(1, inf), 1))
		assert.Equal(t, "+Inf", Format(inf))
		assert.Equal(t, "NaN", Format(math.NaN()))
	})
}

func TestRoundAndSum(t *testing.T) {
	assert.Equal(t, 0.3, Sum(0.1, 0.2))
	assert.Equal(t, 15.5, Sum(10, 5.5))
	assert.Equal(t, 0.0, Sum())
	assert.Equal(t, 2.68, Round(2.675000001))
	assert.Equal(t, 1.01, Round(1.005))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "10.00", Format(10))
	assert.Equal(t, "5.50", Format(5.5))
	assert.Equal(t, "0.00", Format(0))
	assert.Equal(t, "1234.57", Format(1234.567))
}
