package greenops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{n: 0, want: "0"},
		{n: 123, want: "123"},
		{n: 18248, want: "18,248"},
		{n: -1234, want: "-1,234"},
		{n: 1234567890, want: "1,234,567,890"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(tt.n))
		})
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		name      string
		f         float64
		precision int
		want      string
	}{
		{name: "round to integer", f: 18248.56, precision: 0, want: "18,249"},
		{name: "one decimal", f: 781.26, precision: 1, want: "781.3"},
		{name: "two decimals with grouping", f: 1234.5678, precision: 2, want: "1,234.57"},
		{name: "scenario A total", f: 1.902, precision: 2, want: "1.90"},
		{name: "zero", f: 0, precision: 2, want: "0.00"},
		{name: "negative", f: -1234.56, precision: 2, want: "-1,234.56"},
		{name: "tiny negative drops sign", f: -0.001, precision: 2, want: "0.00"},
		{name: "carry into thousands", f: 999.999, precision: 2, want: "1,000.00"},
		{name: "negative precision treated as zero", f: 12.7, precision: -1, want: "13"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFloat(tt.f, tt.precision))
		})
	}

	assert.Equal(t, "NaN", FormatFloat(math.NaN(), 2))
}

func TestFormatTonnes(t *testing.T) {
	assert.Equal(t, "22.50 tCO2e", FormatTonnes(22.5, 2))
	assert.Equal(t, "26,152.000 tCO2e", FormatTonnes(26152, 3))
}

func TestFormatLarge(t *testing.T) {
	tests := []struct {
		n    float64
		want string
	}{
		{n: 0, want: "0"},
		{n: 999999, want: "999,999"},
		{n: 1000000, want: "~1.0 million"},
		{n: 123400000, want: "~123.4 million"},
		{n: 1500000000, want: "~1.5 billion"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatLarge(tt.n))
		})
	}
}

func BenchmarkFormatFloat(b *testing.B) {
	for b.Loop() {
		FormatFloat(1234.5678, 2)
	}
}
