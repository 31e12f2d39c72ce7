package greenops

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for number formatting.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators: 18248 -> "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat formats f with precision decimals and thousand separators:
// FormatFloat(1234.567, 2) -> "1,234.57". Values that round to zero never
// carry a minus sign.
func FormatFloat(f float64, precision int) string {
	if precision < 0 {
		precision = 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', precision, 64)
	negative := strings.HasPrefix(s, "-")
	whole, frac, hasFrac := strings.Cut(strings.TrimPrefix(s, "-"), ".")

	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		// Beyond int64; fall back to the ungrouped rendering.
		return s
	}
	if n == 0 && strings.Trim(frac, "0") == "" {
		negative = false
	}

	out := FormatNumber(n)
	if hasFrac {
		out += "." + frac
	}
	if negative {
		out = "-" + out
	}
	return out
}

// FormatTonnes renders an emissions value as "1,234.57 tCO2e".
func FormatTonnes(t float64, precision int) string {
	return FormatFloat(t, precision) + " tCO2e"
}

// FormatLarge abbreviates values of a million or more ("~1.5 billion") and
// renders smaller values as comma-separated integers.
func FormatLarge(n float64) string {
	if n >= BillionThreshold {
		return fmt.Sprintf("~%.1f billion", n/BillionThreshold)
	}
	if n >= LargeNumberThreshold {
		return fmt.Sprintf("~%.1f million", n/LargeNumberThreshold)
	}
	return FormatNumber(int64(math.Round(n)))
}
