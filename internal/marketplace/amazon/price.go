package amazon

import (
	"math"
	"strconv"
	"strings"
)

// ParsePrice extracts a decimal price from free-form, currency-symbol-laden
// text such as "$1,234.56" by stripping every character outside [0-9.] and
// parsing the remainder. The second return is false when no usable price is
// left, e.g. for "Free" or "No price".
func ParsePrice(raw string) (float64, bool) {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if cleaned == "" {
		return 0, false
	}

	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0, false
	}
	return price, true
}
