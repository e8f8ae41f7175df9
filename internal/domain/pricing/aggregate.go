package pricing

import (
	"math"
	"strconv"
)

// Aggregate reduces a sequence of normalized listings to the response shape.
// Listings without a usable price are excluded from both the product set and
// the average; the remaining listings keep their input order.
func Aggregate(listings []Listing) SearchResult {
	products := make([]Listing, 0, len(listings))
	var total float64
	for _, l := range listings {
		if !validPrice(l.Price) {
			continue
		}
		products = append(products, l)
		total += l.Price
	}

	var average float64
	if len(products) > 0 {
		average = total / float64(len(products))
	}

	return SearchResult{
		Products:     products,
		AveragePrice: FormatPrice(average),
	}
}

// FormatPrice renders a price as a fixed two-decimal string, rounding half
// away from zero.
func FormatPrice(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', 2, 64)
}

func validPrice(p float64) bool {
	return !math.IsNaN(p) && !math.IsInf(p, 0) && p >= 0
}
