package pricing

import "bytes"

const (
	saleFormatAttribute = "Formato de venta"
	packValueName       = "Pack"
)

// deniedTags mark bundle or promo listings that would skew the average.
var deniedTags = map[string]struct{}{
	"deal_of_the_day": {},
	"pack_of_2":       {},
	"pack_of_3":       {},
}

// Accepts reports whether a raw listing qualifies as a clean, comparable
// offer: single-unit, non-promotional and in stock. Rejected listings are
// dropped from the result set entirely.
func Accepts(l RawListing) bool {
	if l.Tags == nil {
		return false
	}
	if l.AvailableQuantity <= 0 {
		return false
	}
	if isPack(l) || hasPromotion(l) {
		return false
	}
	for _, tag := range l.Tags {
		if _, denied := deniedTags[tag]; denied {
			return false
		}
	}
	return true
}

// Normalize maps an accepted raw listing to the comparable shape. The sale
// price wins over the list price when present.
func Normalize(l RawListing) Listing {
	price := l.Price
	if l.SalePrice != nil {
		price = l.SalePrice.Amount
	}
	return Listing{
		ID:        l.ID,
		Title:     l.Title,
		Price:     price,
		Currency:  l.CurrencyID,
		Thumbnail: l.Thumbnail,
		Permalink: l.Permalink,
	}
}

// isPack detects multi-unit listings via the sale-format attribute.
func isPack(l RawListing) bool {
	for _, attr := range l.Attributes {
		if attr.Name == saleFormatAttribute && attr.ValueName == packValueName {
			return true
		}
	}
	return false
}

// hasPromotion reports any active promotion signal: a populated promotions
// or promotion_decorations field, or a sale price below the list price.
func hasPromotion(l RawListing) bool {
	if jsonHasContent(l.Promotions) || jsonHasContent(l.PromotionDecorations) {
		return true
	}
	return l.SalePrice != nil && l.SalePrice.Amount != l.Price
}

// jsonHasContent treats null and empty containers as absent.
func jsonHasContent(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	switch {
	case len(trimmed) == 0:
		return false
	case bytes.Equal(trimmed, []byte("null")):
		return false
	case bytes.Equal(trimmed, []byte("[]")), bytes.Equal(trimmed, []byte("{}")):
		return false
	}
	return true
}
