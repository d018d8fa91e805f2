package enums

import "fmt"

// BadgeCategory names an admin dashboard badge bucket.
type BadgeCategory string

const (
	BadgeCategoryOrders         BadgeCategory = "orders"
	BadgeCategoryAccounts       BadgeCategory = "accounts"
	BadgeCategoryQuotes         BadgeCategory = "quotes"
	BadgeCategoryImports        BadgeCategory = "imports"
	BadgeCategoryMissing        BadgeCategory = "missing"
	BadgeCategoryOrderShortages BadgeCategory = "orderShortages"
)

var validBadgeCategories = []BadgeCategory{
	BadgeCategoryOrders,
	BadgeCategoryAccounts,
	BadgeCategoryQuotes,
	BadgeCategoryImports,
	BadgeCategoryMissing,
	BadgeCategoryOrderShortages,
}

// String implements fmt.Stringer.
func (c BadgeCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known BadgeCategory.
func (c BadgeCategory) IsValid() bool {
	for _, candidate := range validBadgeCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// BadgeCategories returns every badge bucket in display order.
func BadgeCategories() []BadgeCategory {
	categories := make([]BadgeCategory, len(validBadgeCategories))
	copy(categories, validBadgeCategories)
	return categories
}

// RequestType returns the request type a category counts, if it maps to one.
// The orderShortages bucket is derived from rejection events instead.
func (c BadgeCategory) RequestType() (RequestType, bool) {
	switch c {
	case BadgeCategoryOrders:
		return RequestTypeOrder, true
	case BadgeCategoryAccounts:
		return RequestTypeInstallment, true
	case BadgeCategoryQuotes:
		return RequestTypeQuote, true
	case BadgeCategoryImports:
		return RequestTypeImport, true
	case BadgeCategoryMissing:
		return RequestTypeMissing, true
	default:
		return "", false
	}
}

// ParseBadgeCategory converts raw input into a BadgeCategory.
func ParseBadgeCategory(value string) (BadgeCategory, error) {
	for _, candidate := range validBadgeCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid badge category %q", value)
}
