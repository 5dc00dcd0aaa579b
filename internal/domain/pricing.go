package domain

import (
	"fmt"
)

// ResolveUnitPrice returns the authoritative unit price for a line.
//
// A variant line is priced from the variant alone: its sale price when one
// is active and strictly below its regular price, otherwise its regular
// price. A product line follows the same rule over the product's prices.
func ResolveUnitPrice(src PriceSource) (Money, error) {
	switch line := src.(type) {
	case ProductLine:
		price, err := effectivePrice(line.Product.Price, line.Product.SalePrice)
		if err != nil {
			return Money{}, PricingError{ProductID: line.Product.ID, Reason: err.Error()}
		}
		return price, nil

	case VariantLine:
		price, err := effectivePrice(line.Variant.Price, line.Variant.SalePrice)
		if err != nil {
			return Money{}, PricingError{
				ProductID: line.Product.ID,
				VariantID: &line.Variant.ID,
				Reason:    err.Error(),
			}
		}
		return price, nil

	default:
		return Money{}, fmt.Errorf("unknown price source %T", src)
	}
}

// ResolveLineTotal is ResolveUnitPrice multiplied by quantity, computed in
// decimal arithmetic so repeated accumulation never drifts.
func ResolveLineTotal(src PriceSource, quantity int) (Money, error) {
	if quantity < 1 {
		return Money{}, ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}

	unit, err := ResolveUnitPrice(src)
	if err != nil {
		return Money{}, fmt.Errorf("ResolveUnitPrice: %w", err)
	}

	return unit.MulInt(quantity), nil
}

func effectivePrice(price Money, salePrice *Money) (Money, error) {
	if !price.Valid() {
		return Money{}, fmt.Errorf("price %s is not valid", price)
	}

	if salePrice != nil && salePrice.Valid() && salePrice.LessThan(price) {
		return *salePrice, nil
	}

	return price, nil
}
