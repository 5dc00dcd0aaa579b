package domain

import (
	"github.com/google/uuid"
)

// PriceIndex is a point-in-time lookup table over the fetched catalog,
// keyed by product and variant identity. The aggregator resolves every
// cart line against it on each read.
type PriceIndex struct {
	products map[uuid.UUID]Product
}

func NewPriceIndex(products []Product) PriceIndex {
	byID := make(map[uuid.UUID]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return PriceIndex{products: byID}
}

func (idx PriceIndex) Product(id uuid.UUID) (Product, bool) {
	p, ok := idx.products[id]
	return p, ok
}

// Line maps a cart item onto its price source. An item whose product is
// gone, inactive, or whose variant no longer exists cannot be priced and
// yields a PricingError: such lines are stale, not free.
func (idx PriceIndex) Line(item CartItem) (PriceSource, error) {
	product, ok := idx.products[item.ProductID]
	if !ok {
		return nil, PricingError{ProductID: item.ProductID, VariantID: item.VariantID, Reason: "product not found"}
	}
	if !product.Active {
		return nil, PricingError{ProductID: item.ProductID, VariantID: item.VariantID, Reason: "product is inactive"}
	}

	if item.VariantID == nil {
		return ProductLine{Product: product}, nil
	}

	variant, ok := product.Variant(*item.VariantID)
	if !ok {
		return nil, PricingError{ProductID: item.ProductID, VariantID: item.VariantID, Reason: "variant not found"}
	}

	return VariantLine{Product: product, Variant: variant}, nil
}
