package domain

import (
	"github.com/google/uuid"
)

// Product is catalog data the cart only ever references by identity.
// SalePrice is set only while a promotion is active; it is meaningful only
// when strictly less than Price.
type Product struct {
	ID        uuid.UUID
	Name      string
	Price     Money
	SalePrice *Money
	Images    []string
	Variants  []Variant
	Active    bool
}

// Variant is a purchasable sub-configuration of a product with its own
// pricing. When a line references a variant, the variant's pricing replaces
// the parent product's pricing entirely.
type Variant struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Size      string
	Unit      string
	Flavor    string
	Price     Money
	SalePrice *Money
}

func (p Product) Variant(id uuid.UUID) (Variant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

// PriceSource is the sealed union the pricing resolver switches over:
// a line is priced either from a product or from one of its variants,
// never from a blend of the two.
type PriceSource interface {
	priceSource()
}

type ProductLine struct {
	Product Product
}

type VariantLine struct {
	Product Product
	Variant Variant
}

func (ProductLine) priceSource() {}
func (VariantLine) priceSource() {}
