package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"

	"github.com/nikolayk812/storefront-cart/internal/domain"
)

func TestItemCount(t *testing.T) {
	tests := []struct {
		name       string
		quantities []int
		want       int
	}{
		{name: "empty cart", quantities: nil, want: 0},
		{name: "single line", quantities: []int{1}, want: 1},
		{name: "sums quantities not lines", quantities: []int{2, 3}, want: 5},
		{name: "many lines", quantities: []int{1, 1, 4, 10}, want: 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var items []domain.CartItem
			for _, q := range tt.quantities {
				items = append(items, domain.CartItem{
					ID:        uuid.New(),
					ProductID: uuid.New(),
					Quantity:  q,
				})
			}

			got := domain.ItemCount(domain.CartSnapshot{Items: items})
			assert.Equal(t, tt.want, got)
		})
	}
}

// End-to-end example: product A at 999.00 on sale for 799.00 with quantity
// 2, product B's variant at 250.00 with quantity 1. Total 1848.00, count 3.
func TestCartTotal(t *testing.T) {
	productA := productPriced(t, "999.00", "799.00")

	productB := productPriced(t, "10.00", "")
	variantB := variantPriced(t, "250.00", "")
	variantB.ProductID = productB.ID
	productB.Variants = []domain.Variant{variantB}

	idx := domain.NewPriceIndex([]domain.Product{productA, productB})

	snapshot := domain.CartSnapshot{Items: []domain.CartItem{
		{ID: uuid.New(), ProductID: productA.ID, Quantity: 2},
		{ID: uuid.New(), ProductID: productB.ID, VariantID: &variantB.ID, Quantity: 1},
	}}

	total, stale, err := domain.CartTotal(snapshot, idx)
	require.NoError(t, err)
	assert.Empty(t, stale)

	assertMoneyEqual(t, usd(t, "1848.00"), total)
	assert.Equal(t, 3, domain.ItemCount(snapshot))
}

func TestCartTotal_StaleLines(t *testing.T) {
	known := productPriced(t, "100.00", "")
	inactive := productPriced(t, "50.00", "")
	inactive.Active = false

	idx := domain.NewPriceIndex([]domain.Product{known, inactive})

	deletedID := uuid.New()
	missingVariantID := uuid.New()

	snapshot := domain.CartSnapshot{Items: []domain.CartItem{
		{ID: uuid.New(), ProductID: known.ID, Quantity: 2},
		{ID: uuid.New(), ProductID: deletedID, Quantity: 1},
		{ID: uuid.New(), ProductID: inactive.ID, Quantity: 1},
		{ID: uuid.New(), ProductID: known.ID, VariantID: &missingVariantID, Quantity: 1},
	}}

	total, stale, err := domain.CartTotal(snapshot, idx)
	require.NoError(t, err)

	// only the resolvable line contributes, stale lines are reported
	assertMoneyEqual(t, usd(t, "200.00"), total)
	require.Len(t, stale, 3)

	for _, line := range stale {
		var pricingErr domain.PricingError
		require.ErrorAs(t, line.Reason, &pricingErr)
	}

	assert.Equal(t, deletedID, stale[0].Item.ProductID)
	assert.Equal(t, inactive.ID, stale[1].Item.ProductID)
	assert.Equal(t, &missingVariantID, stale[2].Item.VariantID)
}

func TestCartTotal_EmptyCart(t *testing.T) {
	idx := domain.NewPriceIndex(nil)

	total, stale, err := domain.CartTotal(domain.CartSnapshot{}, idx)
	require.NoError(t, err)
	assert.Empty(t, stale)
	assert.True(t, total.IsZero())
}

func TestShippingEligible(t *testing.T) {
	tests := []struct {
		name      string
		total     domain.Money
		threshold domain.Money
		want      bool
	}{
		{name: "above threshold", total: usd(t, "60.00"), threshold: usd(t, "50.00"), want: true},
		{name: "exactly at threshold", total: usd(t, "50.00"), threshold: usd(t, "50.00"), want: true},
		{name: "below threshold", total: usd(t, "49.99"), threshold: usd(t, "50.00"), want: false},
		{name: "currency mismatch never qualifies", total: eur(t, "60.00"), threshold: usd(t, "50.00"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ShippingEligible(tt.total, tt.threshold))
		})
	}
}

func TestSnapshotValidate(t *testing.T) {
	duplicate := uuid.New()

	tests := []struct {
		name      string
		items     []domain.CartItem
		wantError string
	}{
		{
			name: "valid snapshot",
			items: []domain.CartItem{
				{ID: uuid.New(), ProductID: uuid.New(), Quantity: 1},
				{ID: uuid.New(), ProductID: uuid.New(), Quantity: 3},
			},
		},
		{
			name:      "zero quantity",
			items:     []domain.CartItem{{ID: uuid.New(), ProductID: uuid.New(), Quantity: 0}},
			wantError: "invalid quantity",
		},
		{
			name: "duplicate item identity",
			items: []domain.CartItem{
				{ID: duplicate, ProductID: uuid.New(), Quantity: 1},
				{ID: duplicate, ProductID: uuid.New(), Quantity: 2},
			},
			wantError: "duplicate cart item",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.CartSnapshot{Items: tt.items}.Validate()
			if tt.wantError != "" {
				require.ErrorContains(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
		})
	}
}

func eur(t *testing.T, amount string) domain.Money {
	t.Helper()

	m := usd(t, amount)
	unit, err := currency.ParseISO("EUR")
	require.NoError(t, err)
	m.Currency = unit
	return m
}
