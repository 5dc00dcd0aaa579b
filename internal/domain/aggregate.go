package domain

import (
	"fmt"
)

// StaleLine is a cart line whose referenced product or variant can no
// longer be priced. Stale lines are excluded from totals but reported, so
// presentation layers can warn the user instead of silently dropping them.
type StaleLine struct {
	Item   CartItem
	Reason error
}

// ItemCount sums quantities across all lines: one line of quantity 3
// counts as 3.
func ItemCount(snapshot CartSnapshot) int {
	var count int
	for _, item := range snapshot.Items {
		count += item.Quantity
	}
	return count
}

// CartTotal sums line totals over every resolvable line of the snapshot.
// Unresolvable lines are returned as stale rather than raising or being
// priced at zero.
func CartTotal(snapshot CartSnapshot, idx PriceIndex) (Money, []StaleLine, error) {
	var (
		total Money
		stale []StaleLine
	)

	for _, item := range snapshot.Items {
		src, err := idx.Line(item)
		if err != nil {
			stale = append(stale, StaleLine{Item: item, Reason: err})
			continue
		}

		lineTotal, err := ResolveLineTotal(src, item.Quantity)
		if err != nil {
			stale = append(stale, StaleLine{Item: item, Reason: err})
			continue
		}

		if total.IsZero() {
			total = lineTotal
			continue
		}

		total, err = total.Add(lineTotal)
		if err != nil {
			return Money{}, nil, fmt.Errorf("total.Add: %w", err)
		}
	}

	return total, stale, nil
}

// ShippingEligible reports whether the cart total reaches the free-shipping
// threshold. Totals in a different currency than the threshold never
// qualify.
func ShippingEligible(total, threshold Money) bool {
	if total.Currency != threshold.Currency {
		return false
	}
	return total.Amount.GreaterThanOrEqual(threshold.Amount)
}
