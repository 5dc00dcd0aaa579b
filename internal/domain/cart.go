package domain

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is a single cart line as stored by the remote cart resource.
// It carries no price: pricing is resolved at read time from the current
// catalog data, so catalog price changes apply to existing lines immediately.
type CartItem struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	VariantID *uuid.UUID
	Quantity  int

	AddedAt time.Time
}

// CartSnapshot is the full set of cart lines for one authenticated session,
// as last fetched from the remote store. It is always replaced wholesale,
// never patched.
type CartSnapshot struct {
	OwnerID string
	Items   []CartItem
}

func (s CartSnapshot) Validate() error {
	seen := make(map[uuid.UUID]struct{}, len(s.Items))

	for _, item := range s.Items {
		if item.Quantity < 1 {
			return ValidationError{Field: "quantity", Reason: "must be at least 1"}
		}
		if _, ok := seen[item.ID]; ok {
			return ValidationError{Field: "id", Reason: "duplicate cart item " + item.ID.String()}
		}
		seen[item.ID] = struct{}{}
	}

	return nil
}
