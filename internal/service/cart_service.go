package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"github.com/nikolayk812/storefront-cart/internal/store"
)

// CartService mediates every cart mutation through the remote API. A
// successful mutation triggers a full reload of the store, so local state
// only ever changes to match server truth; a failed mutation leaves the
// store untouched.
type CartService struct {
	api     port.CartAPI
	catalog port.Catalog
	session port.Session
	store   *store.Store
}

func New(api port.CartAPI, catalog port.Catalog, session port.Session, st *store.Store) (*CartService, error) {
	if api == nil {
		return nil, fmt.Errorf("api is nil")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog is nil")
	}
	if session == nil {
		return nil, fmt.Errorf("session is nil")
	}
	if st == nil {
		return nil, fmt.Errorf("store is nil")
	}

	return &CartService{api: api, catalog: catalog, session: session, store: st}, nil
}

// AddToCart creates a new line for the product, or variant when one is
// given. Repeated adds for the same product and variant are not merged
// client-side; whether the server merges is its own contract.
func (s *CartService) AddToCart(ctx context.Context, productID uuid.UUID, quantity int, variantID *uuid.UUID) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	if quantity < 1 {
		return domain.ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}

	if _, err := s.api.AddItem(ctx, productID, variantID, quantity); err != nil {
		return fmt.Errorf("api.AddItem: %w", err)
	}

	return s.reload(ctx)
}

// UpdateQuantity sets a line's quantity. Zero is never a valid update:
// removal is the only path to deleting a line.
func (s *CartService) UpdateQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	if quantity < 1 {
		return domain.ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}

	if _, err := s.api.UpdateItemQuantity(ctx, itemID, quantity); err != nil {
		return fmt.Errorf("api.UpdateItemQuantity: %w", err)
	}

	return s.reload(ctx)
}

func (s *CartService) RemoveFromCart(ctx context.Context, itemID uuid.UUID) error {
	if err := s.requireSession(); err != nil {
		return err
	}

	if err := s.api.DeleteItem(ctx, itemID); err != nil {
		return fmt.Errorf("api.DeleteItem: %w", err)
	}

	return s.reload(ctx)
}

// ClearCart forgets the local snapshot without a server round trip, e.g. on
// logout. Server-side rows are untouched and reappear on the next load.
func (s *CartService) ClearCart() {
	s.store.Clear()
}

// Totals is the cart-wide view derived on every read from the store
// snapshot and the current catalog. Stale lines are excluded from the total
// but reported so the UI can warn about them.
type Totals struct {
	ItemCount    int
	Total        domain.Money
	Stale        []domain.StaleLine
	FreeShipping bool
}

func (s *CartService) Totals(ctx context.Context, freeThreshold domain.Money) (Totals, error) {
	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return Totals{}, fmt.Errorf("catalog.ListProducts: %w", err)
	}

	snapshot := s.store.Snapshot()
	idx := domain.NewPriceIndex(products)

	total, stale, err := domain.CartTotal(snapshot, idx)
	if err != nil {
		return Totals{}, fmt.Errorf("domain.CartTotal: %w", err)
	}

	return Totals{
		ItemCount:    domain.ItemCount(snapshot),
		Total:        total,
		Stale:        stale,
		FreeShipping: domain.ShippingEligible(total, freeThreshold),
	}, nil
}

func (s *CartService) requireSession() error {
	if _, ok := s.session.Token(); !ok {
		return domain.ErrAuthRequired
	}
	return nil
}

func (s *CartService) reload(ctx context.Context) error {
	if err := s.store.Reload(ctx, true); err != nil {
		return fmt.Errorf("store.Reload: %w", err)
	}
	return nil
}
