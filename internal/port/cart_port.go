package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-cart/internal/domain"
)

// CartAPI is the remote cart resource. Every call is session-scoped via the
// bearer credential and may fail with domain.ErrAuthRequired,
// domain.RemoteRejection or domain.TransportFailure.
type CartAPI interface {
	GetCart(ctx context.Context) (domain.CartSnapshot, error)
	AddItem(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID, quantity int) (domain.CartItem, error)
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) (domain.CartItem, error)
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
}
