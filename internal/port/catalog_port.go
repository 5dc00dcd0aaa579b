package port

import (
	"context"

	"github.com/nikolayk812/storefront-cart/internal/domain"
)

type Catalog interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}
