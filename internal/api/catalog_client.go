package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/nikolayk812/storefront-cart/internal/domain"
)

// ListProducts fetches the catalog used as the pricing lookup. The products
// endpoint is public, so no credential is attached.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var dtos []productDTO
	if err := c.doJSON(ctx, http.MethodGet, "/products", nil, &dtos, false); err != nil {
		return nil, fmt.Errorf("doJSON: %w", err)
	}

	products := make([]domain.Product, 0, len(dtos))
	for _, dto := range dtos {
		product, err := mapProductToDomain(dto)
		if err != nil {
			return nil, fmt.Errorf("mapProductToDomain: %w", err)
		}
		products = append(products, product)
	}

	return products, nil
}
