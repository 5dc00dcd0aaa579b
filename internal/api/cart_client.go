package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-cart/internal/domain"
)

func (c *Client) GetCart(ctx context.Context) (domain.CartSnapshot, error) {
	var dtos []cartItemDTO
	if err := c.doJSON(ctx, http.MethodGet, "/cart", nil, &dtos, true); err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("doJSON: %w", err)
	}

	items, err := mapCartItemsToDomain(dtos)
	if err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("mapCartItemsToDomain: %w", err)
	}

	snapshot := domain.CartSnapshot{Items: items}
	if err := snapshot.Validate(); err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("snapshot.Validate: %w", err)
	}

	return snapshot, nil
}

func (c *Client) AddItem(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID, quantity int) (domain.CartItem, error) {
	req := addItemRequest{
		ProductID: productID.String(),
		Quantity:  quantity,
	}
	if variantID != nil {
		s := variantID.String()
		req.VariantID = &s
	}

	var dto cartItemDTO
	if err := c.doJSON(ctx, http.MethodPost, "/cart", req, &dto, true); err != nil {
		return domain.CartItem{}, fmt.Errorf("doJSON: %w", err)
	}

	item, err := mapCartItemToDomain(dto)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("mapCartItemToDomain: %w", err)
	}

	return item, nil
}

func (c *Client) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) (domain.CartItem, error) {
	var dto cartItemDTO
	err := c.doJSON(ctx, http.MethodPut, "/cart/"+itemID.String(), updateItemRequest{Quantity: quantity}, &dto, true)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("doJSON: %w", err)
	}

	item, err := mapCartItemToDomain(dto)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("mapCartItemToDomain: %w", err)
	}

	return item, nil
}

func (c *Client) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	if err := c.doJSON(ctx, http.MethodDelete, "/cart/"+itemID.String(), nil, nil, true); err != nil {
		return fmt.Errorf("doJSON: %w", err)
	}

	return nil
}
