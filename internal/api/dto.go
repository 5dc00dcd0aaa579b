package api

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Wire shapes of the remote storefront API. Price amounts travel as decimal
// strings, never as JSON numbers.

type cartItemDTO struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	VariantID *string   `json:"variantId,omitempty"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"addedAt"`
}

type addItemRequest struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	VariantID *string `json:"variantId,omitempty"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

type productDTO struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Currency  string       `json:"currency"`
	Price     string       `json:"price"`
	SalePrice *string      `json:"salePrice,omitempty"`
	Images    []string     `json:"images,omitempty"`
	Variants  []variantDTO `json:"variants,omitempty"`
	Active    bool         `json:"active"`
}

type variantDTO struct {
	ID        string  `json:"id"`
	Size      string  `json:"size,omitempty"`
	Unit      string  `json:"unit,omitempty"`
	Flavor    string  `json:"flavor,omitempty"`
	Price     string  `json:"price"`
	SalePrice *string `json:"salePrice,omitempty"`
}

func mapCartItemToDomain(dto cartItemDTO) (domain.CartItem, error) {
	id, err := uuid.Parse(dto.ID)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("item id[%s] is not valid: %w", dto.ID, err)
	}

	productID, err := uuid.Parse(dto.ProductID)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("product id[%s] is not valid: %w", dto.ProductID, err)
	}

	var variantID *uuid.UUID
	if dto.VariantID != nil {
		parsed, err := uuid.Parse(*dto.VariantID)
		if err != nil {
			return domain.CartItem{}, fmt.Errorf("variant id[%s] is not valid: %w", *dto.VariantID, err)
		}
		variantID = &parsed
	}

	return domain.CartItem{
		ID:        id,
		ProductID: productID,
		VariantID: variantID,
		Quantity:  dto.Quantity,
		AddedAt:   dto.AddedAt,
	}, nil
}

func mapCartItemsToDomain(dtos []cartItemDTO) ([]domain.CartItem, error) {
	var items []domain.CartItem

	for _, dto := range dtos {
		item, err := mapCartItemToDomain(dto)
		if err != nil {
			return nil, fmt.Errorf("mapCartItemToDomain: %w", err)
		}

		items = append(items, item)
	}

	return items, nil
}

func mapProductToDomain(dto productDTO) (domain.Product, error) {
	id, err := uuid.Parse(dto.ID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product id[%s] is not valid: %w", dto.ID, err)
	}

	cur, err := currency.ParseISO(dto.Currency)
	if err != nil {
		return domain.Product{}, fmt.Errorf("currency[%s] is not valid: %w", dto.Currency, err)
	}

	price, err := parseMoney(dto.Price, cur)
	if err != nil {
		return domain.Product{}, fmt.Errorf("parseMoney: %w", err)
	}

	salePrice, err := parseOptionalMoney(dto.SalePrice, cur)
	if err != nil {
		return domain.Product{}, fmt.Errorf("parseOptionalMoney: %w", err)
	}

	variants := make([]domain.Variant, 0, len(dto.Variants))
	for _, v := range dto.Variants {
		variant, err := mapVariantToDomain(v, id, cur)
		if err != nil {
			return domain.Product{}, fmt.Errorf("mapVariantToDomain: %w", err)
		}
		variants = append(variants, variant)
	}

	return domain.Product{
		ID:        id,
		Name:      dto.Name,
		Price:     price,
		SalePrice: salePrice,
		Images:    dto.Images,
		Variants:  variants,
		Active:    dto.Active,
	}, nil
}

func mapVariantToDomain(dto variantDTO, productID uuid.UUID, cur currency.Unit) (domain.Variant, error) {
	id, err := uuid.Parse(dto.ID)
	if err != nil {
		return domain.Variant{}, fmt.Errorf("variant id[%s] is not valid: %w", dto.ID, err)
	}

	price, err := parseMoney(dto.Price, cur)
	if err != nil {
		return domain.Variant{}, fmt.Errorf("parseMoney: %w", err)
	}

	salePrice, err := parseOptionalMoney(dto.SalePrice, cur)
	if err != nil {
		return domain.Variant{}, fmt.Errorf("parseOptionalMoney: %w", err)
	}

	return domain.Variant{
		ID:        id,
		ProductID: productID,
		Size:      dto.Size,
		Unit:      dto.Unit,
		Flavor:    dto.Flavor,
		Price:     price,
		SalePrice: salePrice,
	}, nil
}

func parseMoney(amount string, cur currency.Unit) (domain.Money, error) {
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return domain.Money{}, fmt.Errorf("amount[%s] is not valid: %w", amount, err)
	}

	return domain.Money{Amount: parsed, Currency: cur}, nil
}

func parseOptionalMoney(amount *string, cur currency.Unit) (*domain.Money, error) {
	if amount == nil {
		return nil, nil
	}

	money, err := parseMoney(*amount, cur)
	if err != nil {
		return nil, err
	}

	return &money, nil
}
