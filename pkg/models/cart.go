package models

import "time"

// CartLineItem is persisted as part of the whole-cart JSON blob, so the field names match the
// keys the storefront has always written.
type CartLineItem struct {
	ProductID int       `json:"id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Image     string    `json:"image"`
	Category  Category  `json:"category"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"addedAt"`
}

func (i CartLineItem) Subtotal() int64 {
	return i.Price * int64(i.Quantity)
}

type CartSummary struct {
	Items     []CartLineItem `json:"items"`
	ItemCount int            `json:"item_count"`
	Total     int64          `json:"total"`
}

// Receipt describes a completed demo checkout.
type Receipt struct {
	ItemCount int            `json:"item_count"`
	Total     int64          `json:"total"`
	Items     []CartLineItem `json:"items"`
	PlacedAt  time.Time      `json:"placed_at"`
}

type AddToCartRequest struct {
	ProductID int `json:"product_id" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}
