package response

import (
	"time"

	"campus-shop/internal/data/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartItemResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	ProductTitle string          `json:"product_title"`
	ProductImage *string         `json:"product_image,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int             `json:"quantity"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

type CartResponse struct {
	UserID     string             `json:"user_id"`
	Items      []CartItemResponse `json:"items"`
	TotalItems int                `json:"total_items"`
	Subtotal   decimal.Decimal    `json:"subtotal"`
	Tax        decimal.Decimal    `json:"tax"`
	Shipping   decimal.Decimal    `json:"shipping"`
	Total      decimal.Decimal    `json:"total"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

type CartClearResponse struct {
	ItemsRemoved int64 `json:"items_removed"`
}

func CartItemToResponse(item *entity.CartItem) CartItemResponse {
	return CartItemResponse{
		ID:           item.ID.String(),
		ProductID:    item.ProductID.String(),
		ProductTitle: item.ProductTitle,
		ProductImage: item.ProductImage,
		UnitPrice:    item.UnitPrice,
		Quantity:     item.Quantity,
		Subtotal:     item.Subtotal,
	}
}

// EmptyCartResponse is the view served before a user's first add-to-cart.
// Nothing is persisted for it.
func EmptyCartResponse(userID uuid.UUID) *CartResponse {
	now := time.Now()
	return &CartResponse{
		UserID:    userID.String(),
		Items:     []CartItemResponse{},
		Subtotal:  decimal.Zero,
		Tax:       decimal.Zero,
		Shipping:  decimal.Zero,
		Total:     decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CartToResponse assembles the cart view. Totals are computed here in
// decimal arithmetic from the persisted item subtotals.
func CartToResponse(cart *entity.Cart, items []*entity.CartItem) *CartResponse {
	itemResponses := make([]CartItemResponse, len(items))
	subtotal := decimal.Zero
	totalItems := 0

	for i, item := range items {
		itemResponses[i] = CartItemToResponse(item)
		subtotal = subtotal.Add(item.Subtotal)
		totalItems += item.Quantity
	}

	return &CartResponse{
		UserID:     cart.UserID.String(),
		Items:      itemResponses,
		TotalItems: totalItems,
		Subtotal:   subtotal,
		Tax:        cart.Tax,
		Shipping:   cart.Shipping,
		Total:      subtotal.Add(cart.Tax).Add(cart.Shipping),
		CreatedAt:  cart.CreatedAt,
		UpdatedAt:  cart.UpdatedAt,
	}
}
