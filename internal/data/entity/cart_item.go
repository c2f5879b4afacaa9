package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem links a cart to a product. UnitPrice is a snapshot taken when
// the product is first added; Subtotal is derived and recomputed on every
// write, never set independently.
type CartItem struct {
	Base
	CartID    uuid.UUID       `db:"cart_id"`
	ProductID uuid.UUID       `db:"product_id"`
	Quantity  int             `db:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price"`
	Subtotal  decimal.Decimal `db:"subtotal"`

	// Joined product columns, populated by list queries
	ProductTitle string  `db:"product_title"`
	ProductImage *string `db:"product_image"`
}

// ComputeSubtotal recalculates the derived subtotal from unit price and
// quantity in fixed-point arithmetic.
func (i *CartItem) ComputeSubtotal() {
	i.Subtotal = i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
