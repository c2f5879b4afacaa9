package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is a user's open shopping cart. The storage layer enforces at
// most one active cart per user via a partial unique index.
type Cart struct {
	Base
	UserID   uuid.UUID       `db:"user_id"`
	Tax      decimal.Decimal `db:"tax"`
	Shipping decimal.Decimal `db:"shipping"`
	IsActive bool            `db:"is_active"`
}
