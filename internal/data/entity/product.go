package entity

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	Base
	Title       string          `db:"title"`
	Description *string         `db:"description"`
	Price       decimal.Decimal `db:"price"`
	Stock       int             `db:"stock"`
	Category    string          `db:"category"`
	Image       *string         `db:"image"`
	RatingRate  *float64        `db:"rating_rate"`
	RatingCount int             `db:"rating_count"`
	IsActive    bool            `db:"is_active"`
}
