package response

import (
	"strings"
	"time"

	"campus-shop/internal/data/entity"

	"github.com/shopspring/decimal"
)

// placeholderImage stands in when a product carries no usable image URL
const placeholderImage = "https://via.placeholder.com/300x300?text=Product"

type RatingResponse struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

type ProductResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Rating      RatingResponse  `json:"rating"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type ProductListResponse struct {
	Products   []ProductResponse `json:"products"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

func ProductToResponse(product *entity.Product) ProductResponse {
	description := ""
	if product.Description != nil {
		description = *product.Description
	}

	image := placeholderImage
	if product.Image != nil && strings.HasPrefix(*product.Image, "http") {
		image = *product.Image
	}

	rating := RatingResponse{Count: product.RatingCount}
	if product.RatingRate != nil {
		rating.Rate = *product.RatingRate
	}

	return ProductResponse{
		ID:          product.ID.String(),
		Title:       product.Title,
		Description: description,
		Price:       product.Price,
		Stock:       product.Stock,
		Category:    product.Category,
		Image:       image,
		Rating:      rating,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}
