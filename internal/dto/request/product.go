package request

// ProductListRequest captures the catalog query string. All filters are
// optional and conjunctive.
type ProductListRequest struct {
	PaginatedRequest
	Category *string  `json:"category"`
	Search   *string  `json:"search"`
	MinPrice *float64 `json:"min_price" validate:"omitempty,gte=0"`
	MaxPrice *float64 `json:"max_price" validate:"omitempty,gte=0"`
}

type ProductRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description *string  `json:"description"`
	Price       string   `json:"price" validate:"required"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Category    string   `json:"category" validate:"required,max=100"`
	Image       *string  `json:"image"`
	RatingRate  *float64 `json:"rating_rate" validate:"omitempty,gte=0,lte=5"`
	RatingCount *int     `json:"rating_count" validate:"omitempty,gte=0"`
}

type ProductUpdateRequest struct {
	Title       *string  `json:"title" validate:"omitempty,max=200"`
	Description *string  `json:"description"`
	Price       *string  `json:"price"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	Category    *string  `json:"category" validate:"omitempty,max=100"`
	Image       *string  `json:"image"`
	RatingRate  *float64 `json:"rating_rate" validate:"omitempty,gte=0,lte=5"`
	RatingCount *int     `json:"rating_count" validate:"omitempty,gte=0"`
}
