package request

// Quantity is range-checked by the cart service, not the validator, so
// a zero quantity surfaces as an invalid-quantity error rather than a
// generic validation failure.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"`
}

type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}
