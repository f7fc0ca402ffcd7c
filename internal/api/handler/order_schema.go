package handler

type lineItemRequest struct {
	ProductID string `json:"productId" validate:"required,mongodb"`
	Quantity  int    `json:"quantity"  validate:"min=1"`
}

type createOrderRequest struct {
	Products []lineItemRequest `json:"products" validate:"required,dive"`
}

type lineItemResponse struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type orderResponse struct {
	ID        string             `json:"_id"`
	UserID    string             `json:"userId"`
	Products  []lineItemResponse `json:"products"`
	Status    string             `json:"status"`
	CreatedAt string             `json:"createdAt"`
	UpdatedAt string             `json:"updatedAt"`
}
