package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// timeLayout renders timestamps the way JavaScript's Date#toJSON does.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

type createProductRequest struct {
	Name        string   `json:"name"        validate:"required"`
	Price       *float64 `json:"price"       validate:"required,gte=0"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Stock       *int     `json:"stock"       validate:"omitempty,gte=0"`
}

// updateProductRequest is a partial update; absent fields keep their value.
type updateProductRequest struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"       validate:"omitempty,gte=0"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Stock       *int     `json:"stock"       validate:"omitempty,gte=0"`
}

type productResponse struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	Stock       int     `json:"stock"`
}
