package models

// Service is an admin-defined offering bookable by customers.
type Service struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

// ServiceInput is the body of POST /services and PATCH /services/:id.
type ServiceInput struct {
	Name        string  `json:"name" form:"name" binding:"required,notblank"`
	Price       float64 `json:"price" form:"price" binding:"required,gt=0"`
	Description string  `json:"description,omitempty" form:"description"`
}
