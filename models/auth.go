package models

// LoginRequest is the body of POST /auth/login. ExpectedRole tells the API
// which portal the user is signing in to.
type LoginRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	ExpectedRole Role   `json:"expectedRole,omitempty"`
}

// LoginResponse carries the bearer token issued by the API.
type LoginResponse struct {
	Token string `json:"token"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Role     Role     `json:"role"`
	Services []string `json:"services"`
}

// MessageResponse is the generic {"message": "..."} body.
type MessageResponse struct {
	Message string `json:"message"`
}
