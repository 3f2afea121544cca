package dto

// RegisterRequest payload.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name" validate:"required,min=1,max=120"`
	CustomerID  string `json:"customer_id,omitempty" validate:"omitempty,uuid4"`
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AccountResponse describes the account echoed back after register/login.
type AccountResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	UserID      string `json:"user_id"`
	CustomerID  string `json:"customer_id"`
	Role        string `json:"role"`
}
