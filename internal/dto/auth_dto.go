package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

type RegisterRequest struct {
	Username string  `json:"username"  validate:"required,min=3"`
	Nome     string  `json:"nome"      validate:"required,min=2"`
	Password string  `json:"password"  validate:"required,min=8"`
	Role     string  `json:"role"      validate:"required,oneof=admin gerente vendedora"`
	FilialID *string `json:"filial_id" validate:"omitempty,uuid"`
}

type UserResponse struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Nome     string  `json:"nome"`
	Role     string  `json:"role"`
	FilialID *string `json:"filial_id,omitempty"`
}
