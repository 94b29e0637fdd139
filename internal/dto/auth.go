package dto

import "github.com/google/uuid"

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=100"`
	Age      int    `json:"age" binding:"omitempty,gte=0,lte=150"`
	Gender   string `json:"gender" binding:"omitempty,max=20"`
	Address  string `json:"address" binding:"omitempty,max=1000"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RoleRef struct {
	ID   uuid.UUID `json:"_id"`
	Name string    `json:"name"`
}

// AccountResponse is the authenticated user as the client sees it.
type AccountResponse struct {
	ID    uuid.UUID `json:"_id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Role  RoleRef   `json:"role"`
}

type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	ExpiresIn   int             `json:"expires_in"` // Access token expiry in seconds
	User        AccountResponse `json:"user"`

	// RefreshToken travels in the cookie only.
	RefreshToken string `json:"-"`
}
