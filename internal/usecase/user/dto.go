package user

import (
	"time"

	"github.com/google/uuid"

	domainUser "wastemanage/internal/domain/user"
)

// Request DTOs
type RegisterRequest struct {
	FirstName   string          `json:"first_name" validate:"required,min=2,max=100"`
	LastName    string          `json:"last_name" validate:"required,min=2,max=100"`
	Email       string          `json:"email" validate:"required,email"`
	Password    string          `json:"password" validate:"required,min=6"`
	PhoneNumber string          `json:"phone_number" validate:"required,phone"`
	Address     *AddressRequest `json:"address" validate:"omitempty"`
}

type AddressRequest struct {
	Street  string `json:"street" validate:"omitempty,max=255"`
	City    string `json:"city" validate:"omitempty,max=100"`
	State   string `json:"state" validate:"omitempty,max=100"`
	ZipCode string `json:"zip_code" validate:"omitempty,max=20"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	FirstName   *string         `json:"first_name" validate:"omitempty,min=2,max=100"`
	LastName    *string         `json:"last_name" validate:"omitempty,min=2,max=100"`
	PhoneNumber *string         `json:"phone_number" validate:"omitempty,phone"`
	Address     *AddressRequest `json:"address" validate:"omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// Response DTOs
type UserResponse struct {
	ID          uuid.UUID          `json:"id"`
	FirstName   string             `json:"first_name"`
	LastName    string             `json:"last_name"`
	Email       string             `json:"email"`
	PhoneNumber string             `json:"phone_number"`
	Address     domainUser.Address `json:"address"`
	Role        string             `json:"role"`
	CreatedAt   time.Time          `json:"created_at"`
}

type AuthResponse struct {
	User  *UserResponse `json:"user"`
	Token string        `json:"token"`
}

func ToUserResponse(u *domainUser.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Address:     u.Address,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
	}
}
