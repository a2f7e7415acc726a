package handler

import (
	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// registerRequest leaves the confirmation check to the service, which
// reports a taken email before a mismatch.
type registerRequest struct {
	Name            string `json:"name" validate:"nonblank"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

type profileRequest struct {
	Name string `json:"name" validate:"nonblank"`
}

type userRequest struct {
	Name     string `json:"name" validate:"nonblank"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required,oneof=admin editor viewer"`
	Status   string `json:"status" validate:"required,oneof=active inactive"`
	Password string `json:"password,omitempty" validate:"omitempty,min=6"`
}

func (r userRequest) toInput() ports.UserInput {
	return ports.UserInput{
		Name:     r.Name,
		Email:    r.Email,
		Role:     domain.Role(r.Role),
		Status:   domain.UserStatus(r.Status),
		Password: r.Password,
	}
}

type productRequest struct {
	Name        string  `json:"name" validate:"nonblank"`
	Description string  `json:"description" validate:"nonblank"`
	Price       float64 `json:"price" validate:"gt=0"`
	Category    string  `json:"category" validate:"nonblank"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Status      string  `json:"status" validate:"required,oneof=in-stock low-stock out-of-stock"`
}

func (r productRequest) toInput() ports.ProductInput {
	return ports.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		Stock:       r.Stock,
		Status:      domain.ProductStatus(r.Status),
	}
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
}
