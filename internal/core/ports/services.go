package ports

import (
	"context"

	"github.com/99minutos/backoffice/internal/core/domain"
)

// Actor is the authenticated operator on whose behalf a call is made.
type Actor struct {
	ID   string
	Role domain.Role
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// AuthPayload is returned by login and registration.
type AuthPayload struct {
	User  domain.AuthUser `json:"user"`
	Token string          `json:"token"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UserInput is the full user form. An empty Password keeps the current
// password on update and falls back to the demo password on create.
type UserInput struct {
	Name     string            `json:"name"`
	Email    string            `json:"email"`
	Role     domain.Role       `json:"role"`
	Status   domain.UserStatus `json:"status"`
	Password string            `json:"password,omitempty"`
}

// UserPatch is merged over an existing user; nil fields are left untouched.
type UserPatch struct {
	Name     *string            `json:"name,omitempty"`
	Email    *string            `json:"email,omitempty"`
	Role     *domain.Role       `json:"role,omitempty"`
	Status   *domain.UserStatus `json:"status,omitempty"`
	Password *string            `json:"password,omitempty"`
}

// AsPatch turns a full form into a patch that sets every field.
func (in UserInput) AsPatch() UserPatch {
	p := UserPatch{Name: &in.Name, Email: &in.Email, Role: &in.Role, Status: &in.Status}
	if in.Password != "" {
		p.Password = &in.Password
	}
	return p
}

type ProductInput struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Price       float64              `json:"price"`
	Category    string               `json:"category"`
	Stock       int                  `json:"stock"`
	Status      domain.ProductStatus `json:"status"`
}

// ProductPatch is merged over an existing product; nil fields are left untouched.
type ProductPatch struct {
	Name        *string               `json:"name,omitempty"`
	Description *string               `json:"description,omitempty"`
	Price       *float64              `json:"price,omitempty"`
	Category    *string               `json:"category,omitempty"`
	Stock       *int                  `json:"stock,omitempty"`
	Status      *domain.ProductStatus `json:"status,omitempty"`
}

func (in ProductInput) AsPatch() ProductPatch {
	return ProductPatch{
		Name:        &in.Name,
		Description: &in.Description,
		Price:       &in.Price,
		Category:    &in.Category,
		Stock:       &in.Stock,
		Status:      &in.Status,
	}
}

type OrderStatusUpdate struct {
	Status domain.OrderStatus `json:"status"`
}

type AuthService interface {
	Login(ctx context.Context, in LoginInput) (*AuthPayload, error)
	Register(ctx context.Context, in RegisterInput) (*AuthPayload, error)
	// Authenticate resolves a bearer token to the session user.
	Authenticate(ctx context.Context, token string) (*domain.AuthUser, error)
	ChangePassword(ctx context.Context, actor Actor, in ChangePasswordInput) error
	Logout(ctx context.Context, token string) error
}

type UserService interface {
	List(ctx context.Context, actor Actor) ([]*domain.User, error)
	Get(ctx context.Context, actor Actor, id string) (*domain.User, error)
	Create(ctx context.Context, actor Actor, in UserInput) (*domain.User, error)
	Update(ctx context.Context, actor Actor, id string, patch UserPatch) (*domain.User, error)
	Delete(ctx context.Context, actor Actor, id string) error
	UpdateProfile(ctx context.Context, actor Actor, name string) (*domain.User, error)
}

type ProductService interface {
	List(ctx context.Context) ([]*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, actor Actor, in ProductInput) (*domain.Product, error)
	Update(ctx context.Context, actor Actor, id string, patch ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, actor Actor, id string) error
}

type OrderService interface {
	List(ctx context.Context) ([]*domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, actor Actor, id string, status domain.OrderStatus) (*domain.Order, error)
}

type ActivityService interface {
	Recent(ctx context.Context, limit int) ([]domain.ActivityEvent, error)
}
