// Package forms validates operator input before it is dispatched. Failures
// are reported per field and never reach the state containers.
package forms

import (
	"errors"
	"maps"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/99minutos/backoffice/internal/core/ports"
)

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldErrors maps a form field to its message.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	var b strings.Builder
	for i, field := range slices.Sorted(maps.Keys(f)) {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f[field])
	}
	return b.String()
}

// Fields extracts FieldErrors from err, if it carries any.
func Fields(err error) (FieldErrors, bool) {
	var fe FieldErrors
	ok := errors.As(err, &fe)
	return fe, ok
}

// messages are keyed by "<form>.<field>.<tag>" with "<field>.<tag>" as the
// fallback.
var messages = map[string]string{
	"name.nonblank":                    "Name is required",
	"email.nonblank":                   "Email is required",
	"email.emailshape":                 "Invalid email format",
	"password.required":                "Password is required",
	"password.min":                     "Password must be at least 6 characters",
	"confirmPassword.eqfield":          "Passwords do not match",
	"description.nonblank":             "Description is required",
	"category.nonblank":                "Category is required",
	"price.gt":                         "Price must be greater than 0",
	"stock.gte":                        "Stock cannot be negative",
	"status.oneof":                     "Invalid status",
	"role.oneof":                       "Invalid role",
	"currentPassword.required":         "Current password is required",
	"newPassword.required":             "New password is required",
	"newPassword.min":                  "Password must be at least 6 characters",
	"userCreateForm.password.required": "Password is required for new users",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
		return emailShape.MatchString(fl.Field().String())
	})
	return v
}

func check(form any, name string) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	out := make(FieldErrors, len(ve))
	for _, fe := range ve {
		field := fe.Field()
		msg, ok := messages[name+"."+field+"."+fe.Tag()]
		if !ok {
			msg, ok = messages[field+"."+fe.Tag()]
		}
		if !ok {
			msg = field + " is invalid"
		}
		out[field] = msg
	}
	return out
}

type loginForm struct {
	Email    string `json:"email" validate:"nonblank"`
	Password string `json:"password" validate:"required"`
}

func Login(in ports.LoginInput) error {
	return check(loginForm(in), "loginForm")
}

type registerForm struct {
	Name            string `json:"name" validate:"nonblank"`
	Email           string `json:"email" validate:"nonblank,emailshape"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
}

func Register(in ports.RegisterInput) error {
	return check(registerForm(in), "registerForm")
}

type productForm struct {
	Name        string  `json:"name" validate:"nonblank"`
	Description string  `json:"description" validate:"nonblank"`
	Price       float64 `json:"price" validate:"gt=0"`
	Category    string  `json:"category" validate:"nonblank"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Status      string  `json:"status" validate:"oneof=in-stock low-stock out-of-stock"`
}

func Product(in ports.ProductInput) error {
	return check(productForm{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Stock:       in.Stock,
		Status:      string(in.Status),
	}, "productForm")
}

type userCreateForm struct {
	Name     string `json:"name" validate:"nonblank"`
	Email    string `json:"email" validate:"nonblank,emailshape"`
	Role     string `json:"role" validate:"oneof=admin editor viewer"`
	Status   string `json:"status" validate:"oneof=active inactive"`
	Password string `json:"password" validate:"required,min=6"`
}

type userEditForm struct {
	Name     string `json:"name" validate:"nonblank"`
	Email    string `json:"email" validate:"nonblank,emailshape"`
	Role     string `json:"role" validate:"oneof=admin editor viewer"`
	Status   string `json:"status" validate:"oneof=active inactive"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

// User validates the user form. A password is only mandatory when creating.
func User(in ports.UserInput, editing bool) error {
	if editing {
		return check(userEditForm{
			Name: in.Name, Email: in.Email, Role: string(in.Role), Status: string(in.Status), Password: in.Password,
		}, "userEditForm")
	}
	return check(userCreateForm{
		Name: in.Name, Email: in.Email, Role: string(in.Role), Status: string(in.Status), Password: in.Password,
	}, "userCreateForm")
}

type profileForm struct {
	Name string `json:"name" validate:"nonblank"`
}

func Profile(name string) error {
	return check(profileForm{Name: name}, "profileForm")
}

// PasswordChange is the change-password form, confirmation included.
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=NewPassword"`
}

func (p PasswordChange) Input() ports.ChangePasswordInput {
	return ports.ChangePasswordInput{CurrentPassword: p.CurrentPassword, NewPassword: p.NewPassword}
}

func Password(in PasswordChange) error {
	return check(in, "PasswordChange")
}
