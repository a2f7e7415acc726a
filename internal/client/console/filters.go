package console

import (
	"slices"
	"strings"

	"github.com/99minutos/backoffice/internal/core/domain"
)

// All matches every value of a list filter.
const All = "all"

type ProductFilter struct {
	// Search matches name or description, case-insensitively.
	Search   string
	Category string
	Status   string
}

func (f ProductFilter) Apply(products []domain.Product) []domain.Product {
	term := strings.ToLower(f.Search)
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if term != "" && !strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			continue
		}
		if !matches(f.Category, p.Category) || !matches(f.Status, string(p.Status)) {
			continue
		}
		out = append(out, p)
	}
	return out
}

type UserFilter struct {
	// Search matches name or email, case-insensitively.
	Search string
	Role   string
	Status string
}

func (f UserFilter) Apply(users []domain.User) []domain.User {
	term := strings.ToLower(f.Search)
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if term != "" && !strings.Contains(strings.ToLower(u.Name), term) &&
			!strings.Contains(strings.ToLower(u.Email), term) {
			continue
		}
		if !matches(f.Role, string(u.Role)) || !matches(f.Status, string(u.Status)) {
			continue
		}
		out = append(out, u)
	}
	return out
}

type OrderFilter struct {
	// Search matches order id, customer name or customer email.
	Search string
	Status string
}

func (f OrderFilter) Apply(orders []domain.Order) []domain.Order {
	term := strings.ToLower(f.Search)
	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if term != "" && !strings.Contains(strings.ToLower(o.ID), term) &&
			!strings.Contains(strings.ToLower(o.CustomerName), term) &&
			!strings.Contains(strings.ToLower(o.CustomerEmail), term) {
			continue
		}
		if !matches(f.Status, string(o.Status)) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func matches(filter, value string) bool {
	return filter == "" || filter == All || filter == value
}

// Categories lists "all" followed by each distinct category in first-seen order.
func Categories(products []domain.Product) []string {
	out := []string{All}
	for _, p := range products {
		if !slices.Contains(out, p.Category) {
			out = append(out, p.Category)
		}
	}
	return out
}
