package console

import "github.com/99minutos/backoffice/internal/core/domain"

// Dashboard is the overview shown after sign-in.
type Dashboard struct {
	Revenue        float64
	Products       int
	NeedsAttention int
	// Users is only populated for admins; ShowUsers tells the two apart.
	Users     int
	ShowUsers bool
	Activity  []domain.ActivityEvent
}

// ComputeDashboard derives the overview figures. Revenue is the stock value
// of the catalog.
func ComputeDashboard(products []domain.Product, users []domain.User, admin bool) Dashboard {
	d := Dashboard{Products: len(products), ShowUsers: admin}
	for i := range products {
		d.Revenue += products[i].StockValue()
		if products[i].NeedsAttention() {
			d.NeedsAttention++
		}
	}
	if admin {
		d.Users = len(users)
	}
	return d
}
