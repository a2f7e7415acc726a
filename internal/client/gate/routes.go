package gate

import (
	"strings"

	"github.com/99minutos/backoffice/internal/core/domain"
)

// Route is a navigable view.
type Route struct {
	Name      string
	Path      string
	Protected bool
	// RequiredRole, when set, must equal the session role.
	RequiredRole domain.Role
	// Permit, when set, must accept the session role.
	Permit func(domain.Role) bool
}

const (
	PathLogin     = "/auth/login"
	PathRegister  = "/auth/register"
	PathDashboard = "/"
)

// Routes is the back office route table.
var Routes = []Route{
	{Name: "login", Path: PathLogin},
	{Name: "register", Path: PathRegister},
	{Name: "dashboard", Path: PathDashboard, Protected: true},
	{Name: "products", Path: "/products", Protected: true},
	{Name: "product-detail", Path: "/products/:id", Protected: true},
	{Name: "product-create", Path: "/products/create", Protected: true, Permit: domain.Role.CanEditCatalog},
	{Name: "product-edit", Path: "/products/edit/:id", Protected: true, Permit: domain.Role.CanEditCatalog},
	{Name: "product-delete", Path: "/products/:id/delete", Protected: true, Permit: domain.Role.CanEditCatalog},
	{Name: "users", Path: "/users", Protected: true, RequiredRole: domain.RoleAdmin},
	{Name: "user-detail", Path: "/users/:id", Protected: true, RequiredRole: domain.RoleAdmin},
	{Name: "user-create", Path: "/users/create", Protected: true, RequiredRole: domain.RoleAdmin},
	{Name: "user-edit", Path: "/users/edit/:id", Protected: true, RequiredRole: domain.RoleAdmin},
	{Name: "user-delete", Path: "/users/:id/delete", Protected: true, RequiredRole: domain.RoleAdmin},
	{Name: "orders", Path: "/orders", Protected: true},
	{Name: "order-detail", Path: "/orders/:id", Protected: true},
	{Name: "order-status", Path: "/orders/:id/status", Protected: true, Permit: domain.Role.CanUpdateOrderStatus},
	{Name: "activity", Path: "/activity", Protected: true},
	{Name: "profile", Path: "/profile", Protected: true},
}

// Lookup finds a route by name.
func Lookup(name string) (Route, bool) {
	for _, r := range Routes {
		if r.Name == name {
			return r, true
		}
	}
	return Route{}, false
}

// Match finds the route for a concrete path such as /products/7. Static
// segments win over parameters.
func Match(path string) (Route, bool) {
	want := split(path)
	best, bestStatic := -1, -1
	for i, r := range Routes {
		segs := split(r.Path)
		if len(segs) != len(want) {
			continue
		}
		static, ok := 0, true
		for j, s := range segs {
			if strings.HasPrefix(s, ":") {
				continue
			}
			if s != want[j] {
				ok = false
				break
			}
			static++
		}
		if ok && static > bestStatic {
			best, bestStatic = i, static
		}
	}
	if best < 0 {
		return Route{}, false
	}
	return Routes[best], true
}

func split(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// WithPath returns r with Path set to a concrete location, for redirects.
func (r Route) WithPath(path string) Route {
	r.Path = path
	return r
}
