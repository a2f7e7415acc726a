package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/backoffice/internal/api/metrics"
	"github.com/99minutos/backoffice/internal/core/ports"
)

type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List returns all users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.Envelope[[]domain.User]
// @Failure      403  {object}  ports.Envelope[any]
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return fail(c, err)
	}
	users, err := h.users.List(c.Request().Context(), actor)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, users, "Users retrieved successfully")
}

// Get returns one user.
//
// @Summary      Get user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  ports.Envelope[domain.User]
// @Failure      404  {object}  ports.Envelope[any]
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return fail(c, err)
	}
	user, err := h.users.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, user, "User retrieved successfully")
}

// Create adds a user.
//
// @Summary      Create user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      userRequest  true  "User"
// @Success      201   {object}  ports.Envelope[domain.User]
// @Failure      400   {object}  ports.Envelope[any]
// @Failure      409   {object}  ports.Envelope[any]
// @Router       /api/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return fail(c, err)
	}
	var req userRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(c, err)
	}

	user, err := h.users.Create(c.Request().Context(), actor, req.toInput())
	if err != nil {
		return fail(c, err)
	}

	metrics.StoreMutationsTotal.WithLabelValues("user", "created").Inc()
	return respond(c, http.StatusCreated, user, "User created successfully")
}

// Update replaces a user's editable fields.
//
// @Summary      Update user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "User ID"
// @Param        body  body      userRequest  true  "User"
// @Success      200   {object}  ports.Envelope[domain.User]
// @Failure      404   {object}  ports.Envelope[any]
// @Failure      422   {object}  ports.Envelope[any]
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return fail(c, err)
	}
	var req userRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(c, err)
	}

	user, err := h.users.Update(c.Request().Context(), actor, c.Param("id"), req.toInput().AsPatch())
	if err != nil {
		return fail(c, err)
	}

	metrics.StoreMutationsTotal.WithLabelValues("user", "updated").Inc()
	return respond(c, http.StatusOK, user, "User updated successfully")
}

// Delete removes a user.
//
// @Summary      Delete user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  ports.Envelope[any]
// @Failure      404  {object}  ports.Envelope[any]
// @Failure      422  {object}  ports.Envelope[any]
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return fail(c, err)
	}
	if err := h.users.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return fail(c, err)
	}

	metrics.StoreMutationsTotal.WithLabelValues("user", "deleted").Inc()
	return respond[any](c, http.StatusOK, nil, "User deleted successfully")
}

// UpdateProfile changes the caller's display name.
//
// @Summary      Update profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profileRequest  true  "Profile"
// @Success      200   {object}  ports.Envelope[domain.AuthUser]
// @Failure      400   {object}  ports.Envelope[any]
// @Router       /api/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return fail(c, err)
	}
	var req profileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(c, err)
	}

	user, err := h.users.UpdateProfile(c.Request().Context(), actor, req.Name)
	if err != nil {
		return fail(c, err)
	}

	metrics.StoreMutationsTotal.WithLabelValues("user", "updated").Inc()
	return respond(c, http.StatusOK, user.Projection(), "Profile updated successfully")
}
