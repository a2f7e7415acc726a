package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/backoffice/internal/api/metrics"
	"github.com/99minutos/backoffice/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  ports.Envelope[ports.AuthPayload]
// @Failure      400   {object}  ports.Envelope[any]
// @Failure      401   {object}  ports.Envelope[any]
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(c, err)
	}

	payload, err := h.authService.Login(c.Request().Context(), ports.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
		return fail(c, err)
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	return respond(c, http.StatusOK, payload, "Login successful")
}

// Register creates a viewer account and signs it in.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  ports.Envelope[ports.AuthPayload]
// @Failure      400   {object}  ports.Envelope[any]
// @Failure      409   {object}  ports.Envelope[any]
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(c, err)
	}

	payload, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "failure").Inc()
		return fail(c, err)
	}

	metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()
	metrics.StoreMutationsTotal.WithLabelValues("user", "created").Inc()
	return respond(c, http.StatusCreated, payload, "Registration successful")
}

// Me returns the session user.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.Envelope[domain.AuthUser]
// @Failure      401  {object}  ports.Envelope[any]
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := h.authService.Authenticate(c.Request().Context(), ctxToken(c))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, user, "User retrieved successfully")
}

// Logout revokes the bearer token. It always succeeds.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.Envelope[any]
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	_ = h.authService.Logout(c.Request().Context(), ctxToken(c))
	metrics.AuthAttemptsTotal.WithLabelValues("logout", "success").Inc()
	return respond[any](c, http.StatusOK, nil, "Logout successful")
}

// ChangePassword updates the caller's password.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      200   {object}  ports.Envelope[any]
// @Failure      400   {object}  ports.Envelope[any]
// @Router       /api/auth/password [put]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return fail(c, err)
	}

	var req changePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(c, err)
	}

	err = h.authService.ChangePassword(c.Request().Context(), actor, ports.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("password", "failure").Inc()
		return fail(c, err)
	}

	metrics.AuthAttemptsTotal.WithLabelValues("password", "success").Inc()
	return respond[any](c, http.StatusOK, nil, "Password updated successfully")
}
