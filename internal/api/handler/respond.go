package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
)

// Resolve maps a known error to its HTTP status and operator-facing message.
// ok is false for errors that must not be shown to callers.
func Resolve(err error) (code int, msg string, ok bool) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), true
	}

	var de *domain.Error
	if !errors.As(err, &de) {
		return http.StatusInternalServerError, "internal server error", false
	}
	switch de.Kind {
	case domain.KindValidation:
		return http.StatusBadRequest, de.Message, true
	case domain.KindConflict:
		return http.StatusConflict, de.Message, true
	case domain.KindNotFound:
		return http.StatusNotFound, de.Message, true
	case domain.KindUnauthenticated:
		return http.StatusUnauthorized, de.Message, true
	case domain.KindForbidden:
		return http.StatusForbidden, de.Message, true
	case domain.KindSelfOperation:
		return http.StatusUnprocessableEntity, de.Message, true
	}
	return http.StatusInternalServerError, "internal server error", false
}

// fail renders known errors as a failure envelope. Unknown errors are
// returned to the central error handler, which logs and masks them.
func fail(c echo.Context, err error) error {
	code, msg, ok := Resolve(err)
	if !ok {
		return err
	}
	return c.JSON(code, ports.Envelope[any]{Message: msg})
}

func respond[T any](c echo.Context, code int, data T, msg string) error {
	return c.JSON(code, ports.OK(data, msg))
}

var errInvalidPayload = domain.Invalid("invalid payload")

// bindAndValidate binds the request body into req and runs the registered
// validator, when there is one.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return errInvalidPayload
	}
	if c.Echo().Validator == nil {
		return nil
	}
	return c.Validate(req)
}
