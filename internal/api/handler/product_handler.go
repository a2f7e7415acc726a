package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/backoffice/internal/api/metrics"
	"github.com/99minutos/backoffice/internal/core/ports"
)

type ProductHandler struct {
	products ports.ProductService
}

func NewProductHandler(products ports.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// List returns the catalog in insertion order.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.Envelope[[]domain.Product]
// @Router       /api/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.products.List(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, products, "Products retrieved successfully")
}

// Get returns one product.
//
// @Summary      Get product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  ports.Envelope[domain.Product]
// @Failure      404  {object}  ports.Envelope[any]
// @Router       /api/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.products.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, product, "Product retrieved successfully")
}

// Create adds a product.
//
// @Summary      Create product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product"
// @Success      201   {object}  ports.Envelope[domain.Product]
// @Failure      400   {object}  ports.Envelope[any]
// @Failure      403   {object}  ports.Envelope[any]
// @Router       /api/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return fail(c, err)
	}
	var req productRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(c, err)
	}

	product, err := h.products.Create(c.Request().Context(), actor, req.toInput())
	if err != nil {
		return fail(c, err)
	}

	metrics.StoreMutationsTotal.WithLabelValues("product", "created").Inc()
	return respond(c, http.StatusCreated, product, "Product created successfully")
}

// Update replaces a product's editable fields.
//
// @Summary      Update product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Product ID"
// @Param        body  body      productRequest  true  "Product"
// @Success      200   {object}  ports.Envelope[domain.Product]
// @Failure      404   {object}  ports.Envelope[any]
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return fail(c, err)
	}
	var req productRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(c, err)
	}

	product, err := h.products.Update(c.Request().Context(), actor, c.Param("id"), req.toInput().AsPatch())
	if err != nil {
		return fail(c, err)
	}

	metrics.StoreMutationsTotal.WithLabelValues("product", "updated").Inc()
	return respond(c, http.StatusOK, product, "Product updated successfully")
}

// Delete removes a product.
//
// @Summary      Delete product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  ports.Envelope[any]
// @Failure      404  {object}  ports.Envelope[any]
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return fail(c, err)
	}
	if err := h.products.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return fail(c, err)
	}

	metrics.StoreMutationsTotal.WithLabelValues("product", "deleted").Inc()
	return respond[any](c, http.StatusOK, nil, "Product deleted successfully")
}
