package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/estall/marketplace-api/internal/core/ports"
)

// ProductHandler exposes the catalog operations: seller-facing product
// management plus the public browsable listings.
type ProductHandler struct {
	catalog ports.CatalogService
}

func NewProductHandler(catalog ports.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

type createProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	CategoryID  string  `json:"category_id" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Location    string  `json:"location"`
	YearsOfUse  int     `json:"years_of_use" validate:"min=0"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
}

// Create handles POST /products (seller).
//
// @Summary      List a product for sale
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product details"
// @Success      201   {object}  domain.Product
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	sellerEmail, err := ctxEmail(c)
	if err != nil {
		return err
	}

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.catalog.CreateProduct(c.Request().Context(), ports.CreateProductInput{
		SellerEmail: sellerEmail,
		Name:        req.Name,
		CategoryID:  req.CategoryID,
		Price:       req.Price,
		Location:    req.Location,
		YearsOfUse:  req.YearsOfUse,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, product)
}

// ListMine handles GET /products, the caller's own products (seller).
//
// @Summary      List the caller's products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Product
// @Failure      403  {object}  map[string]string
// @Router       /products [get]
func (h *ProductHandler) ListMine(c echo.Context) error {
	sellerEmail, err := ctxEmail(c)
	if err != nil {
		return err
	}

	products, err := h.catalog.ListBySeller(c.Request().Context(), sellerEmail)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// ListAdvertised handles GET /advertisedProducts (public).
//
// @Summary      List advertised products
// @Tags         products
// @Produce      json
// @Success      200  {array}  domain.Product
// @Router       /advertisedProducts [get]
func (h *ProductHandler) ListAdvertised(c echo.Context) error {
	products, err := h.catalog.ListAdvertised(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// ListByCategory handles GET /categories/:id, the public browsable listing.
//
// @Summary      List unsold products in a category
// @Tags         categories
// @Produce      json
// @Param        id   path     string  true  "Category id"
// @Success      200  {array}  domain.Product
// @Router       /categories/{id} [get]
func (h *ProductHandler) ListByCategory(c echo.Context) error {
	products, err := h.catalog.ListByCategory(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Advertise handles PATCH /products/:id (seller).
//
// @Summary      Advertise a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  domain.Product
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /products/{id} [patch]
func (h *ProductHandler) Advertise(c echo.Context) error {
	product, err := h.catalog.ToggleAdvertise(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Delete handles DELETE /products/:id (seller).
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  map[string]bool
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.catalog.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"acknowledged": true})
}
