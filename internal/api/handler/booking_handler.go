package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/estall/marketplace-api/internal/core/ports"
)

// BookingHandler exposes the buyer's reservation operations. All routes run
// behind the buyer RBAC gate; ownership is additionally enforced per record.
type BookingHandler struct {
	bookings ports.BookingService
}

func NewBookingHandler(bookings ports.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

type createBookingRequest struct {
	ProductID   string  `json:"product_id" validate:"required"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price" validate:"required,gt=0"`
}

// Create handles POST /bookings.
//
// @Summary      Reserve a product
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookingRequest  true  "Booking details"
// @Success      201   {object}  domain.Booking
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	buyerEmail, err := ctxEmail(c)
	if err != nil {
		return err
	}

	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	booking, err := h.bookings.Create(c.Request().Context(), ports.CreateBookingInput{
		BuyerEmail:  buyerEmail,
		ProductID:   req.ProductID,
		ProductName: req.ProductName,
		Price:       req.Price,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, booking)
}

// List handles GET /bookings, the caller's own bookings.
//
// @Summary      List the caller's bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Booking
// @Failure      403  {object}  map[string]string
// @Router       /bookings [get]
func (h *BookingHandler) List(c echo.Context) error {
	buyerEmail, err := ctxEmail(c)
	if err != nil {
		return err
	}

	bookings, err := h.bookings.ListForBuyer(c.Request().Context(), buyerEmail)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookings)
}

// Get handles GET /bookings/:id with ownership enforcement.
//
// @Summary      Get one of the caller's bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  domain.Booking
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /bookings/{id} [get]
func (h *BookingHandler) Get(c echo.Context) error {
	buyerEmail, err := ctxEmail(c)
	if err != nil {
		return err
	}

	booking, err := h.bookings.GetOwned(c.Request().Context(), c.Param("id"), buyerEmail)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, booking)
}

// Delete handles DELETE /bookings/:id with ownership enforcement.
//
// @Summary      Delete one of the caller's bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  map[string]bool
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /bookings/{id} [delete]
func (h *BookingHandler) Delete(c echo.Context) error {
	buyerEmail, err := ctxEmail(c)
	if err != nil {
		return err
	}

	if err := h.bookings.DeleteOwned(c.Request().Context(), c.Param("id"), buyerEmail); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"acknowledged": true})
}
