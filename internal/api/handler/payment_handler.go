package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/estall/marketplace-api/internal/core/domain"
	"github.com/estall/marketplace-api/internal/core/ports"
)

// PaymentHandler exposes payment-intent creation and completed-payment
// submission (the cascade trigger).
type PaymentHandler struct {
	payments ports.PaymentService
}

func NewPaymentHandler(payments ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

type createIntentRequest struct {
	Price float64 `json:"price" validate:"required,gt=0"`
}

type createIntentResponse struct {
	ClientSecret string `json:"client_secret"`
}

type submitPaymentRequest struct {
	BookingID     string  `json:"booking_id" validate:"required"`
	ProductID     string  `json:"product_id" validate:"required"`
	TransactionID string  `json:"transaction_id" validate:"required"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
}

type submitPaymentResponse struct {
	Payment          *domain.Payment `json:"payment"`
	AlreadyProcessed bool            `json:"already_processed"`
}

// CreateIntent handles POST /payment-intents (buyer).
//
// @Summary      Create a payment intent
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createIntentRequest  true  "Amount to charge"
// @Success      200   {object}  createIntentResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /payment-intents [post]
func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	var req createIntentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	secret, err := h.payments.CreateIntent(c.Request().Context(), req.Price)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, createIntentResponse{ClientSecret: secret})
}

// Submit handles POST /payments (buyer): records the completed payment and
// runs the sale-finalization cascade.
//
// @Summary      Submit a completed payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      submitPaymentRequest  true  "Completed payment"
// @Success      201   {object}  submitPaymentResponse
// @Success      200   {object}  submitPaymentResponse  "transaction already processed"
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      500   {object}  map[string]string  "payment recorded, finalization incomplete"
// @Router       /payments [post]
func (h *PaymentHandler) Submit(c echo.Context) error {
	var req submitPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.payments.Submit(c.Request().Context(), ports.SubmitPaymentInput{
		BookingID:     req.BookingID,
		ProductID:     req.ProductID,
		TransactionID: req.TransactionID,
		Amount:        req.Amount,
	})
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.AlreadyProcessed {
		status = http.StatusOK
	}
	return c.JSON(status, submitPaymentResponse{
		Payment:          result.Payment,
		AlreadyProcessed: result.AlreadyProcessed,
	})
}
