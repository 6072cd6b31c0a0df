package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/estall/marketplace-api/internal/core/ports"
)

// ReportHandler exposes the moderation registry: buyers file reports, admins
// list and resolve them.
type ReportHandler struct {
	reports ports.ReportService
}

func NewReportHandler(reports ports.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

type fileReportRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Reason    string `json:"reason" validate:"required"`
}

// File handles POST /reports (buyer).
//
// @Summary      Report a product
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      fileReportRequest  true  "Report details"
// @Success      201   {object}  domain.Report
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /reports [post]
func (h *ReportHandler) File(c echo.Context) error {
	reporterEmail, err := ctxEmail(c)
	if err != nil {
		return err
	}

	var req fileReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	report, err := h.reports.File(c.Request().Context(), ports.FileReportInput{
		ReporterEmail: reporterEmail,
		ProductID:     req.ProductID,
		Reason:        req.Reason,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, report)
}

// List handles GET /reports (admin).
//
// @Summary      List all reports
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Report
// @Failure      403  {object}  map[string]string
// @Router       /reports [get]
func (h *ReportHandler) List(c echo.Context) error {
	reports, err := h.reports.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reports)
}

// Resolve handles DELETE /reports/:id?product_id= (admin): deletes the
// report and removes the product's browsable mirror.
//
// @Summary      Resolve a report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        id          path      string  true  "Report id"
// @Param        product_id  query     string  true  "Reported product id"
// @Success      200         {object}  map[string]bool
// @Failure      400         {object}  map[string]string
// @Failure      403         {object}  map[string]string
// @Failure      404         {object}  map[string]string
// @Router       /reports/{id} [delete]
func (h *ReportHandler) Resolve(c echo.Context) error {
	productID := c.QueryParam("product_id")
	if productID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "product_id query parameter is required")
	}

	if err := h.reports.Resolve(c.Request().Context(), c.Param("id"), productID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"acknowledged": true})
}
