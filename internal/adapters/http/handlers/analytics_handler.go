package handlers

import (
	"errors"

	"autopro-rental/internal/core/services"
	"autopro-rental/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AnalyticsHandler handles back-office analytics endpoints
type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// Dashboard returns the analytics summary for a reporting period
// @Summary Analytics dashboard
// @Description Booking counts, revenue and fleet breakdowns for a reporting period
// @Tags Analytics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param period query string false "Reporting period (month, quarter, year)" default(month)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/analytics [get]
func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	period := c.Query("period", services.PeriodMonth)

	dashboard, err := h.analyticsService.Dashboard(c.Context(), period)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPeriod) {
			return response.BadRequest(c, "Unknown reporting period")
		}
		return response.InternalServerError(c, "Failed to load analytics")
	}

	return response.Success(c, "Analytics retrieved successfully", dashboard)
}
