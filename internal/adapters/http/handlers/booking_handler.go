package handlers

import (
	"errors"
	"strings"

	"autopro-rental/internal/adapters/persistence/models"
	"autopro-rental/internal/core/services"
	"autopro-rental/internal/pkg/pagination"
	"autopro-rental/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BookingHandler handles booking endpoints
type BookingHandler struct {
	bookingService *services.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

func toBookingResponses(bookings []*models.Booking) []*models.BookingResponse {
	out := make([]*models.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		out = append(out, booking.ToResponse())
	}
	return out
}

// Create handles a storefront booking request
// @Summary Create booking
// @Description Submit a rental request from the storefront
// @Tags Bookings
// @Accept json
// @Produce json
// @Param body body services.CreateBookingInput true "Booking data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	var input services.CreateBookingInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	input.CustomerName = strings.TrimSpace(input.CustomerName)
	input.CustomerPhone = strings.TrimSpace(input.CustomerPhone)
	if input.CarID == 0 || input.CustomerName == "" || input.CustomerPhone == "" {
		return response.BadRequest(c, "Car, name and phone are required")
	}

	booking, err := h.bookingService.Create(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDateRange):
			return response.BadRequest(c, "Invalid rental dates")
		case errors.Is(err, services.ErrCarNotFound):
			return response.NotFound(c, "Car not found")
		case errors.Is(err, services.ErrCarUnavailable):
			return response.Conflict(c, "Car is not available for booking")
		default:
			return response.InternalServerError(c, "Failed to create booking")
		}
	}

	return response.Created(c, "Booking created successfully", booking.ToResponse())
}

// List lists bookings for the back office
// @Summary List bookings
// @Description List bookings with optional status filter
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter (pending, confirmed, completed, cancelled)"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/bookings [get]
func (h *BookingHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	bookings, total, err := h.bookingService.List(c.Context(), c.Query("status"), params)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStatus) {
			return response.BadRequest(c, "Unknown booking status")
		}
		return response.InternalServerError(c, "Failed to list bookings")
	}

	return response.Success(c, "Bookings retrieved successfully",
		pagination.NewResponse(toBookingResponses(bookings), params, total))
}

// GetByID returns one booking
// @Summary Get booking
// @Description Get a single booking by ID
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/bookings/{id} [get]
func (h *BookingHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid booking ID")
	}

	booking, err := h.bookingService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			return response.NotFound(c, "Booking not found")
		}
		return response.InternalServerError(c, "Failed to load booking")
	}

	return response.Success(c, "Booking retrieved successfully", booking.ToResponse())
}

// StatusRequest represents a booking status change
type StatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus moves a booking through its lifecycle
// @Summary Update booking status
// @Description Move a booking through pending → confirmed → completed, or cancel it
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Param body body StatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/bookings/{id}/status [patch]
func (h *BookingHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid booking ID")
	}

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	booking, err := h.bookingService.UpdateStatus(c.Context(), uint(id), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookingNotFound):
			return response.NotFound(c, "Booking not found")
		case errors.Is(err, services.ErrInvalidStatus):
			return response.BadRequest(c, "Unknown booking status")
		case errors.Is(err, services.ErrInvalidTransition):
			return response.Conflict(c, "Status transition not allowed")
		default:
			return response.InternalServerError(c, "Failed to update booking")
		}
	}

	return response.Success(c, "Booking status updated", booking.ToResponse())
}
