package handlers

import (
	"errors"
	"strconv"

	"autopro-rental/internal/adapters/persistence/repositories"
	"autopro-rental/internal/core/services"
	"autopro-rental/internal/pkg/pagination"
	"autopro-rental/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CarHandler handles fleet and storefront catalog endpoints
type CarHandler struct {
	carService *services.CarService
}

// NewCarHandler creates a new car handler
func NewCarHandler(carService *services.CarService) *CarHandler {
	return &CarHandler{carService: carService}
}

// Catalog handles the public storefront catalog
// @Summary Public car catalog
// @Description Filter and sort the available fleet
// @Tags Cars
// @Accept json
// @Produce json
// @Param search query string false "Free-text search over name and description"
// @Param category query string false "Category filter (sedan, suv, hatchback, business, crossover, all)"
// @Param min_price query number false "Minimum daily price, inclusive"
// @Param max_price query number false "Maximum daily price, inclusive"
// @Param sort query string false "Sort key (recommended, price-asc, price-desc, rating, newest)"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /cars [get]
func (h *CarHandler) Catalog(c *fiber.Ctx) error {
	minPrice, _ := strconv.ParseFloat(c.Query("min_price", "0"), 64)
	maxPrice, _ := strconv.ParseFloat(c.Query("max_price", "0"), 64)

	input := &services.CatalogInput{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Sort:     c.Query("sort"),
	}
	params := pagination.GetParams(c)

	cars, total, err := h.carService.Catalog(c.Context(), input, params)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCategory):
			return response.BadRequest(c, "Unknown category")
		case errors.Is(err, services.ErrInvalidSort):
			return response.BadRequest(c, "Unknown sort key")
		default:
			return response.InternalServerError(c, "Failed to load catalog")
		}
	}

	return response.Success(c, "Catalog retrieved successfully", pagination.NewResponse(cars, params, total))
}

// GetByID returns one car
// @Summary Get car
// @Description Get a single car by ID
// @Tags Cars
// @Accept json
// @Produce json
// @Param id path int true "Car ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /cars/{id} [get]
func (h *CarHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid car ID")
	}

	car, err := h.carService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrCarNotFound) {
			return response.NotFound(c, "Car not found")
		}
		return response.InternalServerError(c, "Failed to load car")
	}

	return response.Success(c, "Car retrieved successfully", car)
}

// List handles the back-office fleet list
// @Summary List fleet
// @Description List all cars including unavailable ones
// @Tags Cars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param search query string false "Free-text search"
// @Param category query string false "Category filter"
// @Param available query bool false "Only available cars"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/cars [get]
func (h *CarHandler) List(c *fiber.Ctx) error {
	onlyAvailable, _ := strconv.ParseBool(c.Query("available", "false"))
	filter := repositories.CarFilter{
		Search:        c.Query("search"),
		Category:      c.Query("category"),
		OnlyAvailable: onlyAvailable,
	}
	params := pagination.GetParams(c)

	cars, total, err := h.carService.List(c.Context(), filter, params)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCategory) {
			return response.BadRequest(c, "Unknown category")
		}
		return response.InternalServerError(c, "Failed to list cars")
	}

	return response.Success(c, "Cars retrieved successfully", pagination.NewResponse(cars, params, total))
}

func carErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrCarNotFound):
		return response.NotFound(c, "Car not found")
	case errors.Is(err, services.ErrInvalidCategory):
		return response.BadRequest(c, "Unknown category")
	case errors.Is(err, services.ErrInvalidPrice):
		return response.BadRequest(c, "Price must be positive")
	case errors.Is(err, services.ErrInvalidYear):
		return response.BadRequest(c, "Invalid model year")
	default:
		return response.InternalServerError(c, "Failed to save car")
	}
}

// Create creates a new car
// @Summary Create car
// @Description Add a new car to the fleet
// @Tags Cars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CarInput true "Car data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/cars [post]
func (h *CarHandler) Create(c *fiber.Ctx) error {
	var input services.CarInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Name == "" {
		return response.BadRequest(c, "Name is required")
	}

	car, err := h.carService.Create(c.Context(), &input)
	if err != nil {
		return carErrorResponse(c, err)
	}

	return response.Created(c, "Car created successfully", car)
}

// Update updates a car
// @Summary Update car
// @Description Update an existing car
// @Tags Cars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Car ID"
// @Param body body services.CarInput true "Car data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/cars/{id} [put]
func (h *CarHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid car ID")
	}

	var input services.CarInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Name == "" {
		return response.BadRequest(c, "Name is required")
	}

	car, err := h.carService.Update(c.Context(), uint(id), &input)
	if err != nil {
		return carErrorResponse(c, err)
	}

	return response.Success(c, "Car updated successfully", car)
}

// AvailabilityRequest represents an availability toggle
type AvailabilityRequest struct {
	IsAvailable bool `json:"is_available"`
}

// SetAvailability toggles a car's storefront visibility
// @Summary Set car availability
// @Description Show or hide a car on the storefront
// @Tags Cars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Car ID"
// @Param body body AvailabilityRequest true "Availability flag"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/cars/{id}/availability [patch]
func (h *CarHandler) SetAvailability(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid car ID")
	}

	var req AvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	car, err := h.carService.SetAvailability(c.Context(), uint(id), req.IsAvailable)
	if err != nil {
		return carErrorResponse(c, err)
	}

	return response.Success(c, "Car availability updated", car)
}

// Delete removes a car from the fleet
// @Summary Delete car
// @Description Soft delete a car
// @Tags Cars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Car ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/cars/{id} [delete]
func (h *CarHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid car ID")
	}

	if err := h.carService.Delete(c.Context(), uint(id)); err != nil {
		return carErrorResponse(c, err)
	}

	return response.Success(c, "Car deleted successfully", nil)
}
