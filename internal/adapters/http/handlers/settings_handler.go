package handlers

import (
	"autopro-rental/internal/core/services"
	"autopro-rental/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SettingsHandler handles site settings endpoints
type SettingsHandler struct {
	settingsService *services.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get returns the site settings
// @Summary Get settings
// @Description Get the public site settings
// @Tags Settings
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	settings, err := h.settingsService.Get(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load settings")
	}

	return response.Success(c, "Settings retrieved successfully", settings)
}

// Update merges a partial settings update
// @Summary Update settings
// @Description Partially update the site settings; omitted fields stay unchanged
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.UpdateSettingsInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/settings [put]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var input services.UpdateSettingsInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	settings, err := h.settingsService.Update(c.Context(), &input)
	if err != nil {
		return response.InternalServerError(c, "Failed to update settings")
	}

	return response.Success(c, "Settings updated successfully", settings)
}
