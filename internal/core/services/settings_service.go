package services

import (
	"context"
	"log"

	"autopro-rental/internal/adapters/persistence/models"
	"autopro-rental/internal/adapters/persistence/repositories"
)

// SettingsService handles the single-row site settings
type SettingsService struct {
	settingsRepo repositories.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repositories.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// Get returns the current settings, falling back to defaults
func (s *SettingsService) Get(ctx context.Context) (*models.SystemSettings, error) {
	return s.settingsRepo.Get(ctx)
}

// UpdateSettingsInput is a partial settings update. Nil pointers leave the
// field unchanged.
type UpdateSettingsInput struct {
	SiteName             *string `json:"site_name"`
	SiteDescription      *string `json:"site_description"`
	ContactEmail         *string `json:"contact_email"`
	SupportPhone         *string `json:"support_phone"`
	Currency             *string `json:"currency"`
	Locale               *string `json:"locale"`
	Timezone             *string `json:"timezone"`
	EmailNotifications   *bool   `json:"email_notifications"`
	SMSNotifications     *bool   `json:"sms_notifications"`
	NotifyOnNewBooking   *bool   `json:"notify_on_new_booking"`
	NotifyOnCancellation *bool   `json:"notify_on_cancellation"`
	PrimaryColor         *string `json:"primary_color"`
	SecondaryColor       *string `json:"secondary_color"`
	Logo                 *string `json:"logo"`
	Favicon              *string `json:"favicon"`
}

// Update merges the partial input into the stored settings
func (s *SettingsService) Update(ctx context.Context, input *UpdateSettingsInput) (*models.SystemSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}

	applyString(&settings.SiteName, input.SiteName)
	applyString(&settings.SiteDescription, input.SiteDescription)
	applyString(&settings.ContactEmail, input.ContactEmail)
	applyString(&settings.SupportPhone, input.SupportPhone)
	applyString(&settings.Currency, input.Currency)
	applyString(&settings.Locale, input.Locale)
	applyString(&settings.Timezone, input.Timezone)
	applyBool(&settings.EmailNotifications, input.EmailNotifications)
	applyBool(&settings.SMSNotifications, input.SMSNotifications)
	applyBool(&settings.NotifyOnNewBooking, input.NotifyOnNewBooking)
	applyBool(&settings.NotifyOnCancellation, input.NotifyOnCancellation)
	applyString(&settings.PrimaryColor, input.PrimaryColor)
	applyString(&settings.SecondaryColor, input.SecondaryColor)
	applyString(&settings.Logo, input.Logo)
	applyString(&settings.Favicon, input.Favicon)

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}

	log.Println("✅ Settings updated")
	return settings, nil
}
