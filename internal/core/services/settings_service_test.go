package services

import (
	"context"
	"testing"
)

func TestSettingsGetFallsBackToDefaults(t *testing.T) {
	svc := NewSettingsService(&fakeSettingsRepo{})

	settings, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if settings.SiteName != "AutoPro" {
		t.Fatalf("default site name: got %q", settings.SiteName)
	}
}

func TestSettingsPartialUpdate(t *testing.T) {
	svc := NewSettingsService(&fakeSettingsRepo{})
	ctx := context.Background()

	name := "AutoPro Rentals"
	sms := true
	updated, err := svc.Update(ctx, &UpdateSettingsInput{
		SiteName:         &name,
		SMSNotifications: &sms,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.SiteName != name {
		t.Fatalf("site name: got %q", updated.SiteName)
	}
	if !updated.SMSNotifications {
		t.Fatalf("sms notifications must be on")
	}
	// Untouched fields keep their values
	if updated.ContactEmail != "info@autopro.ru" {
		t.Fatalf("contact email must be unchanged, got %q", updated.ContactEmail)
	}

	// A second partial update must not clobber the first
	phone := "+7 (800) 100-20-30"
	updated, err = svc.Update(ctx, &UpdateSettingsInput{SupportPhone: &phone})
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	if updated.SiteName != name || updated.SupportPhone != phone {
		t.Fatalf("merge: %+v", updated)
	}
}
