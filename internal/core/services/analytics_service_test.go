package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"autopro-rental/internal/adapters/persistence/models"
)

func TestPeriodStart(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	month, err := PeriodStart(PeriodMonth, now)
	if err != nil || month.Month() != time.July {
		t.Fatalf("month: %v %v", month, err)
	}
	quarter, err := PeriodStart(PeriodQuarter, now)
	if err != nil || quarter.Month() != time.May {
		t.Fatalf("quarter: %v %v", quarter, err)
	}
	year, err := PeriodStart(PeriodYear, now)
	if err != nil || year.Year() != 2025 {
		t.Fatalf("year: %v %v", year, err)
	}

	if _, err := PeriodStart("week", now); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("unknown period: got %v", err)
	}
}

func TestDashboardAggregates(t *testing.T) {
	carRepo := newFakeCarRepo()
	bookingRepo := newFakeBookingRepo()
	userRepo := newFakeUserRepo()
	svc := NewAnalyticsService(bookingRepo, carRepo, userRepo)
	ctx := context.Background()

	if err := carRepo.Create(ctx, &models.Car{Name: "Camry", Category: models.CategoryBusiness, Price: 3500, IsAvailable: true}); err != nil {
		t.Fatalf("seed car: %v", err)
	}

	bookings := []*models.Booking{
		{CarID: 1, TotalPrice: 7000, Status: models.BookingStatusConfirmed},
		{CarID: 1, TotalPrice: 3500, Status: models.BookingStatusPending},
		{CarID: 1, TotalPrice: 9999, Status: models.BookingStatusCancelled},
	}
	for _, b := range bookings {
		if err := bookingRepo.Create(ctx, b); err != nil {
			t.Fatalf("seed booking: %v", err)
		}
	}

	dash, err := svc.Dashboard(ctx, PeriodMonth)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if dash.Bookings != 3 {
		t.Fatalf("bookings: got %d", dash.Bookings)
	}
	// Cancelled bookings never count towards revenue
	if dash.Revenue != 10500 {
		t.Fatalf("revenue: got %v", dash.Revenue)
	}
	if dash.BookingsByState[models.BookingStatusCancelled] != 1 {
		t.Fatalf("by status: %+v", dash.BookingsByState)
	}
	if len(dash.TopCars) != 1 || dash.TopCars[0].Bookings != 2 {
		t.Fatalf("top cars: %+v", dash.TopCars)
	}

	if _, err := svc.Dashboard(ctx, "decade"); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("bad period: got %v", err)
	}
}

func TestDashboardMonthlyBuckets(t *testing.T) {
	carRepo := newFakeCarRepo()
	bookingRepo := newFakeBookingRepo()
	userRepo := newFakeUserRepo()
	svc := NewAnalyticsService(bookingRepo, carRepo, userRepo)
	ctx := context.Background()

	now := time.Now()
	thisMonth := now.Format("2006-01")
	lastMonth := now.AddDate(0, -2, 0).Format("2006-01")

	seed := []struct {
		createdAt time.Time
		status    string
		price     float64
	}{
		{now, models.BookingStatusConfirmed, 7000},
		{now, models.BookingStatusCancelled, 9999},
		{now.AddDate(0, -2, 0), models.BookingStatusCompleted, 3500},
	}
	for _, s := range seed {
		b := &models.Booking{CarID: 1, TotalPrice: s.price, Status: s.status}
		if err := bookingRepo.Create(ctx, b); err != nil {
			t.Fatalf("seed booking: %v", err)
		}
		b.CreatedAt = s.createdAt
	}

	dash, err := svc.Dashboard(ctx, PeriodYear)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	if len(dash.ByMonth) != 2 {
		t.Fatalf("buckets: %+v", dash.ByMonth)
	}
	if dash.ByMonth[0].Month != lastMonth || dash.ByMonth[1].Month != thisMonth {
		t.Fatalf("bucket order: %+v", dash.ByMonth)
	}
	if dash.ByMonth[0].Bookings != 1 || dash.ByMonth[0].Revenue != 3500 {
		t.Fatalf("older bucket: %+v", dash.ByMonth[0])
	}
	// Cancelled bookings count as bookings but contribute no revenue
	if dash.ByMonth[1].Bookings != 2 || dash.ByMonth[1].Revenue != 7000 {
		t.Fatalf("current bucket: %+v", dash.ByMonth[1])
	}
}

func TestDashboardCarUsageSplit(t *testing.T) {
	carRepo := newFakeCarRepo()
	bookingRepo := newFakeBookingRepo()
	userRepo := newFakeUserRepo()
	svc := NewAnalyticsService(bookingRepo, carRepo, userRepo)
	ctx := context.Background()

	cars := []*models.Car{
		{Name: "Camry", Category: models.CategoryBusiness, Price: 3500, IsAvailable: true},
		{Name: "Polo", Category: models.CategorySedan, Price: 2200, IsAvailable: true},
		{Name: "X5", Category: models.CategorySUV, Price: 8500, IsAvailable: false},
	}
	for _, car := range cars {
		if err := carRepo.Create(ctx, car); err != nil {
			t.Fatalf("seed car: %v", err)
		}
	}

	// Camry is rented out; the X5 sits off the storefront
	bookings := []*models.Booking{
		{CarID: 1, TotalPrice: 7000, Status: models.BookingStatusConfirmed},
		{CarID: 1, TotalPrice: 3500, Status: models.BookingStatusConfirmed},
		{CarID: 2, TotalPrice: 2200, Status: models.BookingStatusPending},
	}
	for _, b := range bookings {
		if err := bookingRepo.Create(ctx, b); err != nil {
			t.Fatalf("seed booking: %v", err)
		}
	}

	dash, err := svc.Dashboard(ctx, PeriodMonth)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	want := CarUsage{InUse: 1, Free: 1, Maintenance: 1}
	if dash.CarUsage != want {
		t.Fatalf("car usage: got %+v, want %+v", dash.CarUsage, want)
	}
}

func TestCleanupRunOncePurgesExpired(t *testing.T) {
	sessionRepo := newFakeSessionRepo()
	resetRepo := newFakeResetRepo()
	svc := NewCleanupService(sessionRepo, resetRepo)
	ctx := context.Background()

	if err := sessionRepo.Create(ctx, &models.Session{
		UserID: 1, TokenHash: "live", ExpiresAt: time.Now().Add(time.Hour),
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := sessionRepo.Create(ctx, &models.Session{
		UserID: 1, TokenHash: "stale", ExpiresAt: time.Now().Add(-time.Hour),
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := resetRepo.Create(ctx, &models.PasswordResetToken{
		UserID: 1, TokenHash: "old", ExpiresAt: time.Now().Add(-time.Hour),
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	svc.RunOnce()

	if _, err := sessionRepo.GetByTokenHash(ctx, "live"); err != nil {
		t.Fatalf("live session must survive: %v", err)
	}
	if _, err := sessionRepo.GetByTokenHash(ctx, "stale"); err == nil {
		t.Fatalf("stale session must be purged")
	}
	if _, err := resetRepo.GetByTokenHash(ctx, "old"); err == nil {
		t.Fatalf("expired reset token must be purged")
	}
}
