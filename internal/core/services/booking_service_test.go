package services

import (
	"context"
	"errors"
	"testing"

	"autopro-rental/internal/adapters/persistence/models"
	"autopro-rental/internal/pkg/pagination"
)

func newBookingFixture(t *testing.T) (*BookingService, *fakeCarRepo) {
	t.Helper()
	carRepo := newFakeCarRepo()
	bookingRepo := newFakeBookingRepo()

	if err := carRepo.Create(context.Background(), &models.Car{
		Name:        "Toyota Camry",
		Category:    models.CategoryBusiness,
		Price:       3500,
		Year:        2023,
		IsAvailable: true,
	}); err != nil {
		t.Fatalf("seed car: %v", err)
	}

	return NewBookingService(bookingRepo, carRepo), carRepo
}

func TestCreateBookingComputesPrice(t *testing.T) {
	svc, _ := newBookingFixture(t)
	ctx := context.Background()

	booking, err := svc.Create(ctx, &CreateBookingInput{
		CarID:         1,
		CustomerName:  "Ivan Petrov",
		CustomerPhone: "+7 900 000-00-00",
		StartDate:     "2026-09-01",
		EndDate:       "2026-09-03",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if booking.Days != 3 {
		t.Fatalf("days: got %d", booking.Days)
	}
	if booking.TotalPrice != 3*3500 {
		t.Fatalf("total: got %v", booking.TotalPrice)
	}
	if booking.Status != models.BookingStatusPending {
		t.Fatalf("new booking must be pending, got %q", booking.Status)
	}
}

func TestCreateBookingSameDayCountsOneDay(t *testing.T) {
	svc, _ := newBookingFixture(t)

	booking, err := svc.Create(context.Background(), &CreateBookingInput{
		CarID:         1,
		CustomerName:  "Ivan Petrov",
		CustomerPhone: "+7 900 000-00-00",
		StartDate:     "2026-09-01",
		EndDate:       "2026-09-01",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if booking.Days != 1 || booking.TotalPrice != 3500 {
		t.Fatalf("same-day rental: days=%d total=%v", booking.Days, booking.TotalPrice)
	}
}

func TestCreateBookingRejectsBadInput(t *testing.T) {
	svc, carRepo := newBookingFixture(t)
	ctx := context.Background()

	base := CreateBookingInput{
		CarID:         1,
		CustomerName:  "Ivan Petrov",
		CustomerPhone: "+7 900 000-00-00",
		StartDate:     "2026-09-03",
		EndDate:       "2026-09-01",
	}
	if _, err := svc.Create(ctx, &base); !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("reversed dates: got %v", err)
	}

	bad := base
	bad.StartDate, bad.EndDate = "not-a-date", "2026-09-01"
	if _, err := svc.Create(ctx, &bad); !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("malformed date: got %v", err)
	}

	missing := base
	missing.CarID, missing.StartDate, missing.EndDate = 99, "2026-09-01", "2026-09-03"
	if _, err := svc.Create(ctx, &missing); !errors.Is(err, ErrCarNotFound) {
		t.Fatalf("missing car: got %v", err)
	}

	car, _ := carRepo.GetByID(ctx, 1)
	car.IsAvailable = false
	ok := base
	ok.StartDate, ok.EndDate = "2026-09-01", "2026-09-03"
	if _, err := svc.Create(ctx, &ok); !errors.Is(err, ErrCarUnavailable) {
		t.Fatalf("unavailable car: got %v", err)
	}
}

func TestBookingStatusTransitions(t *testing.T) {
	svc, _ := newBookingFixture(t)
	ctx := context.Background()

	booking, err := svc.Create(ctx, &CreateBookingInput{
		CarID:         1,
		CustomerName:  "Ivan Petrov",
		CustomerPhone: "+7 900 000-00-00",
		StartDate:     "2026-09-01",
		EndDate:       "2026-09-03",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// pending → completed is not allowed
	if _, err := svc.UpdateStatus(ctx, booking.ID, models.BookingStatusCompleted); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("pending→completed: got %v", err)
	}

	if _, err := svc.UpdateStatus(ctx, booking.ID, models.BookingStatusConfirmed); err != nil {
		t.Fatalf("pending→confirmed: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, booking.ID, models.BookingStatusPending); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("confirmed→pending: got %v", err)
	}
	updated, err := svc.UpdateStatus(ctx, booking.ID, models.BookingStatusCompleted)
	if err != nil {
		t.Fatalf("confirmed→completed: %v", err)
	}
	if updated.Status != models.BookingStatusCompleted {
		t.Fatalf("status: got %q", updated.Status)
	}

	// completed is terminal
	if _, err := svc.UpdateStatus(ctx, booking.ID, models.BookingStatusCancelled); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("completed must be terminal, got %v", err)
	}

	if _, err := svc.UpdateStatus(ctx, booking.ID, "shipped"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("unknown status: got %v", err)
	}
}

func TestListBookingsFiltersByStatus(t *testing.T) {
	svc, _ := newBookingFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(ctx, &CreateBookingInput{
			CarID:         1,
			CustomerName:  "Ivan Petrov",
			CustomerPhone: "+7 900 000-00-00",
			StartDate:     "2026-09-01",
			EndDate:       "2026-09-03",
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if _, err := svc.UpdateStatus(ctx, 1, models.BookingStatusConfirmed); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	confirmed, total, err := svc.List(ctx, models.BookingStatusConfirmed, pagination.New(1, 10))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(confirmed) != 1 {
		t.Fatalf("confirmed: total=%d len=%d", total, len(confirmed))
	}

	if _, _, err := svc.List(ctx, "bogus", pagination.New(1, 10)); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("bogus status filter: got %v", err)
	}
}
