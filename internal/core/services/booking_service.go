package services

import (
	"context"
	"errors"
	"log"
	"time"

	"autopro-rental/internal/adapters/persistence/models"
	"autopro-rental/internal/adapters/persistence/repositories"
	"autopro-rental/internal/pkg/pagination"
)

// Booking errors
var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrInvalidStatus     = errors.New("invalid booking status")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrInvalidDateRange  = errors.New("end date must be after start date")
	ErrCarUnavailable    = errors.New("car is not available for booking")
)

// statusTransitions defines which status changes the back office may apply.
// Completed and cancelled are terminal.
var statusTransitions = map[string][]string{
	models.BookingStatusPending:   {models.BookingStatusConfirmed, models.BookingStatusCancelled},
	models.BookingStatusConfirmed: {models.BookingStatusCompleted, models.BookingStatusCancelled},
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to string) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ValidBookingStatus reports whether s is a known booking status.
func ValidBookingStatus(s string) bool {
	switch s {
	case models.BookingStatusPending, models.BookingStatusConfirmed,
		models.BookingStatusCompleted, models.BookingStatusCancelled:
		return true
	}
	return false
}

// BookingService handles rental bookings
type BookingService struct {
	bookingRepo repositories.BookingRepository
	carRepo     repositories.CarRepository
}

// NewBookingService creates a new booking service
func NewBookingService(bookingRepo repositories.BookingRepository, carRepo repositories.CarRepository) *BookingService {
	return &BookingService{bookingRepo: bookingRepo, carRepo: carRepo}
}

// CreateBookingInput represents a storefront booking request
type CreateBookingInput struct {
	CarID         uint   `json:"car_id" validate:"required"`
	CustomerName  string `json:"customer_name" validate:"required"`
	CustomerPhone string `json:"customer_phone" validate:"required"`
	CustomerEmail string `json:"customer_email"`
	StartDate     string `json:"start_date" validate:"required"`
	EndDate       string `json:"end_date" validate:"required"`
	Note          string `json:"note"`
}

const dateLayout = "2006-01-02"

// Create registers a new rental intent from the storefront. The total price
// is computed server side from the car's daily rate; same-day rentals count
// as one day.
func (s *BookingService) Create(ctx context.Context, input *CreateBookingInput) (*models.Booking, error) {
	start, err := time.Parse(dateLayout, input.StartDate)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	end, err := time.Parse(dateLayout, input.EndDate)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	car, err := s.carRepo.GetByID(ctx, input.CarID)
	if err != nil {
		return nil, ErrCarNotFound
	}
	if !car.IsAvailable {
		return nil, ErrCarUnavailable
	}

	days := int(end.Sub(start).Hours()/24) + 1

	booking := &models.Booking{
		CarID:         car.ID,
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
		CustomerEmail: input.CustomerEmail,
		StartDate:     start,
		EndDate:       end,
		Days:          days,
		TotalPrice:    float64(days) * car.Price,
		Status:        models.BookingStatusPending,
		Note:          input.Note,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}
	booking.Car = car

	log.Printf("✅ Booking created: %s → %s (ID: %d)", input.CustomerName, car.Name, booking.ID)
	return booking, nil
}

// GetByID gets a booking by ID
func (s *BookingService) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

// List lists bookings with optional status filter
func (s *BookingService) List(ctx context.Context, status string, params *pagination.Params) ([]*models.Booking, int64, error) {
	if status != "" && !ValidBookingStatus(status) {
		return nil, 0, ErrInvalidStatus
	}
	return s.bookingRepo.List(ctx, status, params.Offset, params.Limit)
}

// UpdateStatus moves a booking through its lifecycle
func (s *BookingService) UpdateStatus(ctx context.Context, id uint, status string) (*models.Booking, error) {
	if !ValidBookingStatus(status) {
		return nil, ErrInvalidStatus
	}

	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(booking.Status, status) {
		return nil, ErrInvalidTransition
	}

	booking.Status = status
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	log.Printf("✅ Booking %d status → %s", booking.ID, status)
	return booking, nil
}
