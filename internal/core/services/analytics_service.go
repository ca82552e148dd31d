package services

import (
	"context"
	"errors"
	"time"

	"autopro-rental/internal/adapters/persistence/repositories"
)

// Analytics errors
var (
	ErrInvalidPeriod = errors.New("invalid analytics period")
)

// Analytics periods
const (
	PeriodMonth   = "month"
	PeriodQuarter = "quarter"
	PeriodYear    = "year"
)

// PeriodStart returns the start of the reporting window ending at now.
func PeriodStart(period string, now time.Time) (time.Time, error) {
	switch period {
	case PeriodMonth:
		return now.AddDate(0, -1, 0), nil
	case PeriodQuarter:
		return now.AddDate(0, -3, 0), nil
	case PeriodYear:
		return now.AddDate(-1, 0, 0), nil
	}
	return time.Time{}, ErrInvalidPeriod
}

// AnalyticsService aggregates back-office dashboard figures
type AnalyticsService struct {
	bookingRepo repositories.BookingRepository
	carRepo     repositories.CarRepository
	userRepo    repositories.UserRepository
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(
	bookingRepo repositories.BookingRepository,
	carRepo repositories.CarRepository,
	userRepo repositories.UserRepository,
) *AnalyticsService {
	return &AnalyticsService{
		bookingRepo: bookingRepo,
		carRepo:     carRepo,
		userRepo:    userRepo,
	}
}

// CarUsage splits the fleet into cars with an active booking, idle available
// cars, and cars pulled from the storefront (maintenance or otherwise).
type CarUsage struct {
	InUse       int64 `json:"in_use"`
	Free        int64 `json:"free"`
	Maintenance int64 `json:"maintenance"`
}

// Dashboard is the analytics payload for one reporting period
type Dashboard struct {
	Period          string                         `json:"period"`
	From            time.Time                      `json:"from"`
	To              time.Time                      `json:"to"`
	Bookings        int64                          `json:"bookings"`
	Revenue         float64                        `json:"revenue"`
	ByMonth         []repositories.MonthlyBucket   `json:"by_month"`
	CarUsage        CarUsage                       `json:"car_usage"`
	BookingsByState map[string]int64               `json:"bookings_by_status"`
	FleetByCategory map[string]int64               `json:"fleet_by_category"`
	TopCars         []repositories.CarBookingCount `json:"top_cars"`
}

// Dashboard builds the analytics summary for the given period
func (s *AnalyticsService) Dashboard(ctx context.Context, period string) (*Dashboard, error) {
	now := time.Now()
	since, err := PeriodStart(period, now)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.CountSince(ctx, since)
	if err != nil {
		return nil, err
	}
	revenue, err := s.bookingRepo.RevenueSince(ctx, since)
	if err != nil {
		return nil, err
	}
	byMonth, err := s.bookingRepo.MonthlyStatsSince(ctx, since)
	if err != nil {
		return nil, err
	}
	usage, err := s.carUsage(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.bookingRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.carRepo.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}
	topCars, err := s.bookingRepo.TopCarsSince(ctx, since, 5)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Period:          period,
		From:            since,
		To:              now,
		Bookings:        bookings,
		Revenue:         revenue,
		ByMonth:         byMonth,
		CarUsage:        usage,
		BookingsByState: byStatus,
		FleetByCategory: byCategory,
		TopCars:         topCars,
	}, nil
}

// carUsage derives the fleet split from availability flags and confirmed
// bookings. There is no dedicated maintenance status; a car taken off the
// storefront counts as maintenance.
func (s *AnalyticsService) carUsage(ctx context.Context) (CarUsage, error) {
	available, total, err := s.carRepo.CountAvailability(ctx)
	if err != nil {
		return CarUsage{}, err
	}
	inUse, err := s.bookingRepo.CountCarsInUse(ctx)
	if err != nil {
		return CarUsage{}, err
	}
	// An unavailable car can still carry a confirmed booking; clamp so the
	// three shares always sum to the fleet size.
	if inUse > available {
		inUse = available
	}
	return CarUsage{
		InUse:       inUse,
		Free:        available - inUse,
		Maintenance: total - available,
	}, nil
}
