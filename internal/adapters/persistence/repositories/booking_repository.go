package repositories

import (
	"context"
	"time"

	"autopro-rental/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// bookingRepository implements BookingRepository interface
type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

// Create creates a new booking
func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

// GetByID gets a booking by ID with its car preloaded
func (r *bookingRepository) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).Preload("Car").Where("id = ?", id).First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// Update updates a booking
func (r *bookingRepository) Update(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Save(booking).Error
}

// List lists bookings with optional status filter and pagination
func (r *bookingRepository) List(ctx context.Context, status string, offset, limit int) ([]*models.Booking, int64, error) {
	var bookings []*models.Booking
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Booking{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Car").Order("created_at DESC").Offset(offset).Limit(limit).Find(&bookings).Error; err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// CountByStatus counts bookings per status
func (r *bookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// CountSince counts bookings created after the given time
func (r *bookingRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}

// RevenueSince sums total price of non-cancelled bookings created after the given time
func (r *bookingRepository) RevenueSince(ctx context.Context, since time.Time) (float64, error) {
	var revenue float64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("COALESCE(SUM(total_price), 0)").
		Where("created_at >= ?", since).
		Where("status <> ?", models.BookingStatusCancelled).
		Scan(&revenue).Error
	return revenue, err
}

// MonthlyStatsSince buckets bookings and revenue per calendar month
func (r *bookingRepository) MonthlyStatsSince(ctx context.Context, since time.Time) ([]MonthlyBucket, error) {
	var rows []MonthlyBucket
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("DATE_FORMAT(created_at, '%Y-%m') as month, COUNT(*) as bookings, COALESCE(SUM(CASE WHEN status <> ? THEN total_price ELSE 0 END), 0) as revenue",
			models.BookingStatusCancelled).
		Where("created_at >= ?", since).
		Group("month").
		Order("month ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountCarsInUse counts distinct cars with a confirmed booking
func (r *bookingRepository) CountCarsInUse(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("status = ?", models.BookingStatusConfirmed).
		Distinct("car_id").
		Count(&count).Error
	return count, err
}

// TopCarsSince returns the most booked cars in the period
func (r *bookingRepository) TopCarsSince(ctx context.Context, since time.Time, limit int) ([]CarBookingCount, error) {
	var rows []CarBookingCount
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("bookings.car_id, cars.name as car_name, COUNT(*) as bookings, COALESCE(SUM(bookings.total_price), 0) as revenue").
		Joins("JOIN cars ON cars.id = bookings.car_id").
		Where("bookings.created_at >= ?", since).
		Where("bookings.status <> ?", models.BookingStatusCancelled).
		Group("bookings.car_id, cars.name").
		Order("bookings DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
