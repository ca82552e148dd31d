package repositories

import (
	"context"
	"time"

	"autopro-rental/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, search, role string, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountByRole(ctx context.Context, role string) (int64, error)
	CountActiveByRole(ctx context.Context, role string) (int64, error)
}

// SessionRepository defines session repository interface
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error)
	GetByUserID(ctx context.Context, userID uint) ([]*models.Session, error)
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// PasswordResetRepository defines password reset token repository interface
type PasswordResetRepository interface {
	Create(ctx context.Context, token *models.PasswordResetToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.PasswordResetToken, error)
	MarkUsed(ctx context.Context, id uint) error
	InvalidateByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// CarFilter narrows down car listings for the back office.
type CarFilter struct {
	Search        string
	Category      string
	OnlyAvailable bool
}

// CarRepository defines car repository interface
type CarRepository interface {
	Create(ctx context.Context, car *models.Car) error
	GetByID(ctx context.Context, id uint) (*models.Car, error)
	Update(ctx context.Context, car *models.Car) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter CarFilter, offset, limit int) ([]*models.Car, int64, error)
	ListAvailable(ctx context.Context) ([]*models.Car, error)
	CountByCategory(ctx context.Context) (map[string]int64, error)
	CountAvailability(ctx context.Context) (available, total int64, err error)
}

// BookingRepository defines booking repository interface
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id uint) (*models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
	List(ctx context.Context, status string, offset, limit int) ([]*models.Booking, int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
	RevenueSince(ctx context.Context, since time.Time) (float64, error)
	MonthlyStatsSince(ctx context.Context, since time.Time) ([]MonthlyBucket, error)
	CountCarsInUse(ctx context.Context) (int64, error)
	TopCarsSince(ctx context.Context, since time.Time, limit int) ([]CarBookingCount, error)
}

// CarBookingCount is an aggregate row for analytics.
type CarBookingCount struct {
	CarID    uint    `json:"car_id"`
	CarName  string  `json:"car_name"`
	Bookings int64   `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}

// MonthlyBucket is one calendar-month aggregate row ("2026-08") for the
// analytics charts. Cancelled bookings count as bookings but never as revenue.
type MonthlyBucket struct {
	Month    string  `json:"month"`
	Bookings int64   `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}

// SettingsRepository defines system settings repository interface
type SettingsRepository interface {
	Get(ctx context.Context) (*models.SystemSettings, error)
	Save(ctx context.Context, settings *models.SystemSettings) error
}
