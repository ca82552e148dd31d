package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table
type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Email       string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Phone       string         `gorm:"size:30" json:"phone"`
	Avatar      string         `gorm:"size:255" json:"avatar"`
	Password    string         `gorm:"size:255;not null" json:"-"`
	Role        string         `gorm:"size:20;default:'customer'" json:"role"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time     `json:"last_login_at"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID          uint       `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Phone       string     `json:"phone,omitempty"`
	Avatar      string     `json:"avatar,omitempty"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Phone:       u.Phone,
		Avatar:      u.Avatar,
		Role:        u.Role,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// Session represents sessions table — the stored login credential. One row is
// created per login with a fixed validity window and removed on logout or
// once it expires.
type Session struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (Session) TableName() string {
	return "sessions"
}

func (s *Session) IsRevoked() bool {
	return s.RevokedAt != nil
}

func (s *Session) IsExpired() bool {
	return !time.Now().Before(s.ExpiresAt)
}

// PasswordResetToken represents password_reset_tokens table
type PasswordResetToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	UsedAt    *time.Time `json:"used_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}

func (t *PasswordResetToken) IsUsed() bool {
	return t.UsedAt != nil
}

func (t *PasswordResetToken) IsExpired() bool {
	return !time.Now().Before(t.ExpiresAt)
}

// ============================================================
// Fleet Tables
// ============================================================

// Vehicle categories
const (
	CategorySedan     = "sedan"
	CategorySUV       = "suv"
	CategoryHatchback = "hatchback"
	CategoryBusiness  = "business"
	CategoryCrossover = "crossover"
)

// ValidCategory reports whether c is a known vehicle category.
func ValidCategory(c string) bool {
	switch c {
	case CategorySedan, CategorySUV, CategoryHatchback, CategoryBusiness, CategoryCrossover:
		return true
	}
	return false
}

// MinYear is the oldest model year the fleet accepts.
const MinYear = 1990

// Car represents cars table
type Car struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"size:100;not null" json:"name"`
	Category     string         `gorm:"size:20;not null;index" json:"category"`
	Price        float64        `gorm:"type:decimal(10,2);not null" json:"price"`
	Image        string         `gorm:"size:500" json:"image"`
	Description  string         `gorm:"type:text" json:"description"`
	Features     []string       `gorm:"serializer:json" json:"features"`
	Rating       float64        `gorm:"type:decimal(3,1);default:0" json:"rating"`
	Year         int            `gorm:"not null" json:"year"`
	Transmission string         `gorm:"size:30" json:"transmission"`
	Fuel         string         `gorm:"size:30" json:"fuel"`
	Engine       string         `gorm:"size:60" json:"engine,omitempty"`
	Drive        string         `gorm:"size:30" json:"drive,omitempty"`
	Seats        int            `json:"seats,omitempty"`
	IsAvailable  bool           `gorm:"default:true" json:"is_available"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Car) TableName() string {
	return "cars"
}

// ============================================================
// Booking Tables
// ============================================================

// Booking statuses
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// Booking represents bookings table — a rental intent submitted from the
// storefront and managed from the back office.
type Booking struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	CarID         uint           `gorm:"not null;index" json:"car_id"`
	CustomerName  string         `gorm:"size:100;not null" json:"customer_name"`
	CustomerPhone string         `gorm:"size:30;not null" json:"customer_phone"`
	CustomerEmail string         `gorm:"size:100" json:"customer_email"`
	StartDate     time.Time      `gorm:"type:date;not null" json:"start_date"`
	EndDate       time.Time      `gorm:"type:date;not null" json:"end_date"`
	Days          int            `gorm:"not null" json:"days"`
	TotalPrice    float64        `gorm:"type:decimal(12,2);not null" json:"total_price"`
	Status        string         `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Note          string         `gorm:"type:text" json:"note"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Car *Car `gorm:"foreignKey:CarID" json:"car,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}

// BookingResponse DTO
type BookingResponse struct {
	ID            uint      `json:"id"`
	CarID         uint      `json:"car_id"`
	CarName       string    `json:"car_name,omitempty"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	CustomerEmail string    `json:"customer_email,omitempty"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	Days          int       `json:"days"`
	TotalPrice    float64   `json:"total_price"`
	Status        string    `json:"status"`
	Note          string    `json:"note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (b *Booking) ToResponse() *BookingResponse {
	resp := &BookingResponse{
		ID:            b.ID,
		CarID:         b.CarID,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		CustomerEmail: b.CustomerEmail,
		StartDate:     b.StartDate.Format("2006-01-02"),
		EndDate:       b.EndDate.Format("2006-01-02"),
		Days:          b.Days,
		TotalPrice:    b.TotalPrice,
		Status:        b.Status,
		Note:          b.Note,
		CreatedAt:     b.CreatedAt,
	}
	if b.Car != nil {
		resp.CarName = b.Car.Name
	}
	return resp
}

// ============================================================
// Settings Table
// ============================================================

// SystemSettings represents the single-row system_settings table
type SystemSettings struct {
	ID                   uint      `gorm:"primaryKey" json:"-"`
	SiteName             string    `gorm:"size:100" json:"site_name"`
	SiteDescription      string    `gorm:"size:255" json:"site_description"`
	ContactEmail         string    `gorm:"size:100" json:"contact_email"`
	SupportPhone         string    `gorm:"size:30" json:"support_phone"`
	Currency             string    `gorm:"size:10" json:"currency"`
	Locale               string    `gorm:"size:10" json:"locale"`
	Timezone             string    `gorm:"size:50" json:"timezone"`
	EmailNotifications   bool      `json:"email_notifications"`
	SMSNotifications     bool      `json:"sms_notifications"`
	NotifyOnNewBooking   bool      `json:"notify_on_new_booking"`
	NotifyOnCancellation bool      `json:"notify_on_cancellation"`
	PrimaryColor         string    `gorm:"size:20" json:"primary_color"`
	SecondaryColor       string    `gorm:"size:20" json:"secondary_color"`
	Logo                 string    `gorm:"size:255" json:"logo"`
	Favicon              string    `gorm:"size:255" json:"favicon"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SystemSettings) TableName() string {
	return "system_settings"
}

// DefaultSettings returns the settings used until an admin changes them.
func DefaultSettings() *SystemSettings {
	return &SystemSettings{
		ID:                   1,
		SiteName:             "AutoPro",
		SiteDescription:      "Car rental service",
		ContactEmail:         "info@autopro.ru",
		SupportPhone:         "+7 (800) 555-35-35",
		Currency:             "₽",
		Locale:               "ru-RU",
		Timezone:             "Europe/Moscow",
		EmailNotifications:   true,
		SMSNotifications:     false,
		NotifyOnNewBooking:   true,
		NotifyOnCancellation: true,
		PrimaryColor:         "#3b82f6",
		SecondaryColor:       "#6366f1",
		Logo:                 "/logo.svg",
		Favicon:              "/favicon.ico",
	}
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Session{},
		&PasswordResetToken{},
		&Car{},
		&Booking{},
		&SystemSettings{},
	)
}
