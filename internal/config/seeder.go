package config

import (
	"log"

	"autopro-rental/internal/adapters/persistence/models"
	"autopro-rental/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders. Each seeder is idempotent and skips rows that
// already exist.
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedUsers(); err != nil {
		log.Printf("⚠️ User seeder skipped: %v", err)
	}
	if err := s.seedCars(); err != nil {
		log.Printf("⚠️ Car seeder skipped: %v", err)
	}
	if err := s.seedSettings(); err != nil {
		log.Printf("⚠️ Settings seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedUsers seeds the default back-office accounts
// This is for development/testing only
// In production, create admin through secure process
func (s *Seeder) seedUsers() error {
	var count int64
	s.db.Model(&models.User{}).Count(&count)
	if count > 0 {
		return nil // Users already exist
	}

	accounts := []struct {
		email, name, role, plain string
	}{
		{"admin@autopro.ru", "Administrator", "admin", "admin123"},
		{"manager@autopro.ru", "Manager", "manager", "manager123"},
	}

	for _, a := range accounts {
		hashedPassword, err := password.Hash(a.plain)
		if err != nil {
			return err
		}
		user := &models.User{
			Email:    a.email,
			Name:     a.name,
			Password: hashedPassword,
			Role:     a.role,
			IsActive: true,
		}
		if err := s.db.Create(user).Error; err != nil {
			return err
		}
		log.Printf("✅ User created: %s [%s]", user.Email, user.Role)
	}

	return nil
}

// seedCars seeds the demo fleet shown on the storefront
func (s *Seeder) seedCars() error {
	var count int64
	s.db.Model(&models.Car{}).Count(&count)
	if count > 0 {
		return nil // Fleet already seeded
	}

	cars := []models.Car{
		{
			Name:         "Toyota Camry",
			Category:     models.CategoryBusiness,
			Price:        3500,
			Image:        "/cars/toyota-camry.jpg",
			Description:  "Comfortable business sedan for city trips and work meetings",
			Features:     []string{"Automatic", "Climate control", "Heated seats"},
			Rating:       4.8,
			Year:         2023,
			Transmission: "automatic",
			Fuel:         "petrol",
			Seats:        5,
			IsAvailable:  true,
		},
		{
			Name:         "Volkswagen Polo",
			Category:     models.CategorySedan,
			Price:        2200,
			Image:        "/cars/vw-polo.jpg",
			Description:  "Economical and reliable sedan for everyday driving",
			Features:     []string{"Manual", "Air conditioning", "Bluetooth"},
			Rating:       4.6,
			Year:         2022,
			Transmission: "manual",
			Fuel:         "petrol",
			Seats:        5,
			IsAvailable:  true,
		},
		{
			Name:         "BMW X5",
			Category:     models.CategorySUV,
			Price:        8500,
			Image:        "/cars/bmw-x5.jpg",
			Description:  "Premium SUV with all-wheel drive and panoramic roof",
			Features:     []string{"Automatic", "All-wheel drive", "Leather interior", "Panoramic roof"},
			Rating:       4.9,
			Year:         2023,
			Transmission: "automatic",
			Fuel:         "petrol",
			Drive:        "awd",
			Seats:        5,
			IsAvailable:  true,
		},
		{
			Name:         "Kia Rio",
			Category:     models.CategoryHatchback,
			Price:        1800,
			Image:        "/cars/kia-rio.jpg",
			Description:  "Compact hatchback, easy to park and cheap to run",
			Features:     []string{"Manual", "Air conditioning", "USB"},
			Rating:       4.4,
			Year:         2021,
			Transmission: "manual",
			Fuel:         "petrol",
			Seats:        5,
			IsAvailable:  true,
		},
		{
			Name:         "Mercedes-Benz E-Class",
			Category:     models.CategoryBusiness,
			Price:        7200,
			Image:        "/cars/mercedes-e.jpg",
			Description:  "Executive sedan with premium interior and driver assistance",
			Features:     []string{"Automatic", "Leather interior", "Adaptive cruise", "Heated seats"},
			Rating:       4.9,
			Year:         2023,
			Transmission: "automatic",
			Fuel:         "petrol",
			Seats:        5,
			IsAvailable:  true,
		},
		{
			Name:         "Hyundai Creta",
			Category:     models.CategoryCrossover,
			Price:        3200,
			Image:        "/cars/hyundai-creta.jpg",
			Description:  "Popular crossover with high seating position and big boot",
			Features:     []string{"Automatic", "Climate control", "Rear camera"},
			Rating:       4.7,
			Year:         2022,
			Transmission: "automatic",
			Fuel:         "petrol",
			Seats:        5,
			IsAvailable:  true,
		},
	}

	for i := range cars {
		if err := s.db.Create(&cars[i]).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d cars", len(cars))
	return nil
}

// seedSettings seeds the single settings row
func (s *Seeder) seedSettings() error {
	var count int64
	s.db.Model(&models.SystemSettings{}).Count(&count)
	if count > 0 {
		return nil // Settings already exist
	}

	if err := s.db.Create(models.DefaultSettings()).Error; err != nil {
		return err
	}

	log.Println("✅ Default settings created")
	return nil
}
