package services

import (
	"context"
	"errors"
	"log"
	"time"

	"autopro-rental/internal/adapters/persistence/models"
	"autopro-rental/internal/adapters/persistence/repositories"
	"autopro-rental/internal/core/catalog"
	"autopro-rental/internal/pkg/pagination"

	"gorm.io/gorm"
)

// Car errors
var (
	ErrCarNotFound     = errors.New("car not found")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidSort     = errors.New("invalid sort key")
	ErrInvalidPrice    = errors.New("price must be positive")
	ErrInvalidYear     = errors.New("invalid model year")
)

// CarService handles fleet and storefront catalog logic
type CarService struct {
	carRepo repositories.CarRepository
}

// NewCarService creates a new car service
func NewCarService(carRepo repositories.CarRepository) *CarService {
	return &CarService{carRepo: carRepo}
}

// CatalogInput is the storefront catalog query. Zero values mean "no filter";
// the sort key defaults to the recommended order.
type CatalogInput struct {
	Search   string
	Category string
	MinPrice float64
	MaxPrice float64
	Sort     string
}

// Catalog filters and sorts the available fleet for the storefront. The
// filter/sort pipeline runs in memory over the full available fleet so its
// semantics stay identical to the pure engine.
func (s *CarService) Catalog(ctx context.Context, input *CatalogInput, params *pagination.Params) ([]*models.Car, int64, error) {
	cfg := catalog.DefaultConfig()
	if input.Search != "" {
		cfg.Search = input.Search
	}
	if input.Category != "" {
		if input.Category != catalog.CategoryAll && !models.ValidCategory(input.Category) {
			return nil, 0, ErrInvalidCategory
		}
		cfg.Category = input.Category
	}
	if input.MinPrice > 0 {
		cfg.MinPrice = input.MinPrice
	}
	if input.MaxPrice > 0 {
		cfg.MaxPrice = input.MaxPrice
	}
	if input.Sort != "" {
		if !catalog.ValidSort(input.Sort) {
			return nil, 0, ErrInvalidSort
		}
		cfg.Sort = input.Sort
	}

	cars, err := s.carRepo.ListAvailable(ctx)
	if err != nil {
		return nil, 0, err
	}

	byID := make(map[uint]*models.Car, len(cars))
	vehicles := make([]catalog.Vehicle, 0, len(cars))
	for _, car := range cars {
		byID[car.ID] = car
		vehicles = append(vehicles, catalog.Vehicle{
			ID:          car.ID,
			Name:        car.Name,
			Category:    car.Category,
			Price:       car.Price,
			Description: car.Description,
			Rating:      car.Rating,
			Year:        car.Year,
		})
	}

	result := catalog.Query(vehicles, cfg)
	total := int64(len(result))

	// Paginate the ordered result
	start := params.Offset
	if start > len(result) {
		start = len(result)
	}
	end := start + params.Limit
	if end > len(result) {
		end = len(result)
	}

	page := make([]*models.Car, 0, end-start)
	for _, v := range result[start:end] {
		page = append(page, byID[v.ID])
	}
	return page, total, nil
}

// GetByID gets a car by ID
func (s *CarService) GetByID(ctx context.Context, id uint) (*models.Car, error) {
	car, err := s.carRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, err
	}
	return car, nil
}

// List lists cars for the back office
func (s *CarService) List(ctx context.Context, filter repositories.CarFilter, params *pagination.Params) ([]*models.Car, int64, error) {
	if filter.Category != "" && !models.ValidCategory(filter.Category) {
		return nil, 0, ErrInvalidCategory
	}
	return s.carRepo.List(ctx, filter, params.Offset, params.Limit)
}

// CarInput represents car create/update input
type CarInput struct {
	Name         string   `json:"name" validate:"required"`
	Category     string   `json:"category" validate:"required"`
	Price        float64  `json:"price" validate:"required"`
	Image        string   `json:"image"`
	Description  string   `json:"description"`
	Features     []string `json:"features"`
	Year         int      `json:"year" validate:"required"`
	Transmission string   `json:"transmission"`
	Fuel         string   `json:"fuel"`
	Engine       string   `json:"engine"`
	Drive        string   `json:"drive"`
	Seats        int      `json:"seats"`
	IsAvailable  *bool    `json:"is_available"`
}

func (s *CarService) validateInput(input *CarInput) error {
	if !models.ValidCategory(input.Category) {
		return ErrInvalidCategory
	}
	if input.Price <= 0 {
		return ErrInvalidPrice
	}
	if input.Year < models.MinYear || input.Year > time.Now().Year()+1 {
		return ErrInvalidYear
	}
	return nil
}

// Create creates a new car
func (s *CarService) Create(ctx context.Context, input *CarInput) (*models.Car, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	car := &models.Car{
		Name:         input.Name,
		Category:     input.Category,
		Price:        input.Price,
		Image:        input.Image,
		Description:  input.Description,
		Features:     input.Features,
		Year:         input.Year,
		Transmission: input.Transmission,
		Fuel:         input.Fuel,
		Engine:       input.Engine,
		Drive:        input.Drive,
		Seats:        input.Seats,
		IsAvailable:  true,
	}
	if input.IsAvailable != nil {
		car.IsAvailable = *input.IsAvailable
	}

	if err := s.carRepo.Create(ctx, car); err != nil {
		return nil, err
	}

	log.Printf("✅ Car created: %s (ID: %d)", car.Name, car.ID)
	return car, nil
}

// Update updates an existing car
func (s *CarService) Update(ctx context.Context, id uint, input *CarInput) (*models.Car, error) {
	car, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	car.Name = input.Name
	car.Category = input.Category
	car.Price = input.Price
	car.Image = input.Image
	car.Description = input.Description
	car.Features = input.Features
	car.Year = input.Year
	car.Transmission = input.Transmission
	car.Fuel = input.Fuel
	car.Engine = input.Engine
	car.Drive = input.Drive
	car.Seats = input.Seats
	if input.IsAvailable != nil {
		car.IsAvailable = *input.IsAvailable
	}

	if err := s.carRepo.Update(ctx, car); err != nil {
		return nil, err
	}

	log.Printf("✅ Car updated: %s (ID: %d)", car.Name, car.ID)
	return car, nil
}

// SetAvailability toggles whether a car shows up on the storefront
func (s *CarService) SetAvailability(ctx context.Context, id uint, available bool) (*models.Car, error) {
	car, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	car.IsAvailable = available
	if err := s.carRepo.Update(ctx, car); err != nil {
		return nil, err
	}

	log.Printf("✅ Car availability set: %s → %v", car.Name, available)
	return car, nil
}

// Delete soft deletes a car
func (s *CarService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.carRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Printf("✅ Car deleted (ID: %d)", id)
	return nil
}
