package repositories

import (
	"context"

	"autopro-rental/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// carRepository implements CarRepository interface
type carRepository struct {
	db *gorm.DB
}

// NewCarRepository creates a new car repository
func NewCarRepository(db *gorm.DB) CarRepository {
	return &carRepository{db: db}
}

// Create creates a new car
func (r *carRepository) Create(ctx context.Context, car *models.Car) error {
	return r.db.WithContext(ctx).Create(car).Error
}

// GetByID gets a car by ID
func (r *carRepository) GetByID(ctx context.Context, id uint) (*models.Car, error) {
	var car models.Car
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&car).Error
	if err != nil {
		return nil, err
	}
	return &car, nil
}

// Update updates a car
func (r *carRepository) Update(ctx context.Context, car *models.Car) error {
	return r.db.WithContext(ctx).Save(car).Error
}

// Delete soft deletes a car
func (r *carRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Car{}, id).Error
}

// List lists cars for the back office with filters and pagination
func (r *carRepository) List(ctx context.Context, filter CarFilter, offset, limit int) ([]*models.Car, int64, error) {
	var cars []*models.Car
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Car{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.OnlyAvailable {
		query = query.Where("is_available = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("id ASC").Offset(offset).Limit(limit).Find(&cars).Error; err != nil {
		return nil, 0, err
	}

	return cars, total, nil
}

// ListAvailable returns every car shown on the storefront, in insertion order.
// Filtering and sorting happen in memory afterwards, so the catalog order here
// is the "recommended" baseline.
func (r *carRepository) ListAvailable(ctx context.Context) ([]*models.Car, error) {
	var cars []*models.Car
	err := r.db.WithContext(ctx).
		Where("is_available = ?", true).
		Order("id ASC").
		Find(&cars).Error
	if err != nil {
		return nil, err
	}
	return cars, nil
}

// CountAvailability counts storefront-visible cars and the whole fleet
func (r *carRepository) CountAvailability(ctx context.Context) (available, total int64, err error) {
	if err = r.db.WithContext(ctx).Model(&models.Car{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err = r.db.WithContext(ctx).
		Model(&models.Car{}).
		Where("is_available = ?", true).
		Count(&available).Error
	if err != nil {
		return 0, 0, err
	}
	return available, total, nil
}

// CountByCategory counts cars per category
func (r *carRepository) CountByCategory(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Category string
		Count    int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Car{}).
		Select("category, COUNT(*) as count").
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Category] = row.Count
	}
	return counts, nil
}
