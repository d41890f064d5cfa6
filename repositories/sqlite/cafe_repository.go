package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/upb/cafe-directory/models"
	"github.com/upb/cafe-directory/repositories"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CafeRepository implements the repositories.CafeRepository interface
type CafeRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewCafeRepository creates a new cafe repository
func NewCafeRepository(db *gorm.DB, logger *zap.Logger) repositories.CafeRepository {
	return &CafeRepository{db: db, logger: logger}
}

// Create inserts a new cafe
func (r *CafeRepository) Create(ctx context.Context, cafe *models.Cafe) error {
	if err := r.db.WithContext(ctx).Create(cafe).Error; err != nil {
		return fmt.Errorf("failed to create cafe: %w", err)
	}
	r.logger.Debug("cafe created", zap.Uint("id", cafe.ID), zap.String("name", cafe.Name))
	return nil
}

// GetByID retrieves a cafe by id
func (r *CafeRepository) GetByID(ctx context.Context, id uint) (*models.Cafe, error) {
	var cafe models.Cafe
	err := r.db.WithContext(ctx).First(&cafe, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cafe by id: %w", err)
	}
	return &cafe, nil
}

// GetByName retrieves a cafe by its stored name
func (r *CafeRepository) GetByName(ctx context.Context, name string) (*models.Cafe, error) {
	var cafe models.Cafe
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&cafe).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cafe by name: %w", err)
	}
	return &cafe, nil
}

// List retrieves all cafes ordered by name
func (r *CafeRepository) List(ctx context.Context) ([]*models.Cafe, error) {
	var cafes []*models.Cafe
	if err := r.db.WithContext(ctx).Order("name").Find(&cafes).Error; err != nil {
		return nil, fmt.Errorf("failed to list cafes: %w", err)
	}
	return cafes, nil
}

// Update persists changes to an existing cafe
func (r *CafeRepository) Update(ctx context.Context, cafe *models.Cafe) error {
	if err := r.db.WithContext(ctx).Save(cafe).Error; err != nil {
		return fmt.Errorf("failed to update cafe: %w", err)
	}
	r.logger.Debug("cafe updated", zap.Uint("id", cafe.ID))
	return nil
}

// Delete removes a cafe and returns the number of rows affected
func (r *CafeRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Cafe{}, id)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete cafe: %w", res.Error)
	}
	return res.RowsAffected, nil
}
