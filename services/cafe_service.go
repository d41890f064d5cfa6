package services

import (
	"context"
	"errors"

	"github.com/upb/cafe-directory/models"
	"github.com/upb/cafe-directory/repositories"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CafeInput carries the validated form values for creating or editing a
// directory entry. Name and Location arrive as typed by the user; the
// service applies the documented normalization before storage.
type CafeInput struct {
	Name         string
	MapURL       string
	ImgURL       string
	Location     string
	Seats        string
	HasToilet    bool
	HasWifi      bool
	HasSockets   bool
	CanTakeCalls bool
	CoffeePrice  float64
}

// CafeService implements directory-entry operations
type CafeService struct {
	cafes  repositories.CafeRepository
	logger *zap.Logger
}

// NewCafeService creates a new cafe service
func NewCafeService(cafes repositories.CafeRepository, logger *zap.Logger) *CafeService {
	return &CafeService{cafes: cafes, logger: logger}
}

// List returns all cafes ordered by name
func (s *CafeService) List(ctx context.Context) ([]*models.Cafe, error) {
	return s.cafes.List(ctx)
}

// Get returns a single cafe or ErrCafeNotFound
func (s *CafeService) Get(ctx context.Context, id uint) (*models.Cafe, error) {
	cafe, err := s.cafes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cafe == nil {
		return nil, ErrCafeNotFound
	}
	return cafe, nil
}

// Create normalizes the input, pre-checks name uniqueness and inserts
// the cafe. A constraint violation that slips past the pre-check (a
// concurrent create) surfaces as the same ErrDuplicateCafeName.
func (s *CafeService) Create(ctx context.Context, in CafeInput) (*models.Cafe, error) {
	name := TitleCase(in.Name)

	existing, err := s.cafes.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateCafeName
	}

	cafe := &models.Cafe{
		Name:         name,
		MapURL:       in.MapURL,
		ImgURL:       in.ImgURL,
		Location:     TitleCase(in.Location),
		Seats:        in.Seats,
		HasToilet:    in.HasToilet,
		HasWifi:      in.HasWifi,
		HasSockets:   in.HasSockets,
		CanTakeCalls: in.CanTakeCalls,
		CoffeePrice:  FormatPrice(in.CoffeePrice),
	}

	if err := s.cafes.Create(ctx, cafe); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateCafeName
		}
		return nil, err
	}

	s.logger.Info("cafe added", zap.Uint("id", cafe.ID), zap.String("name", cafe.Name))
	return cafe, nil
}

// Update applies the normalized input to an existing cafe. ErrCafeNotFound
// is returned for missing ids and ErrDuplicateCafeName when the new name
// collides with another entry, whether caught by the pre-check or by the
// store constraint at commit time.
func (s *CafeService) Update(ctx context.Context, id uint, in CafeInput) (*models.Cafe, error) {
	cafe, err := s.cafes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cafe == nil {
		return nil, ErrCafeNotFound
	}

	name := TitleCase(in.Name)
	existing, err := s.cafes.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != cafe.ID {
		return nil, ErrDuplicateCafeName
	}

	cafe.Name = name
	cafe.MapURL = in.MapURL
	cafe.ImgURL = in.ImgURL
	cafe.Location = TitleCase(in.Location)
	cafe.Seats = in.Seats
	cafe.HasToilet = in.HasToilet
	cafe.HasWifi = in.HasWifi
	cafe.HasSockets = in.HasSockets
	cafe.CanTakeCalls = in.CanTakeCalls
	cafe.CoffeePrice = FormatPrice(in.CoffeePrice)

	if err := s.cafes.Update(ctx, cafe); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateCafeName
		}
		return nil, err
	}

	s.logger.Info("cafe edited", zap.Uint("id", cafe.ID), zap.String("name", cafe.Name))
	return cafe, nil
}

// Delete removes a cafe. Deleting a missing id is a no-op.
func (s *CafeService) Delete(ctx context.Context, id uint) error {
	rows, err := s.cafes.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		s.logger.Debug("delete of missing cafe ignored", zap.Uint("id", id))
	}
	return nil
}
