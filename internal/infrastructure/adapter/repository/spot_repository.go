package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Alex-KostPy/roofnn/internal/domain/entity"
	errs "github.com/Alex-KostPy/roofnn/internal/domain/error"
	coreport "github.com/Alex-KostPy/roofnn/internal/domain/port/core"
	"github.com/Alex-KostPy/roofnn/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// SpotRepository implements persistence.SpotRepository using GORM
type SpotRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewSpotRepository creates a new SpotRepository instance
func NewSpotRepository(db *gorm.DB, logger coreport.Logger) *SpotRepository {
	return &SpotRepository{
		db:     db,
		logger: logger,
	}
}

func (r *SpotRepository) modelToEntity(m *model.Spot) *entity.Spot {
	return &entity.Spot{
		ID:         m.ID,
		Title:      m.Title,
		Lat:        m.Lat,
		Lon:        m.Lon,
		ContentURL: m.ContentURL,
		Price:      m.Price,
		AuthorTgID: m.AuthorTgID,
		AuthorName: m.AuthorName,
		Danger:     m.Danger,
		Active:     m.Active,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func (r *SpotRepository) handleDatabaseError(operation string, err error, spotID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrSpotNotFound
	}
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"spot_id": spotID,
		"error":   err.Error(),
	})
	return fmt.Errorf("%w: %s", errs.ErrUnavailable, err.Error())
}

// GetByID retrieves a spot regardless of activation state
func (r *SpotRepository) GetByID(ctx context.Context, id uint64) (*entity.Spot, error) {
	var m model.Spot
	result := r.db.WithContext(ctx).First(&m, id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting spot", result.Error, id)
	}
	return r.modelToEntity(&m), nil
}

// GetActive retrieves a spot only if moderation has approved it
func (r *SpotRepository) GetActive(ctx context.Context, id uint64) (*entity.Spot, error) {
	var m model.Spot
	result := r.db.WithContext(ctx).Where("id = ? AND active = ?", id, true).First(&m)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting active spot", result.Error, id)
	}
	return r.modelToEntity(&m), nil
}

// Create persists a pending spot and assigns its id
func (r *SpotRepository) Create(ctx context.Context, spot *entity.Spot) error {
	m := model.Spot{
		Title:      spot.Title,
		Lat:        spot.Lat,
		Lon:        spot.Lon,
		ContentURL: spot.ContentURL,
		Price:      spot.Price,
		AuthorTgID: spot.AuthorTgID,
		AuthorName: spot.AuthorName,
		Danger:     spot.Danger,
		Active:     spot.Active,
		CreatedAt:  spot.CreatedAt,
		UpdatedAt:  spot.UpdatedAt,
	}
	result := r.db.WithContext(ctx).Create(&m)
	if result.Error != nil {
		return r.handleDatabaseError("creating spot", result.Error, 0)
	}
	spot.ID = m.ID
	return nil
}

// Activate flips a spot to publicly visible
func (r *SpotRepository) Activate(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Model(&model.Spot{}).
		Where("id = ?", id).
		Update("active", true)
	if result.Error != nil {
		return r.handleDatabaseError("activating spot", result.Error, id)
	}
	if result.RowsAffected == 0 {
		return errs.ErrSpotNotFound
	}
	return nil
}

// Delete removes a spot entirely
func (r *SpotRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&model.Spot{}, id)
	if result.Error != nil {
		return r.handleDatabaseError("deleting spot", result.Error, id)
	}
	if result.RowsAffected == 0 {
		return errs.ErrSpotNotFound
	}
	return nil
}

// ListActive returns all publicly visible spots
func (r *SpotRepository) ListActive(ctx context.Context) ([]*entity.Spot, error) {
	var models []model.Spot
	result := r.db.WithContext(ctx).Where("active = ?", true).Order("id").Find(&models)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing active spots", result.Error, 0)
	}

	spots := make([]*entity.Spot, 0, len(models))
	for i := range models {
		spots = append(spots, r.modelToEntity(&models[i]))
	}
	return spots, nil
}

// ListActiveIDsByAuthor returns ids of active spots submitted by the user
func (r *SpotRepository) ListActiveIDsByAuthor(ctx context.Context, tgID int64) ([]uint64, error) {
	var ids []uint64
	result := r.db.WithContext(ctx).Model(&model.Spot{}).
		Where("author_tg_id = ? AND active = ?", tgID, true).
		Order("id").
		Pluck("id", &ids)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing author spots", result.Error, 0)
	}
	return ids, nil
}
