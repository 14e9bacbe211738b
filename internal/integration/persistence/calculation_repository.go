// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zakat-manager/backend/internal/application/adapter"
	"github.com/zakat-manager/backend/internal/domain/entity"
	domainerror "github.com/zakat-manager/backend/internal/domain/error"
	"github.com/zakat-manager/backend/internal/integration/persistence/model"
)

// calculationRepository implements the adapter.CalculationRepository interface.
type calculationRepository struct {
	db *gorm.DB
}

// NewCalculationRepository creates a new calculation repository instance.
func NewCalculationRepository(db *gorm.DB) adapter.CalculationRepository {
	return &calculationRepository{
		db: db,
	}
}

// Create saves a calculation.
func (r *calculationRepository) Create(ctx context.Context, calc *entity.ZakatCalculation) error {
	calcModel := model.ZakatCalculationFromEntity(calc)
	result := r.db.WithContext(ctx).Create(calcModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a calculation by its ID.
func (r *calculationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ZakatCalculation, error) {
	var calcModel model.ZakatCalculationModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&calcModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCalculationNotFound
		}
		return nil, result.Error
	}
	return calcModel.ToEntity(), nil
}

// FindByUserID retrieves one page of a user's calculations, newest first, and the total count.
func (r *calculationRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.ZakatCalculation, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&model.ZakatCalculationModel{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var calcModels []model.ZakatCalculationModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("calculation_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&calcModels)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	calcs := make([]*entity.ZakatCalculation, len(calcModels))
	for i := range calcModels {
		calcs[i] = calcModels[i].ToEntity()
	}
	return calcs, total, nil
}

// FindByUserIDBetween retrieves a user's calculations dated within [start, end], oldest first.
func (r *calculationRepository) FindByUserIDBetween(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.ZakatCalculation, error) {
	var calcModels []model.ZakatCalculationModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND calculation_date >= ? AND calculation_date <= ?", userID, start, end).
		Order("calculation_date ASC").
		Find(&calcModels)
	if result.Error != nil {
		return nil, result.Error
	}

	calcs := make([]*entity.ZakatCalculation, len(calcModels))
	for i := range calcModels {
		calcs[i] = calcModels[i].ToEntity()
	}
	return calcs, nil
}

// Delete removes a calculation.
func (r *calculationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.ZakatCalculationModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrCalculationNotFound
	}
	return nil
}
