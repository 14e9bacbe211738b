// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zakat-manager/backend/internal/application/adapter"
	"github.com/zakat-manager/backend/internal/domain/entity"
	domainerror "github.com/zakat-manager/backend/internal/domain/error"
	"github.com/zakat-manager/backend/internal/integration/persistence/model"
)

// assetRepository implements the adapter.AssetRepository interface.
type assetRepository struct {
	db *gorm.DB
}

// NewAssetRepository creates a new asset repository instance.
func NewAssetRepository(db *gorm.DB) adapter.AssetRepository {
	return &assetRepository{
		db: db,
	}
}

// Create creates a new asset in the database.
func (r *assetRepository) Create(ctx context.Context, asset *entity.Asset) error {
	assetModel := model.AssetFromEntity(asset)
	result := r.db.WithContext(ctx).Create(assetModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves an asset by its ID.
func (r *assetRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Asset, error) {
	var assetModel model.AssetModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&assetModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrAssetNotFound
		}
		return nil, result.Error
	}
	return assetModel.ToEntity(), nil
}

// FindByUserID retrieves all assets owned by a user, oldest first.
func (r *assetRepository) FindByUserID(ctx context.Context, userID uuid.UUID, category *entity.AssetCategory) ([]*entity.Asset, error) {
	var assetModels []model.AssetModel
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if category != nil {
		query = query.Where("category = ?", string(*category))
	}

	result := query.Order("created_at ASC").Order("id ASC").Find(&assetModels)
	if result.Error != nil {
		return nil, result.Error
	}

	assets := make([]*entity.Asset, len(assetModels))
	for i := range assetModels {
		assets[i] = assetModels[i].ToEntity()
	}
	return assets, nil
}

// Update updates an existing asset in the database.
func (r *assetRepository) Update(ctx context.Context, asset *entity.Asset) error {
	assetModel := model.AssetFromEntity(asset)
	result := r.db.WithContext(ctx).Save(assetModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes an asset from the database (soft delete).
func (r *assetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.AssetModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrAssetNotFound
	}
	return nil
}
