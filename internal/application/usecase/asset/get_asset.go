// Package asset contains asset-related use cases.
package asset

import (
	"context"

	"github.com/google/uuid"

	"github.com/zakat-manager/backend/internal/application/adapter"
	"github.com/zakat-manager/backend/internal/domain/entity"
)

// GetAssetInput represents the input for retrieving an asset.
type GetAssetInput struct {
	AssetID uuid.UUID
	UserID  uuid.UUID
}

// GetAssetOutput represents the output of retrieving an asset.
type GetAssetOutput struct {
	Asset *entity.Asset
}

// GetAssetUseCase handles retrieving a single asset.
type GetAssetUseCase struct {
	assetRepo adapter.AssetRepository
}

// NewGetAssetUseCase creates a new GetAssetUseCase instance.
func NewGetAssetUseCase(assetRepo adapter.AssetRepository) *GetAssetUseCase {
	return &GetAssetUseCase{
		assetRepo: assetRepo,
	}
}

// Execute retrieves the asset.
func (uc *GetAssetUseCase) Execute(ctx context.Context, input GetAssetInput) (*GetAssetOutput, error) {
	asset, err := findOwnedAsset(ctx, uc.assetRepo, input.AssetID, input.UserID)
	if err != nil {
		return nil, err
	}

	return &GetAssetOutput{
		Asset: asset,
	}, nil
}
