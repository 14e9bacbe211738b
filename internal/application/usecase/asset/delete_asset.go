// Package asset contains asset-related use cases.
package asset

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/zakat-manager/backend/internal/application/adapter"
)

// DeleteAssetInput represents the input for asset deletion.
type DeleteAssetInput struct {
	AssetID uuid.UUID
	UserID  uuid.UUID
}

// DeleteAssetOutput represents the output of asset deletion.
type DeleteAssetOutput struct {
	Success bool
}

// DeleteAssetUseCase handles asset deletion. Saved calculations keep their own
// snapshot and are not affected.
type DeleteAssetUseCase struct {
	assetRepo adapter.AssetRepository
}

// NewDeleteAssetUseCase creates a new DeleteAssetUseCase instance.
func NewDeleteAssetUseCase(assetRepo adapter.AssetRepository) *DeleteAssetUseCase {
	return &DeleteAssetUseCase{
		assetRepo: assetRepo,
	}
}

// Execute performs the asset deletion.
func (uc *DeleteAssetUseCase) Execute(ctx context.Context, input DeleteAssetInput) (*DeleteAssetOutput, error) {
	if _, err := findOwnedAsset(ctx, uc.assetRepo, input.AssetID, input.UserID); err != nil {
		return nil, err
	}

	if err := uc.assetRepo.Delete(ctx, input.AssetID); err != nil {
		return nil, fmt.Errorf("failed to delete asset: %w", err)
	}

	return &DeleteAssetOutput{
		Success: true,
	}, nil
}
