// Package asset contains asset-related use cases.
package asset

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/zakat-manager/backend/internal/application/adapter"
	"github.com/zakat-manager/backend/internal/domain/entity"
	domainerror "github.com/zakat-manager/backend/internal/domain/error"
)

// ListAssetsInput represents the input for listing assets.
type ListAssetsInput struct {
	UserID   uuid.UUID
	Category *entity.AssetCategory // Optional filter
}

// ListAssetsOutput represents the output of listing assets.
type ListAssetsOutput struct {
	Assets []*entity.Asset
	Counts map[entity.AssetCategory]int
}

// ListAssetsUseCase handles listing a user's assets.
type ListAssetsUseCase struct {
	assetRepo adapter.AssetRepository
}

// NewListAssetsUseCase creates a new ListAssetsUseCase instance.
func NewListAssetsUseCase(assetRepo adapter.AssetRepository) *ListAssetsUseCase {
	return &ListAssetsUseCase{
		assetRepo: assetRepo,
	}
}

// Execute performs the asset listing.
func (uc *ListAssetsUseCase) Execute(ctx context.Context, input ListAssetsInput) (*ListAssetsOutput, error) {
	if input.Category != nil && !input.Category.IsValid() {
		return nil, domainerror.NewAssetError(
			domainerror.ErrCodeInvalidAssetCategory,
			"invalid category filter",
			domainerror.ErrInvalidAssetCategory,
		)
	}

	assets, err := uc.assetRepo.FindByUserID(ctx, input.UserID, input.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	counts := make(map[entity.AssetCategory]int)
	for _, a := range assets {
		counts[a.Category]++
	}

	return &ListAssetsOutput{
		Assets: assets,
		Counts: counts,
	}, nil
}
