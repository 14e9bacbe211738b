// Package asset contains asset-related use cases.
package asset

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zakat-manager/backend/internal/application/adapter"
	"github.com/zakat-manager/backend/internal/domain/entity"
)

// UpdateAssetInput represents the input for asset update.
// Nil fields are left unchanged.
type UpdateAssetInput struct {
	AssetID              uuid.UUID
	UserID               uuid.UUID
	Name                 *string
	Description          *string
	Category             *entity.AssetCategory
	Subcategory          *string
	Usage                *entity.AssetUsage
	Holding              HoldingFields
	AcquisitionDate      *time.Time
	ClearAcquisitionDate bool
}

// UpdateAssetOutput represents the output of asset update.
type UpdateAssetOutput struct {
	Asset *entity.Asset
}

// UpdateAssetUseCase handles asset update logic.
type UpdateAssetUseCase struct {
	assetRepo       adapter.AssetRepository
	defaultCurrency string
}

// NewUpdateAssetUseCase creates a new UpdateAssetUseCase instance.
func NewUpdateAssetUseCase(assetRepo adapter.AssetRepository, defaultCurrency string) *UpdateAssetUseCase {
	return &UpdateAssetUseCase{
		assetRepo:       assetRepo,
		defaultCurrency: defaultCurrency,
	}
}

// Execute performs the asset update.
func (uc *UpdateAssetUseCase) Execute(ctx context.Context, input UpdateAssetInput) (*UpdateAssetOutput, error) {
	asset, err := findOwnedAsset(ctx, uc.assetRepo, input.AssetID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name, err := validateName(*input.Name)
		if err != nil {
			return nil, err
		}
		asset.Name = name
	}

	if input.Description != nil {
		asset.Description = strings.TrimSpace(*input.Description)
	}

	if input.Subcategory != nil {
		asset.Subcategory = strings.TrimSpace(*input.Subcategory)
	}

	if input.Usage != nil {
		if err := validateUsage(*input.Usage); err != nil {
			return nil, err
		}
		asset.Usage = *input.Usage
	}

	// A category change to another holding kind needs a full new set of quantity fields.
	category := asset.Category
	fields := fieldsOf(asset.Holding)
	if input.Category != nil && *input.Category != category {
		category = *input.Category
		if asset.Holding == nil || entity.ExpectedHoldingKind(category) != asset.Holding.Kind() {
			fields = HoldingFields{}
		}
	}
	holding, err := BuildHolding(category, fields.overlay(input.Holding), uc.defaultCurrency)
	if err != nil {
		return nil, err
	}
	asset.Category = category
	asset.Holding = holding

	now := time.Now().UTC()
	if input.ClearAcquisitionDate {
		asset.AcquisitionDate = nil
	} else if input.AcquisitionDate != nil {
		if err := validateAcquisitionDate(input.AcquisitionDate, now); err != nil {
			return nil, err
		}
		asset.AcquisitionDate = input.AcquisitionDate
	}

	asset.UpdatedAt = now

	if err := uc.assetRepo.Update(ctx, asset); err != nil {
		return nil, fmt.Errorf("failed to update asset: %w", err)
	}

	return &UpdateAssetOutput{
		Asset: asset,
	}, nil
}
