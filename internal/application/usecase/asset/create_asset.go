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

// CreateAssetInput represents the input for asset creation.
type CreateAssetInput struct {
	UserID          uuid.UUID
	Name            string
	Description     string
	Category        entity.AssetCategory
	Subcategory     string
	Usage           entity.AssetUsage // Optional, defaults to investment
	Holding         HoldingFields
	AcquisitionDate *time.Time
}

// CreateAssetOutput represents the output of asset creation.
type CreateAssetOutput struct {
	Asset *entity.Asset
}

// CreateAssetUseCase handles asset creation logic.
type CreateAssetUseCase struct {
	assetRepo       adapter.AssetRepository
	defaultCurrency string
}

// NewCreateAssetUseCase creates a new CreateAssetUseCase instance.
func NewCreateAssetUseCase(assetRepo adapter.AssetRepository, defaultCurrency string) *CreateAssetUseCase {
	return &CreateAssetUseCase{
		assetRepo:       assetRepo,
		defaultCurrency: defaultCurrency,
	}
}

// Execute performs the asset creation.
func (uc *CreateAssetUseCase) Execute(ctx context.Context, input CreateAssetInput) (*CreateAssetOutput, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}

	usage := input.Usage
	if usage == "" {
		usage = entity.AssetUsageInvestment
	}
	if err := validateUsage(usage); err != nil {
		return nil, err
	}

	holding, err := BuildHolding(input.Category, input.Holding, uc.defaultCurrency)
	if err != nil {
		return nil, err
	}

	if err := validateAcquisitionDate(input.AcquisitionDate, time.Now().UTC()); err != nil {
		return nil, err
	}

	asset := entity.NewAsset(input.UserID, name, input.Category, usage, holding)
	asset.Description = strings.TrimSpace(input.Description)
	asset.Subcategory = strings.TrimSpace(input.Subcategory)
	asset.AcquisitionDate = input.AcquisitionDate

	if err := uc.assetRepo.Create(ctx, asset); err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}

	return &CreateAssetOutput{
		Asset: asset,
	}, nil
}
