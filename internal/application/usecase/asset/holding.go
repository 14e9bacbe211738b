// Package asset contains asset-related use cases.
package asset

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zakat-manager/backend/internal/application/adapter"
	"github.com/zakat-manager/backend/internal/domain/entity"
	domainerror "github.com/zakat-manager/backend/internal/domain/error"
	"github.com/zakat-manager/backend/internal/domain/valueobject"
)

const maxAssetNameLength = 100

// Decimal places stored by the weight_grams and purity_fraction columns.
const (
	maxWeightScale = 4
	maxPurityScale = 8
)

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// HoldingFields carries the quantity fields of an asset before they are checked
// against the category.
type HoldingFields struct {
	WeightGrams    *decimal.Decimal
	Karat          *int
	PurityFraction *decimal.Decimal
	Value          *decimal.Decimal
	Currency       string
}

// fieldsOf extracts the quantity fields of an existing holding.
func fieldsOf(h entity.Holding) HoldingFields {
	switch holding := h.(type) {
	case entity.MetalHolding:
		fields := HoldingFields{WeightGrams: &holding.WeightGrams}
		if holding.HasKarat() {
			fields.Karat = &holding.Karat
		} else {
			fields.PurityFraction = &holding.PurityFraction
		}
		return fields
	case entity.MonetaryHolding:
		return HoldingFields{Value: &holding.Value, Currency: holding.Currency}
	default:
		return HoldingFields{}
	}
}

// overlay applies the set fields of patch on top of f.
func (f HoldingFields) overlay(patch HoldingFields) HoldingFields {
	if patch.WeightGrams != nil {
		f.WeightGrams = patch.WeightGrams
	}
	if patch.Karat != nil {
		f.Karat, f.PurityFraction = patch.Karat, nil
	}
	if patch.PurityFraction != nil {
		f.PurityFraction, f.Karat = patch.PurityFraction, nil
	}
	if patch.Value != nil {
		f.Value = patch.Value
	}
	if patch.Currency != "" {
		f.Currency = patch.Currency
	}
	return f
}

// BuildHolding validates the fields for the category and returns the matching holding.
// Assets previewed without being stored go through the same checks.
func BuildHolding(category entity.AssetCategory, fields HoldingFields, defaultCurrency string) (entity.Holding, error) {
	if !category.IsValid() {
		return nil, domainerror.NewAssetError(
			domainerror.ErrCodeInvalidAssetCategory,
			"category must be one of cash, gold, silver, property, crypto, stocks, business, other",
			domainerror.ErrInvalidAssetCategory,
		)
	}

	if category.IsMetal() {
		return buildMetalHolding(category, fields)
	}
	return buildMonetaryHolding(fields, defaultCurrency)
}

func buildMetalHolding(category entity.AssetCategory, fields HoldingFields) (entity.Holding, error) {
	if fields.Value != nil {
		return nil, domainerror.NewAssetError(
			domainerror.ErrCodeHoldingMismatch,
			"metal assets are recorded by weight and purity, not value",
			domainerror.ErrHoldingMismatch,
		)
	}
	if fields.WeightGrams == nil || fields.WeightGrams.IsNegative() {
		return nil, domainerror.NewAssetError(
			domainerror.ErrCodeInvalidWeight,
			"weight in grams is required and must not be negative",
			domainerror.ErrInvalidWeight,
		)
	}
	if !fitsScale(*fields.WeightGrams, maxWeightScale) {
		return nil, domainerror.NewAssetError(
			domainerror.ErrCodeInvalidWeight,
			fmt.Sprintf("weight in grams takes at most %d decimal places", maxWeightScale),
			domainerror.ErrInvalidWeight,
		)
	}

	hasKarat := fields.Karat != nil
	hasFraction := fields.PurityFraction != nil
	if hasKarat == hasFraction {
		return nil, domainerror.NewAssetError(
			domainerror.ErrCodeInvalidPurity,
			"exactly one of karat or purity fraction is required",
			domainerror.ErrInvalidPurity,
		)
	}

	holding := entity.MetalHolding{WeightGrams: *fields.WeightGrams}
	if hasKarat {
		if category != entity.AssetCategoryGold || *fields.Karat <= 0 || *fields.Karat > 24 {
			return nil, domainerror.NewAssetError(
				domainerror.ErrCodeInvalidPurity,
				"karat applies to gold only and must be between 1 and 24",
				domainerror.ErrInvalidPurity,
			)
		}
		holding.Karat = *fields.Karat
		return holding, nil
	}

	if !valueobject.IsValidPurityFraction(*fields.PurityFraction) {
		return nil, domainerror.NewAssetError(
			domainerror.ErrCodeInvalidPurity,
			"purity fraction must be greater than 0 and at most 1",
			domainerror.ErrInvalidPurity,
		)
	}
	if !fitsScale(*fields.PurityFraction, maxPurityScale) {
		return nil, domainerror.NewAssetError(
			domainerror.ErrCodeInvalidPurity,
			fmt.Sprintf("purity fraction takes at most %d decimal places", maxPurityScale),
			domainerror.ErrInvalidPurity,
		)
	}
	holding.PurityFraction = *fields.PurityFraction
	return holding, nil
}

// fitsScale reports whether d has no significant digits past the given decimal places.
func fitsScale(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Truncate(places))
}

func buildMonetaryHolding(fields HoldingFields, defaultCurrency string) (entity.Holding, error) {
	if fields.WeightGrams != nil || fields.Karat != nil || fields.PurityFraction != nil {
		return nil, domainerror.NewAssetError(
			domainerror.ErrCodeHoldingMismatch,
			"only gold and silver assets take weight and purity",
			domainerror.ErrHoldingMismatch,
		)
	}
	if fields.Value == nil {
		return nil, domainerror.NewAssetError(
			domainerror.ErrCodeMissingAssetFields,
			"value is required",
			domainerror.ErrInvalidAssetValue,
		)
	}
	if fields.Value.IsNegative() {
		return nil, domainerror.NewAssetError(
			domainerror.ErrCodeInvalidAssetValue,
			"value must not be negative",
			domainerror.ErrInvalidAssetValue,
		)
	}

	currency := strings.ToUpper(strings.TrimSpace(fields.Currency))
	if currency == "" {
		currency = defaultCurrency
	}
	if !currencyCodePattern.MatchString(currency) {
		return nil, domainerror.NewAssetError(
			domainerror.ErrCodeInvalidAssetCurrency,
			"currency must be a three-letter code",
			domainerror.ErrInvalidAssetValue,
		)
	}

	return entity.MonetaryHolding{Value: *fields.Value, Currency: currency}, nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxAssetNameLength {
		return "", domainerror.NewAssetError(
			domainerror.ErrCodeInvalidAssetName,
			fmt.Sprintf("name is required and must be at most %d characters", maxAssetNameLength),
			domainerror.ErrInvalidAssetName,
		)
	}
	return name, nil
}

func validateUsage(usage entity.AssetUsage) error {
	if !usage.IsValid() {
		return domainerror.NewAssetError(
			domainerror.ErrCodeInvalidUsage,
			"usage must be 'personal' or 'investment'",
			domainerror.ErrInvalidUsage,
		)
	}
	return nil
}

func validateAcquisitionDate(date *time.Time, now time.Time) error {
	if date != nil && date.After(now) {
		return domainerror.NewAssetError(
			domainerror.ErrCodeInvalidAcquisitionDate,
			"acquisition date cannot be in the future",
			domainerror.ErrInvalidAcquisitionDate,
		)
	}
	return nil
}

// findOwnedAsset loads an asset and checks that it belongs to the user.
func findOwnedAsset(ctx context.Context, repo adapter.AssetRepository, assetID, userID uuid.UUID) (*entity.Asset, error) {
	asset, err := repo.FindByID(ctx, assetID)
	if err != nil {
		if errors.Is(err, domainerror.ErrAssetNotFound) {
			return nil, domainerror.NewAssetError(
				domainerror.ErrCodeAssetNotFound,
				"asset not found",
				domainerror.ErrAssetNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find asset: %w", err)
	}

	if asset.UserID != userID {
		return nil, domainerror.NewAssetError(
			domainerror.ErrCodeUnauthorizedAssetAccess,
			"not authorized to access this asset",
			domainerror.ErrUnauthorizedAssetAccess,
		)
	}

	return asset, nil
}
