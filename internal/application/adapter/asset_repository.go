// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/zakat-manager/backend/internal/domain/entity"
)

// AssetRepository defines the interface for asset persistence operations.
type AssetRepository interface {
	// Create creates a new asset in the database.
	Create(ctx context.Context, asset *entity.Asset) error

	// FindByID retrieves an asset by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Asset, error)

	// FindByUserID retrieves all assets owned by a user, optionally filtered by category.
	FindByUserID(ctx context.Context, userID uuid.UUID, category *entity.AssetCategory) ([]*entity.Asset, error)

	// Update updates an existing asset in the database.
	Update(ctx context.Context, asset *entity.Asset) error

	// Delete removes an asset from the database (soft delete).
	Delete(ctx context.Context, id uuid.UUID) error
}
