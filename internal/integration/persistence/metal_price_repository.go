// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/zakat-manager/backend/internal/application/adapter"
	"github.com/zakat-manager/backend/internal/domain/entity"
	"github.com/zakat-manager/backend/internal/integration/persistence/model"
)

// metalPriceRepository implements the adapter.MetalPriceRepository interface.
type metalPriceRepository struct {
	db *gorm.DB
}

// NewMetalPriceRepository creates a new metal price repository instance.
func NewMetalPriceRepository(db *gorm.DB) adapter.MetalPriceRepository {
	return &metalPriceRepository{
		db: db,
	}
}

// Create records a quote.
func (r *metalPriceRepository) Create(ctx context.Context, quote *entity.MetalPriceQuote) error {
	result := r.db.WithContext(ctx).Create(model.MetalPriceQuoteFromEntity(quote))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// CreateBatch records several quotes in one transaction.
func (r *metalPriceRepository) CreateBatch(ctx context.Context, quotes []*entity.MetalPriceQuote) error {
	if len(quotes) == 0 {
		return nil
	}

	models := make([]*model.MetalPriceQuoteModel, len(quotes))
	for i, q := range quotes {
		models[i] = model.MetalPriceQuoteFromEntity(q)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&models).Error
	})
}

// FindLatestAll retrieves the newest quote of every metal and purity.
func (r *metalPriceRepository) FindLatestAll(ctx context.Context) ([]*entity.MetalPriceQuote, error) {
	latest := r.db.
		Model(&model.MetalPriceQuoteModel{}).
		Select("metal, purity, MAX(quoted_at)").
		Group("metal, purity")

	var quoteModels []model.MetalPriceQuoteModel
	result := r.db.WithContext(ctx).
		Where("(metal, purity, quoted_at) IN (?)", latest).
		Order("metal ASC").
		Order("purity DESC").
		Order("created_at DESC").
		Find(&quoteModels)
	if result.Error != nil {
		return nil, result.Error
	}

	// Quotes recorded with the same timestamp collapse to the most recently created.
	quotes := make([]*entity.MetalPriceQuote, 0, len(quoteModels))
	seen := make(map[string]bool, len(quoteModels))
	for i := range quoteModels {
		key := quoteModels[i].Metal + "/" + quoteModels[i].Purity.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		quotes = append(quotes, quoteModels[i].ToEntity())
	}
	return quotes, nil
}

// ListHistory retrieves the newest quotes of a metal across all purities.
func (r *metalPriceRepository) ListHistory(ctx context.Context, metal entity.Metal, limit int) ([]*entity.MetalPriceQuote, error) {
	var quoteModels []model.MetalPriceQuoteModel
	result := r.db.WithContext(ctx).
		Where("metal = ?", string(metal)).
		Order("quoted_at DESC").
		Order("purity DESC").
		Limit(limit).
		Find(&quoteModels)
	if result.Error != nil {
		return nil, result.Error
	}

	quotes := make([]*entity.MetalPriceQuote, len(quoteModels))
	for i := range quoteModels {
		quotes[i] = quoteModels[i].ToEntity()
	}
	return quotes, nil
}
