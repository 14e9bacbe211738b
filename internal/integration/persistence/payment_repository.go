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

// paymentRepository implements the adapter.PaymentRepository interface.
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository instance.
func NewPaymentRepository(db *gorm.DB) adapter.PaymentRepository {
	return &paymentRepository{
		db: db,
	}
}

// Create creates a new payment in the database.
func (r *paymentRepository) Create(ctx context.Context, payment *entity.ZakatPayment) error {
	result := r.db.WithContext(ctx).Create(model.ZakatPaymentFromEntity(payment))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a payment by its ID.
func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ZakatPayment, error) {
	var paymentModel model.ZakatPaymentModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&paymentModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrPaymentNotFound
		}
		return nil, result.Error
	}
	return paymentModel.ToEntity(), nil
}

// FindByUserID retrieves a user's payments, newest first.
func (r *paymentRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.ZakatPayment, error) {
	var paymentModels []model.ZakatPaymentModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("paid_on DESC").
		Order("created_at DESC").
		Find(&paymentModels)
	if result.Error != nil {
		return nil, result.Error
	}

	payments := make([]*entity.ZakatPayment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = paymentModels[i].ToEntity()
	}
	return payments, nil
}

// Update updates an existing payment in the database.
func (r *paymentRepository) Update(ctx context.Context, payment *entity.ZakatPayment) error {
	result := r.db.WithContext(ctx).Omit("Calculation").Save(model.ZakatPaymentFromEntity(payment))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes a payment from the database.
func (r *paymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.ZakatPaymentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrPaymentNotFound
	}
	return nil
}
