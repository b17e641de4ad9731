package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trimanage/backend/internal/domain/ledger"
	"github.com/trimanage/backend/internal/domain/shared"
	"github.com/trimanage/backend/internal/infrastructure/persistence/models"
)

// GormPaymentRepository implements ledger.PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every payment
func (r *GormPaymentRepository) FindAll(ctx context.Context) ([]*ledger.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return paymentsToDomain(paymentModels), nil
}

// FindByProductID finds all payments recorded against a product
func (r *GormPaymentRepository) FindByProductID(ctx context.Context, productID uuid.UUID) ([]*ledger.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return paymentsToDomain(paymentModels), nil
}

// FindByClientID finds all payments for a client across its products
func (r *GormPaymentRepository) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*ledger.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return paymentsToDomain(paymentModels), nil
}

// Insert creates a new payment
func (r *GormPaymentRepository) Insert(ctx context.Context, payment *ledger.Payment) error {
	model := models.PaymentModelFromDomain(payment)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists changes to an existing payment
func (r *GormPaymentRepository) Update(ctx context.Context, payment *ledger.Payment) error {
	model := models.PaymentModelFromDomain(payment)
	result := r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a payment by ID
func (r *GormPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PaymentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteBatch removes multiple payments in one statement. Absent ids are
// not an error; batch deletion is idempotent.
func (r *GormPaymentRepository) DeleteBatch(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Delete(&models.PaymentModel{}, "id IN ?", ids).Error
}

func paymentsToDomain(paymentModels []models.PaymentModel) []*ledger.Payment {
	payments := make([]*ledger.Payment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = paymentModels[i].ToDomain()
	}
	return payments
}

var _ ledger.PaymentRepository = (*GormPaymentRepository)(nil)
