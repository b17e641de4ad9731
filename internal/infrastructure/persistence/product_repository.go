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

// GormProductRepository implements ledger.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every product
func (r *GormProductRepository) FindAll(ctx context.Context) ([]*ledger.Product, error) {
	var productModels []models.ProductModel
	if err := r.db.WithContext(ctx).Find(&productModels).Error; err != nil {
		return nil, err
	}
	return productsToDomain(productModels), nil
}

// FindByClientID finds all products owned by a client
func (r *GormProductRepository) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*ledger.Product, error) {
	var productModels []models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Find(&productModels).Error; err != nil {
		return nil, err
	}
	return productsToDomain(productModels), nil
}

// Insert creates a new product
func (r *GormProductRepository) Insert(ctx context.Context, product *ledger.Product) error {
	model := models.ProductModelFromDomain(product)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists changes to an existing product
func (r *GormProductRepository) Update(ctx context.Context, product *ledger.Product) error {
	model := models.ProductModelFromDomain(product)
	// Select("*") forces zero-valued fields to be written too; a product
	// reopening (is_fully_paid back to false) must not be skipped.
	result := r.db.WithContext(ctx).Model(&models.ProductModel{}).
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

// Delete removes a product by ID
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ProductModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteBatch removes multiple products in one statement. Absent ids are
// not an error; batch deletion is idempotent.
func (r *GormProductRepository) DeleteBatch(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Delete(&models.ProductModel{}, "id IN ?", ids).Error
}

func productsToDomain(productModels []models.ProductModel) []*ledger.Product {
	products := make([]*ledger.Product, len(productModels))
	for i := range productModels {
		products[i] = productModels[i].ToDomain()
	}
	return products
}

var _ ledger.ProductRepository = (*GormProductRepository)(nil)
