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

// GormClientRepository implements ledger.ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindByID finds a client by its ID
func (r *GormClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Client, error) {
	var model models.ClientModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every client
func (r *GormClientRepository) FindAll(ctx context.Context) ([]*ledger.Client, error) {
	var clientModels []models.ClientModel
	if err := r.db.WithContext(ctx).Find(&clientModels).Error; err != nil {
		return nil, err
	}

	clients := make([]*ledger.Client, len(clientModels))
	for i := range clientModels {
		clients[i] = clientModels[i].ToDomain()
	}
	return clients, nil
}

// Insert creates a new client
func (r *GormClientRepository) Insert(ctx context.Context, client *ledger.Client) error {
	model := models.ClientModelFromDomain(client)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists changes to an existing client
func (r *GormClientRepository) Update(ctx context.Context, client *ledger.Client) error {
	model := models.ClientModelFromDomain(client)
	// Select("*") forces zero-valued fields to be written too.
	result := r.db.WithContext(ctx).Model(&models.ClientModel{}).
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

// Delete removes a client by ID
func (r *GormClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ClientModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ ledger.ClientRepository = (*GormClientRepository)(nil)
