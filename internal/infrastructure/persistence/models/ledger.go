package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trimanage/backend/internal/domain/ledger"
	"github.com/trimanage/backend/internal/domain/shared"
)

// ClientModel is the persistence model for clients
type ClientModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(200);not null"`
	PhoneNumber string `gorm:"type:varchar(50)"`
	Note        string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the model to a domain client
func (m *ClientModel) ToDomain() *ledger.Client {
	return &ledger.Client{
		BaseAggregateRoot: shared.BaseAggregateRoot{BaseEntity: m.BaseModel.ToDomain()},
		Name:              m.Name,
		PhoneNumber:       m.PhoneNumber,
		Note:              m.Note,
	}
}

// ClientModelFromDomain builds a persistence model from a domain client
func ClientModelFromDomain(c *ledger.Client) *ClientModel {
	m := &ClientModel{
		Name:        c.Name,
		PhoneNumber: c.PhoneNumber,
		Note:        c.Note,
	}
	m.FromDomain(c.BaseEntity)
	return m
}

// ProductModel is the persistence model for products
type ProductModel struct {
	BaseModel
	Name        string          `gorm:"type:varchar(200);not null"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	IsFullyPaid bool            `gorm:"not null;default:false"`
	Note        string          `gorm:"type:text"`
	ClientID    uuid.UUID       `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the model to a domain product
func (m *ProductModel) ToDomain() *ledger.Product {
	return &ledger.Product{
		BaseAggregateRoot: shared.BaseAggregateRoot{BaseEntity: m.BaseModel.ToDomain()},
		Name:              m.Name,
		TotalPrice:        m.TotalPrice,
		IsFullyPaid:       m.IsFullyPaid,
		Note:              m.Note,
		ClientID:          m.ClientID,
	}
}

// ProductModelFromDomain builds a persistence model from a domain product
func ProductModelFromDomain(p *ledger.Product) *ProductModel {
	m := &ProductModel{
		Name:        p.Name,
		TotalPrice:  p.TotalPrice,
		IsFullyPaid: p.IsFullyPaid,
		Note:        p.Note,
		ClientID:    p.ClientID,
	}
	m.FromDomain(p.BaseEntity)
	return m
}

// PaymentModel is the persistence model for payments
type PaymentModel struct {
	BaseModel
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Note      string          `gorm:"type:text"`
	ClientID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the model to a domain payment
func (m *PaymentModel) ToDomain() *ledger.Payment {
	return &ledger.Payment{
		BaseAggregateRoot: shared.BaseAggregateRoot{BaseEntity: m.BaseModel.ToDomain()},
		Amount:            m.Amount,
		Note:              m.Note,
		ClientID:          m.ClientID,
		ProductID:         m.ProductID,
	}
}

// PaymentModelFromDomain builds a persistence model from a domain payment
func PaymentModelFromDomain(p *ledger.Payment) *PaymentModel {
	m := &PaymentModel{
		Amount:    p.Amount,
		Note:      p.Note,
		ClientID:  p.ClientID,
		ProductID: p.ProductID,
	}
	m.FromDomain(p.BaseEntity)
	return m
}
