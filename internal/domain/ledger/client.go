package ledger

import (
	"strings"
	"time"

	"github.com/trimanage/backend/internal/domain/shared"
)

// Client represents a customer the business sells to. It is the aggregate
// root of the ledger's ownership chain: deleting a client cascades to its
// products and their payments.
type Client struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"type:varchar(200);not null"`
	PhoneNumber string `gorm:"type:varchar(50)"`
	Note        string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Client) TableName() string {
	return KindClient.Collection()
}

// NewClient creates a new client with required fields
func NewClient(name, phoneNumber, note string) (*Client, error) {
	name = strings.TrimSpace(name)
	if err := validateClientName(name); err != nil {
		return nil, err
	}
	if err := validatePhoneNumber(phoneNumber); err != nil {
		return nil, err
	}
	if err := validateNote(note); err != nil {
		return nil, err
	}

	client := &Client{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		PhoneNumber:       phoneNumber,
		Note:              note,
	}

	client.AddDomainEvent(NewClientCreatedEvent(client))

	return client, nil
}

// Update applies a partial update to the client. Nil fields are left
// unchanged.
func (c *Client) Update(name, phoneNumber, note *string) error {
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if err := validateClientName(trimmed); err != nil {
			return err
		}
		c.Name = trimmed
	}
	if phoneNumber != nil {
		if err := validatePhoneNumber(*phoneNumber); err != nil {
			return err
		}
		c.PhoneNumber = *phoneNumber
	}
	if note != nil {
		if err := validateNote(*note); err != nil {
			return err
		}
		c.Note = *note
	}

	c.UpdatedAt = time.Now()

	c.AddDomainEvent(NewClientUpdatedEvent(c))

	return nil
}

func validateClientName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Client name is required")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Client name cannot exceed 200 characters")
	}
	return nil
}

func validatePhoneNumber(phone string) error {
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 50 characters")
	}
	return nil
}

func validateNote(note string) error {
	if len(note) > 1000 {
		return shared.NewDomainError("INVALID_NOTE", "Note cannot exceed 1000 characters")
	}
	return nil
}
