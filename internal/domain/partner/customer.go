package partner

import (
	"strings"

	"github.com/google/uuid"
	"github.com/smartbiz/backend/internal/domain/shared"
)

// Customer represents a buyer that invoices are issued to
type Customer struct {
	shared.TenantAggregateRoot
	Name    string `gorm:"type:varchar(200);not null"`
	Phone   string `gorm:"type:varchar(30);index"`
	Email   string `gorm:"type:varchar(120)"`
	Address string `gorm:"type:text"`
	Active  bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer
func NewCustomer(tenantID uuid.UUID, name, phone, email, address string) (*Customer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}

	return &Customer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Phone:               strings.TrimSpace(phone),
		Email:               strings.TrimSpace(email),
		Address:             address,
		Active:              true,
	}, nil
}

// Update updates the customer's contact details
func (c *Customer) Update(name, phone, email, address string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}

	c.Name = name
	c.Phone = strings.TrimSpace(phone)
	c.Email = strings.TrimSpace(email)
	c.Address = address
	c.Touch()
	c.IncrementVersion()

	return nil
}

// Deactivate hides the customer from new documents
func (c *Customer) Deactivate() {
	c.Active = false
	c.Touch()
	c.IncrementVersion()
}
