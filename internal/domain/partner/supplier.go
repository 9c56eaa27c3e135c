package partner

import (
	"strings"

	"github.com/google/uuid"
	"github.com/smartbiz/backend/internal/domain/shared"
)

// Supplier represents a vendor that purchases are placed with
type Supplier struct {
	shared.TenantAggregateRoot
	Name          string `gorm:"type:varchar(200);not null"`
	ContactPerson string `gorm:"type:varchar(120)"`
	Phone         string `gorm:"type:varchar(30);index"`
	Email         string `gorm:"type:varchar(120)"`
	Address       string `gorm:"type:text"`
	Active        bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier
func NewSupplier(tenantID uuid.UUID, name, contactPerson, phone, email, address string) (*Supplier, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot exceed 200 characters")
	}

	return &Supplier{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		ContactPerson:       strings.TrimSpace(contactPerson),
		Phone:               strings.TrimSpace(phone),
		Email:               strings.TrimSpace(email),
		Address:             address,
		Active:              true,
	}, nil
}

// Update updates the supplier's contact details
func (s *Supplier) Update(name, contactPerson, phone, email, address string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}

	s.Name = name
	s.ContactPerson = strings.TrimSpace(contactPerson)
	s.Phone = strings.TrimSpace(phone)
	s.Email = strings.TrimSpace(email)
	s.Address = address
	s.Touch()
	s.IncrementVersion()

	return nil
}

// Deactivate hides the supplier from new documents
func (s *Supplier) Deactivate() {
	s.Active = false
	s.Touch()
	s.IncrementVersion()
}
