package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/smartbiz/backend/internal/domain/partner"
)

// CreateCustomerRequest represents a request to create a customer
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Phone   string `json:"phone" binding:"omitempty,max=30"`
	Email   string `json:"email" binding:"omitempty,email,max=120"`
	Address string `json:"address"`
}

// UpdateCustomerRequest represents a request to update a customer
type UpdateCustomerRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=200"`
	Phone   *string `json:"phone" binding:"omitempty,max=30"`
	Email   *string `json:"email" binding:"omitempty,email,max=120"`
	Address *string `json:"address"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCustomerResponse converts a customer to a response DTO
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// CreateSupplierRequest represents a request to create a supplier
type CreateSupplierRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=200"`
	ContactPerson string `json:"contact_person" binding:"omitempty,max=120"`
	Phone         string `json:"phone" binding:"omitempty,max=30"`
	Email         string `json:"email" binding:"omitempty,email,max=120"`
	Address       string `json:"address"`
}

// UpdateSupplierRequest represents a request to update a supplier
type UpdateSupplierRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=1,max=200"`
	ContactPerson *string `json:"contact_person" binding:"omitempty,max=120"`
	Phone         *string `json:"phone" binding:"omitempty,max=30"`
	Email         *string `json:"email" binding:"omitempty,email,max=120"`
	Address       *string `json:"address"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	Address       string    `json:"address,omitempty"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToSupplierResponse converts a supplier to a response DTO
func ToSupplierResponse(s *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Phone:         s.Phone,
		Email:         s.Email,
		Address:       s.Address,
		Active:        s.Active,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// PartnerListFilter represents filter options for customer and supplier lists
type PartnerListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}
