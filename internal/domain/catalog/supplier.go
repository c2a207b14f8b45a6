package catalog

import (
	"github.com/isms/backend/internal/domain/shared"
)

// Supplier is a source of purchased goods
type Supplier struct {
	shared.BaseEntity
	Name          string `gorm:"not null"`
	ContactPerson *string
	Phone         *string
	Email         *string
	Address       *string
	Notes         *string
	IsActive      bool `gorm:"not null;default:true"`
}

// NewSupplier creates a new supplier
func NewSupplier(name string) (*Supplier, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}
	return &Supplier{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		IsActive:   true,
	}, nil
}

// UpdateContact updates the supplier contact details
func (s *Supplier) UpdateContact(name string, contactPerson, phone, email, address, notes *string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}
	s.Name = name
	s.ContactPerson = contactPerson
	s.Phone = phone
	s.Email = email
	s.Address = address
	s.Notes = notes
	s.Touch()
	return nil
}

// Deactivate marks the supplier inactive without deleting history
func (s *Supplier) Deactivate() {
	s.IsActive = false
	s.Touch()
}

// TableName returns the database table name
func (Supplier) TableName() string {
	return "suppliers"
}
