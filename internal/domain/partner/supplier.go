package partner

import (
	"strings"
	"time"

	"github.com/smartsupplypro/inventory/internal/domain/shared"
)

// Supplier is master data for the weak reference carried by inventory items
// and ledger entries. Only existence matters to stock mutations.
type Supplier struct {
	shared.BaseEntity
	// uniqueness is enforced by an expression index on LOWER(name), created
	// in the migration; gorm cannot express it as a tag
	Name        string `gorm:"type:varchar(200);not null"`
	ContactName string `gorm:"type:varchar(100)"`
	Phone       string `gorm:"type:varchar(50)"`
	Email       string `gorm:"type:varchar(200);index"`
	CreatedBy   string `gorm:"type:varchar(255);not null"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier with required fields
func NewSupplier(name, contactName, phone, email, createdBy string) (*Supplier, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewValidationError("INVALID_NAME", "Supplier name cannot be blank")
	}
	if createdBy == "" {
		return nil, shared.NewValidationError("MISSING_ACTOR", "Creator identity is required")
	}

	return &Supplier{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		ContactName: contactName,
		Phone:       phone,
		Email:       email,
		CreatedBy:   createdBy,
	}, nil
}

// Update replaces the supplier's master data
func (s *Supplier) Update(name, contactName, phone, email string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewValidationError("INVALID_NAME", "Supplier name cannot be blank")
	}

	s.Name = name
	s.ContactName = contactName
	s.Phone = phone
	s.Email = email
	s.UpdatedAt = time.Now()
	return nil
}
