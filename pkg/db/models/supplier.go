package models

import (
	"time"

	"github.com/google/uuid"
)

// Supplier is a directory entry for an assignment target.
type Supplier struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CompanyName  string    `gorm:"column:company_name;type:text;not null" json:"company_name"`
	ContactEmail string    `gorm:"column:contact_email;type:text;not null" json:"contact_email"`
	Phone        *string   `gorm:"column:phone;type:text" json:"phone,omitempty"`
	Active       bool      `gorm:"column:active;not null;default:true" json:"active"`
	CreatedAt    time.Time `gorm:"column:created_at;type:timestamptz;default:now()" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;type:timestamptz;default:now()" json:"updated_at"`
}
