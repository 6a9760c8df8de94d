package models

import (
	"time"

	"github.com/google/uuid"
)

// VendorProfile carries the branding bundle forwarded to the document
// renderer alongside a generated invoice. Logo URL and accent color are
// opaque strings; the engine never interprets them.
type VendorProfile struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	BusinessName  string    `gorm:"column:business_name;not null;default:''"`
	LogoURL       string    `gorm:"column:logo_url;not null;default:''"`
	AccentColor   string    `gorm:"column:accent_color;not null;default:''"`
	ContactEmail  string    `gorm:"column:contact_email;not null;default:''"`
	ContactPhone  string    `gorm:"column:contact_phone;not null;default:''"`
	AddressLine   string    `gorm:"column:address_line;not null;default:''"`
	GSTIN         string    `gorm:"column:gstin;not null;default:''"`
	InvoicePrefix string    `gorm:"column:invoice_prefix;not null;default:''"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
