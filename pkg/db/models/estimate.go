package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nishantzaveri/jewelbooks-backend/pkg/enums"
)

// Estimate is the top-level priced record a vendor hands to a customer. The
// derived totals columns are snapshots of the pricing engine's output for the
// current inputs; they are rewritten on every mutation, never hand-edited.
type Estimate struct {
	ID       uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VendorID uuid.UUID            `gorm:"column:vendor_id;type:uuid;not null;index;uniqueIndex:idx_estimates_vendor_invoice_number"`
	Category enums.Category       `gorm:"column:category;type:text;not null;default:'jewelry'"`
	Status   enums.EstimateStatus `gorm:"column:status;type:text;not null;default:'draft'"`

	CustomerName    string `gorm:"column:customer_name;not null;default:''"`
	CustomerPhone   string `gorm:"column:customer_phone;not null;default:''"`
	CustomerEmail   string `gorm:"column:customer_email;not null;default:''"`
	CustomerAddress string `gorm:"column:customer_address;not null;default:''"`

	InvoiceNumber *string `gorm:"column:invoice_number;uniqueIndex:idx_estimates_vendor_invoice_number,where:invoice_number IS NOT NULL"`
	// DocumentRef is the opaque reference handed back by the external
	// document renderer; empty until an invoice has been generated.
	DocumentRef string `gorm:"column:document_ref;not null;default:''"`

	MetalRate      decimal.Decimal `gorm:"column:metal_rate;type:numeric(20,4);not null;default:0"`
	MarginPercent  decimal.Decimal `gorm:"column:margin_percent;type:numeric(20,4);not null;default:0"`
	TaxMode        enums.TaxMode   `gorm:"column:tax_mode;type:text;not null;default:'none'"`
	SGSTPercent    decimal.Decimal `gorm:"column:sgst_percent;type:numeric(20,4);not null;default:0"`
	CGSTPercent    decimal.Decimal `gorm:"column:cgst_percent;type:numeric(20,4);not null;default:0"`
	IGSTPercent    decimal.Decimal `gorm:"column:igst_percent;type:numeric(20,4);not null;default:0"`
	ShippingCharge decimal.Decimal `gorm:"column:shipping_charge;type:numeric(20,2);not null;default:0"`
	ShippingZone   string          `gorm:"column:shipping_zone;not null;default:''"`
	ExchangeRate   decimal.Decimal `gorm:"column:exchange_rate;type:numeric(20,4);not null;default:0"`

	TotalCost      decimal.Decimal `gorm:"column:total_cost;type:numeric(20,2);not null;default:0"`
	SellingPrice   decimal.Decimal `gorm:"column:selling_price;type:numeric(20,2);not null;default:0"`
	SGSTAmount     decimal.Decimal `gorm:"column:sgst_amount;type:numeric(20,2);not null;default:0"`
	CGSTAmount     decimal.Decimal `gorm:"column:cgst_amount;type:numeric(20,2);not null;default:0"`
	IGSTAmount     decimal.Decimal `gorm:"column:igst_amount;type:numeric(20,2);not null;default:0"`
	GrandTotal     decimal.Decimal `gorm:"column:grand_total;type:numeric(20,2);not null;default:0"`
	SecondaryTotal decimal.Decimal `gorm:"column:secondary_total;type:numeric(20,2);not null;default:0"`

	Items []EstimateLineItem `gorm:"foreignKey:EstimateID;constraint:OnDelete:CASCADE"`

	GeneratedAt *time.Time `gorm:"column:generated_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
