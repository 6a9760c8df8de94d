package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nishantzaveri/jewelbooks-backend/pkg/enums"
)

// EstimateLineItem persists one priced article within an estimate. Position
// carries display order; removing an item shifts positions but never rewrites
// surviving ids. Image and certificate refs are opaque blob-storage strings.
type EstimateLineItem struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	EstimateID uuid.UUID `gorm:"column:estimate_id;type:uuid;not null;index"`
	Position   int       `gorm:"column:position;not null"`

	Name           string `gorm:"column:name;not null;default:''"`
	Description    string `gorm:"column:description;not null;default:''"`
	ImageRef       string `gorm:"column:image_ref;not null;default:''"`
	CertificateRef string `gorm:"column:certificate_ref;not null;default:''"`

	GrossWeight    decimal.Decimal  `gorm:"column:gross_weight;type:numeric(20,4);not null;default:0"`
	NetWeight      decimal.Decimal  `gorm:"column:net_weight;type:numeric(20,4);not null;default:0"`
	PurityFraction decimal.Decimal  `gorm:"column:purity_fraction;type:numeric(7,6);not null;default:0"`
	WeightMode     enums.WeightMode `gorm:"column:weight_mode;type:text;not null;default:'gross'"`

	DiamondWeight        decimal.Decimal `gorm:"column:diamond_weight;type:numeric(20,4);not null;default:0"`
	DiamondPerCarat      decimal.Decimal `gorm:"column:diamond_per_carat;type:numeric(20,2);not null;default:0"`
	DiamondShape         string          `gorm:"column:diamond_shape;not null;default:''"`
	DiamondColor         string          `gorm:"column:diamond_color;not null;default:''"`
	DiamondClarity       string          `gorm:"column:diamond_clarity;not null;default:''"`
	DiamondCut           string          `gorm:"column:diamond_cut;not null;default:''"`
	DiamondFluorescence  string          `gorm:"column:diamond_fluorescence;not null;default:''"`
	DiamondMeasurement   string          `gorm:"column:diamond_measurement;not null;default:''"`
	DiamondCertification string          `gorm:"column:diamond_certification;not null;default:''"`

	GemstoneWeight    decimal.Decimal       `gorm:"column:gemstone_weight;type:numeric(20,4);not null;default:0"`
	GemstonePerCarat  decimal.Decimal       `gorm:"column:gemstone_per_carat;type:numeric(20,2);not null;default:0"`
	GemstonePricing   enums.GemstonePricing `gorm:"column:gemstone_pricing;type:text;not null;default:'manual'"`
	GemstoneType      string                `gorm:"column:gemstone_type;not null;default:''"`
	GemstoneColor     string                `gorm:"column:gemstone_color;not null;default:''"`
	GemstoneClarity   string                `gorm:"column:gemstone_clarity;not null;default:''"`
	GemstoneOrigin    string                `gorm:"column:gemstone_origin;not null;default:''"`
	GemstoneTreatment string                `gorm:"column:gemstone_treatment;not null;default:''"`
	GemstoneShape     string                `gorm:"column:gemstone_shape;not null;default:''"`

	MakingCharges     decimal.Decimal `gorm:"column:making_charges;type:numeric(20,2);not null;default:0"`
	CertificationCost decimal.Decimal `gorm:"column:certification_cost;type:numeric(20,2);not null;default:0"`
	CADDesignCharges  decimal.Decimal `gorm:"column:cad_design_charges;type:numeric(20,2);not null;default:0"`
	CammingCharges    decimal.Decimal `gorm:"column:camming_charges;type:numeric(20,2);not null;default:0"`

	GoldCost     decimal.Decimal `gorm:"column:gold_cost;type:numeric(20,2);not null;default:0"`
	DiamondCost  decimal.Decimal `gorm:"column:diamond_cost;type:numeric(20,2);not null;default:0"`
	GemstoneCost decimal.Decimal `gorm:"column:gemstone_cost;type:numeric(20,2);not null;default:0"`
	Subtotal     decimal.Decimal `gorm:"column:subtotal;type:numeric(20,2);not null;default:0"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
