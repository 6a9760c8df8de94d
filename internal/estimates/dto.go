package estimates

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nishantzaveri/jewelbooks-backend/internal/pricing"
	"github.com/nishantzaveri/jewelbooks-backend/pkg/db/models"
	pkgpagination "github.com/nishantzaveri/jewelbooks-backend/pkg/pagination"
)

// ListParams scopes a cursor page to a vendor.
type ListParams struct {
	VendorID uuid.UUID
	pkgpagination.Params
}

// EstimateList is one cursor page of a vendor's estimates.
type EstimateList struct {
	Estimates  []models.Estimate `json:"estimates"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

type listQuery struct {
	vendorID uuid.UUID
	limit    int
	cursor   *pkgpagination.Cursor
}

// RenderPayload bundles everything the external document renderer needs: the
// computed estimate snapshot and the vendor's branding.
type RenderPayload struct {
	Estimate *models.Estimate      `json:"estimate"`
	Branding *models.VendorProfile `json:"branding,omitempty"`
}

// CreateEstimateInput captures the fields accepted when opening a new
// estimate. The metal rate is the externally supplied 24k-equivalent rate
// per gram used for every gold-cost derivation on this estimate.
type CreateEstimateInput struct {
	Category        string          `json:"category" validate:"required"`
	CustomerName    string          `json:"customer_name"`
	CustomerPhone   string          `json:"customer_phone"`
	CustomerEmail   string          `json:"customer_email"`
	CustomerAddress string          `json:"customer_address"`
	MetalRate       decimal.Decimal `json:"metal_rate"`
}

// PricingConfigInput carries the estimate-level pricing knobs.
type PricingConfigInput struct {
	MetalRate      decimal.Decimal `json:"metal_rate"`
	MarginPercent  decimal.Decimal `json:"margin_percent"`
	TaxMode        string          `json:"tax_mode" validate:"required"`
	SGSTPercent    decimal.Decimal `json:"sgst_percent"`
	CGSTPercent    decimal.Decimal `json:"cgst_percent"`
	IGSTPercent    decimal.Decimal `json:"igst_percent"`
	ShippingCharge decimal.Decimal `json:"shipping_charge"`
	ShippingZone   string          `json:"shipping_zone"`
	ExchangeRate   decimal.Decimal `json:"exchange_rate"`
}

// VendorProfileInput carries the branding bundle forwarded to the renderer.
type VendorProfileInput struct {
	BusinessName  string `json:"business_name" validate:"required"`
	LogoURL       string `json:"logo_url"`
	AccentColor   string `json:"accent_color"`
	ContactEmail  string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone  string `json:"contact_phone"`
	AddressLine   string `json:"address_line"`
	GSTIN         string `json:"gstin"`
	InvoicePrefix string `json:"invoice_prefix"`
}

func pricingItemFromModel(m models.EstimateLineItem) pricing.LineItem {
	return pricing.LineItem{
		ID:             m.ID.String(),
		Name:           m.Name,
		Description:    m.Description,
		ImageRef:       m.ImageRef,
		CertificateRef: m.CertificateRef,

		GrossWeight:    m.GrossWeight,
		NetWeight:      m.NetWeight,
		PurityFraction: m.PurityFraction,
		WeightMode:     m.WeightMode,

		DiamondWeight:        m.DiamondWeight,
		DiamondPerCarat:      m.DiamondPerCarat,
		DiamondShape:         m.DiamondShape,
		DiamondColor:         m.DiamondColor,
		DiamondClarity:       m.DiamondClarity,
		DiamondCut:           m.DiamondCut,
		DiamondFluorescence:  m.DiamondFluorescence,
		DiamondMeasurement:   m.DiamondMeasurement,
		DiamondCertification: m.DiamondCertification,

		GemstoneWeight:    m.GemstoneWeight,
		GemstonePerCarat:  m.GemstonePerCarat,
		GemstonePricing:   m.GemstonePricing,
		GemstoneType:      m.GemstoneType,
		GemstoneColor:     m.GemstoneColor,
		GemstoneClarity:   m.GemstoneClarity,
		GemstoneOrigin:    m.GemstoneOrigin,
		GemstoneTreatment: m.GemstoneTreatment,
		GemstoneShape:     m.GemstoneShape,

		MakingCharges:     m.MakingCharges,
		CertificationCost: m.CertificationCost,
		CADDesignCharges:  m.CADDesignCharges,
		CammingCharges:    m.CammingCharges,

		GoldCost:     m.GoldCost,
		DiamondCost:  m.DiamondCost,
		GemstoneCost: m.GemstoneCost,
		Subtotal:     m.Subtotal,
	}
}

func applyPricingItem(m *models.EstimateLineItem, item pricing.LineItem) {
	m.Name = item.Name
	m.Description = item.Description
	m.ImageRef = item.ImageRef
	m.CertificateRef = item.CertificateRef

	m.GrossWeight = item.GrossWeight
	m.NetWeight = item.NetWeight
	m.PurityFraction = item.PurityFraction
	m.WeightMode = item.WeightMode

	m.DiamondWeight = item.DiamondWeight
	m.DiamondPerCarat = item.DiamondPerCarat
	m.DiamondShape = item.DiamondShape
	m.DiamondColor = item.DiamondColor
	m.DiamondClarity = item.DiamondClarity
	m.DiamondCut = item.DiamondCut
	m.DiamondFluorescence = item.DiamondFluorescence
	m.DiamondMeasurement = item.DiamondMeasurement
	m.DiamondCertification = item.DiamondCertification

	m.GemstoneWeight = item.GemstoneWeight
	m.GemstonePerCarat = item.GemstonePerCarat
	m.GemstonePricing = item.GemstonePricing
	m.GemstoneType = item.GemstoneType
	m.GemstoneColor = item.GemstoneColor
	m.GemstoneClarity = item.GemstoneClarity
	m.GemstoneOrigin = item.GemstoneOrigin
	m.GemstoneTreatment = item.GemstoneTreatment
	m.GemstoneShape = item.GemstoneShape

	m.MakingCharges = item.MakingCharges
	m.CertificationCost = item.CertificationCost
	m.CADDesignCharges = item.CADDesignCharges
	m.CammingCharges = item.CammingCharges

	m.GoldCost = item.GoldCost
	m.DiamondCost = item.DiamondCost
	m.GemstoneCost = item.GemstoneCost
	m.Subtotal = item.Subtotal
}

func pricingConfigFromModel(estimate *models.Estimate) pricing.Config {
	return pricing.Config{
		MarginPercent:  estimate.MarginPercent,
		TaxMode:        estimate.TaxMode,
		SGSTPercent:    estimate.SGSTPercent,
		CGSTPercent:    estimate.CGSTPercent,
		IGSTPercent:    estimate.IGSTPercent,
		ShippingCharge: estimate.ShippingCharge,
		ShippingZone:   estimate.ShippingZone,
		ExchangeRate:   estimate.ExchangeRate,
	}
}

func collectionFromModels(items []models.EstimateLineItem) pricing.Collection {
	collection := make(pricing.Collection, 0, len(items))
	for _, item := range items {
		collection = append(collection, pricingItemFromModel(item))
	}
	return collection
}

func applyTotals(estimate *models.Estimate, totals pricing.Totals) {
	estimate.TotalCost = totals.TotalCost
	estimate.SellingPrice = totals.SellingPrice
	estimate.SGSTAmount = totals.SGSTAmount
	estimate.CGSTAmount = totals.CGSTAmount
	estimate.IGSTAmount = totals.IGSTAmount
	estimate.GrandTotal = totals.GrandTotal
	estimate.SecondaryTotal = totals.SecondaryTotal
}
