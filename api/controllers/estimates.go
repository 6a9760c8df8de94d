package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nishantzaveri/jewelbooks-backend/api/middleware"
	"github.com/nishantzaveri/jewelbooks-backend/api/responses"
	"github.com/nishantzaveri/jewelbooks-backend/api/validators"
	"github.com/nishantzaveri/jewelbooks-backend/internal/estimates"
	"github.com/nishantzaveri/jewelbooks-backend/internal/pricing"
	"github.com/nishantzaveri/jewelbooks-backend/pkg/db/models"
	"github.com/nishantzaveri/jewelbooks-backend/pkg/enums"
	pkgerrors "github.com/nishantzaveri/jewelbooks-backend/pkg/errors"
	"github.com/nishantzaveri/jewelbooks-backend/pkg/logger"
	"github.com/nishantzaveri/jewelbooks-backend/pkg/metrics"
	"github.com/nishantzaveri/jewelbooks-backend/pkg/pagination"
)

func vendorIDFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := middleware.VendorIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "vendor context missing")
	}
	vendorID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid vendor id")
	}
	return vendorID, nil
}

func estimateIDFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "estimateID"))
	estimateID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid estimate id")
	}
	return estimateID, nil
}

// EstimateCreate opens a new draft estimate for the calling vendor.
func EstimateCreate(svc estimates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "estimate service unavailable"))
			return
		}

		vendorID, err := vendorIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload estimates.CreateEstimateInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateEstimate(r.Context(), vendorID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, estimateResponseFromModel(created))
	}
}

func EstimateGet(svc estimates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "estimate service unavailable"))
			return
		}

		vendorID, err := vendorIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		estimateID, err := estimateIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		estimate, err := svc.GetEstimate(r.Context(), vendorID, estimateID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, estimateResponseFromModel(estimate))
	}
}

// EstimateList returns one cursor page of the vendor's estimates, newest first.
func EstimateList(svc estimates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "estimate service unavailable"))
			return
		}

		vendorID, err := vendorIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListEstimates(r.Context(), estimates.ListParams{
			VendorID: vendorID,
			Params: pagination.Params{
				Limit:  limit,
				Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
			},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]estimateResponse, 0, len(result.Estimates))
		for i := range result.Estimates {
			items = append(items, estimateResponseFromModel(&result.Estimates[i]))
		}
		responses.WriteSuccess(w, estimateListResponse{
			Estimates:  items,
			NextCursor: result.NextCursor,
		})
	}
}

func EstimateDelete(svc estimates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "estimate service unavailable"))
			return
		}

		vendorID, err := vendorIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		estimateID, err := estimateIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteEstimate(r.Context(), vendorID, estimateID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

// LineItemAdd appends a blank line item to the estimate.
func LineItemAdd(svc estimates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "estimate service unavailable"))
			return
		}

		vendorID, err := vendorIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		estimateID, err := estimateIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		estimate, err := svc.AddLineItem(r.Context(), vendorID, estimateID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, estimateResponseFromModel(estimate))
	}
}

type lineItemEditRequest struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value"`
}

// LineItemEdit writes one field of one line item and returns the re-priced
// estimate. The body carries the raw form text; coercion happens server side.
func LineItemEdit(svc estimates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "estimate service unavailable"))
			return
		}

		vendorID, err := vendorIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		estimateID, err := estimateIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := uuid.Parse(strings.TrimSpace(chi.URLParam(r, "itemID")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid line item id"))
			return
		}

		var payload lineItemEditRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		edit := pricing.FieldEdit{
			Field: pricing.Field(strings.TrimSpace(payload.Field)),
			Value: payload.Value,
		}
		estimate, err := svc.ApplyLineItemEdit(r.Context(), vendorID, estimateID, itemID, edit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, estimateResponseFromModel(estimate))
	}
}

// LineItemRemove drops the line item at the given zero-based position.
func LineItemRemove(svc estimates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "estimate service unavailable"))
			return
		}

		vendorID, err := vendorIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		estimateID, err := estimateIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		index, err := validators.ParsePathInt(r, "index", 0)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		estimate, err := svc.RemoveLineItem(r.Context(), vendorID, estimateID, index)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, estimateResponseFromModel(estimate))
	}
}

// PricingConfigUpdate replaces the estimate-level pricing knobs in one call.
func PricingConfigUpdate(svc estimates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "estimate service unavailable"))
			return
		}

		vendorID, err := vendorIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		estimateID, err := estimateIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload estimates.PricingConfigInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		estimate, err := svc.UpdatePricingConfig(r.Context(), vendorID, estimateID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, estimateResponseFromModel(estimate))
	}
}

// InvoiceGenerate assigns the next invoice number and freezes the estimate.
func InvoiceGenerate(svc estimates.Service, invoiceMetrics *metrics.InvoiceMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "estimate service unavailable"))
			return
		}

		vendorID, err := vendorIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		estimateID, err := estimateIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		estimate, err := svc.GenerateInvoice(r.Context(), vendorID, estimateID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if invoiceMetrics != nil {
			invoiceMetrics.IncGenerated(string(estimate.TaxMode))
		}

		responses.WriteSuccess(w, estimateResponseFromModel(estimate))
	}
}

type lineItemResponse struct {
	ID             uuid.UUID `json:"id"`
	Position       int       `json:"position"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	ImageRef       string    `json:"image_ref"`
	CertificateRef string    `json:"certificate_ref"`

	GrossWeight    decimal.Decimal  `json:"gross_weight"`
	NetWeight      decimal.Decimal  `json:"net_weight"`
	PurityFraction decimal.Decimal  `json:"purity_fraction"`
	WeightMode     enums.WeightMode `json:"weight_mode"`

	DiamondWeight        decimal.Decimal `json:"diamond_weight"`
	DiamondPerCarat      decimal.Decimal `json:"diamond_per_carat"`
	DiamondShape         string          `json:"diamond_shape"`
	DiamondColor         string          `json:"diamond_color"`
	DiamondClarity       string          `json:"diamond_clarity"`
	DiamondCut           string          `json:"diamond_cut"`
	DiamondFluorescence  string          `json:"diamond_fluorescence"`
	DiamondMeasurement   string          `json:"diamond_measurement"`
	DiamondCertification string          `json:"diamond_certification"`

	GemstoneWeight    decimal.Decimal       `json:"gemstone_weight"`
	GemstonePerCarat  decimal.Decimal       `json:"gemstone_per_carat"`
	GemstonePricing   enums.GemstonePricing `json:"gemstone_pricing"`
	GemstoneType      string                `json:"gemstone_type"`
	GemstoneColor     string                `json:"gemstone_color"`
	GemstoneClarity   string                `json:"gemstone_clarity"`
	GemstoneOrigin    string                `json:"gemstone_origin"`
	GemstoneTreatment string                `json:"gemstone_treatment"`
	GemstoneShape     string                `json:"gemstone_shape"`

	MakingCharges     decimal.Decimal `json:"making_charges"`
	CertificationCost decimal.Decimal `json:"certification_cost"`
	CADDesignCharges  decimal.Decimal `json:"cad_design_charges"`
	CammingCharges    decimal.Decimal `json:"camming_charges"`

	GoldCost     decimal.Decimal `json:"gold_cost"`
	DiamondCost  decimal.Decimal `json:"diamond_cost"`
	GemstoneCost decimal.Decimal `json:"gemstone_cost"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

type estimateResponse struct {
	ID       uuid.UUID            `json:"id"`
	VendorID uuid.UUID            `json:"vendor_id"`
	Category enums.Category       `json:"category"`
	Status   enums.EstimateStatus `json:"status"`

	CustomerName    string `json:"customer_name"`
	CustomerPhone   string `json:"customer_phone"`
	CustomerEmail   string `json:"customer_email"`
	CustomerAddress string `json:"customer_address"`

	InvoiceNumber *string `json:"invoice_number,omitempty"`
	DocumentRef   string  `json:"document_ref,omitempty"`

	MetalRate      decimal.Decimal `json:"metal_rate"`
	MarginPercent  decimal.Decimal `json:"margin_percent"`
	TaxMode        enums.TaxMode   `json:"tax_mode"`
	SGSTPercent    decimal.Decimal `json:"sgst_percent"`
	CGSTPercent    decimal.Decimal `json:"cgst_percent"`
	IGSTPercent    decimal.Decimal `json:"igst_percent"`
	ShippingCharge decimal.Decimal `json:"shipping_charge"`
	ShippingZone   string          `json:"shipping_zone"`
	ExchangeRate   decimal.Decimal `json:"exchange_rate"`

	TotalCost      decimal.Decimal `json:"total_cost"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	SGSTAmount     decimal.Decimal `json:"sgst_amount"`
	CGSTAmount     decimal.Decimal `json:"cgst_amount"`
	IGSTAmount     decimal.Decimal `json:"igst_amount"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
	SecondaryTotal decimal.Decimal `json:"secondary_total"`

	Items []lineItemResponse `json:"items"`

	GeneratedAt *time.Time `json:"generated_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type estimateListResponse struct {
	Estimates  []estimateResponse `json:"estimates"`
	NextCursor string             `json:"next_cursor,omitempty"`
}

func lineItemResponseFromModel(m models.EstimateLineItem) lineItemResponse {
	return lineItemResponse{
		ID:             m.ID,
		Position:       m.Position,
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

func estimateResponseFromModel(m *models.Estimate) estimateResponse {
	items := make([]lineItemResponse, 0, len(m.Items))
	for _, item := range m.Items {
		items = append(items, lineItemResponseFromModel(item))
	}
	return estimateResponse{
		ID:       m.ID,
		VendorID: m.VendorID,
		Category: m.Category,
		Status:   m.Status,

		CustomerName:    m.CustomerName,
		CustomerPhone:   m.CustomerPhone,
		CustomerEmail:   m.CustomerEmail,
		CustomerAddress: m.CustomerAddress,

		InvoiceNumber: m.InvoiceNumber,
		DocumentRef:   m.DocumentRef,

		MetalRate:      m.MetalRate,
		MarginPercent:  m.MarginPercent,
		TaxMode:        m.TaxMode,
		SGSTPercent:    m.SGSTPercent,
		CGSTPercent:    m.CGSTPercent,
		IGSTPercent:    m.IGSTPercent,
		ShippingCharge: m.ShippingCharge,
		ShippingZone:   m.ShippingZone,
		ExchangeRate:   m.ExchangeRate,

		TotalCost:      m.TotalCost,
		SellingPrice:   m.SellingPrice,
		SGSTAmount:     m.SGSTAmount,
		CGSTAmount:     m.CGSTAmount,
		IGSTAmount:     m.IGSTAmount,
		GrandTotal:     m.GrandTotal,
		SecondaryTotal: m.SecondaryTotal,

		Items: items,

		GeneratedAt: m.GeneratedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
