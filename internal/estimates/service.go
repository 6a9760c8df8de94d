package estimates

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nishantzaveri/jewelbooks-backend/internal/pricing"
	"github.com/nishantzaveri/jewelbooks-backend/pkg/db"
	"github.com/nishantzaveri/jewelbooks-backend/pkg/db/models"
	"github.com/nishantzaveri/jewelbooks-backend/pkg/enums"
	pkgerrors "github.com/nishantzaveri/jewelbooks-backend/pkg/errors"
	pkgpagination "github.com/nishantzaveri/jewelbooks-backend/pkg/pagination"
)

const vendorInvoiceNumberIdx = "idx_estimates_vendor_invoice_number"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines estimate lifecycle operations: draft creation, field-level
// editing, pricing configuration, and invoice generation.
type Service interface {
	CreateEstimate(ctx context.Context, vendorID uuid.UUID, input CreateEstimateInput) (*models.Estimate, error)
	GetEstimate(ctx context.Context, vendorID, estimateID uuid.UUID) (*models.Estimate, error)
	ListEstimates(ctx context.Context, params ListParams) (*EstimateList, error)
	DeleteEstimate(ctx context.Context, vendorID, estimateID uuid.UUID) error
	AddLineItem(ctx context.Context, vendorID, estimateID uuid.UUID) (*models.Estimate, error)
	ApplyLineItemEdit(ctx context.Context, vendorID, estimateID, itemID uuid.UUID, edit pricing.FieldEdit) (*models.Estimate, error)
	RemoveLineItem(ctx context.Context, vendorID, estimateID uuid.UUID, index int) (*models.Estimate, error)
	UpdatePricingConfig(ctx context.Context, vendorID, estimateID uuid.UUID, input PricingConfigInput) (*models.Estimate, error)
	GenerateInvoice(ctx context.Context, vendorID, estimateID uuid.UUID) (*models.Estimate, error)
	GetVendorProfile(ctx context.Context, vendorID uuid.UUID) (*models.VendorProfile, error)
	UpdateVendorProfile(ctx context.Context, vendorID uuid.UUID, input VendorProfileInput) (*models.VendorProfile, error)
}

type service struct {
	repo          Repository
	tx            txRunner
	renderer      DocumentRenderer
	defaultPrefix string
}

// NewService wires the estimates service. The renderer is optional; with a
// nil renderer generated invoices simply carry no document reference.
func NewService(repo Repository, tx txRunner, renderer DocumentRenderer, defaultPrefix string) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("estimates repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if strings.TrimSpace(defaultPrefix) == "" {
		defaultPrefix = "INV"
	}
	return &service{
		repo:          repo,
		tx:            tx,
		renderer:      renderer,
		defaultPrefix: defaultPrefix,
	}, nil
}

func (s *service) CreateEstimate(ctx context.Context, vendorID uuid.UUID, input CreateEstimateInput) (*models.Estimate, error) {
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor identity missing")
	}
	category, err := enums.ParseCategory(input.Category)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
	}
	if input.MetalRate.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "metal rate cannot be negative")
	}

	estimate := &models.Estimate{
		ID:              uuid.New(),
		VendorID:        vendorID,
		Category:        category,
		Status:          enums.EstimateStatusDraft,
		CustomerName:    strings.TrimSpace(input.CustomerName),
		CustomerPhone:   strings.TrimSpace(input.CustomerPhone),
		CustomerEmail:   strings.TrimSpace(input.CustomerEmail),
		CustomerAddress: strings.TrimSpace(input.CustomerAddress),
		MetalRate:       input.MetalRate,
		TaxMode:         enums.TaxModeNone,
	}
	if _, err := s.repo.Create(ctx, estimate); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create estimate")
	}
	return estimate, nil
}

func (s *service) GetEstimate(ctx context.Context, vendorID, estimateID uuid.UUID) (*models.Estimate, error) {
	return s.loadEstimate(ctx, s.repo, vendorID, estimateID)
}

func (s *service) ListEstimates(ctx context.Context, params ListParams) (*EstimateList, error) {
	if params.VendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor identity missing")
	}

	limit := pkgpagination.NormalizeLimit(params.Limit)
	query := listQuery{
		vendorID: params.VendorID,
		limit:    pkgpagination.LimitWithBuffer(params.Limit),
	}
	if params.Cursor != "" {
		cursor, err := pkgpagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.cursor = cursor
	}

	rows, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list estimates")
	}

	nextCursor := ""
	if len(rows) > limit {
		nextCursor = pkgpagination.EncodeCursor(pkgpagination.Cursor{
			CreatedAt: rows[limit].CreatedAt,
			ID:        rows[limit].ID,
		})
		rows = rows[:limit]
	}

	return &EstimateList{
		Estimates:  rows,
		NextCursor: nextCursor,
	}, nil
}

func (s *service) DeleteEstimate(ctx context.Context, vendorID, estimateID uuid.UUID) error {
	if vendorID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "vendor identity missing")
	}
	if estimateID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "estimate id is required")
	}
	if err := s.repo.Delete(ctx, estimateID, vendorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "estimate not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete estimate")
	}
	return nil
}

func (s *service) AddLineItem(ctx context.Context, vendorID, estimateID uuid.UUID) (*models.Estimate, error) {
	var out *models.Estimate
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		estimate, err := s.loadEstimate(ctx, repo, vendorID, estimateID)
		if err != nil {
			return err
		}

		item := models.EstimateLineItem{
			ID:              uuid.New(),
			EstimateID:      estimate.ID,
			Position:        len(estimate.Items),
			WeightMode:      enums.WeightModeGross,
			GemstonePricing: enums.GemstonePricingManual,
		}
		estimate.Items = append(estimate.Items, item)

		out, err = s.persist(ctx, repo, estimate)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ApplyLineItemEdit writes a single field through the pricing reducer and
// re-derives the item's cost block plus the estimate totals.
func (s *service) ApplyLineItemEdit(ctx context.Context, vendorID, estimateID, itemID uuid.UUID, edit pricing.FieldEdit) (*models.Estimate, error) {
	if !edit.Field.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown line item field").
			WithDetails(map[string]string{"field": string(edit.Field)})
	}

	var out *models.Estimate
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		estimate, err := s.loadEstimate(ctx, repo, vendorID, estimateID)
		if err != nil {
			return err
		}

		collection := collectionFromModels(estimate.Items)
		index := collection.IndexOf(itemID.String())
		if index < 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "line item not found")
		}

		updated := pricing.Apply(collection[index], edit, estimate.MetalRate)
		applyPricingItem(&estimate.Items[index], updated)

		out, err = s.persist(ctx, repo, estimate)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveLineItem drops the item at the given zero-based position. Surviving
// items keep their ids; only positions shift.
func (s *service) RemoveLineItem(ctx context.Context, vendorID, estimateID uuid.UUID, index int) (*models.Estimate, error) {
	var out *models.Estimate
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		estimate, err := s.loadEstimate(ctx, repo, vendorID, estimateID)
		if err != nil {
			return err
		}
		if index < 0 || index >= len(estimate.Items) {
			return pkgerrors.New(pkgerrors.CodeValidation, "line item index out of range")
		}

		estimate.Items = append(estimate.Items[:index], estimate.Items[index+1:]...)

		out, err = s.persist(ctx, repo, estimate)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdatePricingConfig replaces the estimate-level pricing knobs. A metal rate
// change re-derives every line item before totals are recomputed. A zero
// exchange rate disables the secondary currency; negative rates are rejected.
func (s *service) UpdatePricingConfig(ctx context.Context, vendorID, estimateID uuid.UUID, input PricingConfigInput) (*models.Estimate, error) {
	taxMode, err := enums.ParseTaxMode(input.TaxMode)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid tax mode")
	}
	if input.MetalRate.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "metal rate cannot be negative")
	}
	if input.MarginPercent.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "margin percent cannot be negative")
	}
	if input.SGSTPercent.IsNegative() || input.CGSTPercent.IsNegative() || input.IGSTPercent.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tax percent cannot be negative")
	}
	if input.ShippingCharge.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping charge cannot be negative")
	}
	if input.ExchangeRate.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "exchange rate cannot be negative")
	}

	var out *models.Estimate
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		estimate, err := s.loadEstimate(ctx, repo, vendorID, estimateID)
		if err != nil {
			return err
		}

		rateChanged := !estimate.MetalRate.Equal(input.MetalRate)
		estimate.MetalRate = input.MetalRate
		estimate.MarginPercent = input.MarginPercent
		estimate.TaxMode = taxMode
		estimate.SGSTPercent = input.SGSTPercent
		estimate.CGSTPercent = input.CGSTPercent
		estimate.IGSTPercent = input.IGSTPercent
		estimate.ShippingCharge = input.ShippingCharge
		estimate.ShippingZone = strings.TrimSpace(input.ShippingZone)
		estimate.ExchangeRate = input.ExchangeRate

		if rateChanged {
			for i := range estimate.Items {
				item := pricing.Recompute(pricingItemFromModel(estimate.Items[i]), estimate.MetalRate)
				applyPricingItem(&estimate.Items[i], item)
			}
		}

		out, err = s.persist(ctx, repo, estimate)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GenerateInvoice assigns the next invoice number in the vendor's sequence
// and freezes the estimate as generated. The document render happens after
// the transaction commits; a render failure leaves a numbered invoice with an
// empty document reference rather than rolling the number back.
func (s *service) GenerateInvoice(ctx context.Context, vendorID, estimateID uuid.UUID) (*models.Estimate, error) {
	var out *models.Estimate
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		estimate, err := s.loadEstimate(ctx, repo, vendorID, estimateID)
		if err != nil {
			return err
		}
		if estimate.Status == enums.EstimateStatusGenerated {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "invoice already generated")
		}
		if strings.TrimSpace(estimate.CustomerName) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "customer name required")
		}
		if len(estimate.Items) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "estimate has no line items")
		}

		prefix := s.defaultPrefix
		profile, err := repo.FindVendorProfile(ctx, vendorID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor profile")
		}
		if profile != nil && strings.TrimSpace(profile.InvoicePrefix) != "" {
			prefix = profile.InvoicePrefix
		}

		prev, err := repo.LatestInvoiceNumber(ctx, vendorID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load latest invoice number")
		}

		number := pricing.NextInvoiceNumber(prev, prefix, time.Now().UTC().Year())
		now := time.Now().UTC()
		estimate.InvoiceNumber = &number
		estimate.Status = enums.EstimateStatusGenerated
		estimate.GeneratedAt = &now

		if err := repo.Save(ctx, estimate); err != nil {
			if db.IsUniqueViolation(err, vendorInvoiceNumberIdx) {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "invoice number already taken")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save generated invoice")
		}
		out = estimate
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.renderer != nil {
		if err := s.renderDocument(ctx, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *service) GetVendorProfile(ctx context.Context, vendorID uuid.UUID) (*models.VendorProfile, error) {
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor identity missing")
	}
	profile, err := s.repo.FindVendorProfile(ctx, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor profile")
	}
	return profile, nil
}

func (s *service) UpdateVendorProfile(ctx context.Context, vendorID uuid.UUID, input VendorProfileInput) (*models.VendorProfile, error) {
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor identity missing")
	}
	if strings.TrimSpace(input.BusinessName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "business name required")
	}

	profile := &models.VendorProfile{
		ID:            vendorID,
		BusinessName:  strings.TrimSpace(input.BusinessName),
		LogoURL:       strings.TrimSpace(input.LogoURL),
		AccentColor:   strings.TrimSpace(input.AccentColor),
		ContactEmail:  strings.TrimSpace(input.ContactEmail),
		ContactPhone:  strings.TrimSpace(input.ContactPhone),
		AddressLine:   strings.TrimSpace(input.AddressLine),
		GSTIN:         strings.TrimSpace(input.GSTIN),
		InvoicePrefix: strings.TrimSpace(input.InvoicePrefix),
	}
	saved, err := s.repo.UpsertVendorProfile(ctx, profile)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save vendor profile")
	}
	return saved, nil
}

func (s *service) loadEstimate(ctx context.Context, repo Repository, vendorID, estimateID uuid.UUID) (*models.Estimate, error) {
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor identity missing")
	}
	if estimateID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "estimate id is required")
	}
	estimate, err := repo.FindByIDAndVendor(ctx, estimateID, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "estimate not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load estimate")
	}
	return estimate, nil
}

// persist recomputes the estimate totals from its current line items, then
// writes the header and replaces the item rows in one pass.
func (s *service) persist(ctx context.Context, repo Repository, estimate *models.Estimate) (*models.Estimate, error) {
	totals := pricing.ComputeTotals(collectionFromModels(estimate.Items), pricingConfigFromModel(estimate))
	applyTotals(estimate, totals)

	if err := repo.Save(ctx, estimate); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save estimate")
	}
	if err := repo.ReplaceItems(ctx, estimate.ID, estimate.Items); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save line items")
	}
	return estimate, nil
}

func (s *service) renderDocument(ctx context.Context, estimate *models.Estimate) error {
	profile, err := s.repo.FindVendorProfile(ctx, estimate.VendorID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor profile")
	}

	ref, err := s.renderer.RenderInvoice(ctx, RenderPayload{Estimate: estimate, Branding: profile})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "render invoice document")
	}

	estimate.DocumentRef = ref
	if err := s.repo.Save(ctx, estimate); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save document reference")
	}
	return nil
}
