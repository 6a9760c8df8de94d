package estimates

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nishantzaveri/jewelbooks-backend/pkg/db/models"
	"github.com/nishantzaveri/jewelbooks-backend/pkg/enums"
	pkgpagination "github.com/nishantzaveri/jewelbooks-backend/pkg/pagination"
)

func setupEstimatesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	estimates := `
CREATE TABLE IF NOT EXISTS estimates (
  id TEXT PRIMARY KEY,
  vendor_id TEXT NOT NULL,
  category TEXT NOT NULL DEFAULT 'jewelry',
  status TEXT NOT NULL DEFAULT 'draft',
  customer_name TEXT NOT NULL DEFAULT '',
  customer_phone TEXT NOT NULL DEFAULT '',
  customer_email TEXT NOT NULL DEFAULT '',
  customer_address TEXT NOT NULL DEFAULT '',
  invoice_number TEXT,
  document_ref TEXT NOT NULL DEFAULT '',
  metal_rate NUMERIC NOT NULL DEFAULT 0,
  margin_percent NUMERIC NOT NULL DEFAULT 0,
  tax_mode TEXT NOT NULL DEFAULT 'none',
  sgst_percent NUMERIC NOT NULL DEFAULT 0,
  cgst_percent NUMERIC NOT NULL DEFAULT 0,
  igst_percent NUMERIC NOT NULL DEFAULT 0,
  shipping_charge NUMERIC NOT NULL DEFAULT 0,
  shipping_zone TEXT NOT NULL DEFAULT '',
  exchange_rate NUMERIC NOT NULL DEFAULT 0,
  total_cost NUMERIC NOT NULL DEFAULT 0,
  selling_price NUMERIC NOT NULL DEFAULT 0,
  sgst_amount NUMERIC NOT NULL DEFAULT 0,
  cgst_amount NUMERIC NOT NULL DEFAULT 0,
  igst_amount NUMERIC NOT NULL DEFAULT 0,
  grand_total NUMERIC NOT NULL DEFAULT 0,
  secondary_total NUMERIC NOT NULL DEFAULT 0,
  generated_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	lineItems := `
CREATE TABLE IF NOT EXISTS estimate_line_items (
  id TEXT PRIMARY KEY,
  estimate_id TEXT NOT NULL,
  position INTEGER NOT NULL,
  name TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  image_ref TEXT NOT NULL DEFAULT '',
  certificate_ref TEXT NOT NULL DEFAULT '',
  gross_weight NUMERIC NOT NULL DEFAULT 0,
  net_weight NUMERIC NOT NULL DEFAULT 0,
  purity_fraction NUMERIC NOT NULL DEFAULT 0,
  weight_mode TEXT NOT NULL DEFAULT 'gross',
  diamond_weight NUMERIC NOT NULL DEFAULT 0,
  diamond_per_carat NUMERIC NOT NULL DEFAULT 0,
  diamond_shape TEXT NOT NULL DEFAULT '',
  diamond_color TEXT NOT NULL DEFAULT '',
  diamond_clarity TEXT NOT NULL DEFAULT '',
  diamond_cut TEXT NOT NULL DEFAULT '',
  diamond_fluorescence TEXT NOT NULL DEFAULT '',
  diamond_measurement TEXT NOT NULL DEFAULT '',
  diamond_certification TEXT NOT NULL DEFAULT '',
  gemstone_weight NUMERIC NOT NULL DEFAULT 0,
  gemstone_per_carat NUMERIC NOT NULL DEFAULT 0,
  gemstone_pricing TEXT NOT NULL DEFAULT 'manual',
  gemstone_type TEXT NOT NULL DEFAULT '',
  gemstone_color TEXT NOT NULL DEFAULT '',
  gemstone_clarity TEXT NOT NULL DEFAULT '',
  gemstone_origin TEXT NOT NULL DEFAULT '',
  gemstone_treatment TEXT NOT NULL DEFAULT '',
  gemstone_shape TEXT NOT NULL DEFAULT '',
  making_charges NUMERIC NOT NULL DEFAULT 0,
  certification_cost NUMERIC NOT NULL DEFAULT 0,
  cad_design_charges NUMERIC NOT NULL DEFAULT 0,
  camming_charges NUMERIC NOT NULL DEFAULT 0,
  gold_cost NUMERIC NOT NULL DEFAULT 0,
  diamond_cost NUMERIC NOT NULL DEFAULT 0,
  gemstone_cost NUMERIC NOT NULL DEFAULT 0,
  subtotal NUMERIC NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	profiles := `
CREATE TABLE IF NOT EXISTS vendor_profiles (
  id TEXT PRIMARY KEY,
  business_name TEXT NOT NULL DEFAULT '',
  logo_url TEXT NOT NULL DEFAULT '',
  accent_color TEXT NOT NULL DEFAULT '',
  contact_email TEXT NOT NULL DEFAULT '',
  contact_phone TEXT NOT NULL DEFAULT '',
  address_line TEXT NOT NULL DEFAULT '',
  gstin TEXT NOT NULL DEFAULT '',
  invoice_prefix TEXT NOT NULL DEFAULT '',
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(estimates).Error)
	require.NoError(t, db.Exec(lineItems).Error)
	require.NoError(t, db.Exec(profiles).Error)
	return db
}

func newEstimate(t *testing.T, db *gorm.DB, vendorID uuid.UUID, created time.Time) *models.Estimate {
	t.Helper()

	estimate := &models.Estimate{
		ID:           uuid.New(),
		VendorID:     vendorID,
		Category:     enums.CategoryJewelry,
		Status:       enums.EstimateStatusDraft,
		CustomerName: "Asha Mehta",
		TaxMode:      enums.TaxModeNone,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	require.NoError(t, db.Create(estimate).Error)
	return estimate
}

func TestRepositoryEstimateRoundTrip(t *testing.T) {
	db := setupEstimatesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	vendorID := uuid.New()

	first := uuid.New()
	second := uuid.New()
	estimate := &models.Estimate{
		ID:           uuid.New(),
		VendorID:     vendorID,
		Category:     enums.CategoryJewelry,
		Status:       enums.EstimateStatusDraft,
		CustomerName: "Asha Mehta",
		TaxMode:      enums.TaxModeSplit,
		MetalRate:    decimal.NewFromInt(7500),
		Items: []models.EstimateLineItem{
			{ID: second, Position: 1, Name: "Solitaire Ring", WeightMode: enums.WeightModeGross, GemstonePricing: enums.GemstonePricingManual},
			{ID: first, Position: 0, Name: "Gold Band", WeightMode: enums.WeightModeGross, GemstonePricing: enums.GemstonePricingManual},
		},
	}
	_, err := repo.Create(ctx, estimate)
	require.NoError(t, err)

	found, err := repo.FindByIDAndVendor(ctx, estimate.ID, vendorID)
	require.NoError(t, err)
	require.Len(t, found.Items, 2)
	assert.Equal(t, first, found.Items[0].ID, "items should come back ordered by position")
	assert.Equal(t, second, found.Items[1].ID)
	assert.True(t, found.MetalRate.Equal(decimal.NewFromInt(7500)))

	_, err = repo.FindByIDAndVendor(ctx, estimate.ID, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	found.CustomerName = "Priya Shah"
	require.NoError(t, repo.Save(ctx, found))
	again, err := repo.FindByIDAndVendor(ctx, estimate.ID, vendorID)
	require.NoError(t, err)
	assert.Equal(t, "Priya Shah", again.CustomerName)

	// Dropping the first item shifts the survivor to position 0 without
	// rewriting its id.
	require.NoError(t, repo.ReplaceItems(ctx, estimate.ID, found.Items[1:]))
	again, err = repo.FindByIDAndVendor(ctx, estimate.ID, vendorID)
	require.NoError(t, err)
	require.Len(t, again.Items, 1)
	assert.Equal(t, second, again.Items[0].ID)
	assert.Equal(t, 0, again.Items[0].Position)

	require.NoError(t, repo.Delete(ctx, estimate.ID, vendorID))
	_, err = repo.FindByIDAndVendor(ctx, estimate.ID, vendorID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, estimate.ID, vendorID), gorm.ErrRecordNotFound)
}

func TestRepositoryListPagination(t *testing.T) {
	db := setupEstimatesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	vendorID := uuid.New()
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	oldest := newEstimate(t, db, vendorID, base)
	middle := newEstimate(t, db, vendorID, base.Add(time.Hour))
	newest := newEstimate(t, db, vendorID, base.Add(2*time.Hour))
	newEstimate(t, db, uuid.New(), base.Add(3*time.Hour))

	rows, err := repo.List(ctx, listQuery{vendorID: vendorID, limit: 10})
	require.NoError(t, err)
	require.Len(t, rows, 3, "other vendors' estimates must not leak")
	assert.Equal(t, newest.ID, rows[0].ID)
	assert.Equal(t, middle.ID, rows[1].ID)
	assert.Equal(t, oldest.ID, rows[2].ID)

	cursor := &pkgpagination.Cursor{CreatedAt: rows[1].CreatedAt, ID: rows[1].ID}
	rest, err := repo.List(ctx, listQuery{vendorID: vendorID, limit: 10, cursor: cursor})
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, oldest.ID, rest[0].ID)
}

func TestRepositoryLatestInvoiceNumber(t *testing.T) {
	db := setupEstimatesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	vendorID := uuid.New()
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	latest, err := repo.LatestInvoiceNumber(ctx, vendorID)
	require.NoError(t, err)
	assert.Empty(t, latest)

	older := newEstimate(t, db, vendorID, base)
	newer := newEstimate(t, db, vendorID, base.Add(time.Minute))

	olderNumber := "INV-2026-007"
	olderAt := base.Add(time.Hour)
	older.InvoiceNumber = &olderNumber
	older.GeneratedAt = &olderAt
	require.NoError(t, repo.Save(ctx, older))

	newerNumber := "INV-2026-008"
	newerAt := base.Add(2 * time.Hour)
	newer.InvoiceNumber = &newerNumber
	newer.GeneratedAt = &newerAt
	require.NoError(t, repo.Save(ctx, newer))

	latest, err = repo.LatestInvoiceNumber(ctx, vendorID)
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-008", latest)
}

func TestRepositoryVendorProfileUpsert(t *testing.T) {
	db := setupEstimatesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	vendorID := uuid.New()

	_, err := repo.FindVendorProfile(ctx, vendorID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.UpsertVendorProfile(ctx, &models.VendorProfile{
		ID:            vendorID,
		BusinessName:  "Zaveri & Sons",
		InvoicePrefix: "ZAVERI",
	})
	require.NoError(t, err)

	_, err = repo.UpsertVendorProfile(ctx, &models.VendorProfile{
		ID:            vendorID,
		BusinessName:  "Zaveri & Sons Pvt Ltd",
		InvoicePrefix: "ZAVERI",
		AccentColor:   "#b8860b",
	})
	require.NoError(t, err)

	profile, err := repo.FindVendorProfile(ctx, vendorID)
	require.NoError(t, err)
	assert.Equal(t, "Zaveri & Sons Pvt Ltd", profile.BusinessName)
	assert.Equal(t, "#b8860b", profile.AccentColor)
}
