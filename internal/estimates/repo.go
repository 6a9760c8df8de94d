package estimates

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nishantzaveri/jewelbooks-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an estimates repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, estimate *models.Estimate) (*models.Estimate, error) {
	if err := r.db.WithContext(ctx).Create(estimate).Error; err != nil {
		return nil, err
	}
	return estimate, nil
}

func (r *repository) FindByIDAndVendor(ctx context.Context, id, vendorID uuid.UUID) (*models.Estimate, error) {
	var estimate models.Estimate
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ? AND vendor_id = ?", id, vendorID).
		First(&estimate).Error
	if err != nil {
		return nil, err
	}
	return &estimate, nil
}

// List returns vendor-scoped estimates using cursor pagination. Line items
// are not preloaded; list views only show the estimate header and totals.
func (r *repository) List(ctx context.Context, query listQuery) ([]models.Estimate, error) {
	q := r.db.WithContext(ctx).Model(&models.Estimate{}).Where("vendor_id = ?", query.vendorID)

	if query.cursor != nil {
		q = q.Where("(created_at < ?) OR (created_at = ? AND id < ?)", query.cursor.CreatedAt, query.cursor.CreatedAt, query.cursor.ID)
	}

	q = q.Order("created_at DESC").Order("id DESC").Limit(query.limit)

	var rows []models.Estimate
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Save persists the estimate header and derived totals. Line items are
// written through ReplaceItems so position rewrites stay atomic.
func (r *repository) Save(ctx context.Context, estimate *models.Estimate) error {
	return r.db.WithContext(ctx).Omit("Items").Save(estimate).Error
}

func (r *repository) ReplaceItems(ctx context.Context, estimateID uuid.UUID, items []models.EstimateLineItem) error {
	if err := r.db.WithContext(ctx).
		Where("estimate_id = ?", estimateID).
		Delete(&models.EstimateLineItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].EstimateID = estimateID
		items[i].Position = i
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *repository) Delete(ctx context.Context, id, vendorID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND vendor_id = ?", id, vendorID).
		Delete(&models.Estimate{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// LatestInvoiceNumber returns the most recently issued invoice number for the
// vendor, or empty when the vendor has never generated one.
func (r *repository) LatestInvoiceNumber(ctx context.Context, vendorID uuid.UUID) (string, error) {
	var estimate models.Estimate
	err := r.db.WithContext(ctx).
		Select("invoice_number").
		Where("vendor_id = ? AND invoice_number IS NOT NULL", vendorID).
		Order("generated_at DESC").
		First(&estimate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if estimate.InvoiceNumber == nil {
		return "", nil
	}
	return *estimate.InvoiceNumber, nil
}

func (r *repository) FindVendorProfile(ctx context.Context, vendorID uuid.UUID) (*models.VendorProfile, error) {
	var profile models.VendorProfile
	err := r.db.WithContext(ctx).
		Where("id = ?", vendorID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *repository) UpsertVendorProfile(ctx context.Context, profile *models.VendorProfile) (*models.VendorProfile, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"business_name", "logo_url", "accent_color", "contact_email",
				"contact_phone", "address_line", "gstin", "invoice_prefix", "updated_at",
			}),
		}).
		Create(profile).Error
	if err != nil {
		return nil, err
	}
	return profile, nil
}
