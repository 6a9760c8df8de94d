package estimates

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nishantzaveri/jewelbooks-backend/pkg/db/models"
)

// Repository defines persistence operations for estimates and vendor
// profiles.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, estimate *models.Estimate) (*models.Estimate, error)
	FindByIDAndVendor(ctx context.Context, id, vendorID uuid.UUID) (*models.Estimate, error)
	List(ctx context.Context, query listQuery) ([]models.Estimate, error)
	Save(ctx context.Context, estimate *models.Estimate) error
	ReplaceItems(ctx context.Context, estimateID uuid.UUID, items []models.EstimateLineItem) error
	Delete(ctx context.Context, id, vendorID uuid.UUID) error
	LatestInvoiceNumber(ctx context.Context, vendorID uuid.UUID) (string, error)
	FindVendorProfile(ctx context.Context, vendorID uuid.UUID) (*models.VendorProfile, error)
	UpsertVendorProfile(ctx context.Context, profile *models.VendorProfile) (*models.VendorProfile, error)
}

// DocumentRenderer is the external document-generation collaborator. It
// receives the estimate data plus vendor branding and returns an opaque
// reference to the produced document; layout is entirely its concern.
type DocumentRenderer interface {
	RenderInvoice(ctx context.Context, payload RenderPayload) (string, error)
}
