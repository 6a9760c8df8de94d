package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/nishantzaveri/jewelbooks-backend/api/responses"
	"github.com/nishantzaveri/jewelbooks-backend/api/validators"
	"github.com/nishantzaveri/jewelbooks-backend/internal/estimates"
	"github.com/nishantzaveri/jewelbooks-backend/pkg/db/models"
	pkgerrors "github.com/nishantzaveri/jewelbooks-backend/pkg/errors"
	"github.com/nishantzaveri/jewelbooks-backend/pkg/logger"
)

func VendorProfileGet(svc estimates.Service, logg *logger.Logger) http.HandlerFunc {
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

		profile, err := svc.GetVendorProfile(r.Context(), vendorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, vendorProfileResponseFromModel(profile))
	}
}

// VendorProfileUpdate upserts the vendor's branding and invoice prefix.
func VendorProfileUpdate(svc estimates.Service, logg *logger.Logger) http.HandlerFunc {
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

		var payload estimates.VendorProfileInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.UpdateVendorProfile(r.Context(), vendorID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, vendorProfileResponseFromModel(profile))
	}
}

type vendorProfileResponse struct {
	ID            uuid.UUID `json:"id"`
	BusinessName  string    `json:"business_name"`
	LogoURL       string    `json:"logo_url"`
	AccentColor   string    `json:"accent_color"`
	ContactEmail  string    `json:"contact_email"`
	ContactPhone  string    `json:"contact_phone"`
	AddressLine   string    `json:"address_line"`
	GSTIN         string    `json:"gstin"`
	InvoicePrefix string    `json:"invoice_prefix"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func vendorProfileResponseFromModel(m *models.VendorProfile) vendorProfileResponse {
	return vendorProfileResponse{
		ID:            m.ID,
		BusinessName:  m.BusinessName,
		LogoURL:       m.LogoURL,
		AccentColor:   m.AccentColor,
		ContactEmail:  m.ContactEmail,
		ContactPhone:  m.ContactPhone,
		AddressLine:   m.AddressLine,
		GSTIN:         m.GSTIN,
		InvoicePrefix: m.InvoicePrefix,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
