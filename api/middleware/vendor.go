package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/nishantzaveri/jewelbooks-backend/api/responses"
	pkgerrors "github.com/nishantzaveri/jewelbooks-backend/pkg/errors"
	"github.com/nishantzaveri/jewelbooks-backend/pkg/logger"
)

const vendorIDHeader = "X-Vendor-Id"

// VendorContext resolves the calling vendor from the X-Vendor-Id header and
// stashes it in the request context. Every /api/v1 route is vendor scoped.
func VendorContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(vendorIDHeader))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "X-Vendor-Id header required"))
				return
			}

			vendorID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "X-Vendor-Id must be a valid UUID"))
				return
			}

			ctx := WithVendorID(r.Context(), vendorID.String())
			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{"vendor_id": vendorID.String()})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
