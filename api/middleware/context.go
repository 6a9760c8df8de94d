package middleware

import "context"

type contextKey string

const ctxVendorID contextKey = "vendor_id"

func VendorIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxVendorID).(string); ok {
		return v
	}
	return ""
}

// WithVendorID injects the vendor identifier into the context for downstream handlers.
func WithVendorID(ctx context.Context, vendorID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxVendorID, vendorID)
}
