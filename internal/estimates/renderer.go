package estimates

import (
	"context"
	"fmt"
)

type documentClient interface {
	RenderDocument(ctx context.Context, kind string, payload any) (string, error)
}

type httpRenderer struct {
	client documentClient
}

// NewHTTPRenderer adapts the render-service client to the invoice surface.
func NewHTTPRenderer(client documentClient) (DocumentRenderer, error) {
	if client == nil {
		return nil, fmt.Errorf("render client required")
	}
	return &httpRenderer{client: client}, nil
}

func (r *httpRenderer) RenderInvoice(ctx context.Context, payload RenderPayload) (string, error) {
	return r.client.RenderDocument(ctx, "invoice", payload)
}
