package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nishantzaveri/jewelbooks-backend/internal/estimates"
	"github.com/nishantzaveri/jewelbooks-backend/internal/pricing"
	"github.com/nishantzaveri/jewelbooks-backend/pkg/config"
	"github.com/nishantzaveri/jewelbooks-backend/pkg/db/models"
	"github.com/nishantzaveri/jewelbooks-backend/pkg/enums"
	"github.com/nishantzaveri/jewelbooks-backend/pkg/logger"
	"github.com/nishantzaveri/jewelbooks-backend/pkg/metrics"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type routedEstimatesService struct {
	lastOp string
}

func (s *routedEstimatesService) CreateEstimate(_ context.Context, vendorID uuid.UUID, _ estimates.CreateEstimateInput) (*models.Estimate, error) {
	s.lastOp = "create"
	return &models.Estimate{ID: uuid.New(), VendorID: vendorID, Status: enums.EstimateStatusDraft}, nil
}

func (s *routedEstimatesService) GetEstimate(_ context.Context, vendorID, estimateID uuid.UUID) (*models.Estimate, error) {
	s.lastOp = "get"
	return &models.Estimate{ID: estimateID, VendorID: vendorID}, nil
}

func (s *routedEstimatesService) ListEstimates(_ context.Context, params estimates.ListParams) (*estimates.EstimateList, error) {
	s.lastOp = "list"
	return &estimates.EstimateList{Estimates: []models.Estimate{}}, nil
}

func (s *routedEstimatesService) DeleteEstimate(_ context.Context, _, _ uuid.UUID) error {
	s.lastOp = "delete"
	return nil
}

func (s *routedEstimatesService) AddLineItem(_ context.Context, vendorID, estimateID uuid.UUID) (*models.Estimate, error) {
	s.lastOp = "add-item"
	return &models.Estimate{ID: estimateID, VendorID: vendorID}, nil
}

func (s *routedEstimatesService) ApplyLineItemEdit(_ context.Context, vendorID, estimateID, _ uuid.UUID, _ pricing.FieldEdit) (*models.Estimate, error) {
	s.lastOp = "edit-item"
	return &models.Estimate{ID: estimateID, VendorID: vendorID}, nil
}

func (s *routedEstimatesService) RemoveLineItem(_ context.Context, vendorID, estimateID uuid.UUID, _ int) (*models.Estimate, error) {
	s.lastOp = "remove-item"
	return &models.Estimate{ID: estimateID, VendorID: vendorID}, nil
}

func (s *routedEstimatesService) UpdatePricingConfig(_ context.Context, vendorID, estimateID uuid.UUID, _ estimates.PricingConfigInput) (*models.Estimate, error) {
	s.lastOp = "pricing"
	return &models.Estimate{ID: estimateID, VendorID: vendorID}, nil
}

func (s *routedEstimatesService) GenerateInvoice(_ context.Context, vendorID, estimateID uuid.UUID) (*models.Estimate, error) {
	s.lastOp = "generate"
	number := "INV-2026-001"
	return &models.Estimate{ID: estimateID, VendorID: vendorID, Status: enums.EstimateStatusGenerated, InvoiceNumber: &number}, nil
}

func (s *routedEstimatesService) GetVendorProfile(_ context.Context, vendorID uuid.UUID) (*models.VendorProfile, error) {
	s.lastOp = "get-profile"
	return &models.VendorProfile{ID: vendorID}, nil
}

func (s *routedEstimatesService) UpdateVendorProfile(_ context.Context, vendorID uuid.UUID, input estimates.VendorProfileInput) (*models.VendorProfile, error) {
	s.lastOp = "update-profile"
	return &models.VendorProfile{ID: vendorID, BusinessName: input.BusinessName}, nil
}

func newTestRouter(svc estimates.Service, registry *prometheus.Registry) http.Handler {
	cfg := &config.Config{}
	cfg.App.Env = "test"
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	deps := Deps{
		Config:           cfg,
		Logger:           logg,
		DB:               stubPinger{},
		EstimatesService: svc,
		Registry:         registry,
	}
	if registry != nil {
		deps.HTTPMetrics = metrics.NewHTTPMetrics(registry)
		deps.InvoiceMetrics = metrics.NewInvoiceMetrics(registry)
	}
	return NewRouter(deps)
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(&routedEstimatesService{}, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if resp.Header().Get("X-JewelBooks-Env") != "test" {
		t.Fatalf("expected env header, got %q", resp.Header().Get("X-JewelBooks-Env"))
	}
}

func TestHealthReady(t *testing.T) {
	router := newTestRouter(&routedEstimatesService{}, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestVendorScopeRequired(t *testing.T) {
	router := newTestRouter(&routedEstimatesService{}, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/estimates", nil))

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestEstimateRoutesDispatch(t *testing.T) {
	svc := &routedEstimatesService{}
	router := newTestRouter(svc, nil)
	vendorID := uuid.NewString()
	estimateID := uuid.NewString()
	itemID := uuid.NewString()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		wantOp string
	}{
		{"create", http.MethodPost, "/api/v1/estimates", `{"category":"jewelry"}`, "create"},
		{"list", http.MethodGet, "/api/v1/estimates", "", "list"},
		{"get", http.MethodGet, "/api/v1/estimates/" + estimateID, "", "get"},
		{"delete", http.MethodDelete, "/api/v1/estimates/" + estimateID, "", "delete"},
		{"add item", http.MethodPost, "/api/v1/estimates/" + estimateID + "/items", "", "add-item"},
		{"edit item", http.MethodPatch, "/api/v1/estimates/" + estimateID + "/items/" + itemID, `{"field":"gross_weight","value":"10"}`, "edit-item"},
		{"remove item", http.MethodDelete, "/api/v1/estimates/" + estimateID + "/items/0", "", "remove-item"},
		{"pricing", http.MethodPut, "/api/v1/estimates/" + estimateID + "/pricing", `{"tax_mode":"none"}`, "pricing"},
		{"generate", http.MethodPost, "/api/v1/estimates/" + estimateID + "/generate", "", "generate"},
		{"get profile", http.MethodGet, "/api/v1/vendor/profile", "", "get-profile"},
		{"update profile", http.MethodPut, "/api/v1/vendor/profile", `{"business_name":"Zaveri"}`, "update-profile"},
	}

	for _, tt := range tests {
		var body io.Reader
		if tt.body != "" {
			body = strings.NewReader(tt.body)
		}
		req := httptest.NewRequest(tt.method, tt.path, body)
		req.Header.Set("X-Vendor-Id", vendorID)
		if tt.body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if resp.Code >= http.StatusBadRequest {
			t.Fatalf("%s: unexpected status %d: %s", tt.name, resp.Code, resp.Body.String())
		}
		if svc.lastOp != tt.wantOp {
			t.Fatalf("%s: expected op %q got %q", tt.name, tt.wantOp, svc.lastOp)
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	registry := prometheus.NewRegistry()
	svc := &routedEstimatesService{}
	router := newTestRouter(svc, registry)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/estimates/"+uuid.NewString()+"/generate", nil)
	req.Header.Set("X-Vendor-Id", uuid.NewString())
	router.ServeHTTP(httptest.NewRecorder(), req)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "invoices_generated_total") {
		t.Fatalf("expected invoice counter in metrics output")
	}
	if !strings.Contains(resp.Body.String(), "http_requests_total") {
		t.Fatalf("expected request counter in metrics output")
	}
}

func TestRequestIDEchoed(t *testing.T) {
	router := newTestRouter(&routedEstimatesService{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	req.Header.Set("X-Request-Id", "req-42")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Header().Get("X-Request-Id") != "req-42" {
		t.Fatalf("expected request id echoed, got %q", resp.Header().Get("X-Request-Id"))
	}
}

func TestNotFoundReturnsJSONEnvelopeShape(t *testing.T) {
	router := newTestRouter(&routedEstimatesService{}, nil)
	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil)
	req.Header.Set("X-Vendor-Id", uuid.NewString())
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
	var anything any
	_ = json.Unmarshal(resp.Body.Bytes(), &anything)
}
