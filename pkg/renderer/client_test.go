package renderer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nishantzaveri/jewelbooks-backend/pkg/config"
	pkgerrors "github.com/nishantzaveri/jewelbooks-backend/pkg/errors"
)

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient(config.RendererConfig{}, nil); err == nil {
		t.Fatal("expected error for empty base url")
	}
}

func TestRenderDocument(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]string{"document_ref": "documents/inv-001.pdf"})
	}))
	defer server.Close()

	client, err := NewClient(config.RendererConfig{BaseURL: server.URL, APIKey: "secret"}, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	ref, err := client.RenderDocument(context.Background(), "invoice", map[string]string{"invoice_number": "INV-2026-001"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if ref != "documents/inv-001.pdf" {
		t.Fatalf("unexpected ref %q", ref)
	}
	if gotPath != "/render/invoice" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("unexpected auth %q", gotAuth)
	}
	if gotBody["invoice_number"] != "INV-2026-001" {
		t.Fatalf("unexpected body %+v", gotBody)
	}
}

func TestRenderDocumentUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := NewClient(config.RendererConfig{BaseURL: server.URL}, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.RenderDocument(context.Background(), "invoice", map[string]string{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestRenderDocumentEmptyRef(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"document_ref": ""})
	}))
	defer server.Close()

	client, err := NewClient(config.RendererConfig{BaseURL: server.URL}, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if _, err := client.RenderDocument(context.Background(), "invoice", nil); err == nil {
		t.Fatal("expected error for empty document ref")
	}
}
