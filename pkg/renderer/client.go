package renderer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nishantzaveri/jewelbooks-backend/pkg/config"
	pkgerrors "github.com/nishantzaveri/jewelbooks-backend/pkg/errors"
	"github.com/nishantzaveri/jewelbooks-backend/pkg/logger"
)

var errBaseURLRequired = errors.New("renderer base url is required")

// Client talks to the external document-render service. The service takes a
// JSON payload and hands back an opaque storage reference for the rendered
// document.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *logger.Logger
}

// NewClient validates the renderer configuration and builds the HTTP client.
func NewClient(cfg config.RendererConfig, logg *logger.Logger) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errBaseURLRequired
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		logger:     logg,
	}, nil
}

type renderResponse struct {
	DocumentRef string `json:"document_ref"`
}

// RenderDocument posts the payload to /render/{kind} and returns the
// document reference the service minted.
func (c *Client) RenderDocument(ctx context.Context, kind string, payload any) (string, error) {
	if c == nil {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "renderer client not configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode render payload")
	}

	url := fmt.Sprintf("%s/render/%s", c.baseURL, kind)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build render request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "call render service")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		if c.logger != nil {
			c.logger.Warn(ctx, fmt.Sprintf("render service returned %d: %s", resp.StatusCode, string(snippet)))
		}
		return "", pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("render service returned %d", resp.StatusCode))
	}

	var decoded renderResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode render response")
	}
	if strings.TrimSpace(decoded.DocumentRef) == "" {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "render service returned empty document ref")
	}
	return decoded.DocumentRef, nil
}
