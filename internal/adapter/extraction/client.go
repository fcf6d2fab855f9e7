package extraction

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/model"
)

// ErrNotConfigured indicates no extraction service address was provided.
var ErrNotConfigured = errors.New("extraction service not configured")

// Client exposes operations to read document fields out of uploaded files.
type Client interface {
	Extract(ctx context.Context, payload []byte, kind model.FileType) (*model.ExtractionResult, error)
}

// HTTPClient implements Client via the extraction HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// request mirrors the JSON payload sent to the extraction service.
type request struct {
	Kind    string `json:"kind"`
	Content string `json:"content"`
}

// response mirrors the JSON payload from the extraction service.
type response struct {
	Success    bool    `json:"success"`
	Confidence float64 `json:"confidence"`
	Fields     struct {
		Number string `json:"number"`
		Date   string `json:"date"`
	} `json:"fields"`
}

// NewHTTPClient creates an HTTP extraction client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse extraction url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("extraction url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Extract submits the file to the extraction service and returns the fields
// it read.
func (c *HTTPClient) Extract(ctx context.Context, payload []byte, kind model.FileType) (*model.ExtractionResult, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/extract")

	body, err := json.Marshal(request{
		Kind:    string(kind),
		Content: base64.StdEncoding.EncodeToString(payload),
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var data response
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, err
		}
		return &model.ExtractionResult{
			Success:    data.Success,
			Confidence: data.Confidence,
			DocNumber:  data.Fields.Number,
			DocDate:    data.Fields.Date,
		}, nil
	case http.StatusUnprocessableEntity:
		return &model.ExtractionResult{Success: false}, nil
	default:
		raw, _ := io.ReadAll(resp.Body)
		c.logger.Error("extraction request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(raw)))
		return nil, fmt.Errorf("extraction error: %s", resp.Status)
	}
}

// DisabledClient is used when no extraction service is configured; every
// call reports ErrNotConfigured so callers fall back to manual entry.
type DisabledClient struct{}

// NewDisabled returns a client for deployments without extraction.
func NewDisabled() *DisabledClient { return &DisabledClient{} }

func (*DisabledClient) Extract(context.Context, []byte, model.FileType) (*model.ExtractionResult, error) {
	return nil, ErrNotConfigured
}
