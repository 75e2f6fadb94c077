package invoices

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avelinebakes/backoffice/backend-go/internal/config"
)

// ExtractedLineItem is one invoice line as read by the extractor.
type ExtractedLineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitCost    float64 `json:"unit_cost"`
}

// Extraction is the structured result of reading a supplier invoice.
type Extraction struct {
	SupplierName  string              `json:"supplier_name"`
	InvoiceNumber string              `json:"invoice_number"`
	Date          string              `json:"date"` // YYYY-MM-DD
	Total         float64             `json:"total"`
	Confidence    float64             `json:"confidence"`
	LineItems     []ExtractedLineItem `json:"line_items"`
}

// Extractor reads structured invoice fields from a scanned document.
// The OCR model behind it is a black box.
type Extractor interface {
	Extract(ctx context.Context, mimeType string, data []byte) (*Extraction, error)
}

// HTTPExtractor calls a hosted OCR endpoint that accepts base64 payloads
// and answers with Extraction JSON.
type HTTPExtractor struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
}

func NewHTTPExtractor(cfg config.OCRConfig) (*HTTPExtractor, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("ocr endpoint must be provided")
	}

	timeout := time.Duration(cfg.TimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = time.Minute
	}

	return &HTTPExtractor{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

type extractRequest struct {
	Model     string `json:"model"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

func (e *HTTPExtractor) Extract(ctx context.Context, mimeType string, data []byte) (*Extraction, error) {
	payload, err := json.Marshal(extractRequest{
		Model:     e.model,
		MediaType: mimeType,
		Data:      base64.StdEncoding.EncodeToString(data),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode ocr request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build ocr request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ocr request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ocr endpoint returned status %d", resp.StatusCode)
	}

	var raw struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode ocr response: %w", err)
	}

	return parseExtraction(raw.Text)
}

// parseExtraction tolerates models that wrap their JSON answer in
// markdown fences.
func parseExtraction(text string) (*Extraction, error) {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var extraction Extraction
	if err := json.Unmarshal([]byte(cleaned), &extraction); err != nil {
		return nil, fmt.Errorf("failed to parse extraction result: %w", err)
	}
	return &extraction, nil
}
