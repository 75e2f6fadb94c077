package invoices

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/avelinebakes/backoffice/backend-go/internal/storage"
	"github.com/rs/zerolog/log"
)

var supportedMimeTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
}

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// ProcessResult is what ingestion hands back to the verification UI:
// the extracted fields plus where the original scan was stored.
type ProcessResult struct {
	Extraction
	StoragePath string `json:"storage_path"`
}

// Service ingests supplier invoice scans: the original file goes to
// object storage, the OCR extractor reads the structured fields.
type Service struct {
	store     storage.ObjectStorage
	extractor Extractor
	now       func() time.Time
}

func NewService(store storage.ObjectStorage, extractor Extractor) *Service {
	return &Service{store: store, extractor: extractor, now: time.Now}
}

// Process stores the scan and runs extraction. The stored object key is
// timestamped so re-uploads of the same filename never collide.
func (s *Service) Process(ctx context.Context, filename, mimeType string, data []byte) (*ProcessResult, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("no file provided")
	}
	if !supportedMimeTypes[mimeType] {
		return nil, fmt.Errorf("unsupported file type %q: upload an image (JPEG, PNG, WebP, GIF) or PDF", mimeType)
	}

	key := fmt.Sprintf("%d-%s", s.now().UnixMilli(), unsafeKeyChars.ReplaceAllString(filename, "_"))
	if err := s.store.UploadObject(ctx, key, mimeType, data); err != nil {
		return nil, fmt.Errorf("failed to store invoice scan: %w", err)
	}

	extraction, err := s.extractor.Extract(ctx, mimeType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to extract invoice fields: %w", err)
	}

	log.Info().
		Str("key", key).
		Str("supplier", extraction.SupplierName).
		Float64("confidence", extraction.Confidence).
		Int("line_items", len(extraction.LineItems)).
		Msg("invoice processed")

	return &ProcessResult{Extraction: *extraction, StoragePath: key}, nil
}
