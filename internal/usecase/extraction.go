package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/adapter/extraction"
	domainErrors "github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/errors"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/model"
)

// confirmationThreshold is the confidence below which extracted fields must
// be confirmed by a human before they are written anywhere.
const confirmationThreshold = 0.5

// ExtractDetails is the prefill offered to the UI before a transition.
type ExtractDetails struct {
	Success              bool
	Confidence           float64
	DocNumber            string
	DocDate              string
	RequiresConfirmation bool
}

// ExtractionUseCase wraps the extraction collaborator with the
// confirmation policy. Transitions never depend on it.
type ExtractionUseCase struct {
	client      extraction.Client
	maxFileSize int64
}

// NewExtractionUseCase constructs ExtractionUseCase.
func NewExtractionUseCase(client extraction.Client, maxFileSize int64) *ExtractionUseCase {
	return &ExtractionUseCase{client: client, maxFileSize: maxFileSize}
}

// Extract reads document fields out of payload. Low-confidence results are
// flagged so the UI prompts instead of prefilling silently.
func (u *ExtractionUseCase) Extract(ctx context.Context, payload []byte, kind model.FileType) (*ExtractDetails, error) {
	if !kind.Known() {
		return nil, fmt.Errorf("%w: unknown file type %q", domainErrors.ErrValidation, kind)
	}
	if err := ValidatePDF(payload, u.maxFileSize); err != nil {
		return nil, err
	}

	result, err := u.client.Extract(ctx, payload, kind)
	if err != nil {
		if errors.Is(err, extraction.ErrNotConfigured) {
			return nil, fmt.Errorf("%w: extraction service not configured", domainErrors.ErrUnavailable)
		}
		return nil, fmt.Errorf("%w: extraction: %w", domainErrors.ErrUnavailable, err)
	}

	return &ExtractDetails{
		Success:              result.Success,
		Confidence:           result.Confidence,
		DocNumber:            result.DocNumber,
		DocDate:              result.DocDate,
		RequiresConfirmation: !result.Success || result.Confidence < confirmationThreshold,
	}, nil
}
