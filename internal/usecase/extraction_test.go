package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/adapter/extraction"
	domainErrors "github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/errors"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/model"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/test"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/usecase"
)

type extractionClientStub struct {
	result *model.ExtractionResult
	err    error
}

func (s extractionClientStub) Extract(context.Context, []byte, model.FileType) (*model.ExtractionResult, error) {
	return s.result, s.err
}

func TestExtractHighConfidencePrefills(t *testing.T) {
	uc := usecase.NewExtractionUseCase(extractionClientStub{
		result: &model.ExtractionResult{Success: true, Confidence: 0.92, DocNumber: "INV-7", DocDate: "2025-03-01"},
	}, 1<<20)

	details, err := uc.Extract(context.Background(), test.PDFPayload("inv"), model.FileTypeInvoice)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if details.RequiresConfirmation {
		t.Fatal("high-confidence result must not require confirmation")
	}
	if details.DocNumber != "INV-7" || details.DocDate != "2025-03-01" {
		t.Fatalf("unexpected details: %+v", details)
	}
}

func TestExtractLowConfidenceRequiresConfirmation(t *testing.T) {
	uc := usecase.NewExtractionUseCase(extractionClientStub{
		result: &model.ExtractionResult{Success: true, Confidence: 0.3, DocNumber: "INV-7"},
	}, 1<<20)

	details, err := uc.Extract(context.Background(), test.PDFPayload("inv"), model.FileTypeInvoice)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !details.RequiresConfirmation {
		t.Fatal("low-confidence result must require confirmation")
	}
}

func TestExtractUnsuccessfulResultRequiresConfirmation(t *testing.T) {
	uc := usecase.NewExtractionUseCase(extractionClientStub{
		result: &model.ExtractionResult{Success: false, Confidence: 0.9},
	}, 1<<20)

	details, err := uc.Extract(context.Background(), test.PDFPayload("inv"), model.FileTypeInvoice)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !details.RequiresConfirmation {
		t.Fatal("unsuccessful extraction must require confirmation")
	}
}

func TestExtractNotConfigured(t *testing.T) {
	uc := usecase.NewExtractionUseCase(extraction.NewDisabled(), 1<<20)

	if _, err := uc.Extract(context.Background(), test.PDFPayload("inv"), model.FileTypeInvoice); !errors.Is(err, domainErrors.ErrUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
}

func TestExtractValidatesInput(t *testing.T) {
	uc := usecase.NewExtractionUseCase(extractionClientStub{}, 1<<20)

	if _, err := uc.Extract(context.Background(), test.PDFPayload("x"), model.FileType("photo")); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error for unknown type, got %v", err)
	}
	if _, err := uc.Extract(context.Background(), []byte("not a pdf"), model.FileTypeInvoice); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error for non-PDF payload, got %v", err)
	}
}
