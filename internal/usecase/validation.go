package usecase

import (
	"bytes"
	"fmt"

	domainErrors "github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/errors"
)

var pdfMagic = []byte("%PDF-")

// ValidatePDF checks that payload looks like a PDF document and fits under
// the configured size ceiling.
func ValidatePDF(payload []byte, maxSize int64) error {
	if len(payload) == 0 {
		return fmt.Errorf("%w: empty file", domainErrors.ErrValidation)
	}
	if int64(len(payload)) > maxSize {
		return fmt.Errorf("%w: file size %d exceeds limit %d", domainErrors.ErrValidation, len(payload), maxSize)
	}
	if !bytes.HasPrefix(payload, pdfMagic) {
		return fmt.Errorf("%w: not a PDF document", domainErrors.ErrValidation)
	}
	return nil
}
