package repository

import (
	"context"
	"time"

	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/model"
)

// TransitionRepository stores the durable step log of document write
// sequences. The repair pass reads it to finish or abandon interrupted
// sequences.
type TransitionRepository interface {
	Create(ctx context.Context, rec *model.TransitionRecord) (*model.TransitionRecord, error)
	// MarkCommitted records that the attachment row landed and remembers its
	// file id.
	MarkCommitted(ctx context.Context, id, fileID string) error
	MarkStep(ctx context.Context, id string, step model.TransitionStep, lastError string) error
	// ListIncomplete returns records still in started or
	// attachment_committed whose last update is older than before.
	ListIncomplete(ctx context.Context, before time.Time) ([]model.TransitionRecord, error)
	// CompensateByAttachment marks every incomplete record of the pair
	// compensated when its attachment group is rolled back.
	CompensateByAttachment(ctx context.Context, orderNumber string, fileType model.FileType) error
}
