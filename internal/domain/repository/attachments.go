package repository

import (
	"context"

	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/model"
)

// AttachmentRepository manages versioned attachment metadata. Inserting a
// (order, file type, version) pair that already exists fails with
// ErrAlreadyExists; replace logic relies on that to detect racing writers.
type AttachmentRepository interface {
	Insert(ctx context.Context, att *model.Attachment) (*model.Attachment, error)
	GetByFileID(ctx context.Context, fileID string) (*model.Attachment, error)
	ListByOrder(ctx context.Context, orderNumber string) ([]model.Attachment, error)
	ListByOrderType(ctx context.Context, orderNumber string, fileType model.FileType) ([]model.Attachment, error)
	SetActive(ctx context.Context, fileID string, active bool) error
	DeleteByOrderType(ctx context.Context, orderNumber string, fileType model.FileType) (int64, error)
	DeleteByOrder(ctx context.Context, orderNumber string) (int64, error)
}
