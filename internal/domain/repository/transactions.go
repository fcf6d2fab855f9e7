package repository

import (
	"context"

	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/model"
)

// TransactionRepository manages the append-only movement log. Rows are
// never updated; DeleteByReference exists solely for order rollback.
type TransactionRepository interface {
	Append(ctx context.Context, event *model.TransactionEvent) (*model.TransactionEvent, error)
	LatestWindow(ctx context.Context, limit int) ([]model.TransactionEvent, error)
	ListBySerial(ctx context.Context, serial string) ([]model.TransactionEvent, error)
	DeleteByReference(ctx context.Context, reference string) (int64, error)
}
