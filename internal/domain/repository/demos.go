package repository

import (
	"context"

	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/model"
)

// DemoRepository describes persistence operations for demo loan records.
type DemoRepository interface {
	Create(ctx context.Context, rec *model.DemoRecord) (*model.DemoRecord, error)
	GetByDemoID(ctx context.Context, demoID string) (*model.DemoRecord, error)
	List(ctx context.Context) ([]model.DemoRecord, error)
	Delete(ctx context.Context, demoID string) error
}
