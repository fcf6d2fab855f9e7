package repository

import (
	"context"

	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/model"
)

// ItemRepository describes persistence operations for the item catalog.
type ItemRepository interface {
	Upsert(ctx context.Context, item *model.InventoryItem) (*model.InventoryItem, error)
	GetBySerial(ctx context.Context, serial string) (*model.InventoryItem, error)
	GetBySerials(ctx context.Context, serials []string) ([]model.InventoryItem, error)
	List(ctx context.Context) ([]model.InventoryItem, error)
}
