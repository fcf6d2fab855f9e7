package usecase

import (
	"context"
	"errors"
	"fmt"

	domainErrors "github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/errors"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/model"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/repository"
)

// ItemOverview pairs a catalog entry with its projected state. State is nil
// when the item has no event inside the scan window.
type ItemOverview struct {
	Item  model.InventoryItem
	State *model.ItemState
}

// InventoryUseCase covers warehouse check-in/check-out and reporting reads.
type InventoryUseCase struct {
	items        repository.ItemRepository
	transactions repository.TransactionRepository
	projector    *Projector
}

// NewInventoryUseCase constructs InventoryUseCase.
func NewInventoryUseCase(items repository.ItemRepository, transactions repository.TransactionRepository, projector *Projector) *InventoryUseCase {
	return &InventoryUseCase{items: items, transactions: transactions, projector: projector}
}

// CheckIn registers or updates an item and appends a Stock_In/Active event
// at the given location. An item re-appears through check-in after any
// number of check-outs; the catalog row is never deleted.
func (u *InventoryUseCase) CheckIn(ctx context.Context, item model.InventoryItem, location string) (*model.InventoryItem, *model.TransactionEvent, error) {
	serial := model.NormalizeSerial(item.SerialNumber)
	if serial == "" {
		return nil, nil, fmt.Errorf("%w: serial number required", domainErrors.ErrValidation)
	}
	item.SerialNumber = serial

	stored, err := u.items.Upsert(ctx, &item)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: upsert item: %w", domainErrors.ErrPersistence, err)
	}

	event, err := u.transactions.Append(ctx, &model.TransactionEvent{
		SerialNumber: serial,
		Type:         model.TransactionStockIn,
		Status:       model.ItemStatusActive,
		Location:     location,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: append check-in event: %w", domainErrors.ErrPersistence, err)
	}
	return stored, event, nil
}

// CheckOut appends a Stock_Out event with the given status. The item must
// exist and must not already be checked out.
func (u *InventoryUseCase) CheckOut(ctx context.Context, serial string, status model.ItemStatus, location, reference string) (*model.TransactionEvent, error) {
	serial = model.NormalizeSerial(serial)
	if _, err := u.items.GetBySerial(ctx, serial); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: item %s", domainErrors.ErrNotFound, serial)
		}
		return nil, fmt.Errorf("%w: load item: %w", domainErrors.ErrPersistence, err)
	}

	history, err := u.transactions.ListBySerial(ctx, serial)
	if err != nil {
		return nil, fmt.Errorf("%w: load history: %w", domainErrors.ErrPersistence, err)
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("%w: item %s was never checked in", domainErrors.ErrPrecondition, serial)
	}
	if history[0].Type == model.TransactionStockOut {
		return nil, fmt.Errorf("%w: item %s is already checked out", domainErrors.ErrPrecondition, serial)
	}

	event, err := u.transactions.Append(ctx, &model.TransactionEvent{
		SerialNumber: serial,
		Type:         model.TransactionStockOut,
		Status:       status,
		Location:     location,
		Reference:    reference,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: append check-out event: %w", domainErrors.ErrPersistence, err)
	}
	return event, nil
}

// History returns the full event log of one serial, newest first.
func (u *InventoryUseCase) History(ctx context.Context, serial string) ([]model.TransactionEvent, error) {
	return u.transactions.ListBySerial(ctx, serial)
}

// States projects the requested serials.
func (u *InventoryUseCase) States(ctx context.Context, serials []string) (map[string]model.ItemState, error) {
	return u.projector.States(ctx, serials)
}

// ListItems joins the item catalog with the window projection.
func (u *InventoryUseCase) ListItems(ctx context.Context) ([]ItemOverview, error) {
	items, err := u.items.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list items: %w", domainErrors.ErrPersistence, err)
	}
	states, err := u.projector.WindowStates(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]ItemOverview, 0, len(items))
	for _, item := range items {
		overview := ItemOverview{Item: item}
		if state, ok := states[item.SerialNumber]; ok {
			s := state
			overview.State = &s
		}
		result = append(result, overview)
	}
	return result, nil
}
