package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	domainErrors "github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/errors"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/model"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/repository"
)

// DemoUseCase manages demonstration loans: items leave stock with a Demo
// status and come back through the rollback coordinator's DeleteDemoRecord.
type DemoUseCase struct {
	demos        repository.DemoRepository
	items        repository.ItemRepository
	transactions repository.TransactionRepository
	projector    *Projector
}

// NewDemoUseCase constructs DemoUseCase.
func NewDemoUseCase(demos repository.DemoRepository, items repository.ItemRepository, transactions repository.TransactionRepository, projector *Projector) *DemoUseCase {
	return &DemoUseCase{demos: demos, items: items, transactions: transactions, projector: projector}
}

// CreateDemo loans the given items to a customer. The same availability
// gate as order creation applies; the loan location is the receiving
// customer so paperwork shows where the item went.
func (u *DemoUseCase) CreateDemo(ctx context.Context, dealer, client string, serials []string) (*model.DemoRecord, error) {
	if len(serials) == 0 {
		return nil, fmt.Errorf("%w: at least one item required", domainErrors.ErrValidation)
	}

	states, err := u.projector.States(ctx, serials)
	if err != nil {
		return nil, fmt.Errorf("%w: project item states: %w", domainErrors.ErrPersistence, err)
	}
	catalog, err := u.items.GetBySerials(ctx, serials)
	if err != nil {
		return nil, fmt.Errorf("%w: load items: %w", domainErrors.ErrPersistence, err)
	}
	bySerial := make(map[string]model.InventoryItem, len(catalog))
	for _, item := range catalog {
		bySerial[item.SerialNumber] = item
	}

	snapshot := make([]model.OrderItem, 0, len(serials))
	for _, raw := range serials {
		serial := model.NormalizeSerial(raw)
		state, ok := states[serial]
		if !ok || !state.Available() {
			return nil, fmt.Errorf("%w: item %s is not available", domainErrors.ErrValidation, serial)
		}
		item, ok := bySerial[serial]
		if !ok {
			return nil, fmt.Errorf("%w: item %s is not in the catalog", domainErrors.ErrValidation, serial)
		}
		snapshot = append(snapshot, model.OrderItem{
			SerialNumber:      serial,
			EquipmentCategory: item.EquipmentCategory,
			Model:             item.Model,
			Size:              item.Size,
			Batch:             item.Batch,
			Location:          state.Location,
		})
	}

	rec, err := u.demos.Create(ctx, &model.DemoRecord{
		DemoID:         uuid.NewString(),
		CustomerDealer: dealer,
		CustomerClient: client,
		Items:          snapshot,
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: demo id collision", domainErrors.ErrConflict)
		}
		return nil, fmt.Errorf("%w: create demo: %w", domainErrors.ErrPersistence, err)
	}

	for _, item := range snapshot {
		_, err := u.transactions.Append(ctx, &model.TransactionEvent{
			SerialNumber: item.SerialNumber,
			Type:         model.TransactionStockOut,
			Status:       model.ItemStatusDemo,
			Location:     client,
			Reference:    rec.DemoID,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: loan item %s: %w", domainErrors.ErrPersistence, item.SerialNumber, err)
		}
	}

	return rec, nil
}

// Get returns one demo record.
func (u *DemoUseCase) Get(ctx context.Context, demoID string) (*model.DemoRecord, error) {
	rec, err := u.demos.GetByDemoID(ctx, demoID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: demo %s", domainErrors.ErrNotFound, demoID)
		}
		return nil, fmt.Errorf("%w: load demo: %w", domainErrors.ErrPersistence, err)
	}
	return rec, nil
}

// List returns all demo records, newest first.
func (u *DemoUseCase) List(ctx context.Context) ([]model.DemoRecord, error) {
	return u.demos.List(ctx)
}
