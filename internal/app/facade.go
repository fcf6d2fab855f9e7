package app

import (
	"context"

	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/docgen"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/model"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/usecase"
)

// OperationsFacade aggregates the inventory use cases behind one surface
// consumed by the HTTP handlers and the repair worker.
type OperationsFacade struct {
	inventory  *usecase.InventoryUseCase
	lifecycle  *usecase.LifecycleUseCase
	files      *usecase.AttachmentUseCase
	rollback   *usecase.RollbackUseCase
	demo       *usecase.DemoUseCase
	extraction *usecase.ExtractionUseCase
}

// NewOperationsFacade constructs OperationsFacade.
func NewOperationsFacade(
	inventory *usecase.InventoryUseCase,
	lifecycle *usecase.LifecycleUseCase,
	files *usecase.AttachmentUseCase,
	rollback *usecase.RollbackUseCase,
	demo *usecase.DemoUseCase,
	extraction *usecase.ExtractionUseCase,
) *OperationsFacade {
	return &OperationsFacade{
		inventory:  inventory,
		lifecycle:  lifecycle,
		files:      files,
		rollback:   rollback,
		demo:       demo,
		extraction: extraction,
	}
}

func (f *OperationsFacade) CheckInItem(ctx context.Context, item model.InventoryItem, location string) (*model.InventoryItem, *model.TransactionEvent, error) {
	return f.inventory.CheckIn(ctx, item, location)
}

func (f *OperationsFacade) CheckOutItem(ctx context.Context, serial string, status model.ItemStatus, location, reference string) (*model.TransactionEvent, error) {
	return f.inventory.CheckOut(ctx, serial, status, location, reference)
}

func (f *OperationsFacade) Items(ctx context.Context) ([]usecase.ItemOverview, error) {
	return f.inventory.ListItems(ctx)
}

func (f *OperationsFacade) ItemHistory(ctx context.Context, serial string) ([]model.TransactionEvent, error) {
	return f.inventory.History(ctx, serial)
}

func (f *OperationsFacade) ItemStates(ctx context.Context, serials []string) (map[string]model.ItemState, error) {
	return f.inventory.States(ctx, serials)
}

func (f *OperationsFacade) CreateOrder(ctx context.Context, orderNumber, dealer, client string, serials []string) (*model.Order, error) {
	return f.lifecycle.CreateOrder(ctx, orderNumber, dealer, client, serials)
}

func (f *OperationsFacade) Orders(ctx context.Context) ([]model.Order, error) {
	return f.lifecycle.Orders(ctx)
}

func (f *OperationsFacade) Order(ctx context.Context, orderNumber string) (*model.Order, error) {
	return f.lifecycle.Order(ctx, orderNumber)
}

func (f *OperationsFacade) AttachInvoice(ctx context.Context, orderNumber string, payload []byte, filename string, doc model.DocFields) (*model.Order, error) {
	return f.lifecycle.AttachInvoice(ctx, orderNumber, payload, filename, doc)
}

func (f *OperationsFacade) IssueDelivery(ctx context.Context, orderNumber string, payload []byte, filename string, doc model.DocFields) (*model.Order, error) {
	return f.lifecycle.IssueDelivery(ctx, orderNumber, payload, filename, doc)
}

func (f *OperationsFacade) ConfirmDelivery(ctx context.Context, orderNumber string, payload []byte, filename string) (*model.Order, error) {
	return f.lifecycle.ConfirmDelivery(ctx, orderNumber, payload, filename)
}

func (f *OperationsFacade) ReplaceOrderFile(ctx context.Context, orderNumber string, fileType model.FileType, payload []byte, filename string, doc model.DocFields) (*model.Order, error) {
	return f.lifecycle.ReplaceOrderFile(ctx, orderNumber, fileType, payload, filename, doc)
}

// DeliveryNote renders the printable delivery order for the
// print-sign-scan loop that feeds ConfirmDelivery.
func (f *OperationsFacade) DeliveryNote(ctx context.Context, orderNumber string) ([]byte, error) {
	order, err := f.lifecycle.Order(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	return docgen.DeliveryNote(order)
}

func (f *OperationsFacade) OrderFiles(ctx context.Context, orderNumber string) ([]model.Attachment, error) {
	return f.files.ListVersions(ctx, orderNumber)
}

func (f *OperationsFacade) ActiveFiles(ctx context.Context, orderNumber string) (map[model.FileType]model.Attachment, error) {
	return f.files.ListActive(ctx, orderNumber)
}

func (f *OperationsFacade) DownloadFile(ctx context.Context, fileID string) ([]byte, *model.Attachment, error) {
	return f.files.Download(ctx, fileID)
}

func (f *OperationsFacade) RestoreFile(ctx context.Context, fileID string) (*model.Attachment, error) {
	return f.files.Restore(ctx, fileID)
}

func (f *OperationsFacade) CreateDemo(ctx context.Context, dealer, client string, serials []string) (*model.DemoRecord, error) {
	return f.demo.CreateDemo(ctx, dealer, client, serials)
}

func (f *OperationsFacade) Demos(ctx context.Context) ([]model.DemoRecord, error) {
	return f.demo.List(ctx)
}

func (f *OperationsFacade) Demo(ctx context.Context, demoID string) (*model.DemoRecord, error) {
	return f.demo.Get(ctx, demoID)
}

func (f *OperationsFacade) ExtractDetails(ctx context.Context, payload []byte, kind model.FileType) (*usecase.ExtractDetails, error) {
	return f.extraction.Extract(ctx, payload, kind)
}

func (f *OperationsFacade) DeleteOrder(ctx context.Context, orderNumber string) (*usecase.DeletionSummary, error) {
	return f.rollback.DeleteOrder(ctx, orderNumber)
}

func (f *OperationsFacade) DeleteAttachment(ctx context.Context, orderNumber string, fileType model.FileType) error {
	return f.rollback.DeleteAttachment(ctx, orderNumber, fileType)
}

func (f *OperationsFacade) DeleteDemoRecord(ctx context.Context, demoID string) error {
	return f.rollback.DeleteDemoRecord(ctx, demoID)
}

// IncompleteTransitions lists interrupted write sequences for the repair
// worker.
func (f *OperationsFacade) IncompleteTransitions(ctx context.Context) ([]model.TransitionRecord, error) {
	return f.rollback.Incomplete(ctx)
}

// RepairTransition finishes or abandons one interrupted write sequence.
func (f *OperationsFacade) RepairTransition(ctx context.Context, rec model.TransitionRecord) error {
	return f.rollback.RepairTransition(ctx, rec)
}
