package handlers

import (
	"context"

	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/model"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/usecase"
)

// InventoryFacade describes warehouse operations required by handlers.
type InventoryFacade interface {
	CheckInItem(ctx context.Context, item model.InventoryItem, location string) (*model.InventoryItem, *model.TransactionEvent, error)
	CheckOutItem(ctx context.Context, serial string, status model.ItemStatus, location, reference string) (*model.TransactionEvent, error)
	Items(ctx context.Context) ([]usecase.ItemOverview, error)
	ItemHistory(ctx context.Context, serial string) ([]model.TransactionEvent, error)
	ItemStates(ctx context.Context, serials []string) (map[string]model.ItemState, error)
}

// OrderFacade encapsulates order lifecycle operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, orderNumber, dealer, client string, serials []string) (*model.Order, error)
	Orders(ctx context.Context) ([]model.Order, error)
	Order(ctx context.Context, orderNumber string) (*model.Order, error)
	AttachInvoice(ctx context.Context, orderNumber string, payload []byte, filename string, doc model.DocFields) (*model.Order, error)
	IssueDelivery(ctx context.Context, orderNumber string, payload []byte, filename string, doc model.DocFields) (*model.Order, error)
	ConfirmDelivery(ctx context.Context, orderNumber string, payload []byte, filename string) (*model.Order, error)
	ReplaceOrderFile(ctx context.Context, orderNumber string, fileType model.FileType, payload []byte, filename string, doc model.DocFields) (*model.Order, error)
	DeliveryNote(ctx context.Context, orderNumber string) ([]byte, error)
}

// FileFacade provides attachment version operations.
type FileFacade interface {
	OrderFiles(ctx context.Context, orderNumber string) ([]model.Attachment, error)
	ActiveFiles(ctx context.Context, orderNumber string) (map[model.FileType]model.Attachment, error)
	DownloadFile(ctx context.Context, fileID string) ([]byte, *model.Attachment, error)
	RestoreFile(ctx context.Context, fileID string) (*model.Attachment, error)
}

// DemoFacade provides demo loan operations.
type DemoFacade interface {
	CreateDemo(ctx context.Context, dealer, client string, serials []string) (*model.DemoRecord, error)
	Demos(ctx context.Context) ([]model.DemoRecord, error)
	Demo(ctx context.Context, demoID string) (*model.DemoRecord, error)
}

// ExtractionFacade provides document field prefill.
type ExtractionFacade interface {
	ExtractDetails(ctx context.Context, payload []byte, kind model.FileType) (*usecase.ExtractDetails, error)
}

// AdminFacade provides the destructive rollback operations.
type AdminFacade interface {
	DeleteOrder(ctx context.Context, orderNumber string) (*usecase.DeletionSummary, error)
	DeleteAttachment(ctx context.Context, orderNumber string, fileType model.FileType) error
	DeleteDemoRecord(ctx context.Context, demoID string) error
}

// OperationsFacade aggregates the full set of operations used across handlers.
type OperationsFacade interface {
	InventoryFacade
	OrderFacade
	FileFacade
	DemoFacade
	ExtractionFacade
	AdminFacade
}
