package test

import (
	"context"

	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/model"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/usecase"
)

// OperationsFacadeStub provides controllable behaviour for HTTP handlers.
// Each method delegates to its Fn field when set and returns a benign
// default otherwise.
type OperationsFacadeStub struct {
	CheckInItemFn      func(context.Context, model.InventoryItem, string) (*model.InventoryItem, *model.TransactionEvent, error)
	CheckOutItemFn     func(context.Context, string, model.ItemStatus, string, string) (*model.TransactionEvent, error)
	ItemsFn            func(context.Context) ([]usecase.ItemOverview, error)
	ItemHistoryFn      func(context.Context, string) ([]model.TransactionEvent, error)
	ItemStatesFn       func(context.Context, []string) (map[string]model.ItemState, error)
	CreateOrderFn      func(context.Context, string, string, string, []string) (*model.Order, error)
	OrdersFn           func(context.Context) ([]model.Order, error)
	OrderFn            func(context.Context, string) (*model.Order, error)
	AttachInvoiceFn    func(context.Context, string, []byte, string, model.DocFields) (*model.Order, error)
	IssueDeliveryFn    func(context.Context, string, []byte, string, model.DocFields) (*model.Order, error)
	ConfirmDeliveryFn  func(context.Context, string, []byte, string) (*model.Order, error)
	ReplaceOrderFileFn func(context.Context, string, model.FileType, []byte, string, model.DocFields) (*model.Order, error)
	DeliveryNoteFn     func(context.Context, string) ([]byte, error)
	OrderFilesFn       func(context.Context, string) ([]model.Attachment, error)
	ActiveFilesFn      func(context.Context, string) (map[model.FileType]model.Attachment, error)
	DownloadFileFn     func(context.Context, string) ([]byte, *model.Attachment, error)
	RestoreFileFn      func(context.Context, string) (*model.Attachment, error)
	CreateDemoFn       func(context.Context, string, string, []string) (*model.DemoRecord, error)
	DemosFn            func(context.Context) ([]model.DemoRecord, error)
	DemoFn             func(context.Context, string) (*model.DemoRecord, error)
	ExtractDetailsFn   func(context.Context, []byte, model.FileType) (*usecase.ExtractDetails, error)
	DeleteOrderFn      func(context.Context, string) (*usecase.DeletionSummary, error)
	DeleteAttachmentFn func(context.Context, string, model.FileType) error
	DeleteDemoFn       func(context.Context, string) error
}

func (s *OperationsFacadeStub) CheckInItem(ctx context.Context, item model.InventoryItem, location string) (*model.InventoryItem, *model.TransactionEvent, error) {
	if s.CheckInItemFn != nil {
		return s.CheckInItemFn(ctx, item, location)
	}
	saved := item
	saved.SerialNumber = model.NormalizeSerial(item.SerialNumber)
	return &saved, &model.TransactionEvent{
		SerialNumber: saved.SerialNumber,
		Type:         model.TransactionStockIn,
		Status:       model.ItemStatusActive,
		Location:     location,
	}, nil
}

func (s *OperationsFacadeStub) CheckOutItem(ctx context.Context, serial string, status model.ItemStatus, location, reference string) (*model.TransactionEvent, error) {
	if s.CheckOutItemFn != nil {
		return s.CheckOutItemFn(ctx, serial, status, location, reference)
	}
	return &model.TransactionEvent{
		SerialNumber: model.NormalizeSerial(serial),
		Type:         model.TransactionStockOut,
		Status:       status,
		Location:     location,
		Reference:    reference,
	}, nil
}

func (s *OperationsFacadeStub) Items(ctx context.Context) ([]usecase.ItemOverview, error) {
	if s.ItemsFn != nil {
		return s.ItemsFn(ctx)
	}
	return nil, nil
}

func (s *OperationsFacadeStub) ItemHistory(ctx context.Context, serial string) ([]model.TransactionEvent, error) {
	if s.ItemHistoryFn != nil {
		return s.ItemHistoryFn(ctx, serial)
	}
	return nil, nil
}

func (s *OperationsFacadeStub) ItemStates(ctx context.Context, serials []string) (map[string]model.ItemState, error) {
	if s.ItemStatesFn != nil {
		return s.ItemStatesFn(ctx, serials)
	}
	return map[string]model.ItemState{}, nil
}

func (s *OperationsFacadeStub) CreateOrder(ctx context.Context, orderNumber, dealer, client string, serials []string) (*model.Order, error) {
	if s.CreateOrderFn != nil {
		return s.CreateOrderFn(ctx, orderNumber, dealer, client, serials)
	}
	return &model.Order{
		OrderNumber:    orderNumber,
		CustomerDealer: dealer,
		CustomerClient: client,
		InvoiceStatus:  model.InvoiceStatusReserved,
		DeliveryStatus: model.DeliveryStatusPending,
	}, nil
}

func (s *OperationsFacadeStub) Orders(ctx context.Context) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx)
	}
	return nil, nil
}

func (s *OperationsFacadeStub) Order(ctx context.Context, orderNumber string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, orderNumber)
	}
	return &model.Order{
		OrderNumber:    orderNumber,
		InvoiceStatus:  model.InvoiceStatusReserved,
		DeliveryStatus: model.DeliveryStatusPending,
	}, nil
}

func (s *OperationsFacadeStub) AttachInvoice(ctx context.Context, orderNumber string, payload []byte, filename string, doc model.DocFields) (*model.Order, error) {
	if s.AttachInvoiceFn != nil {
		return s.AttachInvoiceFn(ctx, orderNumber, payload, filename, doc)
	}
	return &model.Order{
		OrderNumber:    orderNumber,
		InvoiceStatus:  model.InvoiceStatusInvoiced,
		DeliveryStatus: model.DeliveryStatusPending,
		InvoiceNumber:  doc.Number,
		InvoiceDate:    doc.Date,
	}, nil
}

func (s *OperationsFacadeStub) IssueDelivery(ctx context.Context, orderNumber string, payload []byte, filename string, doc model.DocFields) (*model.Order, error) {
	if s.IssueDeliveryFn != nil {
		return s.IssueDeliveryFn(ctx, orderNumber, payload, filename, doc)
	}
	return &model.Order{
		OrderNumber:    orderNumber,
		InvoiceStatus:  model.InvoiceStatusInvoiced,
		DeliveryStatus: model.DeliveryStatusIssued,
		DeliveryNumber: doc.Number,
		DeliveryDate:   doc.Date,
	}, nil
}

func (s *OperationsFacadeStub) ConfirmDelivery(ctx context.Context, orderNumber string, payload []byte, filename string) (*model.Order, error) {
	if s.ConfirmDeliveryFn != nil {
		return s.ConfirmDeliveryFn(ctx, orderNumber, payload, filename)
	}
	return &model.Order{
		OrderNumber:    orderNumber,
		InvoiceStatus:  model.InvoiceStatusInvoiced,
		DeliveryStatus: model.DeliveryStatusDelivered,
	}, nil
}

func (s *OperationsFacadeStub) ReplaceOrderFile(ctx context.Context, orderNumber string, fileType model.FileType, payload []byte, filename string, doc model.DocFields) (*model.Order, error) {
	if s.ReplaceOrderFileFn != nil {
		return s.ReplaceOrderFileFn(ctx, orderNumber, fileType, payload, filename, doc)
	}
	return &model.Order{OrderNumber: orderNumber}, nil
}

func (s *OperationsFacadeStub) DeliveryNote(ctx context.Context, orderNumber string) ([]byte, error) {
	if s.DeliveryNoteFn != nil {
		return s.DeliveryNoteFn(ctx, orderNumber)
	}
	return []byte("%PDF-1.4\n"), nil
}

func (s *OperationsFacadeStub) OrderFiles(ctx context.Context, orderNumber string) ([]model.Attachment, error) {
	if s.OrderFilesFn != nil {
		return s.OrderFilesFn(ctx, orderNumber)
	}
	return nil, nil
}

func (s *OperationsFacadeStub) ActiveFiles(ctx context.Context, orderNumber string) (map[model.FileType]model.Attachment, error) {
	if s.ActiveFilesFn != nil {
		return s.ActiveFilesFn(ctx, orderNumber)
	}
	return map[model.FileType]model.Attachment{}, nil
}

func (s *OperationsFacadeStub) DownloadFile(ctx context.Context, fileID string) ([]byte, *model.Attachment, error) {
	if s.DownloadFileFn != nil {
		return s.DownloadFileFn(ctx, fileID)
	}
	return []byte("%PDF-1.4\n"), &model.Attachment{FileID: fileID, OriginalFilename: "file.pdf"}, nil
}

func (s *OperationsFacadeStub) RestoreFile(ctx context.Context, fileID string) (*model.Attachment, error) {
	if s.RestoreFileFn != nil {
		return s.RestoreFileFn(ctx, fileID)
	}
	return &model.Attachment{FileID: fileID, IsActive: true}, nil
}

func (s *OperationsFacadeStub) CreateDemo(ctx context.Context, dealer, client string, serials []string) (*model.DemoRecord, error) {
	if s.CreateDemoFn != nil {
		return s.CreateDemoFn(ctx, dealer, client, serials)
	}
	return &model.DemoRecord{DemoID: "demo-1", CustomerDealer: dealer, CustomerClient: client}, nil
}

func (s *OperationsFacadeStub) Demos(ctx context.Context) ([]model.DemoRecord, error) {
	if s.DemosFn != nil {
		return s.DemosFn(ctx)
	}
	return nil, nil
}

func (s *OperationsFacadeStub) Demo(ctx context.Context, demoID string) (*model.DemoRecord, error) {
	if s.DemoFn != nil {
		return s.DemoFn(ctx, demoID)
	}
	return &model.DemoRecord{DemoID: demoID}, nil
}

func (s *OperationsFacadeStub) ExtractDetails(ctx context.Context, payload []byte, kind model.FileType) (*usecase.ExtractDetails, error) {
	if s.ExtractDetailsFn != nil {
		return s.ExtractDetailsFn(ctx, payload, kind)
	}
	return &usecase.ExtractDetails{Success: true, Confidence: 1}, nil
}

func (s *OperationsFacadeStub) DeleteOrder(ctx context.Context, orderNumber string) (*usecase.DeletionSummary, error) {
	if s.DeleteOrderFn != nil {
		return s.DeleteOrderFn(ctx, orderNumber)
	}
	return &usecase.DeletionSummary{}, nil
}

func (s *OperationsFacadeStub) DeleteAttachment(ctx context.Context, orderNumber string, fileType model.FileType) error {
	if s.DeleteAttachmentFn != nil {
		return s.DeleteAttachmentFn(ctx, orderNumber, fileType)
	}
	return nil
}

func (s *OperationsFacadeStub) DeleteDemoRecord(ctx context.Context, demoID string) error {
	if s.DeleteDemoFn != nil {
		return s.DeleteDemoFn(ctx, demoID)
	}
	return nil
}

// GateStub answers admin checks with a fixed verdict and records the last
// credential it saw.
type GateStub struct {
	Allow      bool
	Credential string
}

func (g *GateStub) Admin(credential string) bool {
	g.Credential = credential
	return g.Allow
}

func (g *GateStub) Name() string { return "stub" }
