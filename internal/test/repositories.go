package test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	domainErrors "github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/errors"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/model"
)

// ItemRepositoryStub stores catalog rows in memory for tests.
type ItemRepositoryStub struct {
	mu    sync.Mutex
	Items map[string]model.InventoryItem
	Next  int64
	Err   error
}

// NewItemRepositoryStub constructs the stub with initialized state.
func NewItemRepositoryStub() *ItemRepositoryStub {
	return &ItemRepositoryStub{Items: make(map[string]model.InventoryItem), Next: 1}
}

func (s *ItemRepositoryStub) Upsert(_ context.Context, item *model.InventoryItem) (*model.InventoryItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *item
	stored.SerialNumber = model.NormalizeSerial(item.SerialNumber)
	if prev, ok := s.Items[stored.SerialNumber]; ok {
		stored.ID = prev.ID
		stored.CreatedAt = prev.CreatedAt
	} else {
		stored.ID = s.Next
		s.Next++
		stored.CreatedAt = time.Now()
	}
	s.Items[stored.SerialNumber] = stored
	return &stored, nil
}

func (s *ItemRepositoryStub) GetBySerial(_ context.Context, serial string) (*model.InventoryItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if item, ok := s.Items[model.NormalizeSerial(serial)]; ok {
		return &item, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *ItemRepositoryStub) GetBySerials(_ context.Context, serials []string) ([]model.InventoryItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.InventoryItem
	for _, serial := range serials {
		if item, ok := s.Items[model.NormalizeSerial(serial)]; ok {
			result = append(result, item)
		}
	}
	return result, nil
}

func (s *ItemRepositoryStub) List(_ context.Context) ([]model.InventoryItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]model.InventoryItem, 0, len(s.Items))
	for _, item := range s.Items {
		result = append(result, item)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SerialNumber < result[j].SerialNumber })
	return result, nil
}

// TransactionLogStub is an in-memory append-only log with latest-first
// reads, mirroring the postgres repository ordering.
type TransactionLogStub struct {
	mu        sync.Mutex
	Events    []model.TransactionEvent
	Next      int64
	Err       error
	AppendErr error
	WindowFn  func(context.Context, int) ([]model.TransactionEvent, error)
}

// NewTransactionLogStub constructs the stub with initialized state.
func NewTransactionLogStub() *TransactionLogStub {
	return &TransactionLogStub{Next: 1}
}

func (s *TransactionLogStub) Append(_ context.Context, event *model.TransactionEvent) (*model.TransactionEvent, error) {
	if s.AppendErr != nil {
		return nil, s.AppendErr
	}
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *event
	stored.SerialNumber = model.NormalizeSerial(event.SerialNumber)
	stored.TransactionID = s.Next
	s.Next++
	if stored.UploadedAt.IsZero() {
		stored.UploadedAt = time.Now()
	}
	s.Events = append(s.Events, stored)
	return &stored, nil
}

// Seed appends an event with an explicit transaction id, bypassing the
// sequence, so tests can shape arbitrary histories.
func (s *TransactionLogStub) Seed(event model.TransactionEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event.SerialNumber = model.NormalizeSerial(event.SerialNumber)
	if event.UploadedAt.IsZero() {
		event.UploadedAt = time.Now()
	}
	s.Events = append(s.Events, event)
	if event.TransactionID >= s.Next {
		s.Next = event.TransactionID + 1
	}
}

func (s *TransactionLogStub) LatestWindow(ctx context.Context, limit int) ([]model.TransactionEvent, error) {
	if s.WindowFn != nil {
		return s.WindowFn(ctx, limit)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sorted := make([]model.TransactionEvent, len(s.Events))
	copy(sorted, s.Events)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].TransactionID > sorted[j].TransactionID })
	if limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

func (s *TransactionLogStub) ListBySerial(_ context.Context, serial string) ([]model.TransactionEvent, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	serial = model.NormalizeSerial(serial)
	var result []model.TransactionEvent
	for _, ev := range s.Events {
		if ev.SerialNumber == serial {
			result = append(result, ev)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TransactionID > result[j].TransactionID })
	return result, nil
}

func (s *TransactionLogStub) DeleteByReference(_ context.Context, reference string) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var kept []model.TransactionEvent
	var removed int64
	for _, ev := range s.Events {
		if ev.Reference == reference {
			removed++
			continue
		}
		kept = append(kept, ev)
	}
	s.Events = kept
	return removed, nil
}

// OrderRepositoryStub keeps orders in memory with the same conditional
// write semantics as the postgres repository: a state change applies only
// while the order is in the expected source state.
type OrderRepositoryStub struct {
	mu               sync.Mutex
	Orders           map[string]*model.Order
	Next             int64
	Err              error
	MarkInvoicedErr  error
	MarkIssuedErr    error
	MarkDeliveredErr error
}

// NewOrderRepositoryStub constructs the stub with initialized state.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[string]*model.Order), Next: 1}
}

func (s *OrderRepositoryStub) Create(_ context.Context, order *model.Order) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.Orders[order.OrderNumber]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	stored := *order
	stored.ID = s.Next
	s.Next++
	stored.InvoiceStatus = model.InvoiceStatusReserved
	stored.DeliveryStatus = model.DeliveryStatusPending
	stored.CreatedDate = time.Now()
	stored.UpdatedAt = stored.CreatedDate
	s.Orders[order.OrderNumber] = &stored
	copied := stored
	return &copied, nil
}

func (s *OrderRepositoryStub) GetByNumber(_ context.Context, number string) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if order, ok := s.Orders[number]; ok {
		copied := *order
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub) List(_ context.Context) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]model.Order, 0, len(s.Orders))
	for _, order := range s.Orders {
		result = append(result, *order)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].OrderNumber < result[j].OrderNumber })
	return result, nil
}

func (s *OrderRepositoryStub) MarkInvoiced(_ context.Context, number string, doc model.DocFields) error {
	if s.MarkInvoicedErr != nil {
		return s.MarkInvoicedErr
	}
	return s.update(number, func(o *model.Order) bool {
		if o.InvoiceStatus != model.InvoiceStatusReserved {
			return false
		}
		o.InvoiceStatus = model.InvoiceStatusInvoiced
		o.InvoiceNumber, o.InvoiceDate, o.InvoiceRemarks = doc.Number, doc.Date, doc.Remarks
		return true
	})
}

func (s *OrderRepositoryStub) MarkIssued(_ context.Context, number string, doc model.DocFields) error {
	if s.MarkIssuedErr != nil {
		return s.MarkIssuedErr
	}
	return s.update(number, func(o *model.Order) bool {
		if o.InvoiceStatus != model.InvoiceStatusInvoiced || o.DeliveryStatus != model.DeliveryStatusPending {
			return false
		}
		o.DeliveryStatus = model.DeliveryStatusIssued
		o.DeliveryNumber, o.DeliveryDate, o.DeliveryRemarks = doc.Number, doc.Date, doc.Remarks
		return true
	})
}

func (s *OrderRepositoryStub) MarkDelivered(_ context.Context, number string) error {
	if s.MarkDeliveredErr != nil {
		return s.MarkDeliveredErr
	}
	return s.update(number, func(o *model.Order) bool {
		if o.DeliveryStatus != model.DeliveryStatusIssued {
			return false
		}
		o.DeliveryStatus = model.DeliveryStatusDelivered
		return true
	})
}

func (s *OrderRepositoryStub) UpdateInvoiceDoc(_ context.Context, number string, doc model.DocFields) error {
	return s.update(number, func(o *model.Order) bool {
		if o.InvoiceStatus != model.InvoiceStatusInvoiced {
			return false
		}
		if doc.Number != "" {
			o.InvoiceNumber = doc.Number
		}
		if doc.Date != "" {
			o.InvoiceDate = doc.Date
		}
		if doc.Remarks != "" {
			o.InvoiceRemarks = doc.Remarks
		}
		return true
	})
}

func (s *OrderRepositoryStub) UpdateDeliveryDoc(_ context.Context, number string, doc model.DocFields) error {
	return s.update(number, func(o *model.Order) bool {
		if o.DeliveryStatus == model.DeliveryStatusPending {
			return false
		}
		if doc.Number != "" {
			o.DeliveryNumber = doc.Number
		}
		if doc.Date != "" {
			o.DeliveryDate = doc.Date
		}
		if doc.Remarks != "" {
			o.DeliveryRemarks = doc.Remarks
		}
		return true
	})
}

func (s *OrderRepositoryStub) RevertInvoice(_ context.Context, number string) error {
	return s.update(number, func(o *model.Order) bool {
		if o.InvoiceStatus != model.InvoiceStatusInvoiced || o.DeliveryStatus != model.DeliveryStatusPending {
			return false
		}
		o.InvoiceStatus = model.InvoiceStatusReserved
		o.InvoiceNumber, o.InvoiceDate, o.InvoiceRemarks = "", "", ""
		return true
	})
}

func (s *OrderRepositoryStub) RevertIssue(_ context.Context, number string) error {
	return s.update(number, func(o *model.Order) bool {
		if o.DeliveryStatus != model.DeliveryStatusIssued {
			return false
		}
		o.DeliveryStatus = model.DeliveryStatusPending
		o.DeliveryNumber, o.DeliveryDate, o.DeliveryRemarks = "", "", ""
		return true
	})
}

func (s *OrderRepositoryStub) RevertDelivery(_ context.Context, number string) error {
	return s.update(number, func(o *model.Order) bool {
		if o.DeliveryStatus != model.DeliveryStatusDelivered {
			return false
		}
		o.DeliveryStatus = model.DeliveryStatusIssued
		return true
	})
}

func (s *OrderRepositoryStub) Delete(_ context.Context, number string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Orders[number]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Orders, number)
	return nil
}

func (s *OrderRepositoryStub) update(number string, apply func(*model.Order) bool) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.Orders[number]
	if !ok {
		return domainErrors.ErrPrecondition
	}
	if !apply(order) {
		return domainErrors.ErrPrecondition
	}
	order.UpdatedAt = time.Now()
	return nil
}

// AttachmentRepositoryStub stores attachment metadata rows with the unique
// (order, type, version) constraint the replace idempotency relies on.
type AttachmentRepositoryStub struct {
	mu        sync.Mutex
	Rows      []model.Attachment
	Err       error
	InsertErr error
}

// NewAttachmentRepositoryStub constructs the stub.
func NewAttachmentRepositoryStub() *AttachmentRepositoryStub {
	return &AttachmentRepositoryStub{}
}

func (s *AttachmentRepositoryStub) Insert(_ context.Context, att *model.Attachment) (*model.Attachment, error) {
	if s.InsertErr != nil {
		return nil, s.InsertErr
	}
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.Rows {
		if row.OrderNumber == att.OrderNumber && row.FileType == att.FileType && row.Version == att.Version {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	stored := *att
	stored.UploadDate = time.Now()
	s.Rows = append(s.Rows, stored)
	return &stored, nil
}

func (s *AttachmentRepositoryStub) GetByFileID(_ context.Context, fileID string) (*model.Attachment, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.Rows {
		if row.FileID == fileID {
			copied := row
			return &copied, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *AttachmentRepositoryStub) ListByOrder(_ context.Context, orderNumber string) ([]model.Attachment, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Attachment
	for _, row := range s.Rows {
		if row.OrderNumber == orderNumber {
			result = append(result, row)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].FileType != result[j].FileType {
			return strings.Compare(string(result[i].FileType), string(result[j].FileType)) < 0
		}
		return result[i].Version > result[j].Version
	})
	return result, nil
}

func (s *AttachmentRepositoryStub) ListByOrderType(_ context.Context, orderNumber string, fileType model.FileType) ([]model.Attachment, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Attachment
	for _, row := range s.Rows {
		if row.OrderNumber == orderNumber && row.FileType == fileType {
			result = append(result, row)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Version > result[j].Version })
	return result, nil
}

func (s *AttachmentRepositoryStub) SetActive(_ context.Context, fileID string, active bool) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Rows {
		if s.Rows[i].FileID == fileID {
			s.Rows[i].IsActive = active
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

func (s *AttachmentRepositoryStub) DeleteByOrderType(_ context.Context, orderNumber string, fileType model.FileType) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var kept []model.Attachment
	var removed int64
	for _, row := range s.Rows {
		if row.OrderNumber == orderNumber && row.FileType == fileType {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	s.Rows = kept
	return removed, nil
}

func (s *AttachmentRepositoryStub) DeleteByOrder(_ context.Context, orderNumber string) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var kept []model.Attachment
	var removed int64
	for _, row := range s.Rows {
		if row.OrderNumber == orderNumber {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	s.Rows = kept
	return removed, nil
}

// DemoRepositoryStub stores demo records in memory.
type DemoRepositoryStub struct {
	mu      sync.Mutex
	Records map[string]model.DemoRecord
	Next    int64
	Err     error
}

// NewDemoRepositoryStub constructs the stub.
func NewDemoRepositoryStub() *DemoRepositoryStub {
	return &DemoRepositoryStub{Records: make(map[string]model.DemoRecord), Next: 1}
}

func (s *DemoRepositoryStub) Create(_ context.Context, rec *model.DemoRecord) (*model.DemoRecord, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.Records[rec.DemoID]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	stored := *rec
	stored.ID = s.Next
	s.Next++
	stored.CreatedDate = time.Now()
	s.Records[rec.DemoID] = stored
	copied := stored
	return &copied, nil
}

func (s *DemoRepositoryStub) GetByDemoID(_ context.Context, demoID string) (*model.DemoRecord, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.Records[demoID]; ok {
		copied := rec
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *DemoRepositoryStub) List(_ context.Context) ([]model.DemoRecord, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]model.DemoRecord, 0, len(s.Records))
	for _, rec := range s.Records {
		result = append(result, rec)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (s *DemoRepositoryStub) Delete(_ context.Context, demoID string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Records[demoID]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Records, demoID)
	return nil
}

// TransitionRepositoryStub stores transition records in memory.
type TransitionRepositoryStub struct {
	mu      sync.Mutex
	Records map[string]*model.TransitionRecord
	Err     error
}

// NewTransitionRepositoryStub constructs the stub.
func NewTransitionRepositoryStub() *TransitionRepositoryStub {
	return &TransitionRepositoryStub{Records: make(map[string]*model.TransitionRecord)}
}

func (s *TransitionRepositoryStub) Create(_ context.Context, rec *model.TransitionRecord) (*model.TransitionRecord, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *rec
	now := time.Now()
	stored.StartedAt = now
	stored.UpdatedAt = now
	s.Records[rec.ID] = &stored
	copied := stored
	return &copied, nil
}

func (s *TransitionRepositoryStub) MarkCommitted(_ context.Context, id, fileID string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.Records[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	rec.Step = model.StepAttachmentCommitted
	rec.FileID = fileID
	rec.UpdatedAt = time.Now()
	return nil
}

func (s *TransitionRepositoryStub) MarkStep(_ context.Context, id string, step model.TransitionStep, lastError string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.Records[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	rec.Step = step
	rec.LastError = lastError
	rec.UpdatedAt = time.Now()
	return nil
}

func (s *TransitionRepositoryStub) ListIncomplete(_ context.Context, before time.Time) ([]model.TransitionRecord, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.TransitionRecord
	for _, rec := range s.Records {
		if (rec.Step == model.StepStarted || rec.Step == model.StepAttachmentCommitted) && rec.UpdatedAt.Before(before) {
			result = append(result, *rec)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UpdatedAt.Before(result[j].UpdatedAt) })
	return result, nil
}

func (s *TransitionRepositoryStub) CompensateByAttachment(_ context.Context, orderNumber string, fileType model.FileType) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.Records {
		if rec.OrderNumber == orderNumber && rec.FileType == fileType &&
			(rec.Step == model.StepStarted || rec.Step == model.StepAttachmentCommitted) {
			rec.Step = model.StepCompensated
			rec.UpdatedAt = time.Now()
		}
	}
	return nil
}

// Get returns a copy of the stored record, if any.
func (s *TransitionRepositoryStub) Get(id string) (model.TransitionRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.Records[id]; ok {
		return *rec, true
	}
	return model.TransitionRecord{}, false
}

// All returns copies of every stored record.
func (s *TransitionRepositoryStub) All() []model.TransitionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]model.TransitionRecord, 0, len(s.Records))
	for _, rec := range s.Records {
		result = append(result, *rec)
	}
	return result
}
