package postgres

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/errors"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/model"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/repository"
)

var _ repository.Factory = (*Storage)(nil)

func newMockStorage(t *testing.T) (*Storage, pgxmockv3.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmockv3.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	storage := &Storage{pool: mock, logger: logger}
	return storage, mock
}

func expectSchema(mock pgxmockv3.PgxPoolIface) {
	tableStatements := []string{
		"CREATE TABLE IF NOT EXISTS items",
		"CREATE TABLE IF NOT EXISTS transactions",
		"CREATE TABLE IF NOT EXISTS orders",
		"CREATE TABLE IF NOT EXISTS attachments",
		"CREATE TABLE IF NOT EXISTS demo_records",
		"CREATE TABLE IF NOT EXISTS transitions",
	}
	for _, stmt := range tableStatements {
		mock.ExpectExec(stmt).WillReturnResult(pgxmockv3.NewResult("CREATE", 0))
	}
	indexStatements := []string{
		"CREATE INDEX IF NOT EXISTS idx_transactions_serial ON transactions",
		"CREATE INDEX IF NOT EXISTS idx_transactions_reference ON transactions",
		"CREATE INDEX IF NOT EXISTS idx_attachments_order ON attachments",
		"CREATE INDEX IF NOT EXISTS idx_transitions_step ON transitions",
	}
	for _, stmt := range indexStatements {
		mock.ExpectExec(stmt).WillReturnResult(pgxmockv3.NewResult("CREATE", 0))
	}
}

func TestNew(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	if _, err := New(context.Background(), ":://bad", logger); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestInitSchema(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	expectSchema(mock)

	if err := storage.initSchema(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS items").WillReturnError(errors.New("boom"))
	if err := storage.initSchema(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestRepositoryFactories(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	if _, ok := storage.Items().(*itemRepository); !ok {
		t.Fatalf("unexpected item repo type")
	}
	if _, ok := storage.Transactions().(*transactionRepository); !ok {
		t.Fatalf("unexpected transaction repo type")
	}
	if _, ok := storage.Orders().(*orderRepository); !ok {
		t.Fatalf("unexpected order repo type")
	}
	if _, ok := storage.Attachments().(*attachmentRepository); !ok {
		t.Fatalf("unexpected attachment repo type")
	}
	if _, ok := storage.Demos().(*demoRepository); !ok {
		t.Fatalf("unexpected demo repo type")
	}
	if _, ok := storage.Transitions().(*transitionRepository); !ok {
		t.Fatalf("unexpected transition repo type")
	}
	if storage.Pool() == nil {
		t.Fatal("expected pool accessor")
	}
	if storage.Logger() == nil {
		t.Fatal("expected logger accessor")
	}
}

func TestClose(t *testing.T) {
	storage := &Storage{}
	storage.Close()

	storage, mock := newMockStorage(t)
	mock.ExpectClose()
	storage.Close()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
	mock.Close()
}

func TestHealthCheck(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectPing()
	if err := storage.HealthCheck(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectPing().WillReturnError(errors.New("down"))
	if err := storage.HealthCheck(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestItemRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &itemRepository{storage: storage}

	createdAt := time.Now()
	itemColumns := []string{"id", "serial_number", "equipment_category", "model", "size", "batch", "created_at"}

	// Upsert normalizes the serial before writing.
	mock.ExpectQuery("INSERT INTO items").
		WithArgs("SN-10", "Implant", "M1", "5mm", "B1").
		WillReturnRows(pgxmockv3.NewRows([]string{"id", "created_at"}).AddRow(int64(1), createdAt))
	item, err := repo.Upsert(context.Background(), &model.InventoryItem{
		SerialNumber: "  sn-10 ", EquipmentCategory: "Implant", Model: "M1", Size: "5mm", Batch: "B1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.ID != 1 || item.SerialNumber != "SN-10" {
		t.Fatalf("unexpected item: %+v", item)
	}

	mock.ExpectQuery("INSERT INTO items").
		WithArgs("SN-10", "", "", "", "").
		WillReturnError(&pgconn.PgError{Code: "23505"})
	if _, err := repo.Upsert(context.Background(), &model.InventoryItem{SerialNumber: "SN-10"}); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}

	mock.ExpectQuery("FROM items WHERE serial_number=").
		WithArgs("SN-10").
		WillReturnRows(pgxmockv3.NewRows(itemColumns).AddRow(int64(1), "SN-10", "Implant", "M1", "5mm", "B1", createdAt))
	if _, err := repo.GetBySerial(context.Background(), "sn-10"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectQuery("FROM items WHERE serial_number=").
		WithArgs("SN-404").
		WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetBySerial(context.Background(), "SN-404"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM items WHERE serial_number = ANY").
		WithArgs([]string{"SN-1", "SN-2"}).
		WillReturnRows(pgxmockv3.NewRows(itemColumns).
			AddRow(int64(1), "SN-1", "", "", "", "", createdAt).
			AddRow(int64(2), "SN-2", "", "", "", "", createdAt))
	items, err := repo.GetBySerials(context.Background(), []string{" sn-1", "SN-2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 || items[0].SerialNumber != "SN-1" {
		t.Fatalf("unexpected items: %+v", items)
	}

	mock.ExpectQuery("FROM items ORDER BY serial_number").
		WillReturnRows(pgxmockv3.NewRows(itemColumns).
			AddRow(int64(1), "SN-1", "", "", "", "", createdAt).
			RowError(0, errors.New("read failed")))
	if _, err := repo.List(context.Background()); err == nil {
		t.Fatal("expected row error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestTransactionRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &transactionRepository{storage: storage}

	uploadedAt := time.Now()
	eventColumns := []string{"transaction_id", "serial_number", "type", "status", "location", "reference", "uploaded_at"}

	mock.ExpectQuery("INSERT INTO transactions").
		WithArgs("SN-1", model.TransactionStockOut, model.ItemStatusReserved, "Warehouse A", "ORD-1").
		WillReturnRows(pgxmockv3.NewRows([]string{"transaction_id", "uploaded_at"}).AddRow(int64(7), uploadedAt))
	event, err := repo.Append(context.Background(), &model.TransactionEvent{
		SerialNumber: " sn-1", Type: model.TransactionStockOut, Status: model.ItemStatusReserved,
		Location: "Warehouse A", Reference: "ORD-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.TransactionID != 7 || event.SerialNumber != "SN-1" {
		t.Fatalf("unexpected event: %+v", event)
	}

	mock.ExpectQuery("ORDER BY transaction_id DESC LIMIT").
		WithArgs(100).
		WillReturnRows(pgxmockv3.NewRows(eventColumns).
			AddRow(int64(7), "SN-1", model.TransactionStockOut, model.ItemStatusReserved, "Warehouse A", "ORD-1", uploadedAt).
			AddRow(int64(6), "SN-1", model.TransactionStockIn, model.ItemStatusActive, "Warehouse A", "", uploadedAt))
	window, err := repo.LatestWindow(context.Background(), 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(window) != 2 || window[0].TransactionID != 7 {
		t.Fatalf("unexpected window: %+v", window)
	}

	mock.ExpectQuery("FROM transactions WHERE serial_number=").
		WithArgs("SN-1").
		WillReturnRows(pgxmockv3.NewRows(eventColumns).
			AddRow(int64(7), "SN-1", model.TransactionStockOut, model.ItemStatusReserved, "Warehouse A", "ORD-1", uploadedAt))
	history, err := repo.ListBySerial(context.Background(), "sn-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 1 || history[0].Reference != "ORD-1" {
		t.Fatalf("unexpected history: %+v", history)
	}

	mock.ExpectExec("DELETE FROM transactions WHERE reference=").
		WithArgs("ORD-1").
		WillReturnResult(pgxmockv3.NewResult("DELETE", 3))
	removed, err := repo.DeleteByReference(context.Background(), "ORD-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 3 {
		t.Fatalf("expected 3 deleted rows, got %d", removed)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &orderRepository{storage: storage}

	now := time.Now()
	orderCols := []string{
		"id", "order_number", "customer_dealer", "customer_client", "items",
		"invoice_status", "delivery_status",
		"invoice_number", "invoice_date", "invoice_remarks",
		"delivery_number", "delivery_date", "delivery_remarks",
		"created_date", "updated_at",
	}
	snapshot := []model.OrderItem{{
		SerialNumber: "SN-1", EquipmentCategory: "Implant", Model: "M1",
		Size: "5mm", Batch: "B1", Location: "Shelf 1",
	}}
	encoded, err := encodeItems(snapshot)
	if err != nil {
		t.Fatalf("encode items: %v", err)
	}

	// Create forces the initial statuses regardless of the input struct.
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs("ORD-1", "Dealer", "Clinic", encoded, model.InvoiceStatusReserved, model.DeliveryStatusPending).
		WillReturnRows(pgxmockv3.NewRows([]string{"id", "created_date", "updated_at"}).AddRow(int64(1), now, now))
	order, err := repo.Create(context.Background(), &model.Order{
		OrderNumber: "ORD-1", CustomerDealer: "Dealer", CustomerClient: "Clinic",
		Items: snapshot, InvoiceStatus: model.InvoiceStatusInvoiced,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID != 1 || order.InvoiceStatus != model.InvoiceStatusReserved || order.DeliveryStatus != model.DeliveryStatusPending {
		t.Fatalf("unexpected order: %+v", order)
	}

	mock.ExpectQuery("INSERT INTO orders").
		WithArgs("ORD-1", "", "", []byte("[]"), model.InvoiceStatusReserved, model.DeliveryStatusPending).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	if _, err := repo.Create(context.Background(), &model.Order{OrderNumber: "ORD-1"}); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}

	mock.ExpectQuery("FROM orders WHERE order_number=").
		WithArgs("ORD-1").
		WillReturnRows(pgxmockv3.NewRows(orderCols).AddRow(
			int64(1), "ORD-1", "Dealer", "Clinic", encoded,
			model.InvoiceStatusReserved, model.DeliveryStatusPending,
			"", "", "", "", "", "", now, now,
		))
	fetched, err := repo.GetByNumber(context.Background(), "ORD-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fetched.Items) != 1 || fetched.Items[0].Location != "Shelf 1" {
		t.Fatalf("expected decoded snapshot, got %+v", fetched.Items)
	}

	mock.ExpectQuery("FROM orders WHERE order_number=").
		WithArgs("ORD-404").
		WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByNumber(context.Background(), "ORD-404"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM orders ORDER BY created_date DESC").
		WillReturnRows(pgxmockv3.NewRows(orderCols).AddRow(
			int64(1), "ORD-1", "Dealer", "Clinic", encoded,
			model.InvoiceStatusReserved, model.DeliveryStatusPending,
			"", "", "", "", "", "", now, now,
		))
	orders, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("unexpected orders: %+v", orders)
	}

	doc := model.DocFields{Number: "INV-1", Date: "2026-02-01", Remarks: "rush"}

	mock.ExpectExec("SET invoice_status='Invoiced'").
		WithArgs("ORD-1", doc.Number, doc.Date, doc.Remarks).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := repo.MarkInvoiced(context.Background(), "ORD-1", doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Guarded updates report a precondition failure when no row matched.
	mock.ExpectExec("SET invoice_status='Invoiced'").
		WithArgs("ORD-1", doc.Number, doc.Date, doc.Remarks).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	if err := repo.MarkInvoiced(context.Background(), "ORD-1", doc); !errors.Is(err, domainErrors.ErrPrecondition) {
		t.Fatalf("expected precondition, got %v", err)
	}

	mock.ExpectExec("SET delivery_status='Issued'").
		WithArgs("ORD-1", "DO-1", "2026-02-02", "").
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := repo.MarkIssued(context.Background(), "ORD-1", model.DocFields{Number: "DO-1", Date: "2026-02-02"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("SET delivery_status='Delivered'").
		WithArgs("ORD-1").
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	if err := repo.MarkDelivered(context.Background(), "ORD-1"); !errors.Is(err, domainErrors.ErrPrecondition) {
		t.Fatalf("expected precondition, got %v", err)
	}

	mock.ExpectExec("SET invoice_number=COALESCE").
		WithArgs("ORD-1", "INV-2", "", "").
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := repo.UpdateInvoiceDoc(context.Background(), "ORD-1", model.DocFields{Number: "INV-2"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("SET delivery_number=COALESCE").
		WithArgs("ORD-1", "DO-2", "", "").
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := repo.UpdateDeliveryDoc(context.Background(), "ORD-1", model.DocFields{Number: "DO-2"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("SET invoice_status='Reserved'").
		WithArgs("ORD-1").
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := repo.RevertInvoice(context.Background(), "ORD-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("SET delivery_status='Pending'").
		WithArgs("ORD-1").
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	if err := repo.RevertIssue(context.Background(), "ORD-1"); !errors.Is(err, domainErrors.ErrPrecondition) {
		t.Fatalf("expected precondition, got %v", err)
	}

	mock.ExpectExec("SET delivery_status='Issued'").
		WithArgs("ORD-1").
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := repo.RevertDelivery(context.Background(), "ORD-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("DELETE FROM orders WHERE order_number=").
		WithArgs("ORD-1").
		WillReturnResult(pgxmockv3.NewResult("DELETE", 1))
	if err := repo.Delete(context.Background(), "ORD-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("DELETE FROM orders WHERE order_number=").
		WithArgs("ORD-404").
		WillReturnResult(pgxmockv3.NewResult("DELETE", 0))
	if err := repo.Delete(context.Background(), "ORD-404"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestAttachmentRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &attachmentRepository{storage: storage}

	uploadDate := time.Now()
	attCols := []string{
		"file_id", "order_number", "file_type", "version", "is_active",
		"original_filename", "file_size", "content_digest", "storage_url", "upload_date",
	}

	mock.ExpectQuery("INSERT INTO attachments").
		WithArgs("f-1", "ORD-1", model.FileTypeInvoice, 1, true, "invoice.pdf", int64(2048), "digest-1", "ORD-1/invoice/f-1.pdf").
		WillReturnRows(pgxmockv3.NewRows([]string{"upload_date"}).AddRow(uploadDate))
	att, err := repo.Insert(context.Background(), &model.Attachment{
		FileID: "f-1", OrderNumber: "ORD-1", FileType: model.FileTypeInvoice, Version: 1, IsActive: true,
		OriginalFilename: "invoice.pdf", FileSize: 2048, ContentDigest: "digest-1", StorageURL: "ORD-1/invoice/f-1.pdf",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !att.UploadDate.Equal(uploadDate) {
		t.Fatalf("expected returned upload date, got %+v", att)
	}

	// The unique (order, type, version) constraint surfaces as a conflict.
	mock.ExpectQuery("INSERT INTO attachments").
		WithArgs("f-2", "ORD-1", model.FileTypeInvoice, 1, true, "", int64(0), "", "").
		WillReturnError(&pgconn.PgError{Code: "23505"})
	if _, err := repo.Insert(context.Background(), &model.Attachment{
		FileID: "f-2", OrderNumber: "ORD-1", FileType: model.FileTypeInvoice, Version: 1, IsActive: true,
	}); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}

	mock.ExpectQuery("FROM attachments WHERE file_id=").
		WithArgs("f-1").
		WillReturnRows(pgxmockv3.NewRows(attCols).AddRow(
			"f-1", "ORD-1", model.FileTypeInvoice, 1, true, "invoice.pdf", int64(2048), "digest-1", "ORD-1/invoice/f-1.pdf", uploadDate,
		))
	if _, err := repo.GetByFileID(context.Background(), "f-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectQuery("FROM attachments WHERE file_id=").
		WithArgs("f-404").
		WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByFileID(context.Background(), "f-404"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM attachments WHERE order_number=").
		WithArgs("ORD-1").
		WillReturnRows(pgxmockv3.NewRows(attCols).
			AddRow("f-3", "ORD-1", model.FileTypeInvoice, 2, true, "", int64(0), "", "", uploadDate).
			AddRow("f-1", "ORD-1", model.FileTypeInvoice, 1, false, "", int64(0), "", "", uploadDate))
	all, err := repo.ListByOrder(context.Background(), "ORD-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 || all[0].Version != 2 {
		t.Fatalf("unexpected attachments: %+v", all)
	}

	mock.ExpectQuery("FROM attachments WHERE order_number=").
		WithArgs("ORD-1", model.FileTypeInvoice).
		WillReturnRows(pgxmockv3.NewRows(attCols).
			AddRow("f-3", "ORD-1", model.FileTypeInvoice, 2, true, "", int64(0), "", "", uploadDate))
	versions, err := repo.ListByOrderType(context.Background(), "ORD-1", model.FileTypeInvoice)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(versions) != 1 || !versions[0].IsActive {
		t.Fatalf("unexpected versions: %+v", versions)
	}

	mock.ExpectExec("UPDATE attachments SET is_active=").
		WithArgs("f-1", true).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := repo.SetActive(context.Background(), "f-1", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("UPDATE attachments SET is_active=").
		WithArgs("f-404", false).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	if err := repo.SetActive(context.Background(), "f-404", false); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectExec("DELETE FROM attachments WHERE order_number=").
		WithArgs("ORD-1", model.FileTypeInvoice).
		WillReturnResult(pgxmockv3.NewResult("DELETE", 2))
	removed, err := repo.DeleteByOrderType(context.Background(), "ORD-1", model.FileTypeInvoice)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 deleted rows, got %d", removed)
	}

	mock.ExpectExec("DELETE FROM attachments WHERE order_number=").
		WithArgs("ORD-1").
		WillReturnResult(pgxmockv3.NewResult("DELETE", 3))
	removed, err = repo.DeleteByOrder(context.Background(), "ORD-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 3 {
		t.Fatalf("expected 3 deleted rows, got %d", removed)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestDemoRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &demoRepository{storage: storage}

	createdDate := time.Now()
	demoCols := []string{"id", "demo_id", "customer_dealer", "customer_client", "items", "created_date"}
	snapshot := []model.OrderItem{{SerialNumber: "SN-1", Location: "Shelf 3"}}
	encoded, err := encodeItems(snapshot)
	if err != nil {
		t.Fatalf("encode items: %v", err)
	}

	mock.ExpectQuery("INSERT INTO demo_records").
		WithArgs("demo-1", "Dealer", "City Clinic", encoded).
		WillReturnRows(pgxmockv3.NewRows([]string{"id", "created_date"}).AddRow(int64(1), createdDate))
	rec, err := repo.Create(context.Background(), &model.DemoRecord{
		DemoID: "demo-1", CustomerDealer: "Dealer", CustomerClient: "City Clinic", Items: snapshot,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID != 1 {
		t.Fatalf("unexpected record: %+v", rec)
	}

	mock.ExpectQuery("INSERT INTO demo_records").
		WithArgs("demo-1", "", "", []byte("[]")).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	if _, err := repo.Create(context.Background(), &model.DemoRecord{DemoID: "demo-1"}); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}

	mock.ExpectQuery("FROM demo_records WHERE demo_id=").
		WithArgs("demo-1").
		WillReturnRows(pgxmockv3.NewRows(demoCols).AddRow(
			int64(1), "demo-1", "Dealer", "City Clinic", encoded, createdDate,
		))
	fetched, err := repo.GetByDemoID(context.Background(), "demo-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fetched.Items) != 1 || fetched.Items[0].Location != "Shelf 3" {
		t.Fatalf("expected decoded snapshot, got %+v", fetched.Items)
	}

	mock.ExpectQuery("FROM demo_records WHERE demo_id=").
		WithArgs("demo-404").
		WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByDemoID(context.Background(), "demo-404"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM demo_records ORDER BY created_date DESC").
		WillReturnRows(pgxmockv3.NewRows(demoCols).AddRow(
			int64(1), "demo-1", "Dealer", "City Clinic", encoded, createdDate,
		))
	records, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("unexpected records: %+v", records)
	}

	mock.ExpectExec("DELETE FROM demo_records WHERE demo_id=").
		WithArgs("demo-1").
		WillReturnResult(pgxmockv3.NewResult("DELETE", 1))
	if err := repo.Delete(context.Background(), "demo-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("DELETE FROM demo_records WHERE demo_id=").
		WithArgs("demo-404").
		WillReturnResult(pgxmockv3.NewResult("DELETE", 0))
	if err := repo.Delete(context.Background(), "demo-404"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestTransitionRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &transitionRepository{storage: storage}

	startedAt := time.Now()
	transitionCols := []string{
		"id", "order_number", "file_type", "action", "step", "file_id",
		"doc_number", "doc_date", "doc_remarks", "last_error", "started_at", "updated_at",
	}

	mock.ExpectQuery("INSERT INTO transitions").
		WithArgs("tr-1", "ORD-1", model.FileTypeInvoice, model.TransitionActionUpload, model.StepStarted, "INV-1", "2026-02-01", "").
		WillReturnRows(pgxmockv3.NewRows([]string{"started_at", "updated_at"}).AddRow(startedAt, startedAt))
	rec, err := repo.Create(context.Background(), &model.TransitionRecord{
		ID: "tr-1", OrderNumber: "ORD-1", FileType: model.FileTypeInvoice,
		Action: model.TransitionActionUpload, Step: model.StepStarted,
		DocNumber: "INV-1", DocDate: "2026-02-01",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rec.StartedAt.Equal(startedAt) {
		t.Fatalf("expected returned timestamps, got %+v", rec)
	}

	mock.ExpectExec("SET step='attachment_committed'").
		WithArgs("tr-1", "f-1").
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := repo.MarkCommitted(context.Background(), "tr-1", "f-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("SET step='attachment_committed'").
		WithArgs("tr-404", "f-1").
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	if err := repo.MarkCommitted(context.Background(), "tr-404", "f-1"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectExec("last_error=").
		WithArgs("tr-1", model.StepCompleted, "").
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := repo.MarkStep(context.Background(), "tr-1", model.StepCompleted, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	before := startedAt.Add(-time.Hour)
	mock.ExpectQuery("WHERE step IN").
		WithArgs(before).
		WillReturnRows(pgxmockv3.NewRows(transitionCols).AddRow(
			"tr-2", "ORD-2", model.FileTypeDeliveryOrder, model.TransitionActionUpload, model.StepAttachmentCommitted,
			"f-9", "DO-1", "2026-02-02", "", "update failed", startedAt, startedAt,
		))
	incomplete, err := repo.ListIncomplete(context.Background(), before)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(incomplete) != 1 || incomplete[0].Step != model.StepAttachmentCommitted {
		t.Fatalf("unexpected records: %+v", incomplete)
	}

	// Compensation is fire-and-forget: zero matched rows is not an error.
	mock.ExpectExec("SET step='compensated'").
		WithArgs("ORD-1", model.FileTypeInvoice).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	if err := repo.CompensateByAttachment(context.Background(), "ORD-1", model.FileTypeInvoice); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
