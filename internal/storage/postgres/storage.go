package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/model"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/repository"
)

// Pool is the subset of pgxpool.Pool the storage layer relies on. Mock
// pools satisfy it in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL. Every write is a
// single-statement, per-collection operation; state transitions re-check
// their source state inside the statement instead of relying on
// transactions.
type Storage struct {
	pool   Pool
	logger *slog.Logger
}

type itemRepository struct {
	storage *Storage
}

type transactionRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type attachmentRepository struct {
	storage *Storage
}

type demoRepository struct {
	storage *Storage
}

type transitionRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Items() repository.ItemRepository {
	return &itemRepository{storage: s}
}

func (s *Storage) Transactions() repository.TransactionRepository {
	return &transactionRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Attachments() repository.AttachmentRepository {
	return &attachmentRepository{storage: s}
}

func (s *Storage) Demos() repository.DemoRepository {
	return &demoRepository{storage: s}
}

func (s *Storage) Transitions() repository.TransitionRepository {
	return &transitionRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS items (
            id SERIAL PRIMARY KEY,
            serial_number TEXT UNIQUE NOT NULL,
            equipment_category TEXT NOT NULL DEFAULT '',
            model TEXT NOT NULL DEFAULT '',
            size TEXT NOT NULL DEFAULT '',
            batch TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS transactions (
            transaction_id BIGSERIAL PRIMARY KEY,
            serial_number TEXT NOT NULL,
            type TEXT NOT NULL,
            status TEXT NOT NULL,
            location TEXT NOT NULL DEFAULT '',
            reference TEXT NOT NULL DEFAULT '',
            uploaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            order_number TEXT UNIQUE NOT NULL,
            customer_dealer TEXT NOT NULL DEFAULT '',
            customer_client TEXT NOT NULL DEFAULT '',
            items JSONB NOT NULL DEFAULT '[]',
            invoice_status TEXT NOT NULL,
            delivery_status TEXT NOT NULL,
            invoice_number TEXT NOT NULL DEFAULT '',
            invoice_date TEXT NOT NULL DEFAULT '',
            invoice_remarks TEXT NOT NULL DEFAULT '',
            delivery_number TEXT NOT NULL DEFAULT '',
            delivery_date TEXT NOT NULL DEFAULT '',
            delivery_remarks TEXT NOT NULL DEFAULT '',
            created_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS attachments (
            file_id TEXT PRIMARY KEY,
            order_number TEXT NOT NULL,
            file_type TEXT NOT NULL,
            version INT NOT NULL,
            is_active BOOLEAN NOT NULL DEFAULT FALSE,
            original_filename TEXT NOT NULL DEFAULT '',
            file_size BIGINT NOT NULL DEFAULT 0,
            content_digest TEXT NOT NULL DEFAULT '',
            storage_url TEXT NOT NULL DEFAULT '',
            upload_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            UNIQUE (order_number, file_type, version)
        )`,
		`CREATE TABLE IF NOT EXISTS demo_records (
            id SERIAL PRIMARY KEY,
            demo_id TEXT UNIQUE NOT NULL,
            customer_dealer TEXT NOT NULL DEFAULT '',
            customer_client TEXT NOT NULL DEFAULT '',
            items JSONB NOT NULL DEFAULT '[]',
            created_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS transitions (
            id TEXT PRIMARY KEY,
            order_number TEXT NOT NULL,
            file_type TEXT NOT NULL,
            action TEXT NOT NULL,
            step TEXT NOT NULL,
            file_id TEXT NOT NULL DEFAULT '',
            doc_number TEXT NOT NULL DEFAULT '',
            doc_date TEXT NOT NULL DEFAULT '',
            doc_remarks TEXT NOT NULL DEFAULT '',
            last_error TEXT NOT NULL DEFAULT '',
            started_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_serial ON transactions(serial_number, transaction_id DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_reference ON transactions(reference)`,
		`CREATE INDEX IF NOT EXISTS idx_attachments_order ON attachments(order_number, file_type, version DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_transitions_step ON transitions(step, updated_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// itemSnapshot is the persisted JSON shape of one snapshotted order item.
type itemSnapshot struct {
	SerialNumber      string `json:"serial_number"`
	EquipmentCategory string `json:"equipment_category"`
	Model             string `json:"model"`
	Size              string `json:"size"`
	Batch             string `json:"batch"`
	Location          string `json:"location"`
}

func encodeItems(items []model.OrderItem) ([]byte, error) {
	snapshots := make([]itemSnapshot, 0, len(items))
	for _, it := range items {
		snapshots = append(snapshots, itemSnapshot(it))
	}
	return json.Marshal(snapshots)
}

func decodeItems(raw []byte) ([]model.OrderItem, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var snapshots []itemSnapshot
	if err := json.Unmarshal(raw, &snapshots); err != nil {
		return nil, err
	}
	items := make([]model.OrderItem, 0, len(snapshots))
	for _, s := range snapshots {
		items = append(items, model.OrderItem(s))
	}
	return items, nil
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Pool exposes the raw connection pool for advanced use.
func (s *Storage) Pool() Pool {
	return s.pool
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
