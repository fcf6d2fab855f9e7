package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/errors"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/model"
)

func (r *itemRepository) Upsert(ctx context.Context, item *model.InventoryItem) (*model.InventoryItem, error) {
	const query = `INSERT INTO items (serial_number, equipment_category, model, size, batch)
                   VALUES ($1, $2, $3, $4, $5)
                   ON CONFLICT (serial_number) DO UPDATE
                   SET equipment_category = EXCLUDED.equipment_category,
                       model = EXCLUDED.model,
                       size = EXCLUDED.size,
                       batch = EXCLUDED.batch
                   RETURNING id, created_at`
	stored := *item
	stored.SerialNumber = model.NormalizeSerial(item.SerialNumber)
	err := r.storage.pool.QueryRow(ctx, query,
		stored.SerialNumber, stored.EquipmentCategory, stored.Model, stored.Size, stored.Batch,
	).Scan(&stored.ID, &stored.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &stored, nil
}

func (r *itemRepository) GetBySerial(ctx context.Context, serial string) (*model.InventoryItem, error) {
	const query = `SELECT id, serial_number, equipment_category, model, size, batch, created_at
                   FROM items WHERE serial_number=$1`
	var item model.InventoryItem
	err := r.storage.pool.QueryRow(ctx, query, model.NormalizeSerial(serial)).Scan(
		&item.ID, &item.SerialNumber, &item.EquipmentCategory, &item.Model, &item.Size, &item.Batch, &item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) GetBySerials(ctx context.Context, serials []string) ([]model.InventoryItem, error) {
	const query = `SELECT id, serial_number, equipment_category, model, size, batch, created_at
                   FROM items WHERE serial_number = ANY($1) ORDER BY serial_number`
	normalized := make([]string, 0, len(serials))
	for _, s := range serials {
		normalized = append(normalized, model.NormalizeSerial(s))
	}
	rows, err := r.storage.pool.Query(ctx, query, normalized)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanItems(rows)
}

func (r *itemRepository) List(ctx context.Context) ([]model.InventoryItem, error) {
	const query = `SELECT id, serial_number, equipment_category, model, size, batch, created_at
                   FROM items ORDER BY serial_number`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanItems(rows)
}

func scanItems(rows pgx.Rows) ([]model.InventoryItem, error) {
	var result []model.InventoryItem
	for rows.Next() {
		var item model.InventoryItem
		if err := rows.Scan(&item.ID, &item.SerialNumber, &item.EquipmentCategory, &item.Model, &item.Size, &item.Batch, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
