package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/errors"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/model"
)

func (r *demoRepository) Create(ctx context.Context, rec *model.DemoRecord) (*model.DemoRecord, error) {
	const query = `INSERT INTO demo_records (demo_id, customer_dealer, customer_client, items)
                   VALUES ($1, $2, $3, $4)
                   RETURNING id, created_date`
	items, err := encodeItems(rec.Items)
	if err != nil {
		return nil, err
	}
	stored := *rec
	err = r.storage.pool.QueryRow(ctx, query,
		stored.DemoID, stored.CustomerDealer, stored.CustomerClient, items,
	).Scan(&stored.ID, &stored.CreatedDate)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &stored, nil
}

func (r *demoRepository) GetByDemoID(ctx context.Context, demoID string) (*model.DemoRecord, error) {
	const query = `SELECT id, demo_id, customer_dealer, customer_client, items, created_date
                   FROM demo_records WHERE demo_id=$1`
	rec, err := scanDemo(r.storage.pool.QueryRow(ctx, query, demoID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (r *demoRepository) List(ctx context.Context) ([]model.DemoRecord, error) {
	const query = `SELECT id, demo_id, customer_dealer, customer_client, items, created_date
                   FROM demo_records ORDER BY created_date DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.DemoRecord
	for rows.Next() {
		rec, err := scanDemo(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *demoRepository) Delete(ctx context.Context, demoID string) error {
	const query = `DELETE FROM demo_records WHERE demo_id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, demoID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func scanDemo(row rowScanner) (*model.DemoRecord, error) {
	var (
		rec model.DemoRecord
		raw []byte
	)
	err := row.Scan(&rec.ID, &rec.DemoID, &rec.CustomerDealer, &rec.CustomerClient, &raw, &rec.CreatedDate)
	if err != nil {
		return nil, err
	}
	items, err := decodeItems(raw)
	if err != nil {
		return nil, err
	}
	rec.Items = items
	return &rec, nil
}
