package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/model"
)

func (r *transactionRepository) Append(ctx context.Context, event *model.TransactionEvent) (*model.TransactionEvent, error) {
	const query = `INSERT INTO transactions (serial_number, type, status, location, reference)
                   VALUES ($1, $2, $3, $4, $5)
                   RETURNING transaction_id, uploaded_at`
	stored := *event
	stored.SerialNumber = model.NormalizeSerial(event.SerialNumber)
	err := r.storage.pool.QueryRow(ctx, query,
		stored.SerialNumber, stored.Type, stored.Status, stored.Location, stored.Reference,
	).Scan(&stored.TransactionID, &stored.UploadedAt)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *transactionRepository) LatestWindow(ctx context.Context, limit int) ([]model.TransactionEvent, error) {
	const query = `SELECT transaction_id, serial_number, type, status, location, reference, uploaded_at
                   FROM transactions ORDER BY transaction_id DESC LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (r *transactionRepository) ListBySerial(ctx context.Context, serial string) ([]model.TransactionEvent, error) {
	const query = `SELECT transaction_id, serial_number, type, status, location, reference, uploaded_at
                   FROM transactions WHERE serial_number=$1 ORDER BY transaction_id DESC`
	rows, err := r.storage.pool.Query(ctx, query, model.NormalizeSerial(serial))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (r *transactionRepository) DeleteByReference(ctx context.Context, reference string) (int64, error) {
	const query = `DELETE FROM transactions WHERE reference=$1`
	tag, err := r.storage.pool.Exec(ctx, query, reference)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanEvents(rows pgx.Rows) ([]model.TransactionEvent, error) {
	var result []model.TransactionEvent
	for rows.Next() {
		var ev model.TransactionEvent
		if err := rows.Scan(&ev.TransactionID, &ev.SerialNumber, &ev.Type, &ev.Status, &ev.Location, &ev.Reference, &ev.UploadedAt); err != nil {
			return nil, err
		}
		result = append(result, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
