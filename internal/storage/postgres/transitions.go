package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/errors"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/model"
)

const transitionColumns = `id, order_number, file_type, action, step, file_id,
                           doc_number, doc_date, doc_remarks, last_error, started_at, updated_at`

func (r *transitionRepository) Create(ctx context.Context, rec *model.TransitionRecord) (*model.TransitionRecord, error) {
	const query = `INSERT INTO transitions (id, order_number, file_type, action, step, doc_number, doc_date, doc_remarks)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                   RETURNING started_at, updated_at`
	stored := *rec
	err := r.storage.pool.QueryRow(ctx, query,
		stored.ID, stored.OrderNumber, stored.FileType, stored.Action, stored.Step,
		stored.DocNumber, stored.DocDate, stored.DocRemarks,
	).Scan(&stored.StartedAt, &stored.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *transitionRepository) MarkCommitted(ctx context.Context, id, fileID string) error {
	const query = `UPDATE transitions
                   SET step='attachment_committed', file_id=$2, updated_at=NOW()
                   WHERE id=$1`
	return r.exec(ctx, query, id, fileID)
}

func (r *transitionRepository) MarkStep(ctx context.Context, id string, step model.TransitionStep, lastError string) error {
	const query = `UPDATE transitions SET step=$2, last_error=$3, updated_at=NOW() WHERE id=$1`
	return r.exec(ctx, query, id, step, lastError)
}

func (r *transitionRepository) ListIncomplete(ctx context.Context, before time.Time) ([]model.TransitionRecord, error) {
	const query = `SELECT ` + transitionColumns + `
                   FROM transitions
                   WHERE step IN ('started', 'attachment_committed') AND updated_at < $1
                   ORDER BY updated_at`
	rows, err := r.storage.pool.Query(ctx, query, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransitions(rows)
}

func (r *transitionRepository) CompensateByAttachment(ctx context.Context, orderNumber string, fileType model.FileType) error {
	const query = `UPDATE transitions
                   SET step='compensated', updated_at=NOW()
                   WHERE order_number=$1 AND file_type=$2 AND step IN ('started', 'attachment_committed')`
	_, err := r.storage.pool.Exec(ctx, query, orderNumber, fileType)
	return err
}

func (r *transitionRepository) exec(ctx context.Context, query string, args ...any) error {
	tag, err := r.storage.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func scanTransitions(rows pgx.Rows) ([]model.TransitionRecord, error) {
	var result []model.TransitionRecord
	for rows.Next() {
		var rec model.TransitionRecord
		if err := rows.Scan(
			&rec.ID, &rec.OrderNumber, &rec.FileType, &rec.Action, &rec.Step, &rec.FileID,
			&rec.DocNumber, &rec.DocDate, &rec.DocRemarks, &rec.LastError, &rec.StartedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
