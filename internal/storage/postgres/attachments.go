package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/errors"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/model"
)

const attachmentColumns = `file_id, order_number, file_type, version, is_active,
                           original_filename, file_size, content_digest, storage_url, upload_date`

func (r *attachmentRepository) Insert(ctx context.Context, att *model.Attachment) (*model.Attachment, error) {
	const query = `INSERT INTO attachments
                   (file_id, order_number, file_type, version, is_active, original_filename, file_size, content_digest, storage_url)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
                   RETURNING upload_date`
	stored := *att
	err := r.storage.pool.QueryRow(ctx, query,
		stored.FileID, stored.OrderNumber, stored.FileType, stored.Version, stored.IsActive,
		stored.OriginalFilename, stored.FileSize, stored.ContentDigest, stored.StorageURL,
	).Scan(&stored.UploadDate)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &stored, nil
}

func (r *attachmentRepository) GetByFileID(ctx context.Context, fileID string) (*model.Attachment, error) {
	const query = `SELECT ` + attachmentColumns + ` FROM attachments WHERE file_id=$1`
	att, err := scanAttachment(r.storage.pool.QueryRow(ctx, query, fileID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return att, nil
}

func (r *attachmentRepository) ListByOrder(ctx context.Context, orderNumber string) ([]model.Attachment, error) {
	const query = `SELECT ` + attachmentColumns + `
                   FROM attachments WHERE order_number=$1
                   ORDER BY file_type, version DESC`
	rows, err := r.storage.pool.Query(ctx, query, orderNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAttachments(rows)
}

func (r *attachmentRepository) ListByOrderType(ctx context.Context, orderNumber string, fileType model.FileType) ([]model.Attachment, error) {
	const query = `SELECT ` + attachmentColumns + `
                   FROM attachments WHERE order_number=$1 AND file_type=$2
                   ORDER BY version DESC`
	rows, err := r.storage.pool.Query(ctx, query, orderNumber, fileType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAttachments(rows)
}

func (r *attachmentRepository) SetActive(ctx context.Context, fileID string, active bool) error {
	const query = `UPDATE attachments SET is_active=$2 WHERE file_id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, fileID, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *attachmentRepository) DeleteByOrderType(ctx context.Context, orderNumber string, fileType model.FileType) (int64, error) {
	const query = `DELETE FROM attachments WHERE order_number=$1 AND file_type=$2`
	tag, err := r.storage.pool.Exec(ctx, query, orderNumber, fileType)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *attachmentRepository) DeleteByOrder(ctx context.Context, orderNumber string) (int64, error) {
	const query = `DELETE FROM attachments WHERE order_number=$1`
	tag, err := r.storage.pool.Exec(ctx, query, orderNumber)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanAttachment(row rowScanner) (*model.Attachment, error) {
	var att model.Attachment
	err := row.Scan(
		&att.FileID, &att.OrderNumber, &att.FileType, &att.Version, &att.IsActive,
		&att.OriginalFilename, &att.FileSize, &att.ContentDigest, &att.StorageURL, &att.UploadDate,
	)
	if err != nil {
		return nil, err
	}
	return &att, nil
}

func scanAttachments(rows pgx.Rows) ([]model.Attachment, error) {
	var result []model.Attachment
	for rows.Next() {
		att, err := scanAttachment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *att)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
