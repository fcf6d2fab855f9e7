package usecase

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/blob"
	domainErrors "github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/errors"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/model"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/repository"
)

// AttachmentUseCase manages versioned order documents: metadata rows in the
// attachment repository, payloads in the blob store. The backing store has
// no multi-document transactions, so every operation activates the new row
// first and deactivates the old one second; reads tolerate the transient
// double-active window by preferring the highest version.
type AttachmentUseCase struct {
	attachments repository.AttachmentRepository
	blobs       blob.Store
	maxFileSize int64
	logger      *slog.Logger
}

// NewAttachmentUseCase constructs AttachmentUseCase.
func NewAttachmentUseCase(attachments repository.AttachmentRepository, blobs blob.Store, maxFileSize int64, logger *slog.Logger) *AttachmentUseCase {
	return &AttachmentUseCase{
		attachments: attachments,
		blobs:       blobs,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// ContentDigest returns the BLAKE2b-256 hex digest used to detect retried
// and racing writes of the same payload.
func ContentDigest(payload []byte) string {
	sum := blake2b.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// Upload stores the first version of a document. An existing active version
// of the same (order, type) is a conflict: callers must Replace. A retry of
// an upload that already landed converges on the stored row by digest.
func (u *AttachmentUseCase) Upload(ctx context.Context, orderNumber string, fileType model.FileType, payload []byte, filename string) (*model.Attachment, error) {
	if err := u.validate(fileType, payload); err != nil {
		return nil, err
	}

	digest := ContentDigest(payload)
	existing, err := u.attachments.ListByOrderType(ctx, orderNumber, fileType)
	if err != nil {
		return nil, fmt.Errorf("%w: list attachments: %w", domainErrors.ErrPersistence, err)
	}
	if len(existing) > 0 {
		if highest := existing[0]; highest.ContentDigest == digest {
			return &highest, nil
		}
		return nil, fmt.Errorf("%w: active %s already exists for order %s, use replace", domainErrors.ErrConflict, fileType, orderNumber)
	}

	return u.persistVersion(ctx, orderNumber, fileType, payload, filename, digest, 1)
}

// Replace stores a new version of an existing document and deactivates the
// previous active row. Safe under at-least-once retries: a payload whose
// digest matches the highest stored version returns that version instead of
// creating a duplicate, and a lost insert race converges on the winner.
func (u *AttachmentUseCase) Replace(ctx context.Context, orderNumber string, fileType model.FileType, payload []byte, filename string) (*model.Attachment, error) {
	if err := u.validate(fileType, payload); err != nil {
		return nil, err
	}

	versions, err := u.attachments.ListByOrderType(ctx, orderNumber, fileType)
	if err != nil {
		return nil, fmt.Errorf("%w: list attachments: %w", domainErrors.ErrPersistence, err)
	}
	if len(versions) == 0 {
		return nil, fmt.Errorf("%w: no %s attachment for order %s", domainErrors.ErrNotFound, fileType, orderNumber)
	}

	digest := ContentDigest(payload)
	highest := versions[0]
	if highest.ContentDigest == digest {
		// Already applied by an earlier attempt or a racing caller.
		return &highest, nil
	}

	att, err := u.persistVersion(ctx, orderNumber, fileType, payload, filename, digest, highest.Version+1)
	if err != nil {
		return nil, err
	}

	u.deactivateOthers(ctx, orderNumber, fileType, att.FileID)
	return att, nil
}

// Restore flips a historical version back to active and deactivates the
// current active row. Rows are never deleted, so any version can come back.
func (u *AttachmentUseCase) Restore(ctx context.Context, fileID string) (*model.Attachment, error) {
	target, err := u.attachments.GetByFileID(ctx, fileID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: attachment %s", domainErrors.ErrNotFound, fileID)
		}
		return nil, fmt.Errorf("%w: load attachment: %w", domainErrors.ErrPersistence, err)
	}

	if !target.IsActive {
		if err := u.attachments.SetActive(ctx, target.FileID, true); err != nil {
			return nil, fmt.Errorf("%w: activate attachment: %w", domainErrors.ErrPersistence, err)
		}
		target.IsActive = true
	}

	u.deactivateOthers(ctx, target.OrderNumber, target.FileType, target.FileID)
	return target, nil
}

// ListActive returns the authoritative attachment per file type. Active
// rows win; within a transient double-active or zero-active window the
// highest version is reported.
func (u *AttachmentUseCase) ListActive(ctx context.Context, orderNumber string) (map[model.FileType]model.Attachment, error) {
	rows, err := u.attachments.ListByOrder(ctx, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: list attachments: %w", domainErrors.ErrPersistence, err)
	}

	result := make(map[model.FileType]model.Attachment)
	for _, row := range rows {
		current, seen := result[row.FileType]
		if !seen {
			result[row.FileType] = row
			continue
		}
		if pick(row, current) {
			result[row.FileType] = row
		}
	}
	return result, nil
}

// ListVersions returns the full version history for one order, newest first
// within each file type.
func (u *AttachmentUseCase) ListVersions(ctx context.Context, orderNumber string) ([]model.Attachment, error) {
	rows, err := u.attachments.ListByOrder(ctx, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: list attachments: %w", domainErrors.ErrPersistence, err)
	}
	return rows, nil
}

// Download returns the stored payload together with its metadata row.
func (u *AttachmentUseCase) Download(ctx context.Context, fileID string) ([]byte, *model.Attachment, error) {
	att, err := u.attachments.GetByFileID(ctx, fileID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: attachment %s", domainErrors.ErrNotFound, fileID)
		}
		return nil, nil, fmt.Errorf("%w: load attachment: %w", domainErrors.ErrPersistence, err)
	}

	payload, err := u.blobs.Get(ctx, att.StorageURL)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: payload of %s", domainErrors.ErrNotFound, fileID)
		}
		return nil, nil, fmt.Errorf("%w: fetch payload: %w", domainErrors.ErrStorage, err)
	}
	return payload, att, nil
}

func (u *AttachmentUseCase) validate(fileType model.FileType, payload []byte) error {
	if !fileType.Known() {
		return fmt.Errorf("%w: unknown file type %q", domainErrors.ErrValidation, fileType)
	}
	return ValidatePDF(payload, u.maxFileSize)
}

// persistVersion writes the payload to blob storage and inserts the
// metadata row as active. A unique violation on (order, type, version)
// means another writer won the race: re-read and converge when the digest
// matches, conflict otherwise.
func (u *AttachmentUseCase) persistVersion(ctx context.Context, orderNumber string, fileType model.FileType, payload []byte, filename, digest string, version int) (*model.Attachment, error) {
	fileID := uuid.NewString()
	key := fmt.Sprintf("%s/%s/%s.pdf", orderNumber, fileType, fileID)

	url, err := u.blobs.Put(ctx, key, payload, "application/pdf")
	if err != nil {
		return nil, fmt.Errorf("%w: store payload: %w", domainErrors.ErrStorage, err)
	}

	att := &model.Attachment{
		FileID:           fileID,
		OrderNumber:      orderNumber,
		FileType:         fileType,
		Version:          version,
		IsActive:         true,
		OriginalFilename: filename,
		FileSize:         int64(len(payload)),
		ContentDigest:    digest,
		StorageURL:       url,
	}

	stored, err := u.attachments.Insert(ctx, att)
	if err != nil {
		u.discardBlob(ctx, url)
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return u.converge(ctx, orderNumber, fileType, digest)
		}
		return nil, fmt.Errorf("%w: insert attachment: %w", domainErrors.ErrPersistence, err)
	}
	return stored, nil
}

// converge resolves a lost insert race: if the winning row carries the same
// payload digest the operation already happened and its result is returned.
func (u *AttachmentUseCase) converge(ctx context.Context, orderNumber string, fileType model.FileType, digest string) (*model.Attachment, error) {
	versions, err := u.attachments.ListByOrderType(ctx, orderNumber, fileType)
	if err != nil {
		return nil, fmt.Errorf("%w: list attachments: %w", domainErrors.ErrPersistence, err)
	}
	if len(versions) > 0 && versions[0].ContentDigest == digest {
		highest := versions[0]
		return &highest, nil
	}
	return nil, fmt.Errorf("%w: concurrent write of a different %s for order %s", domainErrors.ErrConflict, fileType, orderNumber)
}

// deactivateOthers flips every active row of the group except keep to
// inactive. Failures leave a transient double-active window that reads
// resolve by version, so they are logged rather than surfaced.
func (u *AttachmentUseCase) deactivateOthers(ctx context.Context, orderNumber string, fileType model.FileType, keep string) {
	rows, err := u.attachments.ListByOrderType(ctx, orderNumber, fileType)
	if err != nil {
		u.logger.Warn("list for deactivation failed, leaving double-active window",
			slog.String("order", orderNumber), slog.String("file_type", string(fileType)), slog.String("error", err.Error()))
		return
	}
	for _, row := range rows {
		if row.FileID == keep || !row.IsActive {
			continue
		}
		if err := u.attachments.SetActive(ctx, row.FileID, false); err != nil {
			u.logger.Warn("deactivate previous version failed",
				slog.String("file_id", row.FileID), slog.String("error", err.Error()))
		}
	}
}

func (u *AttachmentUseCase) discardBlob(ctx context.Context, url string) {
	if err := u.blobs.Delete(ctx, url); err != nil && !errors.Is(err, blob.ErrNotFound) {
		u.logger.Warn("discard orphaned payload failed", slog.String("url", url), slog.String("error", err.Error()))
	}
}

// pick reports whether candidate should replace current as the
// authoritative version of a file type.
func pick(candidate, current model.Attachment) bool {
	if candidate.IsActive != current.IsActive {
		return candidate.IsActive
	}
	return candidate.Version > current.Version
}
