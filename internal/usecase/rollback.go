package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/blob"
	domainErrors "github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/errors"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/model"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/repository"
)

// DeletionSummary reports what an order deletion removed so a human
// operator can verify the cleanup.
type DeletionSummary struct {
	AttachmentsRemoved  int64
	TransactionsRemoved int64
}

// RollbackUseCase reverses lifecycle transitions: attachment deletion with
// a one-step status revert, whole-order deletion, demo returns, and the
// repair pass that finishes or abandons interrupted write sequences.
type RollbackUseCase struct {
	orders       repository.OrderRepository
	attachments  repository.AttachmentRepository
	transactions repository.TransactionRepository
	transitions  repository.TransitionRepository
	demos        repository.DemoRepository
	blobs        blob.Store
	grace        time.Duration
	logger       *slog.Logger
}

// NewRollbackUseCase constructs RollbackUseCase. Grace is the age an
// incomplete transition must reach before the repair pass touches it.
func NewRollbackUseCase(
	orders repository.OrderRepository,
	attachments repository.AttachmentRepository,
	transactions repository.TransactionRepository,
	transitions repository.TransitionRepository,
	demos repository.DemoRepository,
	blobs blob.Store,
	grace time.Duration,
	logger *slog.Logger,
) *RollbackUseCase {
	return &RollbackUseCase{
		orders:       orders,
		attachments:  attachments,
		transactions: transactions,
		transitions:  transitions,
		demos:        demos,
		blobs:        blobs,
		grace:        grace,
		logger:       logger,
	}
}

// DeleteAttachment removes every version of one document type and reverts
// the order one step backward on the matching track. Refused while a later
// transition still depends on the document, so an order can never reach an
// illegal state combination; undo must happen in reverse order.
func (u *RollbackUseCase) DeleteAttachment(ctx context.Context, orderNumber string, fileType model.FileType) error {
	if !fileType.Known() {
		return fmt.Errorf("%w: unknown file type %q", domainErrors.ErrValidation, fileType)
	}

	order, err := u.orders.GetByNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return fmt.Errorf("%w: order %s", domainErrors.ErrNotFound, orderNumber)
		}
		return fmt.Errorf("%w: load order: %w", domainErrors.ErrPersistence, err)
	}

	switch fileType {
	case model.FileTypeInvoice:
		if order.DeliveryStatus != model.DeliveryStatusPending {
			return fmt.Errorf("%w: delivery paperwork depends on the invoice, delete it first", domainErrors.ErrConflict)
		}
	case model.FileTypeDeliveryOrder:
		if order.DeliveryStatus == model.DeliveryStatusDelivered {
			return fmt.Errorf("%w: signed delivery order depends on the delivery order, delete it first", domainErrors.ErrConflict)
		}
	}

	rows, err := u.attachments.ListByOrderType(ctx, orderNumber, fileType)
	if err != nil {
		return fmt.Errorf("%w: list attachments: %w", domainErrors.ErrPersistence, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("%w: no %s attachment for order %s", domainErrors.ErrNotFound, fileType, orderNumber)
	}

	if err := u.revertTrack(ctx, order, fileType); err != nil {
		return err
	}

	for _, row := range rows {
		u.discardBlob(ctx, row.StorageURL)
	}
	if _, err := u.attachments.DeleteByOrderType(ctx, orderNumber, fileType); err != nil {
		return fmt.Errorf("%w: delete attachment rows: %w", domainErrors.ErrPersistence, err)
	}
	if err := u.transitions.CompensateByAttachment(ctx, orderNumber, fileType); err != nil {
		u.logger.Warn("compensate transition records failed",
			slog.String("order", orderNumber), slog.String("file_type", string(fileType)), slog.String("error", err.Error()))
	}
	return nil
}

// revertTrack undoes one status step for the track the file type belongs
// to. An order already at the track's base state has nothing to revert —
// the attachment is then an orphan from a half-applied sequence.
func (u *RollbackUseCase) revertTrack(ctx context.Context, order *model.Order, fileType model.FileType) error {
	var err error
	switch fileType {
	case model.FileTypeInvoice:
		if order.InvoiceStatus != model.InvoiceStatusInvoiced {
			return nil
		}
		err = u.orders.RevertInvoice(ctx, order.OrderNumber)
	case model.FileTypeDeliveryOrder:
		if order.DeliveryStatus != model.DeliveryStatusIssued {
			return nil
		}
		err = u.orders.RevertIssue(ctx, order.OrderNumber)
	case model.FileTypeSignedDeliveryOrder:
		if order.DeliveryStatus != model.DeliveryStatusDelivered {
			return nil
		}
		err = u.orders.RevertDelivery(ctx, order.OrderNumber)
	}
	if err != nil {
		if errors.Is(err, domainErrors.ErrPrecondition) {
			return fmt.Errorf("%w: order %s changed concurrently", domainErrors.ErrConflict, order.OrderNumber)
		}
		return fmt.Errorf("%w: revert order status: %w", domainErrors.ErrPersistence, err)
	}
	return nil
}

// DeleteOrder removes the order, all attachment versions with their
// payloads, and the order's own transaction rows. Item statuses are
// deliberately NOT reverted: items stay wherever the log says they are and
// the summary gives the operator the cleanup surface.
func (u *RollbackUseCase) DeleteOrder(ctx context.Context, orderNumber string) (*DeletionSummary, error) {
	if _, err := u.orders.GetByNumber(ctx, orderNumber); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: order %s", domainErrors.ErrNotFound, orderNumber)
		}
		return nil, fmt.Errorf("%w: load order: %w", domainErrors.ErrPersistence, err)
	}

	rows, err := u.attachments.ListByOrder(ctx, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: list attachments: %w", domainErrors.ErrPersistence, err)
	}
	for _, row := range rows {
		u.discardBlob(ctx, row.StorageURL)
	}

	attachmentsRemoved, err := u.attachments.DeleteByOrder(ctx, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: delete attachment rows: %w", domainErrors.ErrPersistence, err)
	}
	transactionsRemoved, err := u.transactions.DeleteByReference(ctx, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: delete transaction rows: %w", domainErrors.ErrPersistence, err)
	}
	if err := u.orders.Delete(ctx, orderNumber); err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, fmt.Errorf("%w: delete order: %w", domainErrors.ErrPersistence, err)
	}

	return &DeletionSummary{
		AttachmentsRemoved:  attachmentsRemoved,
		TransactionsRemoved: transactionsRemoved,
	}, nil
}

// DeleteDemoRecord returns every loaned item to stock by appending a fresh
// Stock_In/Active event per item — history is never rewritten — and then
// removes the demo record.
func (u *RollbackUseCase) DeleteDemoRecord(ctx context.Context, demoID string) error {
	rec, err := u.demos.GetByDemoID(ctx, demoID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return fmt.Errorf("%w: demo %s", domainErrors.ErrNotFound, demoID)
		}
		return fmt.Errorf("%w: load demo: %w", domainErrors.ErrPersistence, err)
	}

	for _, item := range rec.Items {
		_, err := u.transactions.Append(ctx, &model.TransactionEvent{
			SerialNumber: item.SerialNumber,
			Type:         model.TransactionStockIn,
			Status:       model.ItemStatusActive,
			Location:     item.Location,
			Reference:    demoID,
		})
		if err != nil {
			return fmt.Errorf("%w: restore item %s: %w", domainErrors.ErrPersistence, item.SerialNumber, err)
		}
	}

	if err := u.demos.Delete(ctx, demoID); err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
		return fmt.Errorf("%w: delete demo: %w", domainErrors.ErrPersistence, err)
	}
	return nil
}

// Incomplete lists transition records older than the grace period that
// never reached a terminal step. Consumed by the repair worker.
func (u *RollbackUseCase) Incomplete(ctx context.Context) ([]model.TransitionRecord, error) {
	return u.transitions.ListIncomplete(ctx, time.Now().Add(-u.grace))
}

// RepairTransition finishes one interrupted write sequence. A record stuck
// before the attachment write is abandoned; a record whose attachment
// landed gets only its order update retried — the attachment is never
// re-uploaded.
func (u *RollbackUseCase) RepairTransition(ctx context.Context, rec model.TransitionRecord) error {
	switch rec.Step {
	case model.StepStarted:
		return u.transitions.MarkStep(ctx, rec.ID, model.StepAbandoned, "attachment never committed")
	case model.StepAttachmentCommitted:
		return u.retryOrderUpdate(ctx, rec)
	default:
		return nil
	}
}

func (u *RollbackUseCase) retryOrderUpdate(ctx context.Context, rec model.TransitionRecord) error {
	doc := model.DocFields{Number: rec.DocNumber, Date: rec.DocDate, Remarks: rec.DocRemarks}

	var err error
	switch {
	case rec.Action == model.TransitionActionReplace:
		switch rec.FileType {
		case model.FileTypeInvoice:
			err = u.orders.UpdateInvoiceDoc(ctx, rec.OrderNumber, doc)
		case model.FileTypeDeliveryOrder:
			err = u.orders.UpdateDeliveryDoc(ctx, rec.OrderNumber, doc)
		}
	case rec.FileType == model.FileTypeInvoice:
		err = u.orders.MarkInvoiced(ctx, rec.OrderNumber, doc)
	case rec.FileType == model.FileTypeDeliveryOrder:
		err = u.orders.MarkIssued(ctx, rec.OrderNumber, doc)
	case rec.FileType == model.FileTypeSignedDeliveryOrder:
		err = u.orders.MarkDelivered(ctx, rec.OrderNumber)
	}

	if err != nil {
		if errors.Is(err, domainErrors.ErrPrecondition) && u.alreadyApplied(ctx, rec) {
			return u.transitions.MarkStep(ctx, rec.ID, model.StepCompleted, "")
		}
		if markErr := u.transitions.MarkStep(ctx, rec.ID, model.StepAttachmentCommitted, err.Error()); markErr != nil {
			u.logger.Error("record repair failure", slog.String("transition", rec.ID), slog.String("error", markErr.Error()))
		}
		return err
	}
	return u.transitions.MarkStep(ctx, rec.ID, model.StepCompleted, "")
}

// alreadyApplied reports whether the order is at or past the state the
// record's update was meant to produce, meaning the original write or a
// concurrent retry already landed.
func (u *RollbackUseCase) alreadyApplied(ctx context.Context, rec model.TransitionRecord) bool {
	order, err := u.orders.GetByNumber(ctx, rec.OrderNumber)
	if err != nil {
		return false
	}
	switch rec.FileType {
	case model.FileTypeInvoice:
		return order.InvoiceStatus == model.InvoiceStatusInvoiced
	case model.FileTypeDeliveryOrder:
		return order.DeliveryStatus != model.DeliveryStatusPending
	case model.FileTypeSignedDeliveryOrder:
		return order.DeliveryStatus == model.DeliveryStatusDelivered
	}
	return false
}

func (u *RollbackUseCase) discardBlob(ctx context.Context, url string) {
	if err := u.blobs.Delete(ctx, url); err != nil && !errors.Is(err, blob.ErrNotFound) {
		u.logger.Warn("delete payload failed", slog.String("url", url), slog.String("error", err.Error()))
	}
}
