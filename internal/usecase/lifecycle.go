package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/errors"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/model"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/repository"
)

// LifecycleUseCase owns the two-track order state machine:
// (Reserved,Pending) → (Invoiced,Pending) → (Invoiced,Issued) → (Invoiced,Delivered).
// Every forward transition is a three-step sequence over independent
// collections — validate file, persist attachment, conditionally update the
// order — tracked by a durable TransitionRecord so a failure between steps
// two and three is detectable and repairable instead of silent.
type LifecycleUseCase struct {
	orders       repository.OrderRepository
	items        repository.ItemRepository
	transactions repository.TransactionRepository
	transitions  repository.TransitionRepository
	attachments  *AttachmentUseCase
	projector    *Projector
	logger       *slog.Logger
}

// NewLifecycleUseCase constructs LifecycleUseCase.
func NewLifecycleUseCase(
	orders repository.OrderRepository,
	items repository.ItemRepository,
	transactions repository.TransactionRepository,
	transitions repository.TransitionRepository,
	attachments *AttachmentUseCase,
	projector *Projector,
	logger *slog.Logger,
) *LifecycleUseCase {
	return &LifecycleUseCase{
		orders:       orders,
		items:        items,
		transactions: transactions,
		transitions:  transitions,
		attachments:  attachments,
		projector:    projector,
		logger:       logger,
	}
}

// CreateOrder reserves the given items under a new order. Every serial must
// project as available; degraded (timed out) projections fail closed
// because the serial is then absent from the result.
func (u *LifecycleUseCase) CreateOrder(ctx context.Context, orderNumber, dealer, client string, serials []string) (*model.Order, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return nil, fmt.Errorf("%w: order number required", domainErrors.ErrValidation)
	}
	if len(serials) == 0 {
		return nil, fmt.Errorf("%w: at least one item required", domainErrors.ErrValidation)
	}

	states, err := u.projector.States(ctx, serials)
	if err != nil {
		return nil, fmt.Errorf("%w: project item states: %w", domainErrors.ErrPersistence, err)
	}

	catalog, err := u.items.GetBySerials(ctx, serials)
	if err != nil {
		return nil, fmt.Errorf("%w: load items: %w", domainErrors.ErrPersistence, err)
	}
	bySerial := make(map[string]model.InventoryItem, len(catalog))
	for _, item := range catalog {
		bySerial[item.SerialNumber] = item
	}

	snapshot := make([]model.OrderItem, 0, len(serials))
	for _, raw := range serials {
		serial := model.NormalizeSerial(raw)
		state, ok := states[serial]
		if !ok || !state.Available() {
			return nil, fmt.Errorf("%w: item %s is not available", domainErrors.ErrValidation, serial)
		}
		item, ok := bySerial[serial]
		if !ok {
			return nil, fmt.Errorf("%w: item %s is not in the catalog", domainErrors.ErrValidation, serial)
		}
		snapshot = append(snapshot, model.OrderItem{
			SerialNumber:      serial,
			EquipmentCategory: item.EquipmentCategory,
			Model:             item.Model,
			Size:              item.Size,
			Batch:             item.Batch,
			Location:          state.Location,
		})
	}

	order, err := u.orders.Create(ctx, &model.Order{
		OrderNumber:    orderNumber,
		CustomerDealer: dealer,
		CustomerClient: client,
		Items:          snapshot,
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: order %s already exists", domainErrors.ErrConflict, orderNumber)
		}
		return nil, fmt.Errorf("%w: create order: %w", domainErrors.ErrPersistence, err)
	}

	for _, item := range snapshot {
		_, err := u.transactions.Append(ctx, &model.TransactionEvent{
			SerialNumber: item.SerialNumber,
			Type:         model.TransactionStockOut,
			Status:       model.ItemStatusReserved,
			Location:     item.Location,
			Reference:    orderNumber,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: reserve item %s: %w", domainErrors.ErrPersistence, item.SerialNumber, err)
		}
	}

	return order, nil
}

// AttachInvoice moves Reserved → Invoiced, materializing the invoice PDF
// and the denormalized invoice fields.
func (u *LifecycleUseCase) AttachInvoice(ctx context.Context, orderNumber string, payload []byte, filename string, doc model.DocFields) (*model.Order, error) {
	order, err := u.getOrder(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if order.InvoiceStatus != model.InvoiceStatusReserved {
		return nil, fmt.Errorf("%w: order %s is %s, expected Reserved", domainErrors.ErrPrecondition, orderNumber, order.InvoiceStatus)
	}

	return u.runSequence(ctx, sequence{
		orderNumber: orderNumber,
		fileType:    model.FileTypeInvoice,
		action:      model.TransitionActionUpload,
		payload:     payload,
		filename:    filename,
		doc:         doc,
		attach: func(ctx context.Context) (*model.Attachment, error) {
			return u.attachments.Upload(ctx, orderNumber, model.FileTypeInvoice, payload, filename)
		},
		commit: func(ctx context.Context) error {
			return u.orders.MarkInvoiced(ctx, orderNumber, doc)
		},
	})
}

// IssueDelivery moves Pending → Issued on the delivery track. The invoice
// track must already be Invoiced; the conditional write re-checks both.
func (u *LifecycleUseCase) IssueDelivery(ctx context.Context, orderNumber string, payload []byte, filename string, doc model.DocFields) (*model.Order, error) {
	order, err := u.getOrder(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if order.InvoiceStatus != model.InvoiceStatusInvoiced {
		return nil, fmt.Errorf("%w: order %s is not invoiced yet", domainErrors.ErrPrecondition, orderNumber)
	}
	if order.DeliveryStatus != model.DeliveryStatusPending {
		return nil, fmt.Errorf("%w: order %s delivery is %s, expected Pending", domainErrors.ErrPrecondition, orderNumber, order.DeliveryStatus)
	}

	return u.runSequence(ctx, sequence{
		orderNumber: orderNumber,
		fileType:    model.FileTypeDeliveryOrder,
		action:      model.TransitionActionUpload,
		payload:     payload,
		filename:    filename,
		doc:         doc,
		attach: func(ctx context.Context) (*model.Attachment, error) {
			return u.uploadOrReplace(ctx, orderNumber, model.FileTypeDeliveryOrder, payload, filename)
		},
		commit: func(ctx context.Context) error {
			return u.orders.MarkIssued(ctx, orderNumber, doc)
		},
	})
}

// ConfirmDelivery moves Issued → Delivered once the signed delivery order
// is uploaded. No denormalized fields change beyond the status.
func (u *LifecycleUseCase) ConfirmDelivery(ctx context.Context, orderNumber string, payload []byte, filename string) (*model.Order, error) {
	order, err := u.getOrder(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if order.DeliveryStatus != model.DeliveryStatusIssued {
		return nil, fmt.Errorf("%w: order %s delivery is %s, expected Issued", domainErrors.ErrPrecondition, orderNumber, order.DeliveryStatus)
	}

	return u.runSequence(ctx, sequence{
		orderNumber: orderNumber,
		fileType:    model.FileTypeSignedDeliveryOrder,
		action:      model.TransitionActionUpload,
		payload:     payload,
		filename:    filename,
		attach: func(ctx context.Context) (*model.Attachment, error) {
			return u.uploadOrReplace(ctx, orderNumber, model.FileTypeSignedDeliveryOrder, payload, filename)
		},
		commit: func(ctx context.Context) error {
			return u.orders.MarkDelivered(ctx, orderNumber)
		},
	})
}

// ReplaceOrderFile re-uploads one of the three documents without a status
// change. Empty doc fields keep the stored values; the signed delivery
// order carries no denormalized fields at all.
func (u *LifecycleUseCase) ReplaceOrderFile(ctx context.Context, orderNumber string, fileType model.FileType, payload []byte, filename string, doc model.DocFields) (*model.Order, error) {
	if !fileType.Known() {
		return nil, fmt.Errorf("%w: unknown file type %q", domainErrors.ErrValidation, fileType)
	}
	order, err := u.getOrder(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	switch fileType {
	case model.FileTypeInvoice:
		if order.InvoiceStatus != model.InvoiceStatusInvoiced {
			return nil, fmt.Errorf("%w: order %s has no invoice to replace", domainErrors.ErrPrecondition, orderNumber)
		}
	case model.FileTypeDeliveryOrder, model.FileTypeSignedDeliveryOrder:
		if order.DeliveryStatus == model.DeliveryStatusPending {
			return nil, fmt.Errorf("%w: order %s has no delivery paperwork to replace", domainErrors.ErrPrecondition, orderNumber)
		}
	}

	return u.runSequence(ctx, sequence{
		orderNumber: orderNumber,
		fileType:    fileType,
		action:      model.TransitionActionReplace,
		payload:     payload,
		filename:    filename,
		doc:         doc,
		attach: func(ctx context.Context) (*model.Attachment, error) {
			return u.attachments.Replace(ctx, orderNumber, fileType, payload, filename)
		},
		commit: func(ctx context.Context) error {
			switch fileType {
			case model.FileTypeInvoice:
				return u.orders.UpdateInvoiceDoc(ctx, orderNumber, doc)
			case model.FileTypeDeliveryOrder:
				return u.orders.UpdateDeliveryDoc(ctx, orderNumber, doc)
			default:
				return nil
			}
		},
	})
}

// sequence is one attach-and-advance write sequence: the attachment write
// and the conditional order write it must be followed by.
type sequence struct {
	orderNumber string
	fileType    model.FileType
	action      model.TransitionAction
	payload     []byte
	filename    string
	doc         model.DocFields
	attach      func(context.Context) (*model.Attachment, error)
	commit      func(context.Context) error
}

// runSequence executes the three steps under a durable TransitionRecord:
// started before the attachment write, attachment_committed after it,
// completed after the order write. Failures surface the step they died in.
func (u *LifecycleUseCase) runSequence(ctx context.Context, seq sequence) (*model.Order, error) {
	if err := ValidatePDF(seq.payload, u.attachments.maxFileSize); err != nil {
		return nil, domainErrors.WithStep(domainErrors.StepValidateFile, err)
	}

	rec, err := u.transitions.Create(ctx, &model.TransitionRecord{
		ID:          uuid.NewString(),
		OrderNumber: seq.orderNumber,
		FileType:    seq.fileType,
		Action:      seq.action,
		Step:        model.StepStarted,
		DocNumber:   seq.doc.Number,
		DocDate:     seq.doc.Date,
		DocRemarks:  seq.doc.Remarks,
	})
	if err != nil {
		return nil, domainErrors.WithStep(domainErrors.StepPersistAttachment, fmt.Errorf("%w: record transition: %w", domainErrors.ErrPersistence, err))
	}

	att, err := seq.attach(ctx)
	if err != nil {
		u.markStep(ctx, rec.ID, model.StepAbandoned, err)
		return nil, domainErrors.WithStep(domainErrors.StepPersistAttachment, err)
	}

	if err := u.transitions.MarkCommitted(ctx, rec.ID, att.FileID); err != nil {
		u.logger.Error("mark transition committed failed",
			slog.String("transition", rec.ID), slog.String("error", err.Error()))
	}

	if err := seq.commit(ctx); err != nil {
		u.markStep(ctx, rec.ID, model.StepAttachmentCommitted, err)
		if errors.Is(err, domainErrors.ErrPrecondition) {
			return nil, domainErrors.WithStep(domainErrors.StepUpdateOrder, err)
		}
		return nil, domainErrors.WithStep(domainErrors.StepUpdateOrder, fmt.Errorf("%w: %w", domainErrors.ErrPersistence, err))
	}

	u.markStep(ctx, rec.ID, model.StepCompleted, nil)

	return u.getOrder(ctx, seq.orderNumber)
}

// uploadOrReplace uploads the first version or replaces the existing one,
// whichever the current history requires.
func (u *LifecycleUseCase) uploadOrReplace(ctx context.Context, orderNumber string, fileType model.FileType, payload []byte, filename string) (*model.Attachment, error) {
	att, err := u.attachments.Upload(ctx, orderNumber, fileType, payload, filename)
	if errors.Is(err, domainErrors.ErrConflict) {
		return u.attachments.Replace(ctx, orderNumber, fileType, payload, filename)
	}
	return att, err
}

func (u *LifecycleUseCase) getOrder(ctx context.Context, orderNumber string) (*model.Order, error) {
	order, err := u.orders.GetByNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: order %s", domainErrors.ErrNotFound, orderNumber)
		}
		return nil, fmt.Errorf("%w: load order: %w", domainErrors.ErrPersistence, err)
	}
	return order, nil
}

// Orders lists all orders for reporting.
func (u *LifecycleUseCase) Orders(ctx context.Context) ([]model.Order, error) {
	return u.orders.List(ctx)
}

// Order returns one order by number.
func (u *LifecycleUseCase) Order(ctx context.Context, orderNumber string) (*model.Order, error) {
	return u.getOrder(ctx, orderNumber)
}

func (u *LifecycleUseCase) markStep(ctx context.Context, id string, step model.TransitionStep, cause error) {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	if err := u.transitions.MarkStep(ctx, id, step, msg); err != nil {
		u.logger.Error("mark transition step failed",
			slog.String("transition", id), slog.String("step", string(step)), slog.String("error", err.Error()))
	}
}
