package repository

import (
	"context"

	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/model"
)

// OrderRepository describes persistence operations for orders. Every state
// change is a conditional write: the update applies only while the order is
// still in the expected source state, otherwise ErrPrecondition is returned
// and nothing is modified.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByNumber(ctx context.Context, number string) (*model.Order, error)
	List(ctx context.Context) ([]model.Order, error)

	// MarkInvoiced moves Reserved to Invoiced and writes the invoice fields.
	MarkInvoiced(ctx context.Context, number string, doc model.DocFields) error
	// MarkIssued moves Pending to Issued while the order is Invoiced and
	// writes the delivery fields.
	MarkIssued(ctx context.Context, number string, doc model.DocFields) error
	// MarkDelivered moves Issued to Delivered.
	MarkDelivered(ctx context.Context, number string) error

	// UpdateInvoiceDoc rewrites invoice fields on an Invoiced order. Empty
	// values keep what is already stored.
	UpdateInvoiceDoc(ctx context.Context, number string, doc model.DocFields) error
	// UpdateDeliveryDoc rewrites delivery fields once the order left Pending.
	UpdateDeliveryDoc(ctx context.Context, number string, doc model.DocFields) error

	// RevertInvoice moves Invoiced back to Reserved and clears invoice
	// fields. Refused once delivery left Pending.
	RevertInvoice(ctx context.Context, number string) error
	// RevertIssue moves Issued back to Pending and clears delivery fields.
	RevertIssue(ctx context.Context, number string) error
	// RevertDelivery moves Delivered back to Issued.
	RevertDelivery(ctx context.Context, number string) error

	Delete(ctx context.Context, number string) error
}
