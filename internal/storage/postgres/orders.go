package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/errors"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/model"
)

const orderColumns = `id, order_number, customer_dealer, customer_client, items,
                      invoice_status, delivery_status,
                      invoice_number, invoice_date, invoice_remarks,
                      delivery_number, delivery_date, delivery_remarks,
                      created_date, updated_at`

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	const query = `INSERT INTO orders (order_number, customer_dealer, customer_client, items, invoice_status, delivery_status)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING id, created_date, updated_at`
	items, err := encodeItems(order.Items)
	if err != nil {
		return nil, err
	}
	stored := *order
	stored.InvoiceStatus = model.InvoiceStatusReserved
	stored.DeliveryStatus = model.DeliveryStatusPending
	err = r.storage.pool.QueryRow(ctx, query,
		stored.OrderNumber, stored.CustomerDealer, stored.CustomerClient, items,
		stored.InvoiceStatus, stored.DeliveryStatus,
	).Scan(&stored.ID, &stored.CreatedDate, &stored.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &stored, nil
}

func (r *orderRepository) GetByNumber(ctx context.Context, number string) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE order_number=$1`
	row := r.storage.pool.QueryRow(ctx, query, number)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders ORDER BY created_date DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) MarkInvoiced(ctx context.Context, number string, doc model.DocFields) error {
	const query = `UPDATE orders
                   SET invoice_status='Invoiced', invoice_number=$2, invoice_date=$3, invoice_remarks=$4, updated_at=NOW()
                   WHERE order_number=$1 AND invoice_status='Reserved'`
	return r.conditional(ctx, query, number, doc.Number, doc.Date, doc.Remarks)
}

func (r *orderRepository) MarkIssued(ctx context.Context, number string, doc model.DocFields) error {
	const query = `UPDATE orders
                   SET delivery_status='Issued', delivery_number=$2, delivery_date=$3, delivery_remarks=$4, updated_at=NOW()
                   WHERE order_number=$1 AND invoice_status='Invoiced' AND delivery_status='Pending'`
	return r.conditional(ctx, query, number, doc.Number, doc.Date, doc.Remarks)
}

func (r *orderRepository) MarkDelivered(ctx context.Context, number string) error {
	const query = `UPDATE orders
                   SET delivery_status='Delivered', updated_at=NOW()
                   WHERE order_number=$1 AND delivery_status='Issued'`
	return r.conditional(ctx, query, number)
}

func (r *orderRepository) UpdateInvoiceDoc(ctx context.Context, number string, doc model.DocFields) error {
	const query = `UPDATE orders
                   SET invoice_number=COALESCE(NULLIF($2,''), invoice_number),
                       invoice_date=COALESCE(NULLIF($3,''), invoice_date),
                       invoice_remarks=COALESCE(NULLIF($4,''), invoice_remarks),
                       updated_at=NOW()
                   WHERE order_number=$1 AND invoice_status='Invoiced'`
	return r.conditional(ctx, query, number, doc.Number, doc.Date, doc.Remarks)
}

func (r *orderRepository) UpdateDeliveryDoc(ctx context.Context, number string, doc model.DocFields) error {
	const query = `UPDATE orders
                   SET delivery_number=COALESCE(NULLIF($2,''), delivery_number),
                       delivery_date=COALESCE(NULLIF($3,''), delivery_date),
                       delivery_remarks=COALESCE(NULLIF($4,''), delivery_remarks),
                       updated_at=NOW()
                   WHERE order_number=$1 AND delivery_status <> 'Pending'`
	return r.conditional(ctx, query, number, doc.Number, doc.Date, doc.Remarks)
}

func (r *orderRepository) RevertInvoice(ctx context.Context, number string) error {
	const query = `UPDATE orders
                   SET invoice_status='Reserved', invoice_number='', invoice_date='', invoice_remarks='', updated_at=NOW()
                   WHERE order_number=$1 AND invoice_status='Invoiced' AND delivery_status='Pending'`
	return r.conditional(ctx, query, number)
}

func (r *orderRepository) RevertIssue(ctx context.Context, number string) error {
	const query = `UPDATE orders
                   SET delivery_status='Pending', delivery_number='', delivery_date='', delivery_remarks='', updated_at=NOW()
                   WHERE order_number=$1 AND delivery_status='Issued'`
	return r.conditional(ctx, query, number)
}

func (r *orderRepository) RevertDelivery(ctx context.Context, number string) error {
	const query = `UPDATE orders
                   SET delivery_status='Issued', updated_at=NOW()
                   WHERE order_number=$1 AND delivery_status='Delivered'`
	return r.conditional(ctx, query, number)
}

func (r *orderRepository) Delete(ctx context.Context, number string) error {
	const query = `DELETE FROM orders WHERE order_number=$1`
	tag, err := r.storage.pool.Exec(ctx, query, number)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// conditional runs a guarded update and reports ErrPrecondition when the
// order was not in the expected source state.
func (r *orderRepository) conditional(ctx context.Context, query string, args ...any) error {
	tag, err := r.storage.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrPrecondition
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*model.Order, error) {
	var (
		order model.Order
		raw   []byte
	)
	err := row.Scan(
		&order.ID, &order.OrderNumber, &order.CustomerDealer, &order.CustomerClient, &raw,
		&order.InvoiceStatus, &order.DeliveryStatus,
		&order.InvoiceNumber, &order.InvoiceDate, &order.InvoiceRemarks,
		&order.DeliveryNumber, &order.DeliveryDate, &order.DeliveryRemarks,
		&order.CreatedDate, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	items, err := decodeItems(raw)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return &order, nil
}
