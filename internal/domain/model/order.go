package model

import "time"

// InvoiceStatus tracks the billing side of an order.
type InvoiceStatus string

const (
	InvoiceStatusReserved InvoiceStatus = "Reserved"
	InvoiceStatusInvoiced InvoiceStatus = "Invoiced"
)

// DeliveryStatus tracks the fulfilment side of an order. It may leave
// Pending only after the invoice side reached Invoiced.
type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "Pending"
	DeliveryStatusIssued    DeliveryStatus = "Issued"
	DeliveryStatusDelivered DeliveryStatus = "Delivered"
)

// OrderItem is the snapshot of one reserved item taken when the order was
// created. Location is the shelf the item left, kept for paperwork and for
// restoring loaned stock.
type OrderItem struct {
	SerialNumber      string
	EquipmentCategory string
	Model             string
	Size              string
	Batch             string
	Location          string
}

// DocFields carries the document number, date and remarks written onto an
// order together with an attachment.
type DocFields struct {
	Number  string
	Date    string
	Remarks string
}

// Order describes a customer order through its document lifecycle.
// Document numbers and dates stay empty until the matching attachment is
// uploaded.
type Order struct {
	ID              int64
	OrderNumber     string
	CustomerDealer  string
	CustomerClient  string
	Items           []OrderItem
	InvoiceStatus   InvoiceStatus
	DeliveryStatus  DeliveryStatus
	InvoiceNumber   string
	InvoiceDate     string
	InvoiceRemarks  string
	DeliveryNumber  string
	DeliveryDate    string
	DeliveryRemarks string
	CreatedDate     time.Time
	UpdatedAt       time.Time
}
