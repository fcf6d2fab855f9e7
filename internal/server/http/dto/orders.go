package dto

import "time"

// CreateOrderRequest reserves items under a new order.
type CreateOrderRequest struct {
	OrderNumber    string   `json:"order_number" binding:"required"`
	CustomerDealer string   `json:"customer_dealer"`
	CustomerClient string   `json:"customer_client"`
	SerialNumbers  []string `json:"serial_numbers" binding:"required"`
}

// OrderItemResponse is one snapshotted item of an order.
type OrderItemResponse struct {
	SerialNumber      string `json:"serial_number"`
	EquipmentCategory string `json:"equipment_category"`
	Model             string `json:"model"`
	Size              string `json:"size"`
	Batch             string `json:"batch"`
	Location          string `json:"location"`
}

// OrderResponse is the full order document.
type OrderResponse struct {
	OrderNumber     string              `json:"order_number"`
	CustomerDealer  string              `json:"customer_dealer"`
	CustomerClient  string              `json:"customer_client"`
	Items           []OrderItemResponse `json:"items"`
	InvoiceStatus   string              `json:"invoice_status"`
	DeliveryStatus  string              `json:"delivery_status"`
	InvoiceNumber   string              `json:"invoice_number,omitempty"`
	InvoiceDate     string              `json:"invoice_date,omitempty"`
	InvoiceRemarks  string              `json:"invoice_remarks,omitempty"`
	DeliveryNumber  string              `json:"delivery_number,omitempty"`
	DeliveryDate    string              `json:"delivery_date,omitempty"`
	DeliveryRemarks string              `json:"delivery_remarks,omitempty"`
	CreatedDate     time.Time           `json:"created_date"`
}

// DeletionSummaryResponse reports what an order deletion removed.
type DeletionSummaryResponse struct {
	AttachmentsRemoved  int64 `json:"attachments_removed"`
	TransactionsRemoved int64 `json:"transactions_removed"`
}
