package model

import "time"

// TransactionType describes the direction of a stock movement.
type TransactionType string

const (
	TransactionStockIn  TransactionType = "Stock_In"
	TransactionStockOut TransactionType = "Stock_Out"
)

// ItemStatus labels the condition an item entered with its latest movement.
// The set is open: readers must tolerate values they do not know.
type ItemStatus string

const (
	ItemStatusActive    ItemStatus = "Active"
	ItemStatusReserved  ItemStatus = "Reserved"
	ItemStatusDemo      ItemStatus = "Demo"
	ItemStatusDelivered ItemStatus = "Delivered"
)

// TransactionEvent is one immutable row of the append-only movement log.
// TransactionID is an opaque increasing identifier; the highest one per
// serial number is authoritative. Reference carries the order number or
// demo id that produced the event, empty for manual check-ins.
type TransactionEvent struct {
	TransactionID int64
	SerialNumber  string
	Type          TransactionType
	Status        ItemStatus
	Location      string
	Reference     string
	UploadedAt    time.Time
}
