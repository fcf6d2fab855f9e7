package model

import (
	"strings"
	"time"
)

// InventoryItem describes a physical unit tracked by serial number.
// Status and location are never stored here; they are derived from the
// transaction log.
type InventoryItem struct {
	ID                int64
	SerialNumber      string
	EquipmentCategory string
	Model             string
	Size              string
	Batch             string
	CreatedAt         time.Time
}

// ItemState is the derived state of one item: the latest transaction wins.
type ItemState struct {
	SerialNumber    string
	Status          ItemStatus
	Location        string
	LastType        TransactionType
	LastActivity    time.Time
	LastTransaction int64
}

// Available reports whether the item can be placed on a new order or demo.
func (s ItemState) Available() bool {
	return s.LastType == TransactionStockIn && s.Status == ItemStatusActive
}

// NormalizeSerial canonicalizes a human-entered serial number. Serials are
// matched case-insensitively everywhere.
func NormalizeSerial(serial string) string {
	return strings.ToUpper(strings.TrimSpace(serial))
}
