package dto

import "time"

// CheckInRequest registers an item and puts it into stock.
type CheckInRequest struct {
	SerialNumber      string `json:"serial_number" binding:"required"`
	EquipmentCategory string `json:"equipment_category"`
	Model             string `json:"model"`
	Size              string `json:"size"`
	Batch             string `json:"batch"`
	Location          string `json:"location"`
}

// CheckOutRequest takes an item out of stock with the given status.
type CheckOutRequest struct {
	SerialNumber string `json:"serial_number" binding:"required"`
	Status       string `json:"status" binding:"required"`
	Location     string `json:"location"`
	Reference    string `json:"reference"`
}

// ItemStateResponse is the projected state of one serial.
type ItemStateResponse struct {
	SerialNumber string    `json:"serial_number"`
	Status       string    `json:"status"`
	Location     string    `json:"location"`
	LastType     string    `json:"last_transaction_type"`
	LastActivity time.Time `json:"last_activity"`
}

// ItemResponse is a catalog entry plus its projected state, when the item
// has an event inside the scan window.
type ItemResponse struct {
	SerialNumber      string             `json:"serial_number"`
	EquipmentCategory string             `json:"equipment_category"`
	Model             string             `json:"model"`
	Size              string             `json:"size"`
	Batch             string             `json:"batch"`
	State             *ItemStateResponse `json:"state,omitempty"`
}

// TransactionResponse is one event of an item's movement log.
type TransactionResponse struct {
	TransactionID int64     `json:"transaction_id"`
	SerialNumber  string    `json:"serial_number"`
	Type          string    `json:"type"`
	Status        string    `json:"status"`
	Location      string    `json:"location"`
	Reference     string    `json:"reference,omitempty"`
	UploadedAt    time.Time `json:"uploaded_at"`
}
