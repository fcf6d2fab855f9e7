package dto

import "time"

// CreateDemoRequest loans items to a customer for demonstration.
type CreateDemoRequest struct {
	CustomerDealer string   `json:"customer_dealer"`
	CustomerClient string   `json:"customer_client" binding:"required"`
	SerialNumbers  []string `json:"serial_numbers" binding:"required"`
}

// DemoResponse is one demo loan record.
type DemoResponse struct {
	DemoID         string              `json:"demo_id"`
	CustomerDealer string              `json:"customer_dealer"`
	CustomerClient string              `json:"customer_client"`
	Items          []OrderItemResponse `json:"items"`
	CreatedDate    time.Time           `json:"created_date"`
}
