package model

import "time"

// DemoRecord describes equipment loaned to a customer for demonstration.
// Items share the order snapshot shape so returning them can restore the
// original location.
type DemoRecord struct {
	ID             int64
	DemoID         string
	CustomerDealer string
	CustomerClient string
	Items          []OrderItem
	CreatedDate    time.Time
}
