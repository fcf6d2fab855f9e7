package docgen

import (
	"bytes"
	"testing"

	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/model"
)

func sampleOrder() *model.Order {
	return &model.Order{
		OrderNumber:     "ORD-100",
		CustomerDealer:  "Dealer Co",
		CustomerClient:  "Client Hospital",
		DeliveryNumber:  "DO-55",
		DeliveryDate:    "2024-03-01",
		DeliveryRemarks: "Handle with care",
		Items: []model.OrderItem{
			{SerialNumber: "SN-1", EquipmentCategory: "Implant", Model: "M1", Size: "S", Batch: "B1", Location: "HQ"},
			{SerialNumber: "SN-2", EquipmentCategory: "Tool", Model: "M2", Size: "L", Batch: "B2", Location: "HQ"},
		},
	}
}

func TestDeliveryNoteProducesPDF(t *testing.T) {
	payload, err := DeliveryNote(sampleOrder())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(payload, []byte("%PDF-")) {
		t.Fatalf("expected a PDF payload, got %q", payload[:min(len(payload), 8)])
	}
	if len(payload) < 500 {
		t.Fatalf("suspiciously small PDF: %d bytes", len(payload))
	}
}

func TestDeliveryNoteWithoutOptionalFields(t *testing.T) {
	order := sampleOrder()
	order.DeliveryNumber = ""
	order.DeliveryDate = ""
	order.DeliveryRemarks = ""
	order.Items = nil

	payload, err := DeliveryNote(order)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(payload, []byte("%PDF-")) {
		t.Fatal("expected a PDF payload")
	}
}
