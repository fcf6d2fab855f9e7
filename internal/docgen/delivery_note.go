// Package docgen renders printable order paperwork. The delivery note is
// printed, signed by the receiving customer, scanned, and uploaded back as
// the signed delivery order.
package docgen

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/model"
)

const (
	pageWidth  = 210.0
	marginLeft = 15.0
	marginTop  = 15.0
	qrSize     = 28.0
)

// DeliveryNote renders the delivery order PDF for one order: header with a
// QR code of the order number for warehouse scanning, customer block, items
// table, and a signature box.
func DeliveryNote(order *model.Order) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginLeft)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 10, "DELIVERY ORDER", "", 1, "L", false, 0, "")

	qrPng, err := qrcode.Encode(order.OrderNumber, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode order qr: %w", err)
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	pdf.RegisterImageOptionsReader("order_qr", opts, bytes.NewReader(qrPng))
	pdf.ImageOptions("order_qr", pageWidth-marginLeft-qrSize, marginTop, qrSize, qrSize, false, opts, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, "Order: "+order.OrderNumber, "", 1, "L", false, 0, "")
	if order.DeliveryNumber != "" {
		pdf.CellFormat(0, 7, "Delivery No: "+order.DeliveryNumber, "", 1, "L", false, 0, "")
	}
	if order.DeliveryDate != "" {
		pdf.CellFormat(0, 7, "Date: "+order.DeliveryDate, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 7, "Dealer: "+order.CustomerDealer, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Client: "+order.CustomerClient, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	headers := []string{"#", "Serial", "Category", "Model", "Size", "Batch"}
	widths := []float64{10, 40, 40, 40, 25, 25}

	pdf.SetFont("Arial", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for i, item := range order.Items {
		cells := []string{
			fmt.Sprintf("%d", i+1),
			item.SerialNumber,
			item.EquipmentCategory,
			item.Model,
			item.Size,
			item.Batch,
		}
		for j, cell := range cells {
			pdf.CellFormat(widths[j], 8, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if order.DeliveryRemarks != "" {
		pdf.Ln(4)
		pdf.SetFont("Arial", "I", 10)
		pdf.MultiCell(0, 6, "Remarks: "+order.DeliveryRemarks, "", "L", false)
	}

	pdf.Ln(14)
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(70, 8, "Received by (sign & date):", "", 0, "L", false, 0, "")
	pdf.CellFormat(80, 8, "", "B", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render delivery note: %w", err)
	}
	return buf.Bytes(), nil
}
