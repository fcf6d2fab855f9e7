package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/errors"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/model"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/server/http/dto"
)

// writeError maps domain errors onto HTTP statuses. The failed step of a
// multi-step write sequence, when present, travels in the body so clients
// can tell a rejected file from a half-applied write.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domainErrors.ErrValidation):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domainErrors.ErrPrecondition), errors.Is(err, domainErrors.ErrConflict), errors.Is(err, domainErrors.ErrAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, domainErrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domainErrors.ErrTimeout):
		status = http.StatusGatewayTimeout
	case errors.Is(err, domainErrors.ErrStorage), errors.Is(err, domainErrors.ErrPersistence):
		status = http.StatusBadGateway
	case errors.Is(err, domainErrors.ErrUnavailable):
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, dto.ErrorResponse{
		Error: err.Error(),
		Step:  domainErrors.FailedStep(err),
	})
}

// readUpload reads the "file" part of a multipart form and returns its
// bytes together with the original filename.
func readUpload(c *gin.Context) ([]byte, string, bool) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "missing file"})
		return nil, "", false
	}
	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "unreadable file"})
		return nil, "", false
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "unreadable file"})
		return nil, "", false
	}
	return payload, header.Filename, true
}

// docFieldsFromForm collects the optional document fields accompanying an
// upload.
func docFieldsFromForm(c *gin.Context) model.DocFields {
	return model.DocFields{
		Number:  c.PostForm("doc_number"),
		Date:    c.PostForm("doc_date"),
		Remarks: c.PostForm("remarks"),
	}
}

func toOrderItemResponse(item model.OrderItem) dto.OrderItemResponse {
	return dto.OrderItemResponse{
		SerialNumber:      item.SerialNumber,
		EquipmentCategory: item.EquipmentCategory,
		Model:             item.Model,
		Size:              item.Size,
		Batch:             item.Batch,
		Location:          item.Location,
	}
}

func toOrderResponse(order *model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, toOrderItemResponse(item))
	}
	return dto.OrderResponse{
		OrderNumber:     order.OrderNumber,
		CustomerDealer:  order.CustomerDealer,
		CustomerClient:  order.CustomerClient,
		Items:           items,
		InvoiceStatus:   string(order.InvoiceStatus),
		DeliveryStatus:  string(order.DeliveryStatus),
		InvoiceNumber:   order.InvoiceNumber,
		InvoiceDate:     order.InvoiceDate,
		InvoiceRemarks:  order.InvoiceRemarks,
		DeliveryNumber:  order.DeliveryNumber,
		DeliveryDate:    order.DeliveryDate,
		DeliveryRemarks: order.DeliveryRemarks,
		CreatedDate:     order.CreatedDate,
	}
}

func toAttachmentResponse(att model.Attachment) dto.AttachmentResponse {
	return dto.AttachmentResponse{
		FileID:           att.FileID,
		OrderNumber:      att.OrderNumber,
		FileType:         string(att.FileType),
		Version:          att.Version,
		IsActive:         att.IsActive,
		OriginalFilename: att.OriginalFilename,
		FileSize:         att.FileSize,
		UploadDate:       att.UploadDate,
	}
}

func toStateResponse(state model.ItemState) dto.ItemStateResponse {
	return dto.ItemStateResponse{
		SerialNumber: state.SerialNumber,
		Status:       string(state.Status),
		Location:     state.Location,
		LastType:     string(state.LastType),
		LastActivity: state.LastActivity,
	}
}

func toTransactionResponse(ev model.TransactionEvent) dto.TransactionResponse {
	return dto.TransactionResponse{
		TransactionID: ev.TransactionID,
		SerialNumber:  ev.SerialNumber,
		Type:          string(ev.Type),
		Status:        string(ev.Status),
		Location:      ev.Location,
		Reference:     ev.Reference,
		UploadedAt:    ev.UploadedAt,
	}
}

func toDemoResponse(demo *model.DemoRecord) dto.DemoResponse {
	items := make([]dto.OrderItemResponse, 0, len(demo.Items))
	for _, item := range demo.Items {
		items = append(items, toOrderItemResponse(item))
	}
	return dto.DemoResponse{
		DemoID:         demo.DemoID,
		CustomerDealer: demo.CustomerDealer,
		CustomerClient: demo.CustomerClient,
		Items:          items,
		CreatedDate:    demo.CreatedDate,
	}
}
