package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/model"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/server/http/dto"
)

// OrderHandler manages order lifecycle endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), req.OrderNumber, req.CustomerDealer, req.CustomerClient, req.SerialNumbers)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(order))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		response = append(response, toOrderResponse(&orders[i]))
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/orders/:number.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), c.Param("number"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

// AttachInvoice handles POST /api/orders/:number/invoice. The multipart
// form carries the PDF under "file" plus doc_number, doc_date and remarks.
func (h *OrderHandler) AttachInvoice(c *gin.Context) {
	payload, filename, ok := readUpload(c)
	if !ok {
		return
	}

	order, err := h.facade.AttachInvoice(c.Request.Context(), c.Param("number"), payload, filename, docFieldsFromForm(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

// IssueDelivery handles POST /api/orders/:number/delivery.
func (h *OrderHandler) IssueDelivery(c *gin.Context) {
	payload, filename, ok := readUpload(c)
	if !ok {
		return
	}

	order, err := h.facade.IssueDelivery(c.Request.Context(), c.Param("number"), payload, filename, docFieldsFromForm(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

// ConfirmDelivery handles POST /api/orders/:number/signed.
func (h *OrderHandler) ConfirmDelivery(c *gin.Context) {
	payload, filename, ok := readUpload(c)
	if !ok {
		return
	}

	order, err := h.facade.ConfirmDelivery(c.Request.Context(), c.Param("number"), payload, filename)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

// ReplaceFile handles PUT /api/orders/:number/files/:type.
func (h *OrderHandler) ReplaceFile(c *gin.Context) {
	fileType := model.FileType(c.Param("type"))
	if !fileType.Known() {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "unknown file type"})
		return
	}

	payload, filename, ok := readUpload(c)
	if !ok {
		return
	}

	order, err := h.facade.ReplaceOrderFile(c.Request.Context(), c.Param("number"), fileType, payload, filename, docFieldsFromForm(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

// DeliveryNote handles GET /api/orders/:number/delivery-note. It streams
// the printable delivery order PDF.
func (h *OrderHandler) DeliveryNote(c *gin.Context) {
	pdf, err := h.facade.DeliveryNote(c.Request.Context(), c.Param("number"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="delivery-order.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
