package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/model"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/server/http/dto"
)

// ItemHandler manages warehouse item endpoints.
type ItemHandler struct {
	facade InventoryFacade
}

// NewItemHandler constructs ItemHandler.
func NewItemHandler(facade InventoryFacade) *ItemHandler {
	return &ItemHandler{facade: facade}
}

// CheckIn handles POST /api/items/checkin.
func (h *ItemHandler) CheckIn(c *gin.Context) {
	var req dto.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	item := model.InventoryItem{
		SerialNumber:      req.SerialNumber,
		EquipmentCategory: req.EquipmentCategory,
		Model:             req.Model,
		Size:              req.Size,
		Batch:             req.Batch,
	}
	saved, event, err := h.facade.CheckInItem(c.Request.Context(), item, req.Location)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"item": dto.ItemResponse{
			SerialNumber:      saved.SerialNumber,
			EquipmentCategory: saved.EquipmentCategory,
			Model:             saved.Model,
			Size:              saved.Size,
			Batch:             saved.Batch,
		},
		"transaction": toTransactionResponse(*event),
	})
}

// CheckOut handles POST /api/items/checkout.
func (h *ItemHandler) CheckOut(c *gin.Context) {
	var req dto.CheckOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	event, err := h.facade.CheckOutItem(c.Request.Context(), req.SerialNumber, model.ItemStatus(req.Status), req.Location, req.Reference)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toTransactionResponse(*event))
}

// List handles GET /api/items.
func (h *ItemHandler) List(c *gin.Context) {
	items, err := h.facade.Items(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	response := make([]dto.ItemResponse, 0, len(items))
	for _, overview := range items {
		entry := dto.ItemResponse{
			SerialNumber:      overview.Item.SerialNumber,
			EquipmentCategory: overview.Item.EquipmentCategory,
			Model:             overview.Item.Model,
			Size:              overview.Item.Size,
			Batch:             overview.Item.Batch,
		}
		if overview.State != nil {
			state := toStateResponse(*overview.State)
			entry.State = &state
		}
		response = append(response, entry)
	}

	c.JSON(http.StatusOK, response)
}

// History handles GET /api/items/:serial/history.
func (h *ItemHandler) History(c *gin.Context) {
	events, err := h.facade.ItemHistory(c.Request.Context(), c.Param("serial"))
	if err != nil {
		writeError(c, err)
		return
	}

	response := make([]dto.TransactionResponse, 0, len(events))
	for _, ev := range events {
		response = append(response, toTransactionResponse(ev))
	}

	c.JSON(http.StatusOK, response)
}

// States handles GET /api/items/states?serial=a&serial=b.
func (h *ItemHandler) States(c *gin.Context) {
	serials := c.QueryArray("serial")
	states, err := h.facade.ItemStates(c.Request.Context(), serials)
	if err != nil {
		writeError(c, err)
		return
	}

	response := make(map[string]dto.ItemStateResponse, len(states))
	for serial, state := range states {
		response[serial] = toStateResponse(state)
	}

	c.JSON(http.StatusOK, response)
}
