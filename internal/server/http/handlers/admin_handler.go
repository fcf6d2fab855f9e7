package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/model"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/server/http/dto"
)

// AdminHandler manages the destructive rollback endpoints. The router
// mounts these behind the admin gate.
type AdminHandler struct {
	facade AdminFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// DeleteOrder handles DELETE /api/orders/:number. Item statuses are left
// as the transaction log recorded them; only the order, its attachments
// and its movement events go away.
func (h *AdminHandler) DeleteOrder(c *gin.Context) {
	summary, err := h.facade.DeleteOrder(c.Request.Context(), c.Param("number"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DeletionSummaryResponse{
		AttachmentsRemoved:  summary.AttachmentsRemoved,
		TransactionsRemoved: summary.TransactionsRemoved,
	})
}

// DeleteAttachment handles DELETE /api/orders/:number/files/:type. It
// removes every version of the group and reverts the matching order track.
func (h *AdminHandler) DeleteAttachment(c *gin.Context) {
	fileType := model.FileType(c.Param("type"))
	if !fileType.Known() {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "unknown file type"})
		return
	}

	if err := h.facade.DeleteAttachment(c.Request.Context(), c.Param("number"), fileType); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteDemo handles DELETE /api/demos/:id. Loaned items return to stock
// through fresh check-in events before the record goes away.
func (h *AdminHandler) DeleteDemo(c *gin.Context) {
	if err := h.facade.DeleteDemoRecord(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
