package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/domain/model"
	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/server/http/dto"
)

// ExtractionHandler prefills document fields from an uploaded PDF.
type ExtractionHandler struct {
	facade ExtractionFacade
}

// NewExtractionHandler constructs ExtractionHandler.
func NewExtractionHandler(facade ExtractionFacade) *ExtractionHandler {
	return &ExtractionHandler{facade: facade}
}

// Extract handles POST /api/extract. The form carries the PDF under "file"
// and the document kind under "file_type".
func (h *ExtractionHandler) Extract(c *gin.Context) {
	fileType := model.FileType(c.PostForm("file_type"))

	payload, _, ok := readUpload(c)
	if !ok {
		return
	}

	details, err := h.facade.ExtractDetails(c.Request.Context(), payload, fileType)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ExtractionResponse{
		Success:              details.Success,
		Confidence:           details.Confidence,
		DocNumber:            details.DocNumber,
		DocDate:              details.DocDate,
		RequiresConfirmation: details.RequiresConfirmation,
	})
}
