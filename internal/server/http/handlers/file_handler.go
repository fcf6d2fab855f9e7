package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/server/http/dto"
)

// FileHandler manages attachment version endpoints.
type FileHandler struct {
	facade FileFacade
}

// NewFileHandler constructs FileHandler.
func NewFileHandler(facade FileFacade) *FileHandler {
	return &FileHandler{facade: facade}
}

// List handles GET /api/orders/:number/files. It returns every stored
// version, active or not.
func (h *FileHandler) List(c *gin.Context) {
	files, err := h.facade.OrderFiles(c.Request.Context(), c.Param("number"))
	if err != nil {
		writeError(c, err)
		return
	}

	response := make([]dto.AttachmentResponse, 0, len(files))
	for _, att := range files {
		response = append(response, toAttachmentResponse(att))
	}

	c.JSON(http.StatusOK, response)
}

// Active handles GET /api/orders/:number/files/active. The response maps
// file type to its single active version.
func (h *FileHandler) Active(c *gin.Context) {
	active, err := h.facade.ActiveFiles(c.Request.Context(), c.Param("number"))
	if err != nil {
		writeError(c, err)
		return
	}

	response := make(map[string]dto.AttachmentResponse, len(active))
	for fileType, att := range active {
		response[string(fileType)] = toAttachmentResponse(att)
	}

	c.JSON(http.StatusOK, response)
}

// Download handles GET /api/files/:id.
func (h *FileHandler) Download(c *gin.Context) {
	payload, att, err := h.facade.DownloadFile(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+att.OriginalFilename+`"`)
	c.Header("Content-Length", strconv.Itoa(len(payload)))
	c.Data(http.StatusOK, "application/pdf", payload)
}

// Restore handles POST /api/files/:id/restore. It makes the named version
// active and deactivates its siblings.
func (h *FileHandler) Restore(c *gin.Context) {
	att, err := h.facade.RestoreFile(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAttachmentResponse(*att))
}
