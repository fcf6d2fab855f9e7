package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jayveeong05/lyfe-inventory-management-sub000/internal/server/http/dto"
)

// DemoHandler manages demo loan endpoints.
type DemoHandler struct {
	facade DemoFacade
}

// NewDemoHandler constructs DemoHandler.
func NewDemoHandler(facade DemoFacade) *DemoHandler {
	return &DemoHandler{facade: facade}
}

// Create handles POST /api/demos.
func (h *DemoHandler) Create(c *gin.Context) {
	var req dto.CreateDemoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	demo, err := h.facade.CreateDemo(c.Request.Context(), req.CustomerDealer, req.CustomerClient, req.SerialNumbers)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toDemoResponse(demo))
}

// List handles GET /api/demos.
func (h *DemoHandler) List(c *gin.Context) {
	demos, err := h.facade.Demos(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	response := make([]dto.DemoResponse, 0, len(demos))
	for i := range demos {
		response = append(response, toDemoResponse(&demos[i]))
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/demos/:id.
func (h *DemoHandler) Get(c *gin.Context) {
	demo, err := h.facade.Demo(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toDemoResponse(demo))
}
