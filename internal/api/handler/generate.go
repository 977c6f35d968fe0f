package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davey/lotvoice/internal/domain"
	"github.com/davey/lotvoice/internal/service"
)

// GenerateHandler handles the voiceover generation endpoint.
type GenerateHandler struct {
	generator *service.Generator
}

// NewGenerateHandler creates a new generate handler.
func NewGenerateHandler(generator *service.Generator) *GenerateHandler {
	return &GenerateHandler{
		generator: generator,
	}
}

// GenerateRequest is the POST /generate request body.
type GenerateRequest struct {
	Specs domain.Specs `json:"specs"`
}

// Generate handles POST /generate.
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	result, err := h.generator.Generate(c.Request.Context(), &req.Specs)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": verr.Message,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":  "Generation failed.",
			"detail": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
