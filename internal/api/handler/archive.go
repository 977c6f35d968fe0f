package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davey/lotvoice/internal/domain"
	"github.com/davey/lotvoice/internal/logger"
	"github.com/davey/lotvoice/internal/service"
)

// ArchiveHandler handles the zip download endpoint.
type ArchiveHandler struct {
	archiver *service.Archiver
}

// NewArchiveHandler creates a new archive handler.
func NewArchiveHandler(archiver *service.Archiver) *ArchiveHandler {
	return &ArchiveHandler{
		archiver: archiver,
	}
}

// ArchiveRequest is the POST /zip request body. Each entry must be a file URL
// previously returned by /generate.
type ArchiveRequest struct {
	Files []string `json:"files"`
}

// Zip handles POST /zip. Validation happens before headers are written; once
// streaming starts, errors can only terminate the connection.
func (h *ArchiveHandler) Zip(c *gin.Context) {
	var req ArchiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	if err := h.archiver.Validate(req.Files); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":  "Archive failed.",
			"detail": err.Error(),
		})
		return
	}

	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition", `attachment; filename="voiceovers.zip"`)
	c.Status(http.StatusOK)

	if err := h.archiver.Stream(c.Request.Context(), req.Files, c.Writer); err != nil {
		// The transport is committed to binary output; log and drop the
		// connection instead of writing a JSON body into the stream.
		logger.CtxError(c.Request.Context(), "Archive stream aborted: %v", err)
		c.Abort()
	}
}
