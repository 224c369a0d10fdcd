// backend-go/internal/api/handlers/dataset_handler.go
package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dealersight/wheeler-intel/backend-go/internal/dataset"
	"github.com/dealersight/wheeler-intel/backend-go/internal/service"
)

// DatasetHandler covers the sales-history upload surface.
type DatasetHandler struct {
	dataset *service.DatasetService
}

func NewDatasetHandler(svc *service.DatasetService) *DatasetHandler {
	return &DatasetHandler{dataset: svc}
}

// Upload ingests a CSV or Excel sales export and replaces the working
// dataset with it.
func (h *DatasetHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided."})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided."})
		return
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save data to the database."})
		return
	}
	if len(content) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Uploaded file is empty."})
		return
	}

	result, err := h.dataset.ImportSales(c.Request.Context(), file.Filename, content, time.Now().UTC())
	if err != nil {
		if dataset.IsInvalidFile(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save data to the database."})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Status reports how many records are loaded and where they came from.
func (h *DatasetHandler) Status(c *gin.Context) {
	status, err := h.dataset.Status(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to fetch dataset status",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, status)
}
