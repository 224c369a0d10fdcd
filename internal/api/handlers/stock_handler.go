// backend-go/internal/api/handlers/stock_handler.go
package handlers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dealersight/wheeler-intel/backend-go/internal/dataset"
	"github.com/dealersight/wheeler-intel/backend-go/internal/service"
)

// StockHandler covers dealer inventory uploads and lookups.
type StockHandler struct {
	stock *service.StockService
}

func NewStockHandler(svc *service.StockService) *StockHandler {
	return &StockHandler{stock: svc}
}

// Template serves a downloadable CSV skeleton with example rows.
func (h *StockHandler) Template(c *gin.Context) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", service.StockTemplateFilename))
	c.Data(http.StatusOK, "text/csv", h.stock.Template())
}

// Upload ingests a stock inventory file. replace_existing controls whether
// the upload replaces the current inventory or appends to it.
func (h *StockHandler) Upload(c *gin.Context) {
	replaceExisting, ok := queryBool(c, "replace_existing", true)
	if !ok {
		return
	}

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
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read uploaded file"})
		return
	}
	if len(content) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Uploaded file is empty."})
		return
	}

	result, err := h.stock.Upload(c.Request.Context(), file.Filename, content, replaceExisting, time.Now().UTC())
	if err != nil {
		if dataset.IsInvalidFile(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to store stock inventory",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Inventory lists every stock row currently on file.
func (h *StockHandler) Inventory(c *gin.Context) {
	items, err := h.stock.Inventory(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to fetch stock inventory",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, items)
}

// Summary aggregates the inventory into headline counts.
func (h *StockHandler) Summary(c *gin.Context) {
	summary, err := h.stock.Summary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to fetch stock summary",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Clear deletes all uploaded stock rows.
func (h *StockHandler) Clear(c *gin.Context) {
	deleted, err := h.stock.Clear(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to clear stock inventory",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":       "cleared",
		"rows_deleted": deleted,
	})
}
