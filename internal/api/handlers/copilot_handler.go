// backend-go/internal/api/handlers/copilot_handler.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dealersight/wheeler-intel/backend-go/internal/domain"
	"github.com/dealersight/wheeler-intel/backend-go/internal/service"
)

type CopilotHandler struct {
	advisor *service.AdvisorService
}

func NewCopilotHandler(advisor *service.AdvisorService) *CopilotHandler {
	return &CopilotHandler{advisor: advisor}
}

// Chat answers one free-text question against the live dataset.
func (h *CopilotHandler) Chat(c *gin.Context) {
	var req domain.CopilotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	resp, err := h.advisor.Chat(c.Request.Context(), req.Message, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to answer question", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CopilotHandler) Suggestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"questions": h.advisor.Suggestions()})
}
