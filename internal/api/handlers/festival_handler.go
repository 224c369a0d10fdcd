// backend-go/internal/api/handlers/festival_handler.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dealersight/wheeler-intel/backend-go/internal/service"
)

type FestivalHandler struct {
	advisor *service.AdvisorService
}

func NewFestivalHandler(advisor *service.AdvisorService) *FestivalHandler {
	return &FestivalHandler{advisor: advisor}
}

func (h *FestivalHandler) Upcoming(c *gin.Context) {
	daysAhead, ok := queryIntInRange(c, "days_ahead", 90, 7, 365)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.advisor.UpcomingFestivals(time.Now().UTC(), daysAhead))
}

// Calendar returns the full curated festival table across all years.
func (h *FestivalHandler) Calendar(c *gin.Context) {
	c.JSON(http.StatusOK, h.advisor.FestivalCalendar())
}

// Impact returns the year-by-year history of one festival. Unknown names
// yield an empty list.
func (h *FestivalHandler) Impact(c *gin.Context) {
	c.JSON(http.StatusOK, h.advisor.FestivalImpact(c.Param("festival_name")))
}

func (h *FestivalHandler) MarriageSeason(c *gin.Context) {
	c.JSON(http.StatusOK, h.advisor.MarriageSeason(time.Now().UTC()))
}
