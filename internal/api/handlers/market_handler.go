// backend-go/internal/api/handlers/market_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dealersight/wheeler-intel/backend-go/internal/market"
)

// MarketHandler serves the curated market-intelligence fixtures. There is
// no service behind it; the data is compiled in.
type MarketHandler struct{}

func NewMarketHandler() *MarketHandler {
	return &MarketHandler{}
}

func (h *MarketHandler) Trends(c *gin.Context) {
	c.JSON(http.StatusOK, market.Trends())
}

func (h *MarketHandler) CompetitorNews(c *gin.Context) {
	c.JSON(http.StatusOK, market.CompetitorNews())
}

func (h *MarketHandler) EVTrends(c *gin.Context) {
	c.JSON(http.StatusOK, market.EVTrends())
}

func (h *MarketHandler) Fuel(c *gin.Context) {
	c.JSON(http.StatusOK, market.FuelUpdates())
}

func (h *MarketHandler) Policy(c *gin.Context) {
	c.JSON(http.StatusOK, market.PolicyUpdates())
}

func (h *MarketHandler) All(c *gin.Context) {
	c.JSON(http.StatusOK, market.All())
}
