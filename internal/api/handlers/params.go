// backend-go/internal/api/handlers/params.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// queryIntInRange reads an integer query parameter, falling back to a
// default when absent. Values outside [min, max] or non-numeric input
// abort the request with a 400; callers must return when ok is false.
func queryIntInRange(c *gin.Context, name string, fallback, min, max int) (value int, ok bool) {
	raw := strings.TrimSpace(c.DefaultQuery(name, strconv.Itoa(fallback)))
	v, err := strconv.Atoi(raw)
	if err != nil || v < min || v > max {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("%s must be an integer between %d and %d", name, min, max),
		})
		return 0, false
	}
	return v, true
}

// queryBool reads a boolean query parameter with a default. Invalid input
// aborts with a 400; callers must return when ok is false.
func queryBool(c *gin.Context, name string, fallback bool) (value bool, ok bool) {
	raw := strings.TrimSpace(c.DefaultQuery(name, strconv.FormatBool(fallback)))
	v, err := strconv.ParseBool(strings.ToLower(raw))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("%s must be true or false", name),
		})
		return false, false
	}
	return v, true
}
