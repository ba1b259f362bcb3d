package handlers

import (
	"net/http"
	"strconv"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// parseCriteria reads the dashboard selection from the query string.
func parseCriteria(c *gin.Context) (domain.Criteria, error) {
	return domain.ParseCriteria(c.Query)
}

func parsePositiveIntWithDefault(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
		return parsed
	}
	return fallback
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func internalError(c *gin.Context, message string, err error) {
	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(message)
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}
