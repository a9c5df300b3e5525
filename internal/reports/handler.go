package reports

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sharath018/property-board-backend/internal/auth"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

// ExportReport handles GET /reports/:type?format=csv|excel|pdf
func (h *Handler) ExportReport(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	user, ok := userVal.(auth.User)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reportType := c.Param("type")
	format := c.DefaultQuery("format", FormatCSV)

	filter := ReportFilter{}

	// Agents see their own boards' activity by default.
	if user.Role.RoleName == auth.RolePropertyAgent {
		agentID := user.ID
		filter.AgentID = &agentID
	}

	if tenantStr := c.Query("tenant_id"); tenantStr != "" {
		if tenantID, err := strconv.ParseUint(tenantStr, 10, 32); err == nil {
			tid := uint(tenantID)
			filter.TenantID = &tid
		}
	}

	if fromStr := c.Query("from_date"); fromStr != "" {
		if from, err := time.Parse("2006-01-02", fromStr); err == nil {
			filter.FromDate = &from
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from_date format. Use YYYY-MM-DD"})
			return
		}
	}
	if toStr := c.Query("to_date"); toStr != "" {
		if to, err := time.Parse("2006-01-02", toStr); err == nil {
			endOfDay := to.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
			filter.ToDate = &endOfDay
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to_date format. Use YYYY-MM-DD"})
			return
		}
	}

	data, filename, mimeType, err := h.service.ExportReport(c.Request.Context(), reportType, format, filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, mimeType, data)
}
