package property

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sharath018/property-board-backend/internal/auth"
	"github.com/sharath018/property-board-backend/utils"
)

type Handler struct{ service *Service }

func NewHandler(s *Service) *Handler { return &Handler{s} }

const listCacheKey = "properties:all"

func currentUser(c *gin.Context) (auth.User, bool) {
	userVal, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return auth.User{}, false
	}
	user, ok := userVal.(auth.User)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return auth.User{}, false
	}
	return user, true
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// Submit records an agent submission: a new listing or a new detail
// version on an existing one.
func (h *Handler) Submit(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var in SubmitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listing, detail, err := h.service.Submit(in, user.ID, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateSubmission):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, ErrMissingLocation), errors.Is(err, ErrMissingAgent):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit property"})
		}
		return
	}

	utils.InvalidateCache(listCacheKey)
	c.JSON(http.StatusCreated, gin.H{"property": listing, "detail": detail})
}

// Verify records a field agent verification against the catalog.
func (h *Handler) Verify(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var in SubmitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listing, detail, err := h.service.Verify(in, user.ID, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingLocation), errors.Is(err, ErrMissingAgent):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to verify property"})
		}
		return
	}

	utils.InvalidateCache(listCacheKey)
	c.JSON(http.StatusOK, gin.H{"property": listing, "detail": detail})
}

type assignReq struct {
	FieldAgentID uint `json:"field_agent_id" binding:"required"`
}

func (h *Handler) Assign(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	propertyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req assignReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assignment, err := h.service.Assign(propertyID, req.FieldAgentID, user.ID, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrAlreadyAssigned):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to assign property"})
		}
		return
	}

	utils.InvalidateCache(listCacheKey)
	c.JSON(http.StatusCreated, assignment)
}

type closeReq struct {
	Status  string                 `json:"status" binding:"required"`
	Details map[string]interface{} `json:"details"`
}

func (h *Handler) Close(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	propertyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req closeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch req.Status {
	case CloseStatusRented, CloseStatusSold, CloseStatusDelisted:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid close status"})
		return
	}

	updated, err := h.service.CloseListing(propertyID, req.Status, req.Details, user.ID, c.ClientIP())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to close listing"})
		return
	}

	utils.InvalidateCache(listCacheKey)
	c.JSON(http.StatusOK, updated)
}

// List returns the full catalog, served from Redis when warm.
func (h *Handler) List(c *gin.Context) {
	if cached, err := utils.GetCached(listCacheKey); err == nil && cached != "" {
		var listings []Property
		if json.Unmarshal([]byte(cached), &listings) == nil {
			c.JSON(http.StatusOK, listings)
			return
		}
	}

	listings, err := h.service.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch properties"})
		return
	}

	if raw, err := json.Marshal(listings); err == nil {
		if err := utils.SetCached(listCacheKey, string(raw), 5*time.Minute); err != nil {
			log.Printf("failed to cache property list: %v", err)
		}
	}
	c.JSON(http.StatusOK, listings)
}

func (h *Handler) GetByID(c *gin.Context) {
	propertyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	listing, err := h.service.GetByID(propertyID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch property"})
		return
	}
	c.JSON(http.StatusOK, listing)
}

// PendingAssignments lists the calling field agent's unverified work.
func (h *Handler) PendingAssignments(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	assignments, err := h.service.PendingForFieldAgent(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch assignments"})
		return
	}
	c.JSON(http.StatusOK, assignments)
}

// Dashboard returns pending/verified counts for the calling field agent.
func (h *Handler) Dashboard(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	pending, verified, err := h.service.DashboardCounts(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch dashboard"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending": pending, "verified": verified})
}
