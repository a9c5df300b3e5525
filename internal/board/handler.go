package board

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sharath018/property-board-backend/internal/auth"
	"github.com/sharath018/property-board-backend/internal/media"
)

type Handler struct {
	service *Service
	images  media.Store
}

func NewHandler(s *Service, images media.Store) *Handler {
	return &Handler{service: s, images: images}
}

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

func (h *Handler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var in CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.service.Create(in, user.ID, c.ClientIP())
	if err != nil {
		if errors.Is(err, ErrMissingTarget) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create board"})
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *Handler) AddProperty(c *gin.Context) {
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}
	propertyID, ok := pathID(c, "propertyId")
	if !ok {
		return
	}

	b, err := h.service.AddProperty(boardID, propertyID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add property to board"})
		return
	}
	c.JSON(http.StatusOK, b)
}

// Finalize flips the board and distributes its properties to the
// target's ledger. The per-property outcomes ride along in the body.
func (h *Handler) Finalize(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	b, outcomes, err := h.service.Finalize(boardID, user.ID, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrMissingTarget):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to finalize board"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"board": b, "results": outcomes})
}

func (h *Handler) Share(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	b, outcomes, err := h.service.Share(boardID, user.ID, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrMissingTarget):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to share board"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"board": b, "results": outcomes})
}

// RecordView marks a board property as seen by the calling tenant.
func (h *Handler) RecordView(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}
	propertyID, ok := pathID(c, "propertyId")
	if !ok {
		return
	}

	n, err := h.service.RecordView(boardID, propertyID, user.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record view"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}

func (h *Handler) RecordShortlist(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}
	propertyID, ok := pathID(c, "propertyId")
	if !ok {
		return
	}

	n, err := h.service.RecordShortlist(boardID, propertyID, user.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to shortlist property"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}

func (h *Handler) GetByID(c *gin.Context) {
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	b, err := h.service.GetByID(boardID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch board"})
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *Handler) ListMine(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	boards, err := h.service.GetForAgent(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch boards"})
		return
	}
	c.JSON(http.StatusOK, boards)
}

// Shortlisted lists the calling tenant's shortlisted properties.
func (h *Handler) Shortlisted(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	records, err := h.service.Shortlisted(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch shortlist"})
		return
	}
	c.JSON(http.StatusOK, records)
}

// ListImages returns the image files behind the board's properties.
func (h *Handler) ListImages(c *gin.Context) {
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	b, err := h.service.GetByID(boardID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch board"})
		return
	}

	files, err := h.images.ListBoardImages(c.Request.Context(), b.ID, propertyIDs(b))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list images"})
		return
	}
	c.JSON(http.StatusOK, files)
}

type copyImagesReq struct {
	Files []media.CopySpec `json:"files" binding:"required"`
}

// CopyImages copies selected property images into the board's own
// folder, renaming them along the way.
func (h *Handler) CopyImages(c *gin.Context) {
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if _, err := h.service.GetByID(boardID); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch board"})
		return
	}

	var req copyImagesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	copied, err := h.images.CopyAndRename(c.Request.Context(), boardID, req.Files)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, copied)
}
