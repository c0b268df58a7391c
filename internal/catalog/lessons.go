package catalog

import (
	"errors"
	"net/http"

	"github.com/avelichko/study-backend/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the lessons and exercises collections. All routes sit
// behind the auth middleware; the handlers themselves do not touch the
// authenticated identity.
type Handler struct {
	store store.Store
	log   *zap.Logger
}

func NewHandler(s store.Store, log *zap.Logger) *Handler {
	return &Handler{store: s, log: log}
}

func (h *Handler) ListLessons(c *gin.Context) {
	lessons, err := h.store.ListLessons(c.Request.Context())
	if err != nil {
		h.internalError(c, "list lessons", err)
		return
	}
	c.JSON(http.StatusOK, lessons)
}

func (h *Handler) CreateLesson(c *gin.Context) {
	var lesson store.Lesson
	if err := c.ShouldBindJSON(&lesson); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	created, err := h.store.CreateLesson(c.Request.Context(), lesson)
	if err != nil {
		h.internalError(c, "create lesson", err)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (h *Handler) UpdateLesson(c *gin.Context) {
	var lesson store.Lesson
	if err := c.ShouldBindJSON(&lesson); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	updated, err := h.store.UpdateLesson(c.Request.Context(), c.Param("id"), lesson)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		h.internalError(c, "update lesson", err)
		return
	}
	// Unknown id yields a null body, not an error.
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteLesson(c *gin.Context) {
	deleted, err := h.store.DeleteLesson(c.Request.Context(), c.Param("id"))
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		h.internalError(c, "delete lesson", err)
		return
	}
	c.JSON(http.StatusOK, deleted)
}

func (h *Handler) internalError(c *gin.Context, op string, err error) {
	h.log.Error("catalog: "+op, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
}
