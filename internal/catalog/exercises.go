package catalog

import (
	"errors"
	"net/http"

	"github.com/avelichko/study-backend/internal/store"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListExercises(c *gin.Context) {
	exercises, err := h.store.ListExercises(c.Request.Context())
	if err != nil {
		h.internalError(c, "list exercises", err)
		return
	}
	c.JSON(http.StatusOK, exercises)
}

func (h *Handler) CreateExercise(c *gin.Context) {
	var exercise store.Exercise
	if err := c.ShouldBindJSON(&exercise); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	created, err := h.store.CreateExercise(c.Request.Context(), exercise)
	if err != nil {
		h.internalError(c, "create exercise", err)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (h *Handler) UpdateExercise(c *gin.Context) {
	var exercise store.Exercise
	if err := c.ShouldBindJSON(&exercise); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	updated, err := h.store.UpdateExercise(c.Request.Context(), c.Param("id"), exercise)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		h.internalError(c, "update exercise", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteExercise(c *gin.Context) {
	deleted, err := h.store.DeleteExercise(c.Request.Context(), c.Param("id"))
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		h.internalError(c, "delete exercise", err)
		return
	}
	c.JSON(http.StatusOK, deleted)
}
