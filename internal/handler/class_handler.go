package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tatamihq/tatami-backend/internal/response"
	"github.com/tatamihq/tatami-backend/internal/service"
)

// ClassHandler exposes read-only schedule views. Class definitions are
// edited by the admin layer, never through this service.
type ClassHandler struct {
	scheduleService *service.ScheduleService
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(scheduleService *service.ScheduleService) *ClassHandler {
	return &ClassHandler{scheduleService: scheduleService}
}

// ListClasses godoc
// GET /api/v1/classes
// Lists all class definitions.
func (h *ClassHandler) ListClasses(c *gin.Context) {
	classes, err := h.scheduleService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"classes": classes})
}

// TodayClasses godoc
// GET /api/v1/classes/today
// Lists the classes scheduled on today's weekday.
func (h *ClassHandler) TodayClasses(c *gin.Context) {
	classes, err := h.scheduleService.ListForDate(c.Request.Context(), time.Now())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"classes": classes})
}

// GetClass godoc
// GET /api/v1/classes/:id
// Returns a single class definition.
func (h *ClassHandler) GetClass(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	class, err := h.scheduleService.Lookup(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"class": class})
}
