package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tatamihq/tatami-backend/internal/middleware"
	"github.com/tatamihq/tatami-backend/internal/response"
	"github.com/tatamihq/tatami-backend/internal/service"
	"github.com/tatamihq/tatami-backend/internal/validator"
)

// RosterHandler serves class rosters and the check-in/check-out commands.
type RosterHandler struct {
	rosterService   *service.RosterService
	scheduleService *service.ScheduleService
}

// NewRosterHandler creates a new RosterHandler.
func NewRosterHandler(rosterService *service.RosterService, scheduleService *service.ScheduleService) *RosterHandler {
	return &RosterHandler{rosterService: rosterService, scheduleService: scheduleService}
}

// parseClassDate parses a YYYY-MM-DD path or query value as a UTC civil date.
func parseClassDate(raw string) (time.Time, error) {
	return time.ParseInLocation(service.ClassDateLayout, raw, time.UTC)
}

// GetRoster godoc
// GET /api/v1/classes/:id/roster/:date
// Returns the merged roster for a class session, checked-in members first.
// The scheduled flag tells the client whether new check-ins should be
// offered for this date.
func (h *RosterHandler) GetRoster(c *gin.Context) {
	classID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	date, err := parseClassDate(c.Param("date"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidDate)
		return
	}

	entries, err := h.rosterService.Roster(c.Request.Context(), classID, date)
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	scheduled, err := h.scheduleService.IsScheduledOn(c.Request.Context(), classID, date)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"roster":    entries,
		"scheduled": scheduled,
	})
}

// CheckInRequest is the payload for checking a member in to a session.
// Force requests a backfill on an off-schedule date; it is only honored
// for admins.
type CheckInRequest struct {
	MemberID int  `json:"member_id" binding:"required"`
	Force    bool `json:"force"`
}

// CheckIn godoc
// POST /api/v1/classes/:id/roster/:date/check-ins
// Records a member's attendance for the session.
func (h *RosterHandler) CheckIn(c *gin.Context) {
	classID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	date, err := parseClassDate(c.Param("date"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidDate)
		return
	}

	var req CheckInRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	force := req.Force && claims.IsAdmin()

	record, err := h.rosterService.CheckIn(c.Request.Context(), classID, date, req.MemberID, claims.UserID, force)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClassNotFound), errors.Is(err, service.ErrMemberNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrNotScheduled):
			response.Fail(c, http.StatusConflict, response.ErrNotScheduled)
		case errors.Is(err, service.ErrAlreadyCheckedIn):
			// Expected under concurrent taps on the same member; the client
			// shows a friendly notice and refreshes the roster.
			response.Fail(c, http.StatusConflict, response.ErrAlreadyCheckedIn)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"attendance": record})
}

// CheckOut godoc
// DELETE /api/v1/attendances/:id
// Removes an attendance record. Idempotent: a record that is already gone
// still returns success.
func (h *RosterHandler) CheckOut(c *gin.Context) {
	recordID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	claims := middleware.GetClaims(c)

	if err := h.rosterService.CheckOut(c.Request.Context(), recordID, claims.UserID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "checked out"})
}
