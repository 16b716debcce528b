package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tatamihq/tatami-backend/internal/response"
	"github.com/tatamihq/tatami-backend/internal/service"
)

// MemberHandler exposes member rank detail, promotion history, and
// attendance counts for graders.
type MemberHandler struct {
	promotionService *service.PromotionService
	rosterService    *service.RosterService
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(promotionService *service.PromotionService, rosterService *service.RosterService) *MemberHandler {
	return &MemberHandler{promotionService: promotionService, rosterService: rosterService}
}

// GetMember godoc
// GET /api/v1/members/:id
// Returns the member profile with its cached current rank.
func (h *MemberHandler) GetMember(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	member, err := h.promotionService.Member(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"member": member, "rank": member.Rank()})
}

// GetPromotions godoc
// GET /api/v1/members/:id/promotions
// Returns the member's promotion ledger, newest first.
func (h *MemberHandler) GetPromotions(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	promotions, err := h.promotionService.History(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"promotions": promotions})
}

// GetAttendanceCount godoc
// GET /api/v1/members/:id/attendance-count?since=YYYY-MM-DD
// Returns how many sessions the member attended since the date.
func (h *MemberHandler) GetAttendanceCount(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	since, err := parseClassDate(c.Query("since"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidDate)
		return
	}

	count, err := h.rosterService.AttendanceCount(c.Request.Context(), id, since)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"count": count, "since": c.Query("since")})
}
