package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tatamihq/tatami-backend/internal/middleware"
	"github.com/tatamihq/tatami-backend/internal/model"
	"github.com/tatamihq/tatami-backend/internal/response"
	"github.com/tatamihq/tatami-backend/internal/service"
	"github.com/tatamihq/tatami-backend/internal/validator"
)

// GradingHandler records promotion decisions.
type GradingHandler struct {
	promotionService *service.PromotionService
}

// NewGradingHandler creates a new GradingHandler.
func NewGradingHandler(promotionService *service.PromotionService) *GradingHandler {
	return &GradingHandler{promotionService: promotionService}
}

// PromoteRequest is the payload for a grading decision.
type PromoteRequest struct {
	MemberID   int    `json:"member_id" binding:"required"`
	NewBelt    string `json:"new_belt" binding:"required,min=4,max=16"`
	NewStripes int    `json:"new_stripes" binding:"min=0,max=12"`
	Comments   string `json:"comments" binding:"max=500"`
}

// Promote godoc
// POST /api/v1/classes/:id/promotions
// Appends a promotion to the ledger and refreshes the member's cached rank.
func (h *GradingHandler) Promote(c *gin.Context) {
	classID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req PromoteRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)

	promotion, err := h.promotionService.Promote(c.Request.Context(), service.PromoteParams{
		MemberID:      req.MemberID,
		ClassID:       classID,
		GradedBy:      claims.UserID,
		GraderIsAdmin: claims.IsAdmin(),
		NewBelt:       model.Belt(req.NewBelt),
		NewStripes:    req.NewStripes,
		Comments:      req.Comments,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthorized):
			response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		case errors.Is(err, service.ErrMemberNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrInvalidRank):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidRank)
		case errors.Is(err, model.ErrUnknownBelt):
			response.Fail(c, http.StatusBadRequest, response.ErrUnknownBelt)
		case errors.Is(err, service.ErrNoChange):
			response.Fail(c, http.StatusBadRequest, response.ErrNoChange)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"promotion": promotion})
}
