package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/tatamihq/tatami-backend/internal/model"
	"github.com/tatamihq/tatami-backend/internal/repository"
)

// rankCacheRetries bounds the immediate re-attempts of the cached-rank
// update after the ledger append succeeded. If all attempts fail the
// rank audit worker repairs the drift on its next pass.
const rankCacheRetries = 3

// PromoteParams carries one grading decision.
type PromoteParams struct {
	MemberID      int
	ClassID       int
	GradedBy      int
	GraderIsAdmin bool
	NewBelt       model.Belt
	NewStripes    int
	Comments      string
}

// PromotionService validates and records rank changes. The promotions
// table is an append-only ledger and the single source of truth; the
// belt/stripes columns on members are a cache derived from its newest row.
type PromotionService struct {
	members    MemberStore
	promotions PromotionStore
	access     GradingAccessStore
	log        zerolog.Logger
}

// NewPromotionService creates a new PromotionService.
func NewPromotionService(
	members MemberStore,
	promotions PromotionStore,
	access GradingAccessStore,
	log zerolog.Logger,
) *PromotionService {
	return &PromotionService{
		members:    members,
		promotions: promotions,
		access:     access,
		log:        log.With().Str("component", "promotion_service").Logger(),
	}
}

// Promote records a grading decision for a member. Admins hold blanket
// grading capability; any other grader needs an explicit class grant.
// Lateral and backward changes are accepted so grading mistakes can be
// corrected without special-casing; only a no-op change is rejected.
func (s *PromotionService) Promote(ctx context.Context, params PromoteParams) (*model.Promotion, error) {
	if !params.GraderIsAdmin {
		ok, err := s.access.HasGrant(ctx, params.GradedBy, params.ClassID)
		if err != nil {
			return nil, fmt.Errorf("check grading access: %w", err)
		}
		if !ok {
			return nil, ErrUnauthorized
		}
	}

	member, err := s.members.GetByID(ctx, params.MemberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("get member: %w", err)
	}

	// An unknown belt gets its own error so the API can tell a typo'd
	// belt name apart from an out-of-range stripe count.
	if _, err := model.Ordinal(member.Program, params.NewBelt); err != nil {
		return nil, fmt.Errorf("%w: %q for program %s", model.ErrUnknownBelt, params.NewBelt, member.Program)
	}
	if !model.IsValid(member.Program, params.NewBelt, params.NewStripes) {
		return nil, ErrInvalidRank
	}

	if params.NewBelt == member.Belt && params.NewStripes == member.Stripes {
		return nil, ErrNoChange
	}

	// Informational only: accepted either way, stored for audit framing.
	advancement, err := model.IsAdvancement(member.Rank(), model.Rank{
		Program: member.Program,
		Belt:    params.NewBelt,
		Stripes: params.NewStripes,
	})
	if err != nil {
		return nil, ErrInvalidRank
	}

	promotion := &model.Promotion{
		MemberID:        params.MemberID,
		ClassID:         params.ClassID,
		PreviousBelt:    member.Belt,
		PreviousStripes: member.Stripes,
		NewBelt:         params.NewBelt,
		NewStripes:      params.NewStripes,
		IsAdvancement:   advancement,
		Comments:        params.Comments,
		GradedBy:        params.GradedBy,
	}
	if err := s.promotions.Create(ctx, promotion); err != nil {
		return nil, fmt.Errorf("append promotion: %w", err)
	}

	// The ledger row exists from here on; the cache update must follow.
	// Retry immediately rather than leave ledger and cached rank disagreeing.
	var updateErr error
	for attempt := 0; attempt < rankCacheRetries; attempt++ {
		updateErr = s.members.UpdateRank(ctx, params.MemberID, params.NewBelt, params.NewStripes, promotion.ID)
		if updateErr == nil {
			break
		}
		time.Sleep(time.Duration(attempt+1) * 50 * time.Millisecond)
	}
	if updateErr != nil {
		// The audit worker re-derives the cache from the ledger, so the
		// grading itself stands.
		s.log.Error().Err(updateErr).
			Int("member_id", params.MemberID).
			Int64("promotion_id", promotion.ID).
			Msg("Cached rank update failed after ledger append")
		return nil, fmt.Errorf("update cached rank: %w", updateErr)
	}

	s.log.Info().
		Int("member_id", params.MemberID).
		Int("graded_by", params.GradedBy).
		Str("previous", string(member.Belt)).
		Str("new", string(params.NewBelt)).
		Bool("advancement", advancement).
		Msg("Promotion recorded")

	return promotion, nil
}

// History returns a member's promotion ledger, newest first.
func (s *PromotionService) History(ctx context.Context, memberID int) ([]model.Promotion, error) {
	return s.promotions.ListByMember(ctx, memberID)
}

// Member returns a member profile with its cached current rank.
func (s *PromotionService) Member(ctx context.Context, memberID int) (*model.Member, error) {
	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}
