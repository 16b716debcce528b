package service

import "errors"

// Domain errors surfaced by the roster and promotion services. Validation
// errors are returned before any write; ErrAlreadyCheckedIn is an expected
// condition callers render as a friendly message, not a system fault.
var (
	ErrUnauthorized     = errors.New("grader does not hold grading access for this class")
	ErrInvalidRank      = errors.New("rank is not valid for the member's program")
	ErrNoChange         = errors.New("new rank is identical to the current rank")
	ErrClassNotFound    = errors.New("class not found")
	ErrMemberNotFound   = errors.New("member not found")
	ErrAlreadyCheckedIn = errors.New("member is already checked in for this session")
	ErrNotScheduled     = errors.New("class is not scheduled on this date")
)
