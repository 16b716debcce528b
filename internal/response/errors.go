package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication / Authorization ────────────────────────────────
	ErrTokenRequired    ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid     ErrCode = "TOKEN_INVALID"
	ErrForbidden        ErrCode = "FORBIDDEN"
	ErrPermissionDenied ErrCode = "PERMISSION_DENIED"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidDate    ErrCode = "INVALID_DATE"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Roster / attendance ───────────────────────────────────────────
	ErrAlreadyCheckedIn ErrCode = "ALREADY_CHECKED_IN"
	ErrNotScheduled     ErrCode = "NOT_SCHEDULED"

	// ─── Grading ───────────────────────────────────────────────────────
	ErrInvalidRank      ErrCode = "INVALID_RANK"
	ErrUnknownBelt      ErrCode = "UNKNOWN_BELT"
	ErrIncomparableRank ErrCode = "INCOMPARABLE_RANK"
	ErrNoChange         ErrCode = "NO_CHANGE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication / Authorization ────────────────────────────────
	case ErrTokenRequired:
		return "An identity token is required."
	case ErrTokenInvalid:
		return "The identity token is invalid or expired."
	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrPermissionDenied:
		return "Permission denied."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidDate:
		return "Invalid date format, expected YYYY-MM-DD."
	case ErrInvalidPayload:
		return "Invalid request payload."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."

	// ─── Roster / attendance ───────────────────────────────────────────
	case ErrAlreadyCheckedIn:
		return "This member is already checked in for this session."
	case ErrNotScheduled:
		return "This class does not run on the selected date."

	// ─── Grading ───────────────────────────────────────────────────────
	case ErrInvalidRank:
		return "The selected belt and stripes are not valid for this member's program."
	case ErrUnknownBelt:
		return "The selected belt is not part of this program."
	case ErrIncomparableRank:
		return "Ranks from different programs cannot be compared."
	case ErrNoChange:
		return "The selected rank matches the member's current rank."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
