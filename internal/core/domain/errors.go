package domain

import "errors"

var (
	ErrItemNotFound     = errors.New("news post not found")
	ErrInvalidItemID    = errors.New("invalid news post id")
	ErrInvalidVoteValue = errors.New("vote value must be 1 or -1")
	ErrVoteConflict     = errors.New("vote changed concurrently for this user and item")
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrUnauthenticated  = errors.New("authenticated voter required")
	ErrInternal         = errors.New("internal server error")
)

// ValidationError carries a field level message that is safe to show to the
// requester.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}
