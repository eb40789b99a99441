package domain

import (
	"time"

	"github.com/google/uuid"
)

// NewsPost is the votable item. Score is the running sum of its votes and is
// only changed by the vote ledger.
type NewsPost struct {
	ID        uuid.UUID `json:"id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Score     int64     `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}
