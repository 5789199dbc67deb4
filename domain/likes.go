package domain

import (
	"github.com/google/uuid"
	"time"
)

// Like is a single like edge. At most one exists per (post, user) pair.
type Like struct {
	PostId    uuid.UUID `json:"postId"`
	UserId    uuid.UUID `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`

	// User is the liking user's profile when the listing joined it in.
	User *User `json:"user,omitempty"`
}
