package domain

import (
	"github.com/google/uuid"
	"time"
)

// Follow is a single follow edge. A pending edge (accepted = false)
// exists when the target is private and has not accepted yet.
type Follow struct {
	FollowerId uuid.UUID `json:"followerId"`
	TargetId   uuid.UUID `json:"targetId"`
	Accepted   bool      `json:"accepted"`
	CreatedAt  time.Time `json:"createdAt"`

	// Follower and Target are profile projections filled by the
	// followers/following listings; only one side is set per listing.
	Follower *User `json:"follower,omitempty"`
	Target   *User `json:"target,omitempty"`
}
