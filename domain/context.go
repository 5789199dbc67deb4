package domain

import "github.com/google/uuid"

// Context carries the viewer identity a repository call runs under.
// Authentication happens upstream; by the time a Context reaches a
// repository it is either Anonymous or an already-validated user.
// Operations that need a known actor type-switch on the concrete
// variant and report "not permitted" as an absent result.
type Context interface {
	isContext()
}

// Anonymous is the context of an unauthenticated caller.
type Anonymous struct{}

func (Anonymous) isContext() {}

// UserContext is the context of a resolved, authenticated user.
type UserContext struct {
	UserId uuid.UUID
}

func (UserContext) isContext() {}
